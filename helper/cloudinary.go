package helper

import (
	"context"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cockroachdb/errors"
)

type UploadedImage struct {
	Url      string
	PublicID string
}

// ImageStore keeps uploaded movie images.
type ImageStore interface {
	Upload(ctx context.Context, file io.Reader, folder string) (UploadedImage, error)
	Destroy(ctx context.Context, publicID string) error
}

type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func InitCloudinary(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, errors.Wrap(err, "cloudinary init")
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, file io.Reader, folder string) (UploadedImage, error) {
	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return UploadedImage{}, errors.Wrap(err, "upload image")
	}
	if res.Error.Message != "" {
		return UploadedImage{}, errors.Newf("upload image: %s", res.Error.Message)
	}
	return UploadedImage{Url: res.SecureURL, PublicID: res.PublicID}, nil
}

func (s *CloudinaryStore) Destroy(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return errors.Wrap(err, "destroy image")
}
