package service

import (
	"cinemaverse/apperror"
	"cinemaverse/cache"
	"cinemaverse/helper"
	"cinemaverse/logger"
	"cinemaverse/model"
	"cinemaverse/repository"
	"context"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/jinzhu/copier"
)

const movieImageFolder = "cinemaverse/movies"

type MovieService struct{ *Deps }

func (s *MovieService) List(ctx context.Context, f model.FilterMovieInput) (model.ResponseCustom, error) {
	rows, total, err := s.UoW.Movies.List(ctx, f)
	if err != nil {
		return model.ResponseCustom{}, err
	}
	return model.Paged(rows, f.Pagination, total), nil
}

func (s *MovieService) NowShowing(ctx context.Context, p model.Pagination) (model.ResponseCustom, error) {
	return s.List(ctx, model.FilterMovieInput{Pagination: p, Status: string(model.MovieNowShowing)})
}

func (s *MovieService) ComingSoon(ctx context.Context, p model.Pagination) (model.ResponseCustom, error) {
	return s.List(ctx, model.FilterMovieInput{Pagination: p, Status: string(model.MovieComingSoon)})
}

func (s *MovieService) Get(ctx context.Context, id uint) (*model.Movie, error) {
	var movie model.Movie
	if s.Cache.Get(ctx, cache.MovieKey(id), &movie) {
		return &movie, nil
	}
	m, err := s.UoW.Movies.FindDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withRating(ctx, m)
}

func (s *MovieService) GetBySlug(ctx context.Context, slug string) (*model.Movie, error) {
	var movie model.Movie
	if s.Cache.Get(ctx, cache.MovieSlugKey(slug), &movie) {
		return &movie, nil
	}
	m, err := s.UoW.Movies.FindDetailBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.withRating(ctx, m)
}

func (s *MovieService) withRating(ctx context.Context, m *model.Movie) (*model.Movie, error) {
	summary, err := s.UoW.Movies.RatingSummary(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	m.AverageRating = summary.Average
	m.ReviewCount = summary.Count
	s.Cache.Set(ctx, cache.MovieKey(m.ID), m, s.Settings.CacheTTL)
	s.Cache.Set(ctx, cache.MovieSlugKey(m.Slug), m, s.Settings.CacheTTL)
	return m, nil
}

func (s *MovieService) invalidate(ctx context.Context, m *model.Movie) {
	s.Cache.Delete(ctx, cache.MovieKey(m.ID), cache.MovieSlugKey(m.Slug))
}

func (s *MovieService) Create(ctx context.Context, in model.CreateMovieInput) (*model.Movie, error) {
	if in.ReleaseDate.IsZero() {
		return nil, apperror.Validation(map[string][]string{"releaseDate": {"required"}})
	}
	movie := &model.Movie{}
	if err := copier.Copy(movie, &in); err != nil {
		return nil, errors.Wrap(err, "map movie")
	}
	if movie.Status == "" {
		movie.Status = model.MovieNowShowing
		if !in.ReleaseDate.OnOrBefore(s.now()) {
			movie.Status = model.MovieComingSoon
		}
	}
	err := s.UoW.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		genres, err := s.genres(ctx, tx, in.GenreIds)
		if err != nil {
			return err
		}
		movie.Slug, err = helper.UniqueSlug(movie.Title, func(v string) (bool, error) {
			return tx.Movies.SlugExists(ctx, v, 0)
		})
		if err != nil {
			return err
		}
		if err := tx.Movies.Create(ctx, movie); err != nil {
			return err
		}
		return tx.Movies.ReplaceGenres(ctx, movie, genres)
	})
	if err != nil {
		return nil, err
	}
	return s.UoW.Movies.FindDetail(ctx, movie.ID)
}

func (s *MovieService) Update(ctx context.Context, id uint, in model.EditMovieInput) (*model.Movie, error) {
	var before model.Movie
	err := s.UoW.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		movie, err := tx.Movies.FindByID(ctx, id)
		if err != nil {
			return err
		}
		before = *movie
		oldTitle := movie.Title
		if err := copier.CopyWithOption(movie, &in, copier.Option{IgnoreEmpty: true}); err != nil {
			return errors.Wrap(err, "map movie")
		}
		if movie.Title != oldTitle {
			movie.Slug, err = helper.UniqueSlug(movie.Title, func(v string) (bool, error) {
				return tx.Movies.SlugExists(ctx, v, movie.ID)
			})
			if err != nil {
				return err
			}
		}
		if err := tx.Movies.Save(ctx, movie); err != nil {
			return err
		}
		if in.GenreIds != nil {
			genres, err := s.genres(ctx, tx, *in.GenreIds)
			if err != nil {
				return err
			}
			return tx.Movies.ReplaceGenres(ctx, movie, genres)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, &before)
	return s.UoW.Movies.FindDetail(ctx, id)
}

func (s *MovieService) genres(ctx context.Context, tx *repository.UnitOfWork, ids []uint) ([]model.Genre, error) {
	genres, err := tx.Genres.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	found := make(map[uint]bool, len(genres))
	for _, g := range genres {
		found[g.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, apperror.NotFound("genre %d not found", id)
		}
	}
	return genres, nil
}

func (s *MovieService) SetStatus(ctx context.Context, id uint, status model.MovieStatus) (*model.Movie, error) {
	movie, err := s.UoW.Movies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.UoW.Movies.Updates(ctx, id, map[string]any{"status": status}); err != nil {
		return nil, err
	}
	s.invalidate(ctx, movie)
	movie.Status = status
	return movie, nil
}

// Delete refuses movies that were ever scheduled.
func (s *MovieService) Delete(ctx context.Context, id uint) error {
	var publicIDs []string
	var deleted *model.Movie
	err := s.UoW.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		movie, err := tx.Movies.FindDetail(ctx, id)
		if err != nil {
			return err
		}
		scheduled, err := tx.Showtimes.HasAnyForMovie(ctx, id)
		if err != nil {
			return err
		}
		if scheduled {
			return apperror.InvalidOperation("movie %d already has showtimes and cannot be deleted", id)
		}
		for _, img := range movie.Images {
			if img.PublicID != nil {
				publicIDs = append(publicIDs, *img.PublicID)
			}
		}
		db := tx.DB().WithContext(ctx)
		if err := db.Where("movie_id = ?", id).Delete(&model.MovieCastMember{}).Error; err != nil {
			return errors.Wrap(err, "delete cast")
		}
		if err := db.Where("movie_id = ?", id).Delete(&model.MovieImage{}).Error; err != nil {
			return errors.Wrap(err, "delete images")
		}
		if err := db.Where("movie_id = ?", id).Delete(&model.Review{}).Error; err != nil {
			return errors.Wrap(err, "delete reviews")
		}
		if err := tx.Movies.ClearGenres(ctx, movie); err != nil {
			return err
		}
		deleted = movie
		return tx.Movies.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, deleted)
	s.destroyImages(ctx, publicIDs...)
	return nil
}

func (s *MovieService) AddCast(ctx context.Context, movieID uint, in model.CastMemberInput) (*model.MovieCastMember, error) {
	movie, err := s.UoW.Movies.FindByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	member := &model.MovieCastMember{MovieId: movieID}
	if err := copier.Copy(member, &in); err != nil {
		return nil, errors.Wrap(err, "map cast member")
	}
	if err := s.UoW.Cast.Create(ctx, member); err != nil {
		return nil, err
	}
	s.invalidate(ctx, movie)
	return member, nil
}

func (s *MovieService) RemoveCast(ctx context.Context, movieID, castID uint) error {
	member, err := s.UoW.Cast.FindByID(ctx, castID)
	if err != nil {
		return err
	}
	if member.MovieId != movieID {
		return apperror.NotFound("cast member %d not found", castID)
	}
	if err := s.UoW.Cast.Delete(ctx, castID); err != nil {
		return err
	}
	s.invalidateID(ctx, movieID)
	return nil
}

func (s *MovieService) invalidateID(ctx context.Context, movieID uint) {
	if movie, err := s.UoW.Movies.FindByID(ctx, movieID); err == nil {
		s.invalidate(ctx, movie)
	}
}

func (s *MovieService) AddImage(ctx context.Context, movieID uint, in model.MovieImageInput) (*model.MovieImage, error) {
	return s.addImage(ctx, movieID, &model.MovieImage{Url: in.Url, IsPrimary: in.IsPrimary})
}

// UploadImage stores the file in the image store before recording it.
func (s *MovieService) UploadImage(ctx context.Context, movieID uint, file io.Reader, primary bool) (*model.MovieImage, error) {
	if s.Images == nil {
		return nil, apperror.Invalid("image uploads are not configured")
	}
	if _, err := s.UoW.Movies.FindByID(ctx, movieID); err != nil {
		return nil, err
	}
	up, err := s.Images.Upload(ctx, file, movieImageFolder)
	if err != nil {
		return nil, err
	}
	img, err := s.addImage(ctx, movieID, &model.MovieImage{Url: up.Url, PublicID: &up.PublicID, IsPrimary: primary})
	if err != nil {
		s.destroyImages(ctx, up.PublicID)
		return nil, err
	}
	return img, nil
}

func (s *MovieService) addImage(ctx context.Context, movieID uint, img *model.MovieImage) (*model.MovieImage, error) {
	img.MovieId = movieID
	err := s.UoW.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		if _, err := tx.Movies.FindByID(ctx, movieID); err != nil {
			return err
		}
		count, err := tx.Images.Count(ctx, "movie_id = ?", movieID)
		if err != nil {
			return err
		}
		if count == 0 {
			img.IsPrimary = true
		}
		if img.IsPrimary {
			if err := clearPrimary(ctx, tx, movieID); err != nil {
				return err
			}
		}
		return tx.Images.Create(ctx, img)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateID(ctx, movieID)
	return img, nil
}

func clearPrimary(ctx context.Context, tx *repository.UnitOfWork, movieID uint) error {
	err := tx.Images.Model(ctx).Where("movie_id = ?", movieID).Update("is_primary", false).Error
	return errors.Wrap(err, "clear primary image")
}

func (s *MovieService) SetPrimaryImage(ctx context.Context, movieID, imageID uint) error {
	err := s.UoW.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		img, err := tx.Images.FindByID(ctx, imageID)
		if err != nil {
			return err
		}
		if img.MovieId != movieID {
			return apperror.NotFound("image %d not found", imageID)
		}
		if err := clearPrimary(ctx, tx, movieID); err != nil {
			return err
		}
		return tx.Images.Updates(ctx, imageID, map[string]any{"is_primary": true})
	})
	if err != nil {
		return err
	}
	s.invalidateID(ctx, movieID)
	return nil
}

func (s *MovieService) RemoveImage(ctx context.Context, movieID, imageID uint) error {
	img, err := s.UoW.Images.FindByID(ctx, imageID)
	if err != nil {
		return err
	}
	if img.MovieId != movieID {
		return apperror.NotFound("image %d not found", imageID)
	}
	if err := s.UoW.Images.Delete(ctx, imageID); err != nil {
		return err
	}
	if img.PublicID != nil {
		s.destroyImages(ctx, *img.PublicID)
	}
	s.invalidateID(ctx, movieID)
	return nil
}

func (s *MovieService) destroyImages(ctx context.Context, publicIDs ...string) {
	if s.Images == nil {
		return
	}
	for _, id := range publicIDs {
		if err := s.Images.Destroy(ctx, id); err != nil {
			logger.Log.WithError(err).WithField("publicId", id).Warn("failed to destroy image")
		}
	}
}

// ReleaseDue moves ComingSoon movies to NowShowing once their release day
// starts and returns how many changed.
func (s *MovieService) ReleaseDue(ctx context.Context) (int, error) {
	movies, err := s.UoW.Movies.ReleaseDue(ctx, s.now())
	if err != nil {
		return 0, err
	}
	for i := range movies {
		if err := s.UoW.Movies.Updates(ctx, movies[i].ID, map[string]any{"status": model.MovieNowShowing}); err != nil {
			return 0, err
		}
		s.invalidate(ctx, &movies[i])
	}
	return len(movies), nil
}
