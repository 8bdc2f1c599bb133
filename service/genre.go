package service

import (
	"cinemaverse/apperror"
	"cinemaverse/cache"
	"cinemaverse/model"
	"context"
	"strings"

	"github.com/cockroachdb/errors"
)

type GenreService struct{ *Deps }

func (s *GenreService) List(ctx context.Context) ([]model.Genre, error) {
	var genres []model.Genre
	if s.Cache.Get(ctx, cache.GenresKey, &genres) {
		return genres, nil
	}
	if err := s.UoW.Genres.DB(ctx).Order("name").Find(&genres).Error; err != nil {
		return nil, errors.Wrap(err, "list genres")
	}
	s.Cache.Set(ctx, cache.GenresKey, genres, s.Settings.CacheTTL)
	return genres, nil
}

func (s *GenreService) Create(ctx context.Context, in model.GenreInput) (*model.Genre, error) {
	name := strings.TrimSpace(in.Name)
	if err := s.ensureUnique(ctx, name, 0); err != nil {
		return nil, err
	}
	genre := &model.Genre{Name: name}
	if err := s.UoW.Genres.Create(ctx, genre); err != nil {
		return nil, err
	}
	s.Cache.Delete(ctx, cache.GenresKey)
	return genre, nil
}

func (s *GenreService) Update(ctx context.Context, id uint, in model.GenreInput) (*model.Genre, error) {
	genre, err := s.UoW.Genres.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if err := s.ensureUnique(ctx, name, id); err != nil {
		return nil, err
	}
	genre.Name = name
	if err := s.UoW.Genres.Save(ctx, genre); err != nil {
		return nil, err
	}
	s.Cache.Delete(ctx, cache.GenresKey)
	return genre, nil
}

func (s *GenreService) Delete(ctx context.Context, id uint) error {
	if _, err := s.UoW.Genres.FindByID(ctx, id); err != nil {
		return err
	}
	err := s.UoW.Genres.DB(ctx).Exec("DELETE FROM movie_genres WHERE genre_id = ?", id).Error
	if err != nil {
		return errors.Wrap(err, "detach genre")
	}
	if err := s.UoW.Genres.Delete(ctx, id); err != nil {
		return err
	}
	s.Cache.Delete(ctx, cache.GenresKey)
	return nil
}

func (s *GenreService) ensureUnique(ctx context.Context, name string, excludeID uint) error {
	taken, err := s.UoW.Genres.Exists(ctx, "LOWER(name) = LOWER(?) AND id <> ?", name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperror.InvalidOperation("genre %s already exists", name)
	}
	return nil
}
