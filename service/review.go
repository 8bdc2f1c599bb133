package service

import (
	"cinemaverse/apperror"
	"cinemaverse/model"
	"context"
	"strings"

	"github.com/cockroachdb/errors"
)

type ReviewService struct{ *Deps }

func (s *ReviewService) ListByMovie(ctx context.Context, movieID uint, p model.Pagination) (model.ResponseCustom, error) {
	if _, err := s.UoW.Movies.FindByID(ctx, movieID); err != nil {
		return model.ResponseCustom{}, err
	}
	rows, total, err := s.UoW.Reviews.ListByMovie(ctx, movieID, p)
	if err != nil {
		return model.ResponseCustom{}, err
	}
	return model.Paged(rows, p, total), nil
}

func (s *ReviewService) Create(ctx context.Context, userID, movieID uint, in model.ReviewInput) (*model.Review, error) {
	movie, err := s.UoW.Movies.FindByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	reviewed, err := s.UoW.Reviews.Reviewed(ctx, userID, movieID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, apperror.InvalidOperation("you have already reviewed %s", movie.Title)
	}
	review := &model.Review{
		UserId:  userID,
		MovieId: movieID,
		Rating:  in.Rating,
		Comment: strings.TrimSpace(in.Comment),
	}
	if err := s.UoW.Reviews.Create(ctx, review); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.InvalidOperation("you have already reviewed %s", movie.Title)
		}
		return nil, err
	}
	(&MovieService{s.Deps}).invalidate(ctx, movie)
	return s.UoW.Reviews.FindByID(ctx, review.ID, "User")
}

func (s *ReviewService) Update(ctx context.Context, actor Actor, id uint, in model.ReviewInput) (*model.Review, error) {
	review, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	err = s.UoW.Reviews.Updates(ctx, id, map[string]any{"rating": in.Rating, "comment": strings.TrimSpace(in.Comment)})
	if err != nil {
		return nil, err
	}
	s.invalidateMovie(ctx, review.MovieId)
	return s.UoW.Reviews.FindByID(ctx, id, "User")
}

func (s *ReviewService) Delete(ctx context.Context, actor Actor, id uint) error {
	review, err := s.owned(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.UoW.Reviews.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateMovie(ctx, review.MovieId)
	return nil
}

func (s *ReviewService) owned(ctx context.Context, actor Actor, id uint) (*model.Review, error) {
	review, err := s.UoW.Reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.owns(review.UserId) {
		return nil, apperror.Forbidden("review %d belongs to another user", id)
	}
	return review, nil
}

func (s *ReviewService) invalidateMovie(ctx context.Context, movieID uint) {
	if movie, err := s.UoW.Movies.FindByID(ctx, movieID); err == nil {
		(&MovieService{s.Deps}).invalidate(ctx, movie)
	}
}
