package service

import (
	"cinemaverse/apperror"
	"cinemaverse/model"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOneReviewPerUserAndMovie(t *testing.T) {
	f := newFixture(t)

	review, err := f.svc.Reviews.Create(f.ctx, f.customer.ID, f.movie.ID, model.ReviewInput{Rating: 4, Comment: " Loved the sound "})
	require.NoError(t, err)
	assert.Equal(t, "Loved the sound", review.Comment)
	require.NotNil(t, review.User)

	_, err = f.svc.Reviews.Create(f.ctx, f.customer.ID, f.movie.ID, model.ReviewInput{Rating: 2})
	require.ErrorIs(t, err, apperror.ErrInvalidOperation)
	assert.Equal(t, http.StatusConflict, apperror.Status(err))

	_, err = f.svc.Reviews.Create(f.ctx, f.other.ID, f.movie.ID, model.ReviewInput{Rating: 2})
	require.NoError(t, err)

	movie, err := f.svc.Movies.Get(f.ctx, f.movie.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, movie.ReviewCount)
	assert.InDelta(t, 3.0, movie.AverageRating, 0.001)
}

func TestConcurrentReviewReportsConflict(t *testing.T) {
	f := newFixture(t)
	f.insertBefore(t, "reviews", func(tx *gorm.DB) error {
		return tx.Create(&model.Review{UserId: f.customer.ID, MovieId: f.movie.ID, Rating: 5}).Error
	})

	_, err := f.svc.Reviews.Create(f.ctx, f.customer.ID, f.movie.ID, model.ReviewInput{Rating: 3})
	require.ErrorIs(t, err, apperror.ErrInvalidOperation)
	assert.Equal(t, http.StatusConflict, apperror.Status(err))
	assert.Contains(t, apperror.Message(err), "already reviewed")
}

func TestReviewOwnership(t *testing.T) {
	f := newFixture(t)
	review, err := f.svc.Reviews.Create(f.ctx, f.customer.ID, f.movie.ID, model.ReviewInput{Rating: 5})
	require.NoError(t, err)

	_, err = f.svc.Reviews.Update(f.ctx, actorOf(f.other), review.ID, model.ReviewInput{Rating: 1})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	updated, err := f.svc.Reviews.Update(f.ctx, actorOf(f.customer), review.ID, model.ReviewInput{Rating: 3, Comment: "second watch"})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Rating)

	assert.ErrorIs(t, f.svc.Reviews.Delete(f.ctx, actorOf(f.other), review.ID), apperror.ErrForbidden)
	require.NoError(t, f.svc.Reviews.Delete(f.ctx, actorOf(f.admin), review.ID))

	res, err := f.svc.Reviews.ListByMovie(f.ctx, f.movie.ID, model.Pagination{})
	require.NoError(t, err)
	assert.Zero(t, res.TotalCount)
}
