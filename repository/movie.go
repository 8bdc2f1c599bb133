package repository

import (
	"cinemaverse/model"
	"cinemaverse/utils"
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
)

type MovieRepository struct {
	*Repository[model.Movie]
}

var movieSortColumns = map[string]string{
	"title":       "title",
	"releaseDate": "release_date",
	"rating":      "rating",
	"createdAt":   "created_at",
}

func (r *MovieRepository) List(ctx context.Context, f model.FilterMovieInput) ([]model.Movie, int64, error) {
	q := r.Model(ctx)
	if f.Search != "" {
		q = q.Where("LOWER(title) LIKE ?", utils.Like(f.Search))
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.GenreId > 0 {
		q = q.Where("id IN (?)", r.DB(ctx).Table("movie_genres").Select("movie_id").Where("genre_id = ?", f.GenreId))
	}
	order := "release_date"
	if col, ok := movieSortColumns[f.SortBy]; ok {
		order = col
	}
	if f.Desc {
		order += " DESC"
	}
	return r.Page(q.Order(order).Order("id"), f.Pagination, "Genres", "Images")
}

func (r *MovieRepository) detail(ctx context.Context) *gorm.DB {
	return r.DB(ctx).
		Preload("Genres").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("is_primary DESC, id") }).
		Preload("Cast", func(db *gorm.DB) *gorm.DB { return db.Order("display_order, id") })
}

func (r *MovieRepository) FindDetail(ctx context.Context, id uint) (*model.Movie, error) {
	return r.first(r.detail(ctx), id)
}

func (r *MovieRepository) FindDetailBySlug(ctx context.Context, slug string) (*model.Movie, error) {
	return r.first(r.detail(ctx).Where("slug = ?", slug))
}

func (r *MovieRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return r.Exists(ctx, "slug = ? AND id <> ?", slug, excludeID)
}

func (r *MovieRepository) ReplaceGenres(ctx context.Context, movie *model.Movie, genres []model.Genre) error {
	return errors.Wrap(r.DB(ctx).Model(movie).Association("Genres").Replace(genres), "replace movie genres")
}

func (r *MovieRepository) ClearGenres(ctx context.Context, movie *model.Movie) error {
	return errors.Wrap(r.DB(ctx).Model(movie).Association("Genres").Clear(), "clear movie genres")
}

// ReleaseDue lists ComingSoon movies whose release day has started.
func (r *MovieRepository) ReleaseDue(ctx context.Context, now time.Time) ([]model.Movie, error) {
	var movies []model.Movie
	err := r.DB(ctx).
		Where("status = ? AND release_date <= ?", model.MovieComingSoon, utils.NewDate(now)).
		Find(&movies).Error
	return movies, errors.Wrap(err, "list movies due for release")
}

type RatingSummary struct {
	Average float64
	Count   int64
}

func (r *MovieRepository) RatingSummary(ctx context.Context, movieID uint) (RatingSummary, error) {
	var s RatingSummary
	err := r.DB(ctx).Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("movie_id = ?", movieID).
		Scan(&s).Error
	return s, errors.Wrap(err, "summarize reviews")
}
