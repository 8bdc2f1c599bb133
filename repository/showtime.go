package repository

import (
	"cinemaverse/model"
	"cinemaverse/utils"
	"context"
	"time"

	"github.com/cockroachdb/errors"
)

type ShowtimeRepository struct {
	*Repository[model.MovieShowTime]
}

func (r *ShowtimeRepository) List(ctx context.Context, f model.FilterShowtime, now time.Time) ([]model.MovieShowTime, int64, error) {
	q := r.Model(ctx)
	if f.MovieId > 0 {
		q = q.Where("movie_id = ?", f.MovieId)
	}
	if f.HallId > 0 {
		q = q.Where("hall_id = ?", f.HallId)
	}
	if f.BranchId > 0 {
		q = q.Where("hall_id IN (?)", r.DB(ctx).Model(&model.Hall{}).Select("id").Where("branch_id = ?", f.BranchId))
	}
	if f.Date != "" {
		start, end, err := utils.DayRange(f.Date)
		if err == nil {
			q = q.Where("start_time >= ? AND start_time < ?", start, end)
		}
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.UpcomingOnly {
		q = q.Where("status = ? AND start_time > ?", model.ShowtimeScheduled, now)
	}
	return r.Page(q.Order("start_time").Order("id"), f.Pagination, "Movie", "Hall.Branch")
}

func (r *ShowtimeRepository) FindDetail(ctx context.Context, id uint) (*model.MovieShowTime, error) {
	return r.FindByID(ctx, id, "Movie", "Hall.Branch")
}

// HasOverlap reports whether another live showtime in the hall intersects
// [start, end).
func (r *ShowtimeRepository) HasOverlap(ctx context.Context, hallID uint, start, end time.Time, excludeID uint) (bool, error) {
	return r.Exists(ctx,
		"hall_id = ? AND status <> ? AND id <> ? AND start_time < ? AND end_time > ?",
		hallID, model.ShowtimeCancelled, excludeID, end, start)
}

// DueForCompletion lists scheduled showtimes that ended before now.
func (r *ShowtimeRepository) DueForCompletion(ctx context.Context, now time.Time) ([]model.MovieShowTime, error) {
	var rows []model.MovieShowTime
	err := r.DB(ctx).Where("status = ? AND end_time <= ?", model.ShowtimeScheduled, now).Find(&rows).Error
	return rows, errors.Wrap(err, "list ended showtimes")
}

func (r *ShowtimeRepository) MarkCompleted(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.Model(ctx).Where("id IN ?", ids).Update("status", model.ShowtimeCompleted).Error
	return errors.Wrap(err, "complete showtimes")
}

func (r *ShowtimeRepository) CountUpcoming(ctx context.Context, now time.Time) (int64, error) {
	return r.Count(ctx, "status = ? AND start_time > ?", model.ShowtimeScheduled, now)
}

// ByMovie lists the upcoming scheduled showtimes of one movie.
func (r *ShowtimeRepository) ByMovie(ctx context.Context, movieID uint, now time.Time) ([]model.MovieShowTime, error) {
	var rows []model.MovieShowTime
	err := r.DB(ctx).
		Preload("Hall.Branch").
		Where("movie_id = ? AND status = ? AND start_time > ?", movieID, model.ShowtimeScheduled, now).
		Order("start_time").
		Find(&rows).Error
	return rows, errors.Wrap(err, "list movie showtimes")
}

// UpcomingByHall returns the ids of scheduled showtimes in the hall that
// have not ended yet.
func (r *ShowtimeRepository) UpcomingByHall(ctx context.Context, hallID uint, now time.Time) ([]uint, error) {
	var ids []uint
	err := r.Model(ctx).
		Where("hall_id = ? AND status = ? AND end_time > ?", hallID, model.ShowtimeScheduled, now).
		Pluck("id", &ids).Error
	return ids, errors.Wrap(err, "list hall showtimes")
}

func (r *ShowtimeRepository) HasAnyForMovie(ctx context.Context, movieID uint) (bool, error) {
	return r.Exists(ctx, "movie_id = ?", movieID)
}
