package repository

import (
	"cinemaverse/model"
	"cinemaverse/utils"
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
)

type BranchRepository struct {
	*Repository[model.Branch]
}

func (r *BranchRepository) List(ctx context.Context, f model.FilterBranch, activeOnly bool) ([]model.Branch, int64, error) {
	q := r.Model(ctx)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	if f.City != "" {
		q = q.Where("LOWER(city) = LOWER(?)", f.City)
	}
	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", utils.Like(f.Search))
	}
	return r.Page(q.Order("name"), f.Pagination)
}

func (r *BranchRepository) FindDetail(ctx context.Context, id uint) (*model.Branch, error) {
	return r.first(r.DB(ctx).Preload("Halls", func(db *gorm.DB) *gorm.DB {
		return db.Order("hall_number")
	}), id)
}

func (r *BranchRepository) NameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	return r.Exists(ctx, "LOWER(name) = LOWER(?) AND id <> ?", name, excludeID)
}

func (r *BranchRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return r.Exists(ctx, "slug = ? AND id <> ?", slug, excludeID)
}

type HallRepository struct {
	*Repository[model.Hall]
}

func (r *HallRepository) ListByBranch(ctx context.Context, branchID uint) ([]model.Hall, error) {
	var halls []model.Hall
	err := r.DB(ctx).Where("branch_id = ?", branchID).Order("hall_number").Find(&halls).Error
	return halls, errors.Wrap(err, "list halls")
}

func (r *HallRepository) NumberTaken(ctx context.Context, branchID uint, number int, excludeID uint) (bool, error) {
	return r.Exists(ctx, "branch_id = ? AND hall_number = ? AND id <> ?", branchID, number, excludeID)
}

func (r *HallRepository) HasShowtimes(ctx context.Context, hallID uint) (bool, error) {
	var count int64
	err := r.DB(ctx).Model(&model.MovieShowTime{}).Where("hall_id = ?", hallID).Limit(1).Count(&count).Error
	return count > 0, errors.Wrap(err, "check hall showtimes")
}

func (r *HallRepository) HasFutureShowtimes(ctx context.Context, hallID uint, now time.Time) (bool, error) {
	var count int64
	err := r.DB(ctx).Model(&model.MovieShowTime{}).
		Where("hall_id = ? AND status = ? AND end_time > ?", hallID, model.ShowtimeScheduled, now).
		Limit(1).Count(&count).Error
	return count > 0, errors.Wrap(err, "check future showtimes")
}

type SeatRepository struct {
	*Repository[model.Seat]
}

func (r *SeatRepository) ListByHall(ctx context.Context, hallID uint) ([]model.Seat, error) {
	var seats []model.Seat
	err := r.DB(ctx).Where("hall_id = ?", hallID).Order("seat_row, seat_number").Find(&seats).Error
	return seats, errors.Wrap(err, "list seats")
}

func (r *SeatRepository) FindInHall(ctx context.Context, hallID uint, ids []uint) ([]model.Seat, error) {
	var seats []model.Seat
	err := r.DB(ctx).Where("hall_id = ? AND id IN ?", hallID, ids).Order("seat_row, seat_number").Find(&seats).Error
	return seats, errors.Wrap(err, "load seats")
}

func (r *SeatRepository) CreateBatch(ctx context.Context, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	return errors.Wrap(r.DB(ctx).CreateInBatches(&seats, 100).Error, "create seats")
}

func (r *SeatRepository) DeleteByHall(ctx context.Context, hallID uint) error {
	return errors.Wrap(r.DB(ctx).Where("hall_id = ?", hallID).Delete(&model.Seat{}).Error, "delete seats")
}
