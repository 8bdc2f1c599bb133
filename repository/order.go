package repository

import (
	"cinemaverse/model"
	"cinemaverse/utils"
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	*Repository[model.Booking]
}

var bookingDetail = []string{
	"Seats.Seat",
	"Showtime.Movie",
	"Showtime.Hall.Branch",
	"Payment",
	"Tickets.Seat",
}

func (r *BookingRepository) FindDetail(ctx context.Context, id uint) (*model.Booking, error) {
	return r.FindByID(ctx, id, append(bookingDetail, "User")...)
}

func (r *BookingRepository) List(ctx context.Context, f model.FilterBooking) ([]model.Booking, int64, error) {
	q := r.Model(ctx)
	if f.UserId > 0 {
		q = q.Where("user_id = ?", f.UserId)
	}
	if f.ShowtimeId > 0 {
		q = q.Where("showtime_id = ?", f.ShowtimeId)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != "" {
		if start, _, err := utils.DayRange(f.From); err == nil {
			q = q.Where("created_at >= ?", start)
		}
	}
	if f.To != "" {
		if _, end, err := utils.DayRange(f.To); err == nil {
			q = q.Where("created_at < ?", end)
		}
	}
	return r.Page(q.Order("created_at DESC").Order("id DESC"), f.Pagination, bookingDetail...)
}

// SeatStates returns the occupied seats of a showtime. Seats of confirmed
// bookings are Booked, seats of unexpired pending bookings are Reserved.
func (r *BookingRepository) SeatStates(ctx context.Context, showtimeID uint, now time.Time) (map[uint]model.SeatState, error) {
	type row struct {
		SeatId uint
		Status model.BookingStatus
	}
	var rows []row
	err := r.DB(ctx).Table("booking_seats").
		Select("booking_seats.seat_id, bookings.status").
		Joins("JOIN bookings ON bookings.id = booking_seats.booking_id").
		Where("booking_seats.showtime_id = ?", showtimeID).
		Where("bookings.status = ? OR (bookings.status = ? AND bookings.expires_at > ?)",
			model.BookingConfirmed, model.BookingPending, now).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "load seat states")
	}
	states := make(map[uint]model.SeatState, len(rows))
	for _, rw := range rows {
		if rw.Status == model.BookingConfirmed {
			states[rw.SeatId] = model.SeatBooked
		} else if _, ok := states[rw.SeatId]; !ok {
			states[rw.SeatId] = model.SeatReserved
		}
	}
	return states, nil
}

func (r *BookingRepository) CreateSeats(ctx context.Context, seats []model.BookingSeat) error {
	return errors.Wrap(r.DB(ctx).Create(&seats).Error, "create booking seats")
}

// ExpiredPending lists and locks pending bookings whose hold ended before
// now, with the details needed for their events. Rows locked by a running
// payment are skipped and picked up by a later sweep.
func (r *BookingRepository) ExpiredPending(ctx context.Context, now time.Time) ([]model.Booking, error) {
	var rows []model.Booking
	q := r.DB(ctx).Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
	for _, rel := range append(bookingDetail, "User") {
		q = q.Preload(rel)
	}
	err := q.Where("status = ? AND expires_at < ?", model.BookingPending, now).Order("id").Find(&rows).Error
	return rows, errors.Wrap(err, "list expired bookings")
}

// MarkExpired flips one booking from Pending to Expired and reports whether
// it was still pending.
func (r *BookingRepository) MarkExpired(ctx context.Context, id uint) (bool, error) {
	res := r.Model(ctx).
		Where("id = ? AND status = ?", id, model.BookingPending).
		Update("status", model.BookingExpired)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "expire booking")
	}
	return res.RowsAffected == 1, nil
}

// DueReminders lists confirmed bookings without a reminder whose showtime
// starts within [from, to].
func (r *BookingRepository) DueReminders(ctx context.Context, from, to time.Time) ([]model.Booking, error) {
	var rows []model.Booking
	err := r.DB(ctx).
		Preload("User").
		Preload("Seats.Seat").
		Preload("Showtime.Movie").
		Preload("Showtime.Hall.Branch").
		Joins("JOIN movie_show_times ON movie_show_times.id = bookings.showtime_id").
		Where("bookings.status = ? AND bookings.reminder_sent_at IS NULL", model.BookingConfirmed).
		Where("movie_show_times.status = ? AND movie_show_times.start_time BETWEEN ? AND ?", model.ShowtimeScheduled, from, to).
		Find(&rows).Error
	return rows, errors.Wrap(err, "list reminder bookings")
}

func (r *BookingRepository) ByShowtime(ctx context.Context, showtimeID uint, statuses ...model.BookingStatus) ([]model.Booking, error) {
	var rows []model.Booking
	err := r.DB(ctx).
		Preload("User").
		Preload("Payment").
		Where("showtime_id = ? AND status IN ?", showtimeID, statuses).
		Find(&rows).Error
	return rows, errors.Wrap(err, "list showtime bookings")
}

func (r *BookingRepository) CountForShowtime(ctx context.Context, showtimeID uint, statuses ...model.BookingStatus) (int64, error) {
	q := r.Model(ctx).Where("showtime_id = ?", showtimeID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var count int64
	return count, errors.Wrap(q.Count(&count).Error, "count showtime bookings")
}

func (r *BookingRepository) CountByStatus(ctx context.Context, from, to time.Time) (map[model.BookingStatus]int64, error) {
	type row struct {
		Status model.BookingStatus
		Total  int64
	}
	var rows []row
	err := r.Model(ctx).
		Select("status, COUNT(*) AS total").
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "count bookings by status")
	}
	out := map[model.BookingStatus]int64{
		model.BookingPending:   0,
		model.BookingConfirmed: 0,
		model.BookingCancelled: 0,
		model.BookingExpired:   0,
	}
	for _, rw := range rows {
		out[rw.Status] = rw.Total
	}
	return out, nil
}

type PaymentRepository struct {
	*Repository[model.BookingPayment]
}

// FindByBooking returns nil without error when the booking has no payment.
func (r *PaymentRepository) FindByBooking(ctx context.Context, bookingID uint) (*model.BookingPayment, error) {
	var p model.BookingPayment
	err := r.DB(ctx).Where("booking_id = ?", bookingID).Limit(1).Find(&p).Error
	if err != nil {
		return nil, errors.Wrap(err, "load payment")
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *PaymentRepository) FindByIntent(ctx context.Context, intentID string) (*model.BookingPayment, error) {
	return r.FindOne(ctx, "payment_intent_id = ?", intentID)
}

func (r *PaymentRepository) Revenue(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := r.Model(ctx).
		Select("COALESCE(SUM(amount), 0)").
		Where("status = ? AND paid_at >= ? AND paid_at < ?", model.PaymentSucceeded, from, to).
		Scan(&total).Error
	return total, errors.Wrap(err, "sum revenue")
}

// FailPendingForBookings marks the pending payments of the bookings as failed.
func (r *PaymentRepository) FailPendingForBookings(ctx context.Context, bookingIDs []uint, reason string) error {
	if len(bookingIDs) == 0 {
		return nil
	}
	err := r.Model(ctx).
		Where("booking_id IN ? AND status = ?", bookingIDs, model.PaymentPending).
		Updates(map[string]any{"status": model.PaymentFailed, "failure_reason": reason}).Error
	return errors.Wrap(err, "fail pending payments")
}

type TicketRepository struct {
	*Repository[model.Ticket]
}

func (r *TicketRepository) ListByUser(ctx context.Context, userID uint, f model.FilterTicket) ([]model.Ticket, int64, error) {
	q := r.Model(ctx).Where("booking_id IN (?)", r.DB(ctx).Model(&model.Booking{}).Select("id").Where("user_id = ?", userID))
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return r.Page(q.Order("created_at DESC").Order("id DESC"), f.Pagination, "Seat", "Showtime.Movie", "Showtime.Hall.Branch")
}

func (r *TicketRepository) FindDetail(ctx context.Context, id uint) (*model.Ticket, error) {
	return r.FindByID(ctx, id, "Booking", "Seat", "Showtime.Movie", "Showtime.Hall.Branch")
}

func (r *TicketRepository) FindByQRToken(ctx context.Context, token string) (*model.Ticket, error) {
	return r.first(r.DB(ctx).Preload("Booking").Preload("Seat").Preload("Showtime.Movie").Where("qr_token = ?", token))
}

func (r *TicketRepository) CreateBatch(ctx context.Context, tickets []model.Ticket) error {
	return errors.Wrap(r.DB(ctx).Create(&tickets).Error, "create tickets")
}

func (r *TicketRepository) SetStatusForBooking(ctx context.Context, bookingID uint, from, to model.TicketStatus) error {
	err := r.Model(ctx).Where("booking_id = ? AND status = ?", bookingID, from).Update("status", to).Error
	return errors.Wrap(err, "update booking tickets")
}

// ExpireForShowtimes moves the active tickets of the showtimes to Expired.
func (r *TicketRepository) ExpireForShowtimes(ctx context.Context, showtimeIDs []uint) (int64, error) {
	if len(showtimeIDs) == 0 {
		return 0, nil
	}
	res := r.Model(ctx).
		Where("showtime_id IN ? AND status = ?", showtimeIDs, model.TicketActive).
		Update("status", model.TicketExpired)
	return res.RowsAffected, errors.Wrap(res.Error, "expire tickets")
}

type ReviewRepository struct {
	*Repository[model.Review]
}

func (r *ReviewRepository) ListByMovie(ctx context.Context, movieID uint, p model.Pagination) ([]model.Review, int64, error) {
	q := r.Model(ctx).Where("movie_id = ?", movieID).Order("created_at DESC").Order("id DESC")
	return r.Page(q, p, "User")
}

func (r *ReviewRepository) Reviewed(ctx context.Context, userID, movieID uint) (bool, error) {
	return r.Exists(ctx, "user_id = ? AND movie_id = ?", userID, movieID)
}
