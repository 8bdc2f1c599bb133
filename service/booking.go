package service

import (
	"cinemaverse/apperror"
	"cinemaverse/events"
	"cinemaverse/helper"
	"cinemaverse/logger"
	"cinemaverse/metrics"
	"cinemaverse/model"
	"cinemaverse/repository"
	"cinemaverse/utils"
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

type BookingService struct{ *Deps }

// Create holds the requested seats in a Pending booking. The showtime row
// is locked for the duration of the check so concurrent requests for the
// same showtime are serialized.
func (s *BookingService) Create(ctx context.Context, userID uint, in model.CreateBookingInput) (*model.Booking, error) {
	if len(in.SeatIds) == 0 {
		return nil, apperror.Invalid("at least one seat is required")
	}
	if len(in.SeatIds) > s.Settings.MaxSeatsPerBooking {
		return nil, apperror.Invalid("a booking can hold at most %d seats", s.Settings.MaxSeatsPerBooking)
	}
	if !utils.UniqueIDs(in.SeatIds) {
		return nil, apperror.Invalid("seat ids must be distinct")
	}
	now := s.now()
	booking := &model.Booking{
		UserId:     userID,
		ShowtimeId: in.ShowtimeId,
		Status:     model.BookingPending,
		PublicCode: helper.BookingCode(),
		ExpiresAt:  now.Add(s.Settings.BookingHoldTTL),
	}
	err := s.UoW.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		show, err := tx.Showtimes.FindForUpdate(ctx, in.ShowtimeId)
		if err != nil {
			return err
		}
		if show.Status != model.ShowtimeScheduled {
			return apperror.Invalid("showtime %d is %s", show.ID, strings.ToLower(string(show.Status)))
		}
		if !show.StartTime.After(now) {
			return apperror.Invalid("showtime %d has already started", show.ID)
		}
		seats, err := tx.Seats.FindInHall(ctx, show.HallId, in.SeatIds)
		if err != nil {
			return err
		}
		if len(seats) != len(in.SeatIds) {
			return apperror.Invalid("one or more seats do not belong to hall %d", show.HallId)
		}
		states, err := tx.Bookings.SeatStates(ctx, show.ID, now)
		if err != nil {
			return err
		}
		rows := make([]model.BookingSeat, 0, len(seats))
		for _, seat := range seats {
			if !seat.Active {
				return apperror.Invalid("seat %s is not available", seat.SeatLabel)
			}
			if _, held := states[seat.ID]; held {
				return apperror.InvalidOperation("seat %s is already booked", seat.SeatLabel)
			}
			rows = append(rows, model.BookingSeat{SeatId: seat.ID, ShowtimeId: show.ID, Price: show.Price})
		}
		booking.TotalAmount = show.Price * float64(len(rows))
		if err := tx.Bookings.Create(ctx, booking); err != nil {
			return err
		}
		for i := range rows {
			rows[i].BookingId = booking.ID
		}
		return tx.Bookings.CreateSeats(ctx, rows)
	})
	if err != nil {
		return nil, err
	}
	metrics.Bookings.WithLabelValues(string(model.BookingPending)).Inc()
	s.seatsChanged(ctx, booking.ShowtimeId)
	return s.UoW.Bookings.FindDetail(ctx, booking.ID)
}

func (s *BookingService) Get(ctx context.Context, actor Actor, id uint) (*model.Booking, error) {
	b, err := s.UoW.Bookings.FindDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.owns(b.UserId) {
		return nil, apperror.Forbidden("booking %d belongs to another user", id)
	}
	return b, nil
}

func (s *BookingService) ListMine(ctx context.Context, userID uint, f model.FilterBooking) (model.ResponseCustom, error) {
	f.UserId = userID
	return s.List(ctx, f)
}

func (s *BookingService) List(ctx context.Context, f model.FilterBooking) (model.ResponseCustom, error) {
	rows, total, err := s.UoW.Bookings.List(ctx, f)
	if err != nil {
		return model.ResponseCustom{}, err
	}
	return model.Paged(rows, f.Pagination, total), nil
}

// Cancel cancels a pending booking, or a confirmed one while the showtime is
// more than the cancellation cutoff away.
func (s *BookingService) Cancel(ctx context.Context, actor Actor, id uint) (*model.Booking, error) {
	now := s.now()
	var wasConfirmed bool
	var showtimeID uint
	err := s.UoW.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		b, err := tx.Bookings.FindForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !actor.owns(b.UserId) {
			return apperror.Forbidden("booking %d belongs to another user", id)
		}
		showtimeID = b.ShowtimeId
		switch b.Status {
		case model.BookingCancelled, model.BookingExpired:
			return apperror.InvalidOperation("booking %s is already %s", b.PublicCode, strings.ToLower(string(b.Status)))
		case model.BookingConfirmed:
			show, err := tx.Showtimes.FindByID(ctx, b.ShowtimeId)
			if err != nil {
				return err
			}
			if show.StartTime.Sub(now) <= s.Settings.CancellationCutoff {
				return apperror.Invalid("confirmed bookings can only be cancelled more than %s before the showtime", s.Settings.CancellationCutoff)
			}
			wasConfirmed = true
		}
		return s.cancelInTx(ctx, tx, b, now, "booking cancelled")
	})
	if err != nil {
		return nil, err
	}
	metrics.Bookings.WithLabelValues(string(model.BookingCancelled)).Inc()
	s.seatsChanged(ctx, showtimeID)
	b, err := s.UoW.Bookings.FindDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifyCancelled(ctx, b, wasConfirmed)
	return b, nil
}

// cancelInTx cancels the booking with its tickets and settles its payment:
// succeeded payments are refunded, pending ones fail.
func (s *BookingService) cancelInTx(ctx context.Context, tx *repository.UnitOfWork, b *model.Booking, now time.Time, reason string) error {
	if err := tx.Bookings.Updates(ctx, b.ID, map[string]any{"status": model.BookingCancelled, "cancelled_at": now}); err != nil {
		return err
	}
	if err := tx.Tickets.SetStatusForBooking(ctx, b.ID, model.TicketActive, model.TicketCancelled); err != nil {
		return err
	}
	payment, err := tx.Payments.FindByBooking(ctx, b.ID)
	if err != nil || payment == nil {
		return err
	}
	switch payment.Status {
	case model.PaymentSucceeded:
		if err := s.Gateway.Refund(ctx, payment.PaymentIntentId, payment.Amount); err != nil {
			return errors.Wrapf(err, "refund payment %s", payment.PaymentIntentId)
		}
		metrics.PaymentIntents.WithLabelValues(string(model.PaymentRefunded)).Inc()
		return tx.Payments.Updates(ctx, payment.ID, map[string]any{"status": model.PaymentRefunded})
	case model.PaymentPending:
		return tx.Payments.Updates(ctx, payment.ID, map[string]any{"status": model.PaymentFailed, "failure_reason": reason})
	}
	return nil
}

func (s *BookingService) notifyCancelled(ctx context.Context, b *model.Booking, wasConfirmed bool) {
	s.publish(ctx, events.BookingCancelled, b)
	if !wasConfirmed {
		return
	}
	if err := s.Mailer.SendBookingCancellation(ctx, s.bookingEmail(b)); err != nil {
		logger.Log.WithError(err).WithField("booking", b.ID).Error("failed to send cancellation email")
	}
}

// ExpirePending expires every pending booking whose hold ended and fails
// its pending payment. It returns the number of expired bookings.
func (s *BookingService) ExpirePending(ctx context.Context) (int, error) {
	now := s.now()
	var expired []model.Booking
	err := s.UoW.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		candidates, err := tx.Bookings.ExpiredPending(ctx, now)
		if err != nil {
			return err
		}
		expired = expired[:0]
		ids := make([]uint, 0, len(candidates))
		for _, b := range candidates {
			ok, err := tx.Bookings.MarkExpired(ctx, b.ID)
			if err != nil {
				return err
			}
			if ok {
				expired = append(expired, b)
				ids = append(ids, b.ID)
			}
		}
		return tx.Payments.FailPendingForBookings(ctx, ids, "booking hold expired")
	})
	if err != nil {
		return 0, err
	}

	showtimes := map[uint]bool{}
	for i := range expired {
		expired[i].Status = model.BookingExpired
		showtimes[expired[i].ShowtimeId] = true
		s.publish(ctx, events.BookingExpired, &expired[i])
	}
	for id := range showtimes {
		s.seatsChanged(ctx, id)
	}
	metrics.Bookings.WithLabelValues(string(model.BookingExpired)).Add(float64(len(expired)))
	return len(expired), nil
}

// SendReminders emails confirmed bookings whose showtime starts within the
// reminder window. A failed email is logged and retried on the next run.
func (s *BookingService) SendReminders(ctx context.Context) (sent, failed int, err error) {
	now := s.now()
	bookings, err := s.UoW.Bookings.DueReminders(ctx, now.Add(s.Settings.ReminderLeadFrom), now.Add(s.Settings.ReminderLeadTo))
	if err != nil {
		return 0, 0, err
	}
	for i := range bookings {
		b := &bookings[i]
		log := logger.WithJob("reminders").WithField("booking", b.ID)
		if err := s.Mailer.SendShowReminder(ctx, s.bookingEmail(b)); err != nil {
			failed++
			metrics.Reminders.WithLabelValues("failed").Inc()
			log.WithError(err).Warn("failed to send reminder")
			continue
		}
		err := s.UoW.Bookings.Model(ctx).
			Where("id = ? AND reminder_sent_at IS NULL", b.ID).
			Update("reminder_sent_at", now).Error
		if err != nil {
			failed++
			log.WithError(err).Error("failed to record reminder")
			continue
		}
		sent++
		metrics.Reminders.WithLabelValues("sent").Inc()
	}
	return sent, failed, nil
}
