package service

import (
	"cinemaverse/apperror"
	"cinemaverse/events"
	"cinemaverse/helper"
	"cinemaverse/logger"
	"cinemaverse/metrics"
	"cinemaverse/model"
	"cinemaverse/repository"
	"context"
	"strings"

	"github.com/google/uuid"
)

type PaymentIntent struct {
	ID           string
	ClientSecret string
	Provider     string
}

// PaymentGateway is the card processor behind booking payments.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount float64, currency, reference string) (PaymentIntent, error)
	Refund(ctx context.Context, intentID string, amount float64) error
}

// InternalGateway issues local intent ids and settles through Confirm or the
// webhook endpoint.
type InternalGateway struct{}

func (InternalGateway) CreateIntent(_ context.Context, _ float64, _, _ string) (PaymentIntent, error) {
	id := "pi_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	return PaymentIntent{
		ID:           id,
		ClientSecret: id + "_secret_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Provider:     "internal",
	}, nil
}

func (InternalGateway) Refund(context.Context, string, float64) error { return nil }

type PaymentService struct{ *Deps }

// CreateIntent opens a payment for a pending booking of the user, or returns
// the one already pending.
func (s *PaymentService) CreateIntent(ctx context.Context, userID, bookingID uint) (*model.BookingPayment, error) {
	now := s.now()
	var payment *model.BookingPayment
	err := s.UoW.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		b, err := tx.Bookings.FindForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.UserId != userID {
			return apperror.Forbidden("booking %d belongs to another user", bookingID)
		}
		if b.Status != model.BookingPending {
			return apperror.InvalidOperation("booking %s is already %s", b.PublicCode, strings.ToLower(string(b.Status)))
		}
		if !b.ExpiresAt.After(now) {
			return apperror.InvalidOperation("booking %s has already expired", b.PublicCode)
		}
		existing, err := tx.Payments.FindByBooking(ctx, b.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			switch existing.Status {
			case model.PaymentPending:
				payment = existing
				return nil
			case model.PaymentSucceeded, model.PaymentRefunded:
				return apperror.InvalidOperation("booking %s is already paid", b.PublicCode)
			}
		}
		intent, err := s.Gateway.CreateIntent(ctx, b.TotalAmount, s.Settings.Currency, b.PublicCode)
		if err != nil {
			return err
		}
		if existing == nil {
			payment = &model.BookingPayment{BookingId: b.ID}
		} else {
			payment = existing
		}
		payment.Amount = b.TotalAmount
		payment.Currency = s.Settings.Currency
		payment.Status = model.PaymentPending
		payment.PaymentIntentId = intent.ID
		payment.ClientSecret = intent.ClientSecret
		payment.Provider = intent.Provider
		payment.FailureReason = nil
		if existing == nil {
			return tx.Payments.Create(ctx, payment)
		}
		return tx.Payments.Save(ctx, payment)
	})
	if err != nil {
		return nil, err
	}
	metrics.PaymentIntents.WithLabelValues(string(model.PaymentPending)).Inc()
	return payment, nil
}

// Confirm settles a payment on behalf of its owner.
func (s *PaymentService) Confirm(ctx context.Context, actor Actor, paymentID uint) (*model.Booking, error) {
	payment, err := s.UoW.Payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	booking, err := s.UoW.Bookings.FindByID(ctx, payment.BookingId)
	if err != nil {
		return nil, err
	}
	if !actor.owns(booking.UserId) {
		return nil, apperror.Forbidden("payment %d belongs to another user", paymentID)
	}
	return s.succeed(ctx, payment.PaymentIntentId)
}

// HandleWebhook applies a provider callback. Repeated callbacks are no-ops.
func (s *PaymentService) HandleWebhook(ctx context.Context, in model.PaymentWebhookInput) (*model.BookingPayment, error) {
	switch in.Status {
	case "succeeded":
		if _, err := s.succeed(ctx, in.PaymentIntentId); err != nil {
			return nil, err
		}
	case "failed":
		reason := "payment failed"
		if in.FailureReason != nil && *in.FailureReason != "" {
			reason = *in.FailureReason
		}
		if err := s.fail(ctx, in.PaymentIntentId, reason); err != nil {
			return nil, err
		}
	default:
		return nil, apperror.Invalid("unknown payment status %s", in.Status)
	}
	return s.UoW.Payments.FindByIntent(ctx, in.PaymentIntentId)
}

// succeed confirms the booking and issues one ticket per seat.
func (s *PaymentService) succeed(ctx context.Context, intentID string) (*model.Booking, error) {
	now := s.now()
	var bookingID uint
	var settled bool
	err := s.UoW.Transaction(ctx, func(tx *repository.UnitOfWork) error {
		p, err := tx.Payments.FindByIntent(ctx, intentID)
		if err != nil {
			return err
		}
		if p, err = tx.Payments.FindForUpdate(ctx, p.ID); err != nil {
			return err
		}
		bookingID = p.BookingId
		switch p.Status {
		case model.PaymentSucceeded:
			return nil
		case model.PaymentPending:
		default:
			return apperror.InvalidOperation("payment %s is already %s", p.PaymentIntentId, strings.ToLower(string(p.Status)))
		}
		b, err := tx.Bookings.FindForUpdate(ctx, p.BookingId)
		if err != nil {
			return err
		}
		if b.Status != model.BookingPending {
			return apperror.InvalidOperation("booking %s is already %s", b.PublicCode, strings.ToLower(string(b.Status)))
		}
		if !b.ExpiresAt.After(now) {
			return apperror.InvalidOperation("booking %s has already expired", b.PublicCode)
		}
		var seats []model.BookingSeat
		if err := tx.DB().WithContext(ctx).Where("booking_id = ?", b.ID).Find(&seats).Error; err != nil {
			return err
		}
		tickets := make([]model.Ticket, 0, len(seats))
		for _, seat := range seats {
			tickets = append(tickets, model.Ticket{
				BookingId:    b.ID,
				SeatId:       seat.SeatId,
				ShowtimeId:   seat.ShowtimeId,
				TicketNumber: helper.TicketNumber(now),
				QRToken:      helper.OpaqueToken(),
				Price:        seat.Price,
				Status:       model.TicketActive,
			})
		}
		if len(tickets) > 0 {
			if err := tx.Tickets.CreateBatch(ctx, tickets); err != nil {
				return err
			}
		}
		if err := tx.Payments.Updates(ctx, p.ID, map[string]any{"status": model.PaymentSucceeded, "paid_at": now, "failure_reason": nil}); err != nil {
			return err
		}
		settled = true
		return tx.Bookings.Updates(ctx, b.ID, map[string]any{"status": model.BookingConfirmed, "confirmed_at": now})
	})
	if err != nil {
		return nil, err
	}
	booking, err := s.UoW.Bookings.FindDetail(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !settled {
		return booking, nil
	}

	metrics.PaymentIntents.WithLabelValues(string(model.PaymentSucceeded)).Inc()
	metrics.Bookings.WithLabelValues(string(model.BookingConfirmed)).Inc()
	s.seatsChanged(ctx, booking.ShowtimeId)
	s.publish(ctx, events.BookingConfirmed, booking)
	if err := s.Mailer.SendBookingConfirmation(ctx, s.bookingEmail(booking)); err != nil {
		logger.Log.WithError(err).WithField("booking", booking.ID).Error("failed to send confirmation email")
	}
	return booking, nil
}

func (s *PaymentService) fail(ctx context.Context, intentID, reason string) error {
	p, err := s.UoW.Payments.FindByIntent(ctx, intentID)
	if err != nil {
		return err
	}
	switch p.Status {
	case model.PaymentFailed:
		return nil
	case model.PaymentPending:
	default:
		return apperror.InvalidOperation("payment %s is already %s", intentID, strings.ToLower(string(p.Status)))
	}
	res := s.UoW.Payments.Model(ctx).
		Where("id = ? AND status = ?", p.ID, model.PaymentPending).
		Updates(map[string]any{"status": model.PaymentFailed, "failure_reason": reason})
	if res.Error != nil {
		return res.Error
	}
	metrics.PaymentIntents.WithLabelValues(string(model.PaymentFailed)).Inc()
	return nil
}

func (s *PaymentService) GetByBooking(ctx context.Context, actor Actor, bookingID uint) (*model.BookingPayment, error) {
	b, err := s.UoW.Bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.owns(b.UserId) {
		return nil, apperror.Forbidden("booking %d belongs to another user", bookingID)
	}
	p, err := s.UoW.Payments.FindByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("booking %d has no payment", bookingID)
	}
	return p, nil
}
