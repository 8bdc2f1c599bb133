package mailer

import (
	"cinemaverse/logger"
	"context"
)

// LogMailer writes emails to the log. It is used when SMTP is not configured.
type LogMailer struct{}

func (LogMailer) SendBookingConfirmation(_ context.Context, e BookingEmail) error {
	logBooking("confirmation", e)
	return nil
}

func (LogMailer) SendShowReminder(_ context.Context, e BookingEmail) error {
	logBooking("reminder", e)
	return nil
}

func (LogMailer) SendBookingCancellation(_ context.Context, e BookingEmail) error {
	logBooking("cancellation", e)
	return nil
}

func (LogMailer) SendPasswordReset(_ context.Context, to, _, link string) error {
	logger.Log.WithField("to", to).WithField("link", link).Info("password reset email (smtp disabled)")
	return nil
}

func logBooking(kind string, e BookingEmail) {
	logger.Log.WithField("to", e.To).
		WithField("booking", e.BookingCode).
		WithField("kind", kind).
		Info("booking email (smtp disabled)")
}
