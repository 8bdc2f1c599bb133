package mailer

import (
	"bytes"
	"cinemaverse/utils"
	"context"
	"io"

	"github.com/cockroachdb/errors"
	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer sends booking emails with gomail. Ticket QR codes are embedded
// inline.
type SMTPMailer struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)}
}

func (m *SMTPMailer) SendBookingConfirmation(ctx context.Context, e BookingEmail) error {
	msg, err := m.message(e.To, "Booking confirmed #"+e.BookingCode, "confirmation", e)
	if err != nil {
		return err
	}
	for _, t := range e.Tickets {
		png, err := utils.GenerateQRCode(t.QRToken, utils.TicketQRSize)
		if err != nil {
			return errors.Wrapf(err, "qr for ticket %s", t.TicketNumber)
		}
		msg.Embed(t.TicketNumber+".png", gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := io.Copy(w, bytes.NewReader(png))
			return err
		}))
	}
	return m.send(ctx, msg)
}

func (m *SMTPMailer) SendShowReminder(ctx context.Context, e BookingEmail) error {
	msg, err := m.message(e.To, "Reminder: "+e.MovieTitle+" starts soon", "reminder", e)
	if err != nil {
		return err
	}
	return m.send(ctx, msg)
}

func (m *SMTPMailer) SendBookingCancellation(ctx context.Context, e BookingEmail) error {
	msg, err := m.message(e.To, "Booking cancelled #"+e.BookingCode, "cancellation", e)
	if err != nil {
		return err
	}
	return m.send(ctx, msg)
}

func (m *SMTPMailer) message(to, subject, tmpl string, data any) (*gomail.Message, error) {
	body, err := render(tmpl, data)
	if err != nil {
		return nil, err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	return msg, nil
}

func (m *SMTPMailer) send(ctx context.Context, msg *gomail.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.Wrap(m.dialer.DialAndSend(msg), "send email")
}
