package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/cockroachdb/errors"
	"github.com/jordan-wright/email"
)

// EmailAccountMailer sends account emails with jordan-wright/email.
type EmailAccountMailer struct {
	cfg SMTPConfig
}

func NewAccountMailer(cfg SMTPConfig) *EmailAccountMailer {
	return &EmailAccountMailer{cfg: cfg}
}

func (m *EmailAccountMailer) SendPasswordReset(ctx context.Context, to, name, link string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = []string{to}
	e.Subject = "Reset your CinemaVerse password"
	e.Text = []byte(fmt.Sprintf("Hi %s,\n\nUse this link to choose a new password. It expires in one hour.\n%s\n", name, link))
	e.HTML = []byte(fmt.Sprintf(`<p>Hi %s,</p><p><a href="%s">Choose a new password</a>. The link expires in one hour.</p>`, name, link))

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	return errors.Wrap(e.Send(addr, auth), "send password reset email")
}
