// Package mailer sends booking and account emails over SMTP.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

type TicketQR struct {
	TicketNumber string
	SeatLabel    string
	QRToken      string
}

type BookingEmail struct {
	To           string
	CustomerName string
	BookingCode  string
	MovieTitle   string
	BranchName   string
	HallNumber   int
	StartsAt     time.Time
	Seats        []string
	TotalAmount  float64
	Currency     string
	Tickets      []TicketQR
	DetailLink   string
}

func (e BookingEmail) SeatList() string {
	return strings.Join(e.Seats, ", ")
}

func (e BookingEmail) StartsAtText() string {
	return e.StartsAt.UTC().Format("Mon 02 Jan 2006 15:04 MST")
}

func (e BookingEmail) Amount() string {
	return fmt.Sprintf("%.2f %s", e.TotalAmount, e.Currency)
}

// BookingMailer sends the emails of the booking lifecycle.
type BookingMailer interface {
	SendBookingConfirmation(ctx context.Context, e BookingEmail) error
	SendShowReminder(ctx context.Context, e BookingEmail) error
	SendBookingCancellation(ctx context.Context, e BookingEmail) error
}

// AccountMailer sends account recovery emails.
type AccountMailer interface {
	SendPasswordReset(ctx context.Context, to, name, link string) error
}

var templates = template.Must(template.New("mail").Parse(`
{{define "confirmation"}}<h2>Your booking {{.BookingCode}} is confirmed</h2>
<p>Hi {{.CustomerName}},</p>
<p><b>{{.MovieTitle}}</b><br>{{.BranchName}}, hall {{.HallNumber}}<br>{{.StartsAtText}}</p>
<p>Seats: {{.SeatList}}<br>Total: {{.Amount}}</p>
{{range .Tickets}}<p>Ticket {{.TicketNumber}} (seat {{.SeatLabel}})<br><img src="cid:{{.TicketNumber}}.png" alt="QR {{.TicketNumber}}"></p>{{end}}
<p><a href="{{.DetailLink}}">View booking</a></p>{{end}}
{{define "reminder"}}<h2>{{.MovieTitle}} starts soon</h2>
<p>Hi {{.CustomerName}}, your showtime begins at {{.StartsAtText}} in {{.BranchName}}, hall {{.HallNumber}}.</p>
<p>Seats: {{.SeatList}}. Please bring the QR codes from your confirmation email.</p>
<p><a href="{{.DetailLink}}">View booking</a></p>{{end}}
{{define "cancellation"}}<h2>Booking {{.BookingCode}} cancelled</h2>
<p>Hi {{.CustomerName}}, your booking for <b>{{.MovieTitle}}</b> on {{.StartsAtText}} has been cancelled.</p>
<p>Any payment of {{.Amount}} will be refunded.</p>{{end}}
`))

func render(name string, data any) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", errors.Wrapf(err, "render %s email", name)
	}
	return body.String(), nil
}
