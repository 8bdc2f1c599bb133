// Package service holds the use cases of the cinema. Handlers and background
// jobs call into it; it talks to the database only through repository.
package service

import (
	"cinemaverse/cache"
	"cinemaverse/config"
	"cinemaverse/constants"
	"cinemaverse/events"
	"cinemaverse/helper"
	"cinemaverse/logger"
	"cinemaverse/mailer"
	"cinemaverse/metrics"
	"cinemaverse/model"
	"cinemaverse/repository"
	"context"
	"fmt"
	"time"
)

// SeatNotifier is told when the seat map of a showtime changed.
type SeatNotifier interface {
	SeatsChanged(showtimeID uint)
}

type noopNotifier struct{}

func (noopNotifier) SeatsChanged(uint) {}

type Deps struct {
	UoW      *repository.UnitOfWork
	Settings config.Settings
	Tokens   *helper.TokenIssuer
	Mailer   mailer.BookingMailer
	Accounts mailer.AccountMailer
	Events   events.Publisher
	Cache    cache.Cache
	Images   helper.ImageStore
	Gateway  PaymentGateway
	Notifier SeatNotifier
	Clock    func() time.Time
}

type Services struct {
	deps *Deps

	Auth      *AuthService
	Users     *UserService
	Genres    *GenreService
	Movies    *MovieService
	Branches  *BranchService
	Halls     *HallService
	Showtimes *ShowtimeService
	Bookings  *BookingService
	Payments  *PaymentService
	Tickets   *TicketService
	Reviews   *ReviewService
	Dashboard *DashboardService
}

// New fills unset integrations with their local fallbacks and builds every
// service over the same dependencies.
func New(d Deps) *Services {
	if d.Tokens == nil {
		d.Tokens = helper.NewTokenIssuer(d.Settings.JWTSecret, d.Settings.AccessTTL, d.Settings.RefreshTTL)
	}
	if d.Mailer == nil {
		d.Mailer = mailer.LogMailer{}
	}
	if d.Accounts == nil {
		d.Accounts = mailer.LogMailer{}
	}
	if d.Events == nil {
		d.Events = events.NoopPublisher{}
	}
	if d.Cache == nil {
		d.Cache = cache.Noop{}
	}
	if d.Gateway == nil {
		d.Gateway = InternalGateway{}
	}
	if d.Notifier == nil {
		d.Notifier = noopNotifier{}
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	deps := &d
	return &Services{
		deps:      deps,
		Auth:      &AuthService{deps},
		Users:     &UserService{deps},
		Genres:    &GenreService{deps},
		Movies:    &MovieService{deps},
		Branches:  &BranchService{deps},
		Halls:     &HallService{deps},
		Showtimes: &ShowtimeService{deps},
		Bookings:  &BookingService{deps},
		Payments:  &PaymentService{deps},
		Tickets:   &TicketService{deps},
		Reviews:   &ReviewService{deps},
		Dashboard: &DashboardService{deps},
	}
}

// SetSeatNotifier replaces the notifier after construction, for notifiers
// that themselves read seat maps from the services.
func (s *Services) SetSeatNotifier(n SeatNotifier) {
	s.deps.Notifier = n
}

func (s *Services) Tokens() *helper.TokenIssuer {
	return s.deps.Tokens
}

func (d *Deps) now() time.Time {
	return d.Clock().UTC()
}

// seatsChanged drops the cached seat map and pushes the change to listeners.
func (d *Deps) seatsChanged(ctx context.Context, showtimeID uint) {
	d.Cache.Delete(ctx, cache.SeatMapKey(showtimeID))
	d.Notifier.SeatsChanged(showtimeID)
}

func (d *Deps) publish(ctx context.Context, key string, b *model.Booking) {
	if err := d.Events.Publish(ctx, key, bookingEvent(b, d.now())); err != nil {
		metrics.EventPublishFailures.Inc()
		logger.Log.WithError(err).WithField("booking", b.ID).WithField("event", key).Warn("failed to publish booking event")
	}
}

func (d *Deps) bookingLink(id uint) string {
	return fmt.Sprintf("%s/bookings/%d", d.Settings.FrontendURL, id)
}

// bookingEmail expects the booking with User, Seats.Seat, Tickets and
// Showtime.Movie/Hall.Branch loaded.
func (d *Deps) bookingEmail(b *model.Booking) mailer.BookingEmail {
	e := mailer.BookingEmail{
		BookingCode: b.PublicCode,
		Seats:       b.SeatLabels(),
		TotalAmount: b.TotalAmount,
		Currency:    d.Settings.Currency,
		DetailLink:  d.bookingLink(b.ID),
	}
	if b.User != nil {
		e.To = b.User.Email
		e.CustomerName = b.User.FullName()
	}
	if st := b.Showtime; st != nil {
		e.StartsAt = st.StartTime
		if st.Movie != nil {
			e.MovieTitle = st.Movie.Title
		}
		if st.Hall != nil {
			e.HallNumber = st.Hall.HallNumber
			if st.Hall.Branch != nil {
				e.BranchName = st.Hall.Branch.Name
			}
		}
	}
	for _, t := range b.Tickets {
		label := ""
		if t.Seat != nil {
			label = t.Seat.SeatLabel
		}
		e.Tickets = append(e.Tickets, mailer.TicketQR{TicketNumber: t.TicketNumber, SeatLabel: label, QRToken: t.QRToken})
	}
	return e
}

func bookingEvent(b *model.Booking, now time.Time) events.BookingEvent {
	ev := events.BookingEvent{
		BookingId:  b.ID,
		Code:       b.PublicCode,
		UserId:     b.UserId,
		ShowtimeId: b.ShowtimeId,
		Seats:      b.SeatLabels(),
		Amount:     b.TotalAmount,
		OccurredAt: now,
	}
	if st := b.Showtime; st != nil {
		ev.StartsAt = st.StartTime
		if st.Movie != nil {
			ev.MovieTitle = st.Movie.Title
		}
		if st.Hall != nil {
			ev.Hall = fmt.Sprintf("Hall %d", st.Hall.HallNumber)
			if st.Hall.Branch != nil {
				ev.Hall = st.Hall.Branch.Name + " / " + ev.Hall
			}
		}
	}
	return ev
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserId uint
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == constants.ROLE_ADMIN
}

// owns reports whether the actor may act on a resource of userID.
func (a Actor) owns(userID uint) bool {
	return a.IsAdmin() || a.UserId == userID
}
