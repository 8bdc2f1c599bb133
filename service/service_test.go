package service

import (
	"cinemaverse/cache"
	"cinemaverse/config"
	"cinemaverse/constants"
	"cinemaverse/events"
	"cinemaverse/mailer"
	"cinemaverse/model"
	"cinemaverse/repository"
	"cinemaverse/testutil"
	"cinemaverse/utils"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *testClock) Advance(d time.Duration) {
	c.Set(c.Now().Add(d))
}

type fakeMailer struct {
	mu            sync.Mutex
	confirmations []mailer.BookingEmail
	reminders     []mailer.BookingEmail
	cancellations []mailer.BookingEmail
	resets        []string
	failReminders bool
}

func (m *fakeMailer) SendBookingConfirmation(_ context.Context, e mailer.BookingEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirmations = append(m.confirmations, e)
	return nil
}

func (m *fakeMailer) SendShowReminder(_ context.Context, e mailer.BookingEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReminders {
		return errors.New("smtp unavailable")
	}
	m.reminders = append(m.reminders, e)
	return nil
}

func (m *fakeMailer) SendBookingCancellation(_ context.Context, e mailer.BookingEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancellations = append(m.cancellations, e)
	return nil
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, to, _, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets = append(m.resets, link)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	keys   []string
	events []events.BookingEvent
}

func (p *fakePublisher) Publish(_ context.Context, key string, e events.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	p.events = append(p.events, e)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

// Last returns the most recent event published under key.
func (p *fakePublisher) Last(key string) (events.BookingEvent, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.keys) - 1; i >= 0; i-- {
		if p.keys[i] == key {
			return p.events[i], true
		}
	}
	return events.BookingEvent{}, false
}

type fakeNotifier struct {
	mu      sync.Mutex
	changed []uint
}

func (n *fakeNotifier) SeatsChanged(showtimeID uint) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed = append(n.changed, showtimeID)
}

func (n *fakeNotifier) Changed() []uint {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]uint(nil), n.changed...)
}

type fixture struct {
	ctx      context.Context
	db       *gorm.DB
	svc      *Services
	uow      *repository.UnitOfWork
	clock    *testClock
	mail     *fakeMailer
	events   *fakePublisher
	admin    *model.User
	customer *model.User
	other    *model.User
	movie    *model.Movie
	hall     *model.Hall
	show     *model.MovieShowTime
	seats    []model.Seat
}

func testSettings() config.Settings {
	return config.Settings{
		Env:                 "test",
		JWTSecret:           "test-secret",
		AccessTTL:           time.Hour,
		RefreshTTL:          24 * time.Hour,
		BcryptCost:          4,
		BookingHoldTTL:      15 * time.Minute,
		MaxSeatsPerBooking:  10,
		ReminderLeadFrom:    time.Hour,
		ReminderLeadTo:      75 * time.Minute,
		CancellationCutoff:  time.Hour,
		ShowtimeCleanupTime: 15 * time.Minute,
		CacheTTL:            5 * time.Minute,
		FrontendURL:         "http://cinema.test",
		Currency:            "USD",
	}
}

// newFixture builds the services over a fresh database holding one movie,
// one VIP hall and a showtime starting in 24 hours.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{
		ctx:    context.Background(),
		db:     db,
		uow:    repository.NewUnitOfWork(db),
		clock:  &testClock{now: time.Now().UTC().Truncate(time.Second)},
		mail:   &fakeMailer{},
		events: &fakePublisher{},
	}
	f.svc = New(Deps{
		UoW:      f.uow,
		Settings: testSettings(),
		Mailer:   f.mail,
		Accounts: f.mail,
		Events:   f.events,
		Cache:    cache.NewMemory(),
		Clock:    f.clock.Now,
	})

	f.admin = f.user(t, "admin@cinema.test", constants.ROLE_ADMIN)
	f.customer = f.user(t, "jane@example.com", constants.ROLE_CUSTOMER)
	f.other = f.user(t, "sam@example.com", constants.ROLE_CUSTOMER)

	f.movie = &model.Movie{Title: "Dune: Part Two", Slug: "dune-part-two", Duration: 120, AgeRating: "PG13",
		ReleaseDate: utils.NewDate(f.clock.Now()), Status: model.MovieNowShowing}
	require.NoError(t, f.uow.Movies.Create(f.ctx, f.movie))

	branch := &model.Branch{Name: "Riverside", Slug: "riverside", Address: "5 Quay Rd", City: "Springfield", Active: true}
	require.NoError(t, f.uow.Branches.Create(f.ctx, branch))

	var err error
	f.hall, err = f.svc.Halls.Create(f.ctx, model.CreateHallInput{BranchId: branch.ID, HallNumber: 1, HallType: model.HallVIP})
	require.NoError(t, err)
	f.seats, err = f.uow.Seats.ListByHall(f.ctx, f.hall.ID)
	require.NoError(t, err)
	require.Len(t, f.seats, 48)

	f.show, err = f.svc.Showtimes.Create(f.ctx, model.CreateShowtimeInput{
		MovieId:   f.movie.ID,
		HallId:    f.hall.ID,
		StartTime: f.clock.Now().Add(24 * time.Hour),
		Price:     10,
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) user(t *testing.T, email, role string) *model.User {
	t.Helper()
	u := &model.User{FirstName: "Test", LastName: role, Email: email, Password: "x", Role: role, Active: true}
	require.NoError(t, f.uow.Users.Create(context.Background(), u))
	return u
}

func (f *fixture) seatIDs(idx ...int) []uint {
	ids := make([]uint, len(idx))
	for i, n := range idx {
		ids[i] = f.seats[n].ID
	}
	return ids
}

func (f *fixture) book(t *testing.T, user *model.User, idx ...int) *model.Booking {
	t.Helper()
	b, err := f.svc.Bookings.Create(f.ctx, user.ID, model.CreateBookingInput{ShowtimeId: f.show.ID, SeatIds: f.seatIDs(idx...)})
	require.NoError(t, err)
	return b
}

// pay books the seats and settles the payment through the webhook.
func (f *fixture) pay(t *testing.T, user *model.User, idx ...int) *model.Booking {
	t.Helper()
	b := f.book(t, user, idx...)
	intent, err := f.svc.Payments.CreateIntent(f.ctx, user.ID, b.ID)
	require.NoError(t, err)
	_, err = f.svc.Payments.HandleWebhook(f.ctx, model.PaymentWebhookInput{PaymentIntentId: intent.PaymentIntentId, Status: "succeeded"})
	require.NoError(t, err)
	confirmed, err := f.uow.Bookings.FindDetail(f.ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, model.BookingConfirmed, confirmed.Status)
	return confirmed
}

// insertBefore runs insert inside the next INSERT into table, right before
// the row itself is written, as a concurrent writer would.
func (f *fixture) insertBefore(t *testing.T, table string, insert func(tx *gorm.DB) error) {
	t.Helper()
	fired := false
	err := f.db.Callback().Create().Before("gorm:create").Register("test:insert_before_"+table, func(tx *gorm.DB) {
		if fired || tx.Statement.Schema == nil || tx.Statement.Schema.Table != table {
			return
		}
		fired = true
		if err := insert(tx.Session(&gorm.Session{NewDB: true})); err != nil {
			_ = tx.AddError(err)
		}
	})
	require.NoError(t, err)
}

func actorOf(u *model.User) Actor {
	return Actor{UserId: u.ID, Role: u.Role}
}
