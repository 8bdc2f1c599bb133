package service

import (
	"cinemaverse/apperror"
	"cinemaverse/events"
	"cinemaverse/model"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingHoldsSeats(t *testing.T) {
	f := newFixture(t)

	b := f.book(t, f.customer, 0, 1)
	assert.Equal(t, model.BookingPending, b.Status)
	assert.Equal(t, 20.0, b.TotalAmount)
	assert.Len(t, b.PublicCode, 8)
	assert.WithinDuration(t, f.clock.Now().Add(15*time.Minute), b.ExpiresAt, time.Second)
	assert.ElementsMatch(t, []string{"A1", "A2"}, b.SeatLabels())

	m, err := f.svc.Showtimes.SeatMap(f.ctx, f.show.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SeatReserved, m.Seats[0].Status)
	assert.Equal(t, model.SeatReserved, m.Seats[1].Status)
	assert.Equal(t, model.SeatAvailable, m.Seats[2].Status)
}

func TestCreateBookingRejectsHeldSeat(t *testing.T) {
	f := newFixture(t)
	f.book(t, f.customer, 3)

	_, err := f.svc.Bookings.Create(f.ctx, f.other.ID, model.CreateBookingInput{ShowtimeId: f.show.ID, SeatIds: f.seatIDs(2, 3)})
	require.ErrorIs(t, err, apperror.ErrInvalidOperation)
	assert.Equal(t, http.StatusConflict, apperror.Status(err))
	assert.Contains(t, err.Error(), "A4 is already booked")
}

func TestCreateBookingConcurrentSameSeat(t *testing.T) {
	f := newFixture(t)

	const attempts = 6
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Bookings.Create(f.ctx, f.customer.ID, model.CreateBookingInput{ShowtimeId: f.show.ID, SeatIds: f.seatIDs(5)})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, apperror.ErrInvalidOperation)
	}
	assert.Equal(t, 1, succeeded)
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Bookings.Create(f.ctx, f.customer.ID, model.CreateBookingInput{ShowtimeId: f.show.ID, SeatIds: f.seatIDs(0, 0)})
	assert.ErrorIs(t, err, apperror.ErrInvalid)

	_, err = f.svc.Bookings.Create(f.ctx, f.customer.ID, model.CreateBookingInput{ShowtimeId: f.show.ID, SeatIds: f.seatIDs(0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)})
	assert.ErrorIs(t, err, apperror.ErrInvalid)

	_, err = f.svc.Bookings.Create(f.ctx, f.customer.ID, model.CreateBookingInput{ShowtimeId: f.show.ID, SeatIds: []uint{99999}})
	assert.ErrorIs(t, err, apperror.ErrInvalid)

	_, err = f.svc.Bookings.Create(f.ctx, f.customer.ID, model.CreateBookingInput{ShowtimeId: 424242, SeatIds: f.seatIDs(0)})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.svc.Halls.SetSeatActive(f.ctx, f.hall.ID, f.seats[9].ID, false)
	require.NoError(t, err)
	_, err = f.svc.Bookings.Create(f.ctx, f.customer.ID, model.CreateBookingInput{ShowtimeId: f.show.ID, SeatIds: f.seatIDs(9)})
	assert.ErrorIs(t, err, apperror.ErrInvalid)
}

func TestCreateBookingAfterStart(t *testing.T) {
	f := newFixture(t)
	f.clock.Advance(25 * time.Hour)

	_, err := f.svc.Bookings.Create(f.ctx, f.customer.ID, model.CreateBookingInput{ShowtimeId: f.show.ID, SeatIds: f.seatIDs(0)})
	assert.ErrorIs(t, err, apperror.ErrInvalid)
}

func TestExpirePendingFreesSeats(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, f.customer, 0, 1)
	_, err := f.svc.Payments.CreateIntent(f.ctx, f.customer.ID, b.ID)
	require.NoError(t, err)

	n, err := f.svc.Bookings.ExpirePending(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "hold still running")

	f.clock.Advance(16 * time.Minute)
	n, err = f.svc.Bookings.ExpirePending(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	expired, err := f.uow.Bookings.FindDetail(f.ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingExpired, expired.Status)
	require.NotNil(t, expired.Payment)
	assert.Equal(t, model.PaymentFailed, expired.Payment.Status)
	ev, ok := f.events.Last(events.BookingExpired)
	require.True(t, ok)
	assert.Equal(t, b.ID, ev.BookingId)
	assert.Equal(t, f.movie.Title, ev.MovieTitle)
	assert.Contains(t, ev.Hall, "Hall 1")
	assert.ElementsMatch(t, []string{f.seats[0].SeatLabel, f.seats[1].SeatLabel}, ev.Seats)
	assert.WithinDuration(t, f.show.StartTime, ev.StartsAt, time.Second)

	n, err = f.svc.Bookings.ExpirePending(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "already expired bookings are not swept twice")

	again := f.book(t, f.other, 0)
	assert.Equal(t, model.BookingPending, again.Status)
}

func TestExpireSkipsBookingsConfirmedMeanwhile(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, f.customer, 2)
	f.clock.Advance(16 * time.Minute)

	require.NoError(t, f.uow.Bookings.Updates(f.ctx, b.ID, map[string]any{"status": model.BookingConfirmed}))
	n, err := f.svc.Bookings.ExpirePending(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NotContains(t, f.events.Keys(), events.BookingExpired)

	ok, err := f.uow.Bookings.MarkExpired(f.ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, ok, "only pending bookings expire")
}

func TestCancelPendingBooking(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, f.customer, 0)

	_, err := f.svc.Bookings.Cancel(f.ctx, actorOf(f.other), b.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	cancelled, err := f.svc.Bookings.Cancel(f.ctx, actorOf(f.customer), b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.Empty(t, f.mail.cancellations, "pending bookings are cancelled silently")

	_, err = f.svc.Bookings.Cancel(f.ctx, actorOf(f.customer), b.ID)
	require.ErrorIs(t, err, apperror.ErrInvalidOperation)
	assert.Equal(t, http.StatusConflict, apperror.Status(err))
}

func TestCancelConfirmedBookingRefunds(t *testing.T) {
	f := newFixture(t)
	b := f.pay(t, f.customer, 0, 1)

	cancelled, err := f.svc.Bookings.Cancel(f.ctx, actorOf(f.customer), b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingCancelled, cancelled.Status)
	require.NotNil(t, cancelled.Payment)
	assert.Equal(t, model.PaymentRefunded, cancelled.Payment.Status)
	for _, ticket := range cancelled.Tickets {
		assert.Equal(t, model.TicketCancelled, ticket.Status)
	}
	assert.Len(t, f.mail.cancellations, 1)
	assert.Contains(t, f.events.Keys(), events.BookingCancelled)

	m, err := f.svc.Showtimes.SeatMap(f.ctx, f.show.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SeatAvailable, m.Seats[0].Status)
}

func TestCancelConfirmedBookingInsideCutoff(t *testing.T) {
	f := newFixture(t)
	b := f.pay(t, f.customer, 0)
	f.clock.Set(f.show.StartTime.Add(-30 * time.Minute))

	_, err := f.svc.Bookings.Cancel(f.ctx, actorOf(f.customer), b.ID)
	assert.ErrorIs(t, err, apperror.ErrInvalid)
}

func TestSendReminders(t *testing.T) {
	f := newFixture(t)
	f.pay(t, f.customer, 0)
	f.book(t, f.other, 1)

	sent, failed, err := f.svc.Bookings.SendReminders(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, sent+failed, "showtime is a day away")

	f.clock.Set(f.show.StartTime.Add(-70 * time.Minute))
	f.mail.failReminders = true
	sent, failed, err = f.svc.Bookings.SendReminders(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Equal(t, 1, failed)

	f.mail.failReminders = false
	sent, _, err = f.svc.Bookings.SendReminders(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent, "a failed reminder is retried")
	require.Len(t, f.mail.reminders, 1)
	assert.Equal(t, f.customer.Email, f.mail.reminders[0].To)

	sent, _, err = f.svc.Bookings.SendReminders(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestListMineBookings(t *testing.T) {
	f := newFixture(t)
	f.book(t, f.customer, 0)
	f.book(t, f.customer, 1)
	f.book(t, f.other, 2)

	res, err := f.svc.Bookings.ListMine(f.ctx, f.customer.ID, model.FilterBooking{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.TotalCount)

	res, err = f.svc.Bookings.List(f.ctx, model.FilterBooking{ShowtimeId: f.show.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.TotalCount)
}
