package service

import (
	"cinemaverse/apperror"
	"cinemaverse/constants"
	"cinemaverse/model"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHallNumberUniquePerBranch(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Halls.Create(f.ctx, model.CreateHallInput{BranchId: f.hall.BranchId, HallNumber: f.hall.HallNumber, HallType: model.HallStandard})
	require.ErrorIs(t, err, apperror.ErrInvalidOperation)
	assert.Equal(t, http.StatusConflict, apperror.Status(err))

	other, err := f.svc.Branches.Create(f.ctx, model.CreateBranchInput{Name: "Harbour", Address: "9 Dock St", City: "Springfield"})
	require.NoError(t, err)
	_, err = f.svc.Halls.Create(f.ctx, model.CreateHallInput{BranchId: other.ID, HallNumber: f.hall.HallNumber, HallType: model.HallStandard})
	assert.NoError(t, err)
}

func TestHallTypeChangeRegeneratesSeats(t *testing.T) {
	f := newFixture(t)

	imax := model.HallIMAX
	_, err := f.svc.Halls.Update(f.ctx, f.hall.ID, model.EditHallInput{HallType: &imax})
	require.ErrorIs(t, err, apperror.ErrInvalidOperation, "scheduled halls keep their layout")

	fresh, err := f.svc.Halls.Create(f.ctx, model.CreateHallInput{BranchId: f.hall.BranchId, HallNumber: 7, HallType: model.HallStandard})
	require.NoError(t, err)
	before, err := f.svc.Halls.Seats(f.ctx, fresh.ID)
	require.NoError(t, err)
	assert.Len(t, before, fresh.Capacity)

	updated, err := f.svc.Halls.Update(f.ctx, fresh.ID, model.EditHallInput{HallType: &imax})
	require.NoError(t, err)
	after, err := f.svc.Halls.Seats(f.ctx, fresh.ID)
	require.NoError(t, err)
	assert.Len(t, after, updated.Capacity)
	assert.Equal(t, model.HallIMAX, updated.HallType)
}

func TestSeatToggleShowsInactiveInSeatMap(t *testing.T) {
	f := newFixture(t)
	seat := f.seats[5]

	notifier := &fakeNotifier{}
	f.svc.SetSeatNotifier(notifier)

	statusOf := func() model.SeatState {
		m, err := f.svc.Showtimes.SeatMap(f.ctx, f.show.ID)
		require.NoError(t, err)
		for _, s := range m.Seats {
			if s.SeatId == seat.ID {
				return s.Status
			}
		}
		t.Fatalf("seat %d missing from seat map", seat.ID)
		return ""
	}
	// Warm the cached seat map before toggling.
	require.Equal(t, model.SeatAvailable, statusOf())

	_, err := f.svc.Halls.SetSeatActive(f.ctx, f.hall.ID+1, seat.ID, false)
	require.ErrorIs(t, err, apperror.ErrNotFound)

	updated, err := f.svc.Halls.SetSeatActive(f.ctx, f.hall.ID, seat.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, model.SeatInactive, statusOf())
	assert.Equal(t, []uint{f.show.ID}, notifier.Changed())

	_, err = f.svc.Bookings.Create(f.ctx, f.customer.ID, model.CreateBookingInput{ShowtimeId: f.show.ID, SeatIds: []uint{seat.ID}})
	assert.ErrorIs(t, err, apperror.ErrInvalid)
}

func TestDeleteHallWithShowtimes(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Halls.Delete(f.ctx, f.hall.ID)
	require.ErrorIs(t, err, apperror.ErrInvalidOperation)

	spare, err := f.svc.Halls.Create(f.ctx, model.CreateHallInput{BranchId: f.hall.BranchId, HallNumber: 9, HallType: model.HallStandard})
	require.NoError(t, err)
	require.NoError(t, f.svc.Halls.Delete(f.ctx, spare.ID))
	_, err = f.svc.Halls.Get(f.ctx, spare.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUserAdministration(t *testing.T) {
	f := newFixture(t)
	admin := actorOf(f.admin)

	_, err := f.svc.Users.ChangeRole(f.ctx, admin, f.admin.ID, constants.ROLE_CUSTOMER)
	require.ErrorIs(t, err, apperror.ErrInvalid)

	_, err = f.svc.Users.SetActive(f.ctx, admin, f.admin.ID, false)
	require.ErrorIs(t, err, apperror.ErrInvalid)

	promoted, err := f.svc.Users.ChangeRole(f.ctx, admin, f.customer.ID, constants.ROLE_ADMIN)
	require.NoError(t, err)
	assert.Equal(t, constants.ROLE_ADMIN, promoted.Role)

	disabled, err := f.svc.Users.SetActive(f.ctx, admin, f.other.ID, false)
	require.NoError(t, err)
	assert.False(t, disabled.Active)

	page, err := f.svc.Users.List(f.ctx, model.FilterUser{SearchKey: "sam@"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.TotalCount)
}
