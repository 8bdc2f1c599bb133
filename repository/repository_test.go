package repository

import (
	"cinemaverse/apperror"
	"cinemaverse/model"
	"cinemaverse/testutil"
	"cinemaverse/utils"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) (*UnitOfWork, *model.MovieShowTime) {
	uow := NewUnitOfWork(testutil.NewDB(t))
	ctx := context.Background()

	movie := &model.Movie{Title: "Arrival", Slug: "arrival", Duration: 116, AgeRating: "PG13",
		ReleaseDate: utils.NewDate(time.Now()), Status: model.MovieNowShowing}
	require.NoError(t, uow.Movies.Create(ctx, movie))
	branch := &model.Branch{Name: "Downtown", Slug: "downtown", Address: "1 Main St", City: "Springfield", Active: true}
	require.NoError(t, uow.Branches.Create(ctx, branch))
	hall := &model.Hall{BranchId: branch.ID, HallNumber: 1, HallType: model.HallVIP, Capacity: 2, Status: model.HallAvailable}
	require.NoError(t, uow.Halls.Create(ctx, hall))
	require.NoError(t, uow.Seats.CreateBatch(ctx, []model.Seat{
		{HallId: hall.ID, SeatLabel: "A1", Row: "A", Number: 1, Active: true},
		{HallId: hall.ID, SeatLabel: "A2", Row: "A", Number: 2, Active: true},
	}))
	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Minute)
	show := &model.MovieShowTime{MovieId: movie.ID, HallId: hall.ID, StartTime: start,
		EndTime: start.Add(131 * time.Minute), Price: 12, Status: model.ShowtimeScheduled}
	require.NoError(t, uow.Showtimes.Create(ctx, show))
	return uow, show
}

func TestFindByIDNotFound(t *testing.T) {
	uow, _ := setupTestRepo(t)
	_, err := uow.Movies.FindByID(context.Background(), 999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestShowtimeOverlap(t *testing.T) {
	uow, show := setupTestRepo(t)
	ctx := context.Background()

	overlap, err := uow.Showtimes.HasOverlap(ctx, show.HallId, show.StartTime.Add(time.Hour), show.EndTime.Add(time.Hour), 0)
	require.NoError(t, err)
	assert.True(t, overlap)

	overlap, err = uow.Showtimes.HasOverlap(ctx, show.HallId, show.EndTime, show.EndTime.Add(time.Hour), 0)
	require.NoError(t, err)
	assert.False(t, overlap, "back to back showtimes do not overlap")

	overlap, err = uow.Showtimes.HasOverlap(ctx, show.HallId, show.StartTime, show.EndTime, show.ID)
	require.NoError(t, err)
	assert.False(t, overlap, "a showtime does not overlap itself")
}

func TestSeatStates(t *testing.T) {
	uow, show := setupTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()
	seats, err := uow.Seats.ListByHall(ctx, show.HallId)
	require.NoError(t, err)
	require.Len(t, seats, 2)

	user := &model.User{FirstName: "Ada", Email: "ada@example.com", Password: "x", Role: "Customer", Active: true}
	require.NoError(t, uow.Users.Create(ctx, user))

	held := &model.Booking{UserId: user.ID, ShowtimeId: show.ID, Status: model.BookingPending, PublicCode: "HELD0001", ExpiresAt: now.Add(10 * time.Minute)}
	stale := &model.Booking{UserId: user.ID, ShowtimeId: show.ID, Status: model.BookingPending, PublicCode: "STALE001", ExpiresAt: now.Add(-time.Minute)}
	require.NoError(t, uow.Bookings.Create(ctx, held))
	require.NoError(t, uow.Bookings.Create(ctx, stale))
	require.NoError(t, uow.Bookings.CreateSeats(ctx, []model.BookingSeat{
		{BookingId: held.ID, SeatId: seats[0].ID, ShowtimeId: show.ID, Price: 12},
		{BookingId: stale.ID, SeatId: seats[1].ID, ShowtimeId: show.ID, Price: 12},
	}))

	states, err := uow.Bookings.SeatStates(ctx, show.ID, now)
	require.NoError(t, err)
	assert.Equal(t, model.SeatReserved, states[seats[0].ID])
	_, taken := states[seats[1].ID]
	assert.False(t, taken)

	expired, err := uow.Bookings.ExpiredPending(ctx, now)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, stale.ID, expired[0].ID)
}

func TestTransactionRollback(t *testing.T) {
	uow, _ := setupTestRepo(t)
	ctx := context.Background()

	err := uow.Transaction(ctx, func(tx *UnitOfWork) error {
		if err := tx.Genres.Create(ctx, &model.Genre{Name: "Noir"}); err != nil {
			return err
		}
		return apperror.Invalid("stop")
	})
	require.Error(t, err)

	exists, err := uow.Genres.Exists(ctx, "name = ?", "Noir")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMovieListPaging(t *testing.T) {
	uow, _ := setupTestRepo(t)
	ctx := context.Background()
	for _, title := range []string{"Blade Runner", "Blue Velvet", "Heat"} {
		require.NoError(t, uow.Movies.Create(ctx, &model.Movie{Title: title, Slug: title, Duration: 100,
			AgeRating: "R", ReleaseDate: utils.NewDate(time.Now()), Status: model.MovieNowShowing}))
	}
	rows, total, err := uow.Movies.List(ctx, model.FilterMovieInput{
		Pagination: model.Pagination{Limit: utils.Ptr(1), Page: utils.Ptr(2)},
		Search:     "bl",
		SortBy:     "title",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Blue Velvet", rows[0].Title)
}

func TestCreateDuplicateIsConflict(t *testing.T) {
	uow, _ := setupTestRepo(t)
	ctx := context.Background()

	err := uow.Movies.Create(ctx, &model.Movie{Title: "Arrival", Slug: "arrival", Duration: 116, AgeRating: "PG13",
		ReleaseDate: utils.NewDate(time.Now()), Status: model.MovieNowShowing})
	require.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, "movie already exists", apperror.Message(err))
}
