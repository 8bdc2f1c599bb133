package jobs

import (
	"cinemaverse/config"
	"cinemaverse/model"
	"cinemaverse/repository"
	"cinemaverse/service"
	"cinemaverse/testutil"
	"cinemaverse/utils"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() config.Settings {
	return config.Settings{
		JWTSecret:          "test-secret",
		BookingHoldTTL:     15 * time.Minute,
		MaxSeatsPerBooking: 10,
		ExpiryInterval:     time.Minute,
		ReminderInterval:   15 * time.Minute,
		ReminderLeadFrom:   time.Hour,
		ReminderLeadTo:     75 * time.Minute,
		ShowtimeSweepCron:  "*/5 * * * *",
	}
}

func TestNewRejectsBadCron(t *testing.T) {
	settings := testSettings()
	settings.ShowtimeSweepCron = "every five minutes"
	_, err := New(service.New(service.Deps{Settings: settings}), settings)
	assert.Error(t, err)
}

func TestReleaseMovies(t *testing.T) {
	uow := repository.NewUnitOfWork(testutil.NewDB(t))
	ctx := context.Background()
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	movie := &model.Movie{Title: "Past Lives", Slug: "past-lives", Duration: 105, AgeRating: "PG13",
		ReleaseDate: utils.NewDate(yesterday), Status: model.MovieComingSoon}
	require.NoError(t, uow.Movies.Create(ctx, movie))

	settings := testSettings()
	r, err := New(service.New(service.Deps{UoW: uow, Settings: settings}), settings)
	require.NoError(t, err)

	r.ReleaseMovies()
	r.ExpireBookings()
	r.SendReminders()
	r.CompleteShowtimes()

	got, err := uow.Movies.FindByID(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MovieNowShowing, got.Status)
}

func TestStartStop(t *testing.T) {
	settings := testSettings()
	r, err := New(service.New(service.Deps{UoW: repository.NewUnitOfWork(testutil.NewDB(t)), Settings: settings}), settings)
	require.NoError(t, err)
	r.Start()
	assert.NoError(t, r.Stop())
}
