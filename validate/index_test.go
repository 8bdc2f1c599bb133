package validate

import (
	"cinemaverse/apperror"
	"cinemaverse/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructUsesJSONNames(t *testing.T) {
	err := Struct(&model.RegisterInput{Email: "not-an-email", Password: "short"})
	require.ErrorIs(t, err, apperror.ErrInvalid)

	fields := apperror.Fields(err)
	assert.Equal(t, []string{"is required"}, fields["firstName"])
	assert.Equal(t, []string{"must be a valid email address"}, fields["email"])
	assert.Equal(t, []string{"must be at least 8 characters"}, fields["password"])
}

func TestStructNestedAndEmbedded(t *testing.T) {
	limit := -1
	err := Struct(&model.FilterBooking{Pagination: model.Pagination{Limit: &limit}, Status: "Lost"})
	require.Error(t, err)
	fields := apperror.Fields(err)
	assert.Contains(t, fields, "limit")
	assert.Equal(t, []string{"must be one of: Pending, Confirmed, Cancelled, Expired"}, fields["status"])

	err = Struct(&model.CreateBookingInput{ShowtimeId: 1, SeatIds: []uint{3, 0}})
	require.Error(t, err)
	assert.Contains(t, apperror.Fields(err), "seatIds[1]")

	assert.NoError(t, Struct(&model.CreateBookingInput{ShowtimeId: 1, SeatIds: []uint{3}}))
}
