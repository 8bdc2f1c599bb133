package apperror

import (
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("movie %d not found", 3), http.StatusNotFound},
		{"forbidden", Forbidden("not your booking"), http.StatusForbidden},
		{"unauthorized", Unauthorized("bad token"), http.StatusUnauthorized},
		{"invalid", Invalid("rating must be between 1 and 5"), http.StatusBadRequest},
		{"validation", Validation(map[string][]string{"email": {"required"}}), http.StatusBadRequest},
		{"conflict", Conflict("hall number taken"), http.StatusConflict},
		{"already", InvalidOperation("seat C7 is already booked"), http.StatusConflict},
		{"already uppercase", InvalidOperation("Booking Already cancelled"), http.StatusConflict},
		{"other invalid operation", InvalidOperation("booking has expired"), http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Status(tc.err))
		})
	}
}

func TestStatusSurvivesWrapping(t *testing.T) {
	err := errors.Wrap(NotFound("showtime 9 not found"), "loading showtime")
	assert.Equal(t, http.StatusNotFound, Status(err))
	assert.True(t, IsKnown(err))
}

func TestFields(t *testing.T) {
	err := Validation(map[string][]string{"seatIds": {"min"}})
	assert.Equal(t, []string{"min"}, Fields(err)["seatIds"])
	assert.Nil(t, Fields(Invalid("x")))
}
