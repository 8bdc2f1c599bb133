package helper

import (
	"cinemaverse/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSeats(t *testing.T) {
	cases := map[model.HallType]int{
		model.HallStandard: 120,
		model.HallVIP:      48,
		model.HallIMAX:     280,
		model.HallFourDX:   80,
	}
	for hallType, capacity := range cases {
		seats, err := GenerateSeats(7, hallType)
		require.NoError(t, err)
		assert.Len(t, seats, capacity, hallType)

		labels := map[string]bool{}
		for _, s := range seats {
			assert.False(t, labels[s.SeatLabel], "duplicate label %s", s.SeatLabel)
			labels[s.SeatLabel] = true
			assert.Equal(t, uint(7), s.HallId)
		}
	}

	seats, _ := GenerateSeats(1, model.HallVIP)
	assert.Equal(t, "A1", seats[0].SeatLabel)
	assert.Equal(t, "F8", seats[len(seats)-1].SeatLabel)

	_, err := GenerateSeats(1, "Drive-in")
	assert.Error(t, err)
}

func TestRowLetter(t *testing.T) {
	assert.Equal(t, "A", RowLetter(0))
	assert.Equal(t, "Z", RowLetter(25))
	assert.Equal(t, "AA", RowLetter(26))
}

func TestUniqueSlug(t *testing.T) {
	taken := map[string]bool{"the-matrix": true, "the-matrix-1": true}
	s, err := UniqueSlug("The Matrix", func(v string) (bool, error) { return taken[v], nil })
	require.NoError(t, err)
	assert.Equal(t, "the-matrix-2", s)
}

func TestTokenIssuer(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour, 24*time.Hour)
	tokens, err := issuer.Issue(model.TokenClaim{UserId: 4, Email: "a@b.c", Role: "Customer"}, time.Now())
	require.NoError(t, err)

	claims, err := issuer.Parse(tokens.AccessToken, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(4), claims.UserId)
	assert.Equal(t, "Customer", claims.Role)

	_, err = issuer.Parse(tokens.AccessToken, TokenTypeRefresh)
	assert.Error(t, err, "access token must not be accepted as refresh token")

	expired, err := issuer.Issue(model.TokenClaim{UserId: 4}, time.Now().Add(-48*time.Hour))
	require.NoError(t, err)
	_, err = issuer.Parse(expired.AccessToken, TokenTypeAccess)
	assert.Error(t, err)

	_, err = NewTokenIssuer("other", time.Hour, time.Hour).Parse(tokens.AccessToken, TokenTypeAccess)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("correct horse", 4)
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestCodes(t *testing.T) {
	assert.Len(t, BookingCode(), 8)
	assert.NotEqual(t, OpaqueToken(), OpaqueToken())
	assert.Regexp(t, `^TK-\d{8}-[0-9A-F]{10}$`, TicketNumber(time.Now()))
}
