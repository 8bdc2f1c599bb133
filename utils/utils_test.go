package utils

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomDateJSON(t *testing.T) {
	var d CustomDate
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-14"`), &d))
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.March, d.Month())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-14"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`"14/03/2025"`), &d))
}

func TestCustomDateScan(t *testing.T) {
	var d CustomDate
	require.NoError(t, d.Scan("2024-12-01 00:00:00+00:00"))
	assert.Equal(t, "2024-12-01", d.String())
	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
}

func TestDayRange(t *testing.T) {
	start, end, err := DayRange("2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
	_, _, err = DayRange("nope")
	assert.Error(t, err)
}

func TestGenerateQRCode(t *testing.T) {
	png, err := GenerateQRCode("token-123", TicketQRSize)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestUniqueIDs(t *testing.T) {
	assert.True(t, UniqueIDs([]uint{1, 2, 3}))
	assert.False(t, UniqueIDs([]uint{1, 2, 1}))
}
