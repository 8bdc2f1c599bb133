package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOOKING_HOLD_TTL", "")
	t.Setenv("REMINDER_INTERVAL", "")
	t.Setenv("DB_PORT", "")

	s := Load()
	assert.Equal(t, 15*time.Minute, s.BookingHoldTTL)
	assert.Equal(t, 15*time.Minute, s.ReminderInterval)
	assert.Equal(t, time.Minute, s.ExpiryInterval)
	assert.Equal(t, 5432, s.DBPort)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BOOKING_HOLD_TTL", "5m")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("FRONTEND_URL", "https://cinema.example.com/")
	t.Setenv("PAYMENT_WEBHOOK_SECRET", "whsec_test")

	s := Load()
	assert.Equal(t, 5*time.Minute, s.BookingHoldTTL)
	assert.Equal(t, 6543, s.DBPort)
	assert.Equal(t, "https://cinema.example.com", s.FrontendURL)
	assert.Equal(t, "whsec_test", s.PaymentWebhookSecret)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("BOOKING_HOLD_TTL", "soon")
	t.Setenv("BCRYPT_COST", "abc")

	s := Load()
	assert.Equal(t, 15*time.Minute, s.BookingHoldTTL)
	assert.Equal(t, 10, s.BcryptCost)
}
