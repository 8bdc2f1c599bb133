package helper

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookingCode returns an 8 character upper case public booking reference.
func BookingCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// TicketNumber is unique per ticket and sortable by issue date.
func TicketNumber(now time.Time) string {
	return "TK-" + now.UTC().Format("20060102") + "-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

// OpaqueToken is used for QR check-in and password reset links.
func OpaqueToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "") + strings.ReplaceAll(uuid.NewString(), "-", "")
}
