package middleware

import (
	"cinemaverse/constants"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookSecret(t *testing.T) {
	cases := []struct {
		name   string
		secret string
		header string
		want   int
	}{
		{"matching header", "whsec", "whsec", http.StatusNoContent},
		{"missing header", "whsec", "", http.StatusUnauthorized},
		{"wrong header", "whsec", "whsec2", http.StatusUnauthorized},
		{"check disabled", "", "", http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(false)})
			app.Post("/hook", WebhookSecret(tc.secret), func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusNoContent)
			})
			req := httptest.NewRequest(http.MethodPost, "/hook", nil)
			if tc.header != "" {
				req.Header.Set(constants.WEBHOOK_SECRET_HEADER, tc.header)
			}
			res, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.StatusCode)
		})
	}
}
