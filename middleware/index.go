package middleware

import (
	"cinemaverse/apperror"
	"cinemaverse/constants"
	"cinemaverse/helper"
	"cinemaverse/model"
	"crypto/subtle"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Protected accepts the access token from the access_token cookie or an
// Authorization: Bearer header and stores its claims in c.Locals("user").
func Protected(tokens *helper.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearer(c)
		if token == "" {
			return apperror.Unauthorized(constants.MISSING_TOKEN)
		}
		claims, err := tokens.Parse(token, helper.TokenTypeAccess)
		if err != nil {
			return apperror.Unauthorized(constants.INVALID_TOKEN)
		}
		c.Locals(constants.LOCALS_USER, model.TokenClaim{UserId: claims.UserId, Email: claims.Email, Role: claims.Role})
		return c.Next()
	}
}

// WebhookSecret rejects requests whose X-Webhook-Secret header does not
// match secret. An empty secret disables the check.
func WebhookSecret(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Next()
		}
		got := c.Get(constants.WEBHOOK_SECRET_HEADER)
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			return apperror.Unauthorized(constants.INVALID_WEBHOOK_SECRET)
		}
		return c.Next()
	}
}

func bearer(c *fiber.Ctx) string {
	if token := c.Cookies(constants.ACCESS_TOKEN_COOKIE); token != "" {
		return token
	}
	auth := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

// RequireRole must run after Protected.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claim, ok := Claims(c)
		if !ok {
			return apperror.Unauthorized(constants.MISSING_TOKEN)
		}
		if !slices.Contains(roles, claim.Role) {
			return apperror.Forbidden(constants.NOT_ADMIN)
		}
		return c.Next()
	}
}

func AdminOnly() fiber.Handler {
	return RequireRole(constants.ROLE_ADMIN)
}

// Claims returns the claims stored by Protected.
func Claims(c *fiber.Ctx) (model.TokenClaim, bool) {
	claim, ok := c.Locals(constants.LOCALS_USER).(model.TokenClaim)
	return claim, ok
}
