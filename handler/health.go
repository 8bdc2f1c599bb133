package handler

import (
	"cinemaverse/database"
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Health reports the database and the optional integrations. It answers 503
// when the database is unreachable.
func (h *Handler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	checks := fiber.Map{"database": "ok", "redis": "disabled", "rabbitmq": "disabled", "cloudinary": "disabled", "smtp": "disabled"}
	if err := database.Ping(ctx, h.db); err != nil {
		status = fiber.StatusServiceUnavailable
		checks["database"] = err.Error()
	}
	if h.redis != nil {
		checks["redis"] = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
		}
	}
	if h.settings.RabbitURL != "" {
		checks["rabbitmq"] = "enabled"
	}
	if h.settings.CloudinaryEnabled() {
		checks["cloudinary"] = "enabled"
	}
	if h.settings.SMTPEnabled() {
		checks["smtp"] = "enabled"
	}
	state := "ok"
	if status != fiber.StatusOK {
		state = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{"status": state, "checks": checks})
}
