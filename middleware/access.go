package middleware

import (
	"cinemaverse/logger"
	"cinemaverse/metrics"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// AccessLog logs every request and records it in the HTTP metrics. Errors
// are rendered first so the logged status is the one sent.
func AccessLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		latency := time.Since(start)
		status := c.Response().StatusCode()

		route := c.Route().Path
		method := c.Method()
		metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(status), method).Inc()
		metrics.RequestDuration.WithLabelValues(route, method).Observe(latency.Seconds())

		entry := logger.WithRequest(c).
			WithField("status", status).
			WithField("latency", latency.String()).
			WithField("route", route)
		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Error("request")
		case status >= fiber.StatusBadRequest:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
		return nil
	}
}
