package middleware

import (
	"cinemaverse/apperror"
	"cinemaverse/constants"
	"cinemaverse/logger"
	"cinemaverse/utils"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every error returned by a handler as the error
// envelope. Messages of errors without an apperror kind are only shown in
// development.
func ErrorHandler(dev bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return utils.ErrorResponse(c, fe.Code, fe.Message, nil)
		}

		status := apperror.Status(err)
		message := apperror.Message(err)
		if status >= fiber.StatusInternalServerError {
			if apperror.IsKnown(err) {
				logger.WithRequest(c).WithError(err).Warn("request rejected")
			} else {
				logger.WithRequest(c).WithError(err).Errorf("request failed: %+v", err)
				if !dev {
					message = constants.ERROR_INTERNAL_ERROR
				}
			}
		}
		return utils.ErrorResponse(c, status, message, apperror.Fields(err))
	}
}
