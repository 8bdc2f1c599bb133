package handler

import (
	"cinemaverse/model"
	"cinemaverse/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetDashboard(c *fiber.Ctx) error {
	f, err := input[model.DashboardFilter](c)
	if err != nil {
		return err
	}
	summary, err := h.svc.Dashboard.Summary(c.UserContext(), f)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, summary)
}
