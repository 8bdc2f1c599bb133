package handler

import (
	"cinemaverse/model"
	"cinemaverse/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetShowtimes(c *fiber.Ctx) error {
	f, err := input[model.FilterShowtime](c)
	if err != nil {
		return err
	}
	res, err := h.svc.Showtimes.List(c.UserContext(), f)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *Handler) GetShowtime(c *fiber.Ctx) error {
	show, err := h.svc.Showtimes.Get(c.UserContext(), id(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, show)
}

func (h *Handler) GetShowtimeSeats(c *fiber.Ctx) error {
	m, err := h.svc.Showtimes.SeatMap(c.UserContext(), id(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, m)
}

func (h *Handler) CreateShowtime(c *fiber.Ctx) error {
	in, err := input[model.CreateShowtimeInput](c)
	if err != nil {
		return err
	}
	show, err := h.svc.Showtimes.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, show)
}

func (h *Handler) EditShowtime(c *fiber.Ctx) error {
	in, err := input[model.EditShowtimeInput](c)
	if err != nil {
		return err
	}
	show, err := h.svc.Showtimes.Update(c.UserContext(), id(c), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, show)
}

func (h *Handler) CancelShowtime(c *fiber.Ctx) error {
	show, err := h.svc.Showtimes.Cancel(c.UserContext(), id(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, show)
}

func (h *Handler) DeleteShowtime(c *fiber.Ctx) error {
	if err := h.svc.Showtimes.Delete(c.UserContext(), id(c)); err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}
