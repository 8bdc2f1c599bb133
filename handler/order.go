package handler

import (
	"cinemaverse/model"
	"cinemaverse/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreateBooking(c *fiber.Ctx) error {
	in, err := input[model.CreateBookingInput](c)
	if err != nil {
		return err
	}
	b, err := h.svc.Bookings.Create(c.UserContext(), userID(c), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, b)
}

func (h *Handler) GetMyBookings(c *fiber.Ctx) error {
	f, err := input[model.FilterBooking](c)
	if err != nil {
		return err
	}
	res, err := h.svc.Bookings.ListMine(c.UserContext(), userID(c), f)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *Handler) GetBookings(c *fiber.Ctx) error {
	f, err := input[model.FilterBooking](c)
	if err != nil {
		return err
	}
	res, err := h.svc.Bookings.List(c.UserContext(), f)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *Handler) GetBooking(c *fiber.Ctx) error {
	b, err := h.svc.Bookings.Get(c.UserContext(), actor(c), id(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, b)
}

func (h *Handler) CancelBooking(c *fiber.Ctx) error {
	b, err := h.svc.Bookings.Cancel(c.UserContext(), actor(c), id(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, b)
}
