package handler

import (
	"cinemaverse/model"
	"cinemaverse/utils"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetMyTickets(c *fiber.Ctx) error {
	f, err := input[model.FilterTicket](c)
	if err != nil {
		return err
	}
	res, err := h.svc.Tickets.ListMine(c.UserContext(), userID(c), f)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *Handler) GetTicket(c *fiber.Ctx) error {
	t, err := h.svc.Tickets.Get(c.UserContext(), actor(c), id(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, t)
}

func (h *Handler) GetTicketQR(c *fiber.Ctx) error {
	png, err := h.svc.Tickets.QRCode(c.UserContext(), actor(c), id(c))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=ticket-%d.png", id(c)))
	return c.Send(png)
}

func (h *Handler) CheckInTicket(c *fiber.Ctx) error {
	in, err := input[model.CheckInInput](c)
	if err != nil {
		return err
	}
	t, err := h.svc.Tickets.CheckIn(c.UserContext(), in.QRToken)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, t)
}
