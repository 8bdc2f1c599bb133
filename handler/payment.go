package handler

import (
	"cinemaverse/model"
	"cinemaverse/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreatePaymentIntent(c *fiber.Ctx) error {
	in, err := input[model.CreatePaymentIntentInput](c)
	if err != nil {
		return err
	}
	p, err := h.svc.Payments.CreateIntent(c.UserContext(), userID(c), in.BookingId)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, p)
}

func (h *Handler) ConfirmPayment(c *fiber.Ctx) error {
	b, err := h.svc.Payments.Confirm(c.UserContext(), actor(c), id(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, b)
}

// PaymentWebhook is called by the payment provider.
func (h *Handler) PaymentWebhook(c *fiber.Ctx) error {
	in, err := input[model.PaymentWebhookInput](c)
	if err != nil {
		return err
	}
	p, err := h.svc.Payments.HandleWebhook(c.UserContext(), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, p)
}

func (h *Handler) GetBookingPayment(c *fiber.Ctx) error {
	p, err := h.svc.Payments.GetByBooking(c.UserContext(), actor(c), id(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, p)
}
