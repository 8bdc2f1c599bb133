package handler

import (
	"cinemaverse/model"
	"cinemaverse/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetUsers(c *fiber.Ctx) error {
	f, err := input[model.FilterUser](c)
	if err != nil {
		return err
	}
	res, err := h.svc.Users.List(c.UserContext(), f)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *Handler) GetUser(c *fiber.Ctx) error {
	user, err := h.svc.Users.Get(c.UserContext(), id(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, user)
}

func (h *Handler) ChangeRole(c *fiber.Ctx) error {
	in, err := input[model.ChangeRoleInput](c)
	if err != nil {
		return err
	}
	user, err := h.svc.Users.ChangeRole(c.UserContext(), actor(c), id(c), in.Role)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, user)
}

func (h *Handler) ActiveUser(c *fiber.Ctx) error {
	in, err := input[model.ActiveUserInput](c)
	if err != nil {
		return err
	}
	user, err := h.svc.Users.SetActive(c.UserContext(), actor(c), id(c), *in.Active)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, user)
}
