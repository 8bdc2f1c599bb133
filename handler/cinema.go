package handler

import (
	"cinemaverse/model"
	"cinemaverse/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetBranches(c *fiber.Ctx) error {
	return h.listBranches(c, true)
}

func (h *Handler) GetAllBranches(c *fiber.Ctx) error {
	return h.listBranches(c, false)
}

func (h *Handler) listBranches(c *fiber.Ctx, activeOnly bool) error {
	f, err := input[model.FilterBranch](c)
	if err != nil {
		return err
	}
	res, err := h.svc.Branches.List(c.UserContext(), f, activeOnly)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *Handler) GetBranch(c *fiber.Ctx) error {
	branch, err := h.svc.Branches.Get(c.UserContext(), id(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, branch)
}

func (h *Handler) CreateBranch(c *fiber.Ctx) error {
	in, err := input[model.CreateBranchInput](c)
	if err != nil {
		return err
	}
	branch, err := h.svc.Branches.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, branch)
}

func (h *Handler) EditBranch(c *fiber.Ctx) error {
	in, err := input[model.EditBranchInput](c)
	if err != nil {
		return err
	}
	branch, err := h.svc.Branches.Update(c.UserContext(), id(c), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, branch)
}

func (h *Handler) DeleteBranch(c *fiber.Ctx) error {
	if err := h.svc.Branches.Delete(c.UserContext(), id(c)); err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}

func (h *Handler) GetBranchHalls(c *fiber.Ctx) error {
	halls, err := h.svc.Halls.ListByBranch(c.UserContext(), id(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, halls)
}

func (h *Handler) GetHall(c *fiber.Ctx) error {
	hall, err := h.svc.Halls.Get(c.UserContext(), id(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, hall)
}

func (h *Handler) CreateHall(c *fiber.Ctx) error {
	in, err := input[model.CreateHallInput](c)
	if err != nil {
		return err
	}
	hall, err := h.svc.Halls.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, hall)
}

func (h *Handler) EditHall(c *fiber.Ctx) error {
	in, err := input[model.EditHallInput](c)
	if err != nil {
		return err
	}
	hall, err := h.svc.Halls.Update(c.UserContext(), id(c), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, hall)
}

func (h *Handler) DeleteHall(c *fiber.Ctx) error {
	if err := h.svc.Halls.Delete(c.UserContext(), id(c)); err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}

func (h *Handler) GetHallSeats(c *fiber.Ctx) error {
	seats, err := h.svc.Halls.Seats(c.UserContext(), id(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, seats)
}

func (h *Handler) SetSeatActive(c *fiber.Ctx) error {
	in, err := input[model.SeatActiveInput](c)
	if err != nil {
		return err
	}
	seat, err := h.svc.Halls.SetSeatActive(c.UserContext(), id(c), param(c, "seatId"), *in.Active)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, seat)
}
