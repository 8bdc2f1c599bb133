package handler

import (
	"cinemaverse/model"
	"cinemaverse/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetMovieReviews(c *fiber.Ctx) error {
	p, err := input[model.Pagination](c)
	if err != nil {
		return err
	}
	res, err := h.svc.Reviews.ListByMovie(c.UserContext(), id(c), p)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *Handler) CreateReview(c *fiber.Ctx) error {
	in, err := input[model.ReviewInput](c)
	if err != nil {
		return err
	}
	review, err := h.svc.Reviews.Create(c.UserContext(), userID(c), id(c), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, review)
}

func (h *Handler) EditReview(c *fiber.Ctx) error {
	in, err := input[model.ReviewInput](c)
	if err != nil {
		return err
	}
	review, err := h.svc.Reviews.Update(c.UserContext(), actor(c), id(c), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, review)
}

func (h *Handler) DeleteReview(c *fiber.Ctx) error {
	if err := h.svc.Reviews.Delete(c.UserContext(), actor(c), id(c)); err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}
