package handler

import (
	"cinemaverse/apperror"
	"cinemaverse/model"
	"cinemaverse/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetMovies(c *fiber.Ctx) error {
	f, err := input[model.FilterMovieInput](c)
	if err != nil {
		return err
	}
	res, err := h.svc.Movies.List(c.UserContext(), f)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *Handler) GetNowShowing(c *fiber.Ctx) error {
	p, err := input[model.Pagination](c)
	if err != nil {
		return err
	}
	res, err := h.svc.Movies.NowShowing(c.UserContext(), p)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *Handler) GetComingSoon(c *fiber.Ctx) error {
	p, err := input[model.Pagination](c)
	if err != nil {
		return err
	}
	res, err := h.svc.Movies.ComingSoon(c.UserContext(), p)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *Handler) GetMovie(c *fiber.Ctx) error {
	movie, err := h.svc.Movies.Get(c.UserContext(), id(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, movie)
}

func (h *Handler) GetMovieBySlug(c *fiber.Ctx) error {
	movie, err := h.svc.Movies.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, movie)
}

func (h *Handler) CreateMovie(c *fiber.Ctx) error {
	in, err := input[model.CreateMovieInput](c)
	if err != nil {
		return err
	}
	movie, err := h.svc.Movies.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, movie)
}

func (h *Handler) EditMovie(c *fiber.Ctx) error {
	in, err := input[model.EditMovieInput](c)
	if err != nil {
		return err
	}
	movie, err := h.svc.Movies.Update(c.UserContext(), id(c), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, movie)
}

func (h *Handler) SetMovieStatus(c *fiber.Ctx) error {
	in, err := input[model.MovieStatusInput](c)
	if err != nil {
		return err
	}
	movie, err := h.svc.Movies.SetStatus(c.UserContext(), id(c), in.Status)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, movie)
}

func (h *Handler) DeleteMovie(c *fiber.Ctx) error {
	if err := h.svc.Movies.Delete(c.UserContext(), id(c)); err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}

func (h *Handler) AddCastMember(c *fiber.Ctx) error {
	in, err := input[model.CastMemberInput](c)
	if err != nil {
		return err
	}
	member, err := h.svc.Movies.AddCast(c.UserContext(), id(c), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, member)
}

func (h *Handler) RemoveCastMember(c *fiber.Ctx) error {
	if err := h.svc.Movies.RemoveCast(c.UserContext(), id(c), param(c, "castId")); err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}

func (h *Handler) AddMovieImage(c *fiber.Ctx) error {
	in, err := input[model.MovieImageInput](c)
	if err != nil {
		return err
	}
	img, err := h.svc.Movies.AddImage(c.UserContext(), id(c), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, img)
}

// UploadMovieImage takes a multipart form with a "file" part and an
// optional "isPrimary" flag.
func (h *Handler) UploadMovieImage(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return apperror.Validation(map[string][]string{"file": {"is required"}})
	}
	file, err := header.Open()
	if err != nil {
		return apperror.Invalid("cannot read upload: %s", err.Error())
	}
	defer file.Close()

	img, err := h.svc.Movies.UploadImage(c.UserContext(), id(c), file, formBool(c, "isPrimary"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, img)
}

func (h *Handler) SetPrimaryImage(c *fiber.Ctx) error {
	if err := h.svc.Movies.SetPrimaryImage(c.UserContext(), id(c), param(c, "imageId")); err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}

func (h *Handler) RemoveMovieImage(c *fiber.Ctx) error {
	if err := h.svc.Movies.RemoveImage(c.UserContext(), id(c), param(c, "imageId")); err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}

func (h *Handler) GetMovieShowtimes(c *fiber.Ctx) error {
	rows, err := h.svc.Showtimes.ByMovie(c.UserContext(), id(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, rows)
}

func (h *Handler) GetGenres(c *fiber.Ctx) error {
	genres, err := h.svc.Genres.List(c.UserContext())
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, genres)
}

func (h *Handler) CreateGenre(c *fiber.Ctx) error {
	in, err := input[model.GenreInput](c)
	if err != nil {
		return err
	}
	genre, err := h.svc.Genres.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, genre)
}

func (h *Handler) EditGenre(c *fiber.Ctx) error {
	in, err := input[model.GenreInput](c)
	if err != nil {
		return err
	}
	genre, err := h.svc.Genres.Update(c.UserContext(), id(c), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, genre)
}

func (h *Handler) DeleteGenre(c *fiber.Ctx) error {
	if err := h.svc.Genres.Delete(c.UserContext(), id(c)); err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}
