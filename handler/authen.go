package handler

import (
	"cinemaverse/apperror"
	"cinemaverse/constants"
	"cinemaverse/model"
	"cinemaverse/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Register(c *fiber.Ctx) error {
	in, err := input[model.RegisterInput](c)
	if err != nil {
		return err
	}
	user, err := h.svc.Auth.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, user)
}

func (h *Handler) Login(c *fiber.Ctx) error {
	in, err := input[model.LoginInput](c)
	if err != nil {
		return err
	}
	res, err := h.svc.Auth.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	h.setAuthCookies(c, res.TokenData)
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

// RefreshToken reads the refresh token from the body or the refresh_token
// cookie.
func (h *Handler) RefreshToken(c *fiber.Ctx) error {
	var in model.RefreshTokenInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return apperror.Invalid("%s: %s", constants.ERROR_INPUT, err.Error())
		}
	}
	token := in.RefreshToken
	if token == "" {
		token = c.Cookies(constants.REFRESH_TOKEN_COOKIE)
	}
	res, err := h.svc.Auth.Refresh(c.UserContext(), token)
	if err != nil {
		return err
	}
	h.setAuthCookies(c, res.TokenData)
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	for _, name := range []string{constants.ACCESS_TOKEN_COOKIE, constants.REFRESH_TOKEN_COOKIE} {
		c.Cookie(&fiber.Cookie{Name: name, Value: "", Path: "/", HTTPOnly: true, Expires: time.Unix(0, 0)})
	}
	return utils.SuccessResponse(c, fiber.StatusOK, nil)
}

func (h *Handler) setAuthCookies(c *fiber.Ctx, tokens model.TokenData) {
	tokenIssuer := h.svc.Tokens()
	now := time.Now()
	c.Cookie(&fiber.Cookie{
		Name:     constants.ACCESS_TOKEN_COOKIE,
		Value:    tokens.AccessToken,
		Expires:  now.Add(tokenIssuer.AccessTTL()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   !h.settings.IsDev(),
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     constants.REFRESH_TOKEN_COOKIE,
		Value:    tokens.RefreshToken,
		Expires:  now.Add(tokenIssuer.RefreshTTL()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   !h.settings.IsDev(),
		Path:     "/",
	})
}

func (h *Handler) Me(c *fiber.Ctx) error {
	user, err := h.svc.Auth.Me(c.UserContext(), userID(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, user)
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	in, err := input[model.UpdateProfileInput](c)
	if err != nil {
		return err
	}
	user, err := h.svc.Auth.UpdateProfile(c.UserContext(), userID(c), in)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, user)
}

func (h *Handler) ChangePassword(c *fiber.Ctx) error {
	in, err := input[model.ChangePasswordInput](c)
	if err != nil {
		return err
	}
	if err := h.svc.Auth.ChangePassword(c.UserContext(), userID(c), in); err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "password changed"})
}

func (h *Handler) ForgotPassword(c *fiber.Ctx) error {
	in, err := input[model.ForgotPasswordInput](c)
	if err != nil {
		return err
	}
	if err := h.svc.Auth.ForgotPassword(c.UserContext(), in.Email); err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "if the email is registered, a reset link has been sent"})
}

func (h *Handler) ResetPassword(c *fiber.Ctx) error {
	in, err := input[model.ResetPasswordInput](c)
	if err != nil {
		return err
	}
	if err := h.svc.Auth.ResetPassword(c.UserContext(), in); err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "password reset"})
}
