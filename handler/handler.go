// Package handler binds HTTP requests to the services. Inputs arrive already
// parsed and validated by the validate middlewares.
package handler

import (
	"cinemaverse/config"
	"cinemaverse/constants"
	"cinemaverse/middleware"
	"cinemaverse/service"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Handler struct {
	svc      *service.Services
	settings config.Settings
	db       *gorm.DB
	redis    *redis.Client
	Hub      *SeatHub
}

// New builds the handlers and registers the seat hub as the seat notifier of
// the services. rdb may be nil.
func New(svc *service.Services, settings config.Settings, db *gorm.DB, rdb *redis.Client) *Handler {
	h := &Handler{svc: svc, settings: settings, db: db, redis: rdb}
	h.Hub = NewSeatHub(svc.Showtimes, rdb)
	svc.SetSeatNotifier(h.Hub)
	return h
}

func input[T any](c *fiber.Ctx) (T, error) {
	in, ok := c.Locals(constants.LOCALS_INPUT).(T)
	if !ok {
		return in, errors.New(constants.ERROR_PARSE_DATA_TO_LOCALS)
	}
	return in, nil
}

// id returns the first route id parsed by validate.ParamID.
func id(c *fiber.Ctx) uint {
	v, _ := c.Locals(constants.LOCALS_ID).(uint)
	return v
}

// param returns a route id parsed by validate.ParamID under its own name.
func param(c *fiber.Ctx, key string) uint {
	v, _ := c.Locals(key).(uint)
	return v
}

func actor(c *fiber.Ctx) service.Actor {
	claim, _ := middleware.Claims(c)
	return service.Actor{UserId: claim.UserId, Role: claim.Role}
}

func userID(c *fiber.Ctx) uint {
	claim, _ := middleware.Claims(c)
	return claim.UserId
}

func formBool(c *fiber.Ctx, key string) bool {
	v, err := strconv.ParseBool(c.FormValue(key))
	return err == nil && v
}
