package utils

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErrorResponse writes the error envelope used by every failing endpoint.
func ErrorResponse(c *fiber.Ctx, status int, message string, fields map[string][]string) error {
	var errs any
	if len(fields) > 0 {
		errs = fields
	}
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"message": message,
			"code":    status,
			"errors":  errs,
		},
	})
}

func SuccessResponse(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

func ApplyPagination(query *gorm.DB, limit, page *int) *gorm.DB {
	if limit != nil && *limit > 0 && page != nil && *page >= 1 {
		query = query.Limit(*limit)
		offset := *limit * (*page - 1)
		query = query.Offset(offset)
	}
	return query
}

// Like builds a case-insensitive LIKE pattern.
func Like(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

// DayRange returns [start, end) of the UTC day written as YYYY-MM-DD.
func DayRange(day string) (time.Time, time.Time, error) {
	start, err := time.Parse(DateLayout, day)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 0, 1), nil
}

func Ptr[T any](v T) *T {
	return &v
}
