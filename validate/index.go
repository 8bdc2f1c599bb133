package validate

import (
	"cinemaverse/apperror"
	"cinemaverse/constants"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Struct validates v and reports failures keyed by JSON field name.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return apperror.Invalid("%s", err.Error())
	}
	fields := map[string][]string{}
	for _, fe := range ves {
		key := fieldKey(fe)
		fields[key] = append(fields[key], message(fe))
	}
	return apperror.Validation(fields)
}

// fieldKey drops the top level struct name and embedded struct names from
// the namespace, so FilterBooking.Pagination.limit becomes limit.
func fieldKey(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	keep := make([]string, 0, len(parts))
	for i, p := range parts {
		if i < len(parts)-1 && p != "" && unicode.IsUpper(rune(p[0])) {
			continue
		}
		keep = append(keep, p)
	}
	return strings.Join(keep, ".")
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "eqfield":
		return "must match " + lowerFirst(fe.Param())
	case "nefield":
		return "must differ from " + lowerFirst(fe.Param())
	case "datetime":
		return "must be a date formatted as " + fe.Param()
	case "url":
		return "must be a valid URL"
	default:
		return "failed the " + fe.Tag() + " rule"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// Body parses and validates the JSON body into T and stores it in
// c.Locals("input").
func Body[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T
		if err := c.BodyParser(&input); err != nil {
			return apperror.Invalid("%s: %s", constants.ERROR_INPUT, err.Error())
		}
		if err := Struct(&input); err != nil {
			return err
		}
		c.Locals(constants.LOCALS_INPUT, input)
		return c.Next()
	}
}

// Query does what Body does for the query string.
func Query[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T
		if err := c.QueryParser(&input); err != nil {
			return apperror.Invalid("%s: %s", constants.ERROR_INPUT, err.Error())
		}
		if err := Struct(&input); err != nil {
			return err
		}
		c.Locals(constants.LOCALS_INPUT, input)
		return c.Next()
	}
}

// ParamID parses positive numeric route params. The first one is stored in
// c.Locals("inputId"), every one also under its own name.
func ParamID(keys ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for i, key := range keys {
			id, err := strconv.ParseUint(c.Params(key), 10, 32)
			if err != nil || id == 0 {
				return apperror.Validation(map[string][]string{key: {constants.DATA_INPUT_IS_NOT_NUMBER}})
			}
			if i == 0 {
				c.Locals(constants.LOCALS_ID, uint(id))
			}
			c.Locals(key, uint(id))
		}
		return c.Next()
	}
}
