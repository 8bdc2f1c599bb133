// Package apperror defines the error kinds the service layer returns and the
// HTTP status each kind maps to.
package apperror

import (
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalid          = errors.New("invalid argument")
	ErrConflict         = errors.New("conflict")
	ErrInvalidOperation = errors.New("invalid operation")
)

func NotFound(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrNotFound)
}

func Forbidden(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrForbidden)
}

func Unauthorized(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrUnauthorized)
}

func Invalid(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalid)
}

func Conflict(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrConflict)
}

// InvalidOperation reports a request that is well formed but not allowed in
// the current state. Messages containing "already" are reported as conflicts.
func InvalidOperation(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidOperation)
}

// ValidationError carries per-field messages for request validation failures.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "one or more validation errors occurred"
}

func Validation(fields map[string][]string) error {
	return errors.Mark(&ValidationError{Fields: fields}, ErrInvalid)
}

// Status returns the HTTP status code for err.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidOperation):
		if strings.Contains(strings.ToLower(Message(err)), "already") {
			return http.StatusConflict
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the outermost message of err without wrapping prefixes
// added by infrastructure layers.
func Message(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return err.Error()
}

// Fields returns validation messages attached to err, if any.
func Fields(err error) map[string][]string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

// IsKnown reports whether err carries one of the kinds above.
func IsKnown(err error) bool {
	return errors.IsAny(err, ErrNotFound, ErrForbidden, ErrUnauthorized, ErrInvalid, ErrConflict, ErrInvalidOperation)
}
