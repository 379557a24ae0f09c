package http

import (
	"errors"
	"net/http"

	"parcelflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps domain error families to HTTP status codes. The error
// message is forwarded as-is; domain errors are already sanitized.
func writeError(c echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrAccessForbidden):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrStatusConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		code = http.StatusBadRequest
	}

	message := err.Error()
	if code == http.StatusInternalServerError {
		// Do not leak storage internals to clients.
		message = "internal server error"
	}

	return c.JSON(code, ErrorResponse{
		Code:    code,
		Message: message,
	})
}
