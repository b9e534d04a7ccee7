package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fluxt/fluxt-api/internal/api/handler"
	"github.com/fluxt/fluxt-api/internal/core/domain"
)

// messageResponse is the canonical error envelope: {"message": "<code>"}.
// The message strings are part of the wire contract the frontend matches on.
type messageResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their deterministic HTTP status and code.
//   - Renders validation failures as a per-field error payload.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var fieldErrs handler.FieldErrors
		if errors.As(err, &fieldErrs) {
			_ = c.JSON(http.StatusBadRequest, fieldErrs)
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, messageResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from the router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrInvalidAuthor):
		return http.StatusForbidden, "invalid_author"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user_not_found"
	case errors.Is(err, domain.ErrFileNotFound):
		return http.StatusNotFound, "file_not_found"
	case errors.Is(err, domain.ErrMessageNotFound):
		return http.StatusNotFound, "invalid_message_id"
	case errors.Is(err, domain.ErrDuplicateUser):
		return http.StatusConflict, "duplicate_user"
	case errors.Is(err, domain.ErrPasswordAlreadySet):
		return http.StatusConflict, "password_already_set"
	case errors.Is(err, domain.ErrInvalidFile):
		return http.StatusBadRequest, "invalid_file"
	case errors.Is(err, domain.ErrInvalidToken):
		// Token failures read as unknown subject so probing learns nothing.
		return http.StatusNotFound, "user_not_found"
	}

	// Unexpected error: log the real cause, return a generic code.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal_error"
}
