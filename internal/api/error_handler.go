package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storemgmt/store-management-api/internal/api/handler"
	"github.com/storemgmt/store-management-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Path      string            `json:"path"`
	Details   map[string]string `json:"details,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Aggregates field-level validation failures into the details map.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, title, msg, details := resolveError(err, log, c)
		_ = c.JSON(status, errorResponse{
			Timestamp: time.Now().UTC(),
			Status:    status,
			Error:     title,
			Message:   msg,
			Path:      c.Request().URL.Path,
			Details:   details,
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string, map[string]string) {
	// Aggregated field validation failures carry a per-field detail map.
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, "Validation Failed", "invalid input parameters", ve.Fields
	}

	// Echo's own errors (bind failures, 404 from the router, middleware).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, http.StatusText(he.Code), fmt.Sprintf("%v", he.Message), nil
	}

	// Known domain errors map to deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "Not Found", err.Error(), nil
	case errors.Is(err, domain.ErrProductExists):
		return http.StatusConflict, "Conflict", err.Error(), nil
	case errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidStock),
		errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusBadRequest, "Bad Request", err.Error(), nil
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrUserDisabled):
		// Unknown user and wrong password must be indistinguishable.
		return http.StatusUnauthorized, "Unauthorized", "invalid username or password", nil
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "Unauthorized", "invalid or expired token", nil
	case errors.Is(err, domain.ErrTooManyLoginAttempts):
		return http.StatusTooManyRequests, "Too Many Requests", err.Error(), nil
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal Server Error", "an unexpected error occurred", nil
}
