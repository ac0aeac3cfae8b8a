package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/ebanking-console/internal/core/controller"
	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/form"
	"github.com/99minutos/ebanking-console/internal/infrastructure/queue"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// backendMessages renders backend failures that escaped a screen.
var backendMessages = controller.Messages{Fallback: "The banking service could not complete the request."}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Str("path", c.Path()).Msg("request rejected")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var fe form.Errors
	if errors.As(err, &fe) {
		return http.StatusBadRequest, fe.First()
	}

	var f *domain.Failure
	if errors.As(err, &f) {
		return statusForFailure(f), backendMessages.For(err)
	}

	switch {
	case errors.Is(err, controller.ErrBusy):
		return http.StatusConflict, "action already in progress"
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, controller.NotAuthenticatedMessage
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, queue.ErrStopped), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "console is shutting down"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, controller.TransportMessage
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

func statusForFailure(f *domain.Failure) int {
	switch f.Kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindAuthorization:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}
