package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kolecta/collection-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if m, ok := he.Message.(map[string]string); ok {
			return he.Code, errorResponse{Error: m["error"], Redirect: m["redirect"]}
		}
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Partial aggregation is not fatal; this branch only fires when a caller
	// chose to propagate it instead of rendering the partial result.
	var pae *domain.PartialAggregationError
	if errors.As(err, &pae) {
		return http.StatusOK, errorResponse{Error: pae.Error()}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrUnknownRole):
		return http.StatusUnauthorized, errorResponse{Error: "unrecognized role", Redirect: string(domain.RouteLogin)}
	case errors.Is(err, domain.ErrSessionAbsent):
		return http.StatusUnauthorized, errorResponse{Error: "session expired", Redirect: string(domain.RouteLogin)}
	case errors.Is(err, domain.ErrPersistence):
		return http.StatusServiceUnavailable, errorResponse{Error: "session could not be saved"}
	case errors.Is(err, domain.ErrIdentityMissing):
		return http.StatusConflict, errorResponse{Error: "reconnect required", Redirect: string(domain.RouteLogin)}
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrInvalidDecision):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrAgentNotFound):
		return http.StatusNotFound, errorResponse{Error: "agent not found"}
	case errors.Is(err, domain.ErrCommercantNotFound):
		return http.StatusNotFound, errorResponse{Error: "commercant not found"}
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, errorResponse{Error: "account not found"}
	case errors.Is(err, domain.ErrKycNotFound):
		return http.StatusNotFound, errorResponse{Error: "kyc record not found"}
	case errors.Is(err, domain.ErrInstitutionExists):
		return http.StatusConflict, errorResponse{Error: "institution already exists"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
