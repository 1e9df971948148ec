package handler

import (
	"errors"
	"net/http"

	"auth-gateway/internal/domain"

	"github.com/labstack/echo/v4"
)

// errorBody is the machine-readable failure payload. The message never
// echoes submitted credentials or raw provider responses.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MapDomainError converts a domain error into an echo.HTTPError with a
// fixed status and a stable error code. This is the only place domain
// errors cross the HTTP boundary.
func MapDomainError(err error) *echo.HTTPError {
	code := domain.Code(err)

	switch {
	case errors.Is(err, domain.ErrValidationFailed):
		return echo.NewHTTPError(http.StatusBadRequest, errorBody{code, "request validation failed"})

	case errors.Is(err, domain.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, errorBody{code, "invalid email or password"})

	case errors.Is(err, domain.ErrAccountLocked):
		return echo.NewHTTPError(http.StatusLocked, errorBody{code, "account is locked"})

	case errors.Is(err, domain.ErrAlreadyExists):
		return echo.NewHTTPError(http.StatusConflict, errorBody{code, "account already exists"})

	case errors.Is(err, domain.ErrMissingToken),
		errors.Is(err, domain.ErrMalformedHeader),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpired):
		return echo.NewHTTPError(http.StatusUnauthorized, errorBody{code, "authentication required"})

	case errors.Is(err, domain.ErrProviderUnavailable):
		return echo.NewHTTPError(http.StatusBadGateway, errorBody{code, "identity provider unavailable"})

	case errors.Is(err, domain.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, errorBody{code, "rate limit exceeded"})

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, errorBody{code, "internal error"})
	}
}
