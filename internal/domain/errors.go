package domain

import "errors"

// Authentication errors. Every provider-originated failure is mapped to
// exactly one of these before it crosses the HTTP boundary.
var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account locked")
	ErrAlreadyExists      = errors.New("account already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpired            = errors.New("token expired")
)

// Bearer extraction errors, produced before any provider call.
var (
	ErrMissingToken    = errors.New("missing bearer token")
	ErrMalformedHeader = errors.New("malformed authorization header")
)

// External service errors.
var (
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

// Token errors.
var (
	ErrTokenGeneration = errors.New("token generation failed")
)

// Rate limiting errors.
var (
	ErrRateLimited = errors.New("rate limit exceeded")
)

// Code returns the stable machine-readable code for an authentication
// error, used in HTTP error bodies.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrValidationFailed):
		return "validation_failed"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrAccountLocked):
		return "account_locked"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrMissingToken):
		return "missing_token"
	case errors.Is(err, ErrMalformedHeader):
		return "malformed_header"
	case errors.Is(err, ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrProviderUnavailable):
		return "provider_unavailable"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	default:
		return "internal_error"
	}
}
