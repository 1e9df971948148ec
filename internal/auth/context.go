package auth

import (
	"auth-gateway/internal/domain"

	"github.com/labstack/echo/v4"
)

const (
	identityKey = "auth.identity"
	tokenKey    = "auth.bearer"
)

// SetIdentity attaches a resolved identity to the request context.
func SetIdentity(c echo.Context, identity *domain.Identity) {
	c.Set(identityKey, identity)
}

// IdentityFromContext returns the identity attached by the guard, or nil
// if the request was not resolved.
func IdentityFromContext(c echo.Context) *domain.Identity {
	identity, _ := c.Get(identityKey).(*domain.Identity)
	return identity
}

// SetToken attaches the extracted bearer token to the request context.
func SetToken(c echo.Context, token string) {
	c.Set(tokenKey, token)
}

// TokenFromContext returns the bearer token extracted by the guard, or
// the empty string.
func TokenFromContext(c echo.Context) string {
	token, _ := c.Get(tokenKey).(string)
	return token
}
