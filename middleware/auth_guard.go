package middleware

import (
	"log/slog"

	"auth-gateway/internal/auth"
	"auth-gateway/internal/domain"
	"auth-gateway/internal/usecase"

	"github.com/labstack/echo/v4"
)

const gatewayTokenHeader = "X-Gateway-Token"

// AuthGuard authenticates requests to protected routes. It runs before
// any protected handler: a request either reaches the handler with a
// resolved identity in its context, or is rejected here.
type AuthGuard struct {
	resolve *usecase.Resolve
	issuer  domain.TokenIssuer
	mapErr  func(error) *echo.HTTPError
	logger  *slog.Logger
}

// NewAuthGuard creates an auth guard. issuer may be nil, in which case
// no downstream gateway token header is set. mapErr translates domain
// errors into HTTP rejections so the guard and the handlers share one
// error contract.
func NewAuthGuard(resolve *usecase.Resolve, issuer domain.TokenIssuer, mapErr func(error) *echo.HTTPError, l *slog.Logger) *AuthGuard {
	return &AuthGuard{resolve: resolve, issuer: issuer, mapErr: mapErr, logger: l}
}

// RequireIdentity extracts the bearer token, resolves it against the
// provider, and attaches the identity to the request context. Malformed
// headers are rejected without any provider call.
func (g *AuthGuard) RequireIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := auth.ExtractBearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return g.mapErr(err)
			}

			identity, err := g.resolve.Execute(c.Request().Context(), token)
			if err != nil {
				return g.mapErr(err)
			}

			auth.SetToken(c, token)
			auth.SetIdentity(c, identity)

			if g.issuer != nil {
				gatewayToken, err := g.issuer.IssueGatewayToken(identity)
				if err != nil {
					g.logger.ErrorContext(c.Request().Context(), "failed to issue gateway token", "error", err)
					return g.mapErr(domain.ErrTokenGeneration)
				}
				c.Response().Header().Set(gatewayTokenHeader, gatewayToken)
			}

			return next(c)
		}
	}
}

// RequireBearer extracts and syntactically validates the bearer token
// without resolving it. Used for sign-out, where the provider call that
// follows is itself the validation.
func (g *AuthGuard) RequireBearer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := auth.ExtractBearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return g.mapErr(err)
			}

			auth.SetToken(c, token)
			return next(c)
		}
	}
}
