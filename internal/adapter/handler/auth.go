package handler

import (
	"net/http"
	"time"

	"auth-gateway/internal/auth"
	"auth-gateway/internal/domain"
	"auth-gateway/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthHandler exposes the authentication endpoints. It is a thin
// adapter: request decoding, usecase call, response encoding.
type AuthHandler struct {
	signUp    *usecase.SignUp
	signIn    *usecase.SignIn
	rotate    *usecase.Rotate
	terminate *usecase.Terminate
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(signUp *usecase.SignUp, signIn *usecase.SignIn, rotate *usecase.Rotate, terminate *usecase.Terminate) *AuthHandler {
	return &AuthHandler{signUp: signUp, signIn: signIn, rotate: rotate, terminate: terminate}
}

// credentialsRequest is the sign-up / sign-in request body.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// refreshRequest is the refresh request body.
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// sessionUser represents the user object in session responses.
type sessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// sessionResponse represents an issued session.
type sessionResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	ExpiresAt    time.Time   `json:"expiresAt"`
	User         sessionUser `json:"user"`
}

// identityResponse represents the authenticated identity for /auth/me.
type identityResponse struct {
	ID     string         `json:"id"`
	Email  string         `json:"email"`
	Claims map[string]any `json:"claims,omitempty"`
}

// ackResponse acknowledges a sign-out.
type ackResponse struct {
	OK bool `json:"ok"`
}

func newSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    s.ExpiresAt,
		User:         sessionUser{ID: s.UserID, Email: s.UserEmail},
	}
}

// HandleSignUp processes POST /auth/sign-up.
func (h *AuthHandler) HandleSignUp(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return MapDomainError(domain.ErrValidationFailed)
	}

	session, err := h.signUp.Execute(c.Request().Context(), domain.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return MapDomainError(err)
	}

	return c.JSON(http.StatusCreated, newSessionResponse(session))
}

// HandleSignIn processes POST /auth/sign-in.
func (h *AuthHandler) HandleSignIn(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return MapDomainError(domain.ErrValidationFailed)
	}

	session, err := h.signIn.Execute(c.Request().Context(), domain.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return MapDomainError(err)
	}

	return c.JSON(http.StatusOK, newSessionResponse(session))
}

// HandleRefresh processes POST /auth/refresh.
func (h *AuthHandler) HandleRefresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return MapDomainError(domain.ErrInvalidToken)
	}

	session, err := h.rotate.Execute(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return MapDomainError(err)
	}

	return c.JSON(http.StatusOK, newSessionResponse(session))
}

// HandleMe processes GET /auth/me. The guard has already resolved the
// identity; this handler only serializes it.
func (h *AuthHandler) HandleMe(c echo.Context) error {
	identity := auth.IdentityFromContext(c)
	if identity == nil {
		return MapDomainError(domain.ErrMissingToken)
	}

	return c.JSON(http.StatusOK, identityResponse{
		ID:     identity.UserID,
		Email:  identity.Email,
		Claims: identity.Claims,
	})
}

// HandleSignOut processes POST /auth/sign-out. The guard has validated
// the bearer token syntactically only; the revocation call itself is
// what decides whether the token was live.
func (h *AuthHandler) HandleSignOut(c echo.Context) error {
	accessToken := auth.TokenFromContext(c)
	if accessToken == "" {
		return MapDomainError(domain.ErrMissingToken)
	}

	if err := h.terminate.Execute(c.Request().Context(), accessToken); err != nil {
		return MapDomainError(err)
	}

	return c.JSON(http.StatusOK, ackResponse{OK: true})
}
