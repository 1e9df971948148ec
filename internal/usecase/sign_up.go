package usecase

import (
	"context"
	"log/slog"

	"auth-gateway/internal/domain"
)

// SignUp registers a new account with the identity provider.
type SignUp struct {
	provider       domain.IdentityProvider
	minPasswordLen int
	logger         *slog.Logger
}

// NewSignUp creates a new SignUp usecase.
func NewSignUp(p domain.IdentityProvider, minPasswordLen int, l *slog.Logger) *SignUp {
	return &SignUp{provider: p, minPasswordLen: minPasswordLen, logger: l}
}

// Execute validates the credential shape locally, then delegates to the
// provider. The provider call is never retried: a duplicate submit could
// double-register.
func (uc *SignUp) Execute(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	if err := checkCredentials(creds, uc.minPasswordLen); err != nil {
		return nil, err
	}

	session, err := uc.provider.SignUp(ctx, creds)
	if err != nil {
		uc.logger.WarnContext(ctx, "sign-up rejected", "code", domain.Code(err))
		return nil, err
	}

	uc.logger.InfoContext(ctx, "account created", "user_id", session.UserID)
	return session, nil
}
