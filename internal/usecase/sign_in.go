package usecase

import (
	"context"
	"log/slog"

	"auth-gateway/internal/domain"
)

// SignIn exchanges credentials for a session.
type SignIn struct {
	provider       domain.IdentityProvider
	minPasswordLen int
	logger         *slog.Logger
}

// NewSignIn creates a new SignIn usecase.
func NewSignIn(p domain.IdentityProvider, minPasswordLen int, l *slog.Logger) *SignIn {
	return &SignIn{provider: p, minPasswordLen: minPasswordLen, logger: l}
}

// Execute validates the credential shape locally, then delegates to the
// provider. Not retried; a retry could mask provider rate limiting.
func (uc *SignIn) Execute(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	if err := checkCredentials(creds, uc.minPasswordLen); err != nil {
		return nil, err
	}

	session, err := uc.provider.SignIn(ctx, creds)
	if err != nil {
		uc.logger.WarnContext(ctx, "sign-in rejected", "code", domain.Code(err))
		return nil, err
	}

	uc.logger.InfoContext(ctx, "session established", "user_id", session.UserID)
	return session, nil
}
