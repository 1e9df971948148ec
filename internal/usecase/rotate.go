package usecase

import (
	"context"
	"log/slog"
	"strings"

	"auth-gateway/internal/domain"
)

// Rotate exchanges a refresh token for a new session pair.
type Rotate struct {
	provider domain.IdentityProvider
	logger   *slog.Logger
}

// NewRotate creates a new Rotate usecase.
func NewRotate(p domain.IdentityProvider, l *slog.Logger) *Rotate {
	return &Rotate{provider: p, logger: l}
}

// Execute rotates the session. On success the provider has invalidated
// the presented refresh token and the prior access token; only the new
// pair is valid afterward. Never retried: a replayed refresh races the
// provider's one-time-use token invalidation.
func (uc *Rotate) Execute(ctx context.Context, refreshToken string) (*domain.Session, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, domain.ErrInvalidToken
	}

	session, err := uc.provider.Refresh(ctx, refreshToken)
	if err != nil {
		uc.logger.WarnContext(ctx, "session rotation rejected", "code", domain.Code(err))
		return nil, err
	}

	uc.logger.InfoContext(ctx, "session rotated", "user_id", session.UserID)
	return session, nil
}
