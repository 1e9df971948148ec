package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"auth-gateway/internal/domain"
)

const terminateTimeout = 10 * time.Second

// Terminate revokes the session behind an access token.
type Terminate struct {
	provider domain.IdentityProvider
	cache    domain.IdentityCache
	logger   *slog.Logger
}

// NewTerminate creates a new Terminate usecase.
func NewTerminate(p domain.IdentityProvider, c domain.IdentityCache, l *slog.Logger) *Terminate {
	return &Terminate{provider: p, cache: c, logger: l}
}

// Execute revokes the session. The revocation is detached from the
// caller's cancellation: once dispatched it runs to completion even if
// the client disconnects, since the revocation is worth finishing
// regardless of whether anyone observes the response. Idempotent from
// the caller's perspective: revoking an already-revoked token yields
// ErrInvalidToken, never a crash.
func (uc *Terminate) Execute(ctx context.Context, accessToken string) error {
	uc.cache.Invalidate(accessToken)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), terminateTimeout)
	defer cancel()

	if err := uc.provider.SignOut(ctx, accessToken); err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			uc.logger.InfoContext(ctx, "sign-out for already-revoked token")
		} else {
			uc.logger.WarnContext(ctx, "sign-out failed", "code", domain.Code(err))
		}
		return err
	}

	uc.logger.InfoContext(ctx, "session revoked")
	return nil
}
