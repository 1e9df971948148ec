package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"auth-gateway/internal/domain"

	"github.com/sethvargo/go-retry"
)

const (
	resolveMaxRetries   = 2
	resolveBackoffStart = 100 * time.Millisecond
)

// Resolve validates a bearer token against the provider and returns the
// identity it represents. This is the authorization-critical path: every
// protected request resolves freshly unless the operator enables the
// short-TTL cache, in which case revoked tokens may be honored for at
// most the cache TTL.
type Resolve struct {
	provider domain.IdentityProvider
	cache    domain.IdentityCache
	logger   *slog.Logger
}

// NewResolve creates a new Resolve usecase.
func NewResolve(p domain.IdentityProvider, c domain.IdentityCache, l *slog.Logger) *Resolve {
	return &Resolve{provider: p, cache: c, logger: l}
}

// Execute resolves the access token. GetUser is read-only, so transport
// failures are retried with bounded exponential backoff; all other
// failures are terminal for the request.
func (uc *Resolve) Execute(ctx context.Context, accessToken string) (*domain.Identity, error) {
	if cached, found := uc.cache.Get(accessToken); found {
		return &domain.Identity{
			UserID: cached.UserID,
			Email:  cached.Email,
			Claims: cached.Claims,
		}, nil
	}

	var identity *domain.Identity
	backoff := retry.WithMaxRetries(resolveMaxRetries, retry.NewExponential(resolveBackoffStart))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		identity, err = uc.provider.GetUser(ctx, accessToken)
		if errors.Is(err, domain.ErrProviderUnavailable) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		uc.logger.WarnContext(ctx, "token resolution failed", "code", domain.Code(err))
		return nil, err
	}

	uc.cache.Set(accessToken, domain.CachedIdentity{
		UserID: identity.UserID,
		Email:  identity.Email,
		Claims: identity.Claims,
	})

	return identity, nil
}
