package domain

import "context"

// IdentityProvider is the external identity authority. Each method is a
// single network round trip; implementations map provider error shapes
// onto the domain error set and never retry on their own.
type IdentityProvider interface {
	SignUp(ctx context.Context, creds Credentials) (*Session, error)
	SignIn(ctx context.Context, creds Credentials) (*Session, error)
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	GetUser(ctx context.Context, accessToken string) (*Identity, error)
	SignOut(ctx context.Context, accessToken string) error
}

// IdentityCache is an optional short-TTL cache in front of GetUser,
// used purely to shed load. A nil-safe no-op implementation disables it.
type IdentityCache interface {
	Get(accessToken string) (*CachedIdentity, bool)
	Set(accessToken string, identity CachedIdentity)
	Invalidate(accessToken string)
}

// TokenIssuer mints the gateway's own downstream token asserting a
// resolved identity to backend services.
type TokenIssuer interface {
	IssueGatewayToken(identity *Identity) (string, error)
}
