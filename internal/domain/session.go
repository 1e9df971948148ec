package domain

import "time"

// Credentials carries an email/password pair for sign-up and sign-in.
// Transient: never persisted, never logged.
type Credentials struct {
	Email    string
	Password string
}

// Session is the token pair issued by the identity provider plus the
// identity it was issued for. Both tokens are opaque to this service
// and are only forwarded, never parsed or mutated.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	UserID       string
	UserEmail    string
}

// Identity represents an authenticated user resolved from a bearer token.
// It lives for the duration of a single request.
type Identity struct {
	UserID string
	Email  string
	Claims map[string]any
}

// CachedIdentity holds identity data stored in the resolve cache. It
// carries everything Identity does so a cache hit and a fresh
// resolution look identical to callers.
type CachedIdentity struct {
	UserID string
	Email  string
	Claims map[string]any
}
