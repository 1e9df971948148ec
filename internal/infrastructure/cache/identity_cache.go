// Package cache provides the optional short-TTL cache in front of token
// resolution. It exists purely to shed load on the identity provider;
// while an entry lives, a revoked token keeps being honored, so the TTL
// is clamped to a few seconds.
package cache

import (
	"sync"
	"time"

	"auth-gateway/internal/domain"
)

// MaxTTL bounds how long a revoked token can remain honored.
const MaxTTL = 10 * time.Second

type cacheEntry struct {
	identity  domain.CachedIdentity
	expiresAt time.Time
}

// IdentityCache is a thread-safe in-memory cache keyed by access token.
// Implements domain.IdentityCache.
type IdentityCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	ttl     time.Duration
}

// New creates an identity cache. A ttl of zero or less disables caching
// entirely; TTLs above MaxTTL are clamped.
func New(ttl time.Duration) domain.IdentityCache {
	if ttl <= 0 {
		return noopCache{}
	}
	if ttl > MaxTTL {
		ttl = MaxTTL
	}

	c := &IdentityCache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
	}
	go c.cleanupLoop()
	return c
}

// Get retrieves a cached identity by access token.
func (c *IdentityCache) Get(accessToken string) (*domain.CachedIdentity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[accessToken]
	if !found || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return &entry.identity, true
}

// Set stores a resolved identity.
func (c *IdentityCache) Set(accessToken string, identity domain.CachedIdentity) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[accessToken] = &cacheEntry{
		identity:  identity,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Invalidate drops the entry for a token, if any. Called on sign-out so
// the local instance stops honoring the token immediately.
func (c *IdentityCache) Invalidate(accessToken string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, accessToken)
}

func (c *IdentityCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for token, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, token)
		}
	}
}

func (c *IdentityCache) cleanupLoop() {
	ticker := time.NewTicker(MaxTTL)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

// noopCache is the default: every resolution goes to the provider, so
// revocation takes effect immediately.
type noopCache struct{}

func (noopCache) Get(string) (*domain.CachedIdentity, bool) { return nil, false }
func (noopCache) Set(string, domain.CachedIdentity)         {}
func (noopCache) Invalidate(string)                         {}
