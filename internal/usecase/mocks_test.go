package usecase

import (
	"context"
	"sync"

	"auth-gateway/internal/domain"
)

// fakeProvider implements domain.IdentityProvider for testing. Each
// operation returns the configured result; errs is consumed per call so
// sequences like unavailable-then-success can be simulated.
type fakeProvider struct {
	mu sync.Mutex

	session  *domain.Session
	identity *domain.Identity
	errs     []error

	signUpCalls  int
	signInCalls  int
	refreshCalls int
	getUserCalls int
	signOutCalls int

	signOutCtxErr error
}

func (f *fakeProvider) nextErr() error {
	if len(f.errs) == 0 {
		return nil
	}
	err := f.errs[0]
	f.errs = f.errs[1:]
	return err
}

func (f *fakeProvider) SignUp(ctx context.Context, _ domain.Credentials) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signUpCalls++
	if err := f.nextErr(); err != nil {
		return nil, err
	}
	return f.session, nil
}

func (f *fakeProvider) SignIn(ctx context.Context, _ domain.Credentials) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signInCalls++
	if err := f.nextErr(); err != nil {
		return nil, err
	}
	return f.session, nil
}

func (f *fakeProvider) Refresh(ctx context.Context, _ string) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshCalls++
	if err := f.nextErr(); err != nil {
		return nil, err
	}
	return f.session, nil
}

func (f *fakeProvider) GetUser(ctx context.Context, _ string) (*domain.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getUserCalls++
	if err := f.nextErr(); err != nil {
		return nil, err
	}
	return f.identity, nil
}

func (f *fakeProvider) SignOut(ctx context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signOutCalls++
	f.signOutCtxErr = ctx.Err()
	return f.nextErr()
}

// fakeCache implements domain.IdentityCache for testing.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]domain.CachedIdentity
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]domain.CachedIdentity)}
}

func (f *fakeCache) Get(token string) (*domain.CachedIdentity, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, found := f.entries[token]
	if !found {
		return nil, false
	}
	return &entry, true
}

func (f *fakeCache) Set(token string, identity domain.CachedIdentity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[token] = identity
}

func (f *fakeCache) Invalidate(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, token)
}

// noCache disables caching in tests that exercise the provider path.
type noCache struct{}

func (noCache) Get(string) (*domain.CachedIdentity, bool) { return nil, false }
func (noCache) Set(string, domain.CachedIdentity)         {}
func (noCache) Invalidate(string)                         {}
