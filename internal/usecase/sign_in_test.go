package usecase

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"auth-gateway/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestSignIn_Success(t *testing.T) {
	provider := &fakeProvider{
		session: &domain.Session{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			ExpiresAt:    time.Now().Add(time.Hour),
			UserID:       "user-123",
			UserEmail:    "a@b.com",
		},
	}
	uc := NewSignIn(provider, DefaultPasswordMinLength, slog.Default())

	session, err := uc.Execute(context.Background(), domain.Credentials{
		Email:    "a@b.com",
		Password: "longenough",
	})

	assert.NoError(t, err)
	assert.Equal(t, "user-123", session.UserID)
	assert.Equal(t, "a@b.com", session.UserEmail)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.False(t, session.ExpiresAt.IsZero())
}

func TestSignIn_InvalidCredentials_NotRetried(t *testing.T) {
	provider := &fakeProvider{errs: []error{domain.ErrInvalidCredentials}}
	uc := NewSignIn(provider, DefaultPasswordMinLength, slog.Default())

	session, err := uc.Execute(context.Background(), domain.Credentials{
		Email:    "a@b.com",
		Password: "wrongpassword",
	})

	assert.Nil(t, session)
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
	assert.Equal(t, 1, provider.signInCalls)
}

func TestSignIn_ProviderUnavailable_NotRetried(t *testing.T) {
	provider := &fakeProvider{errs: []error{domain.ErrProviderUnavailable}}
	uc := NewSignIn(provider, DefaultPasswordMinLength, slog.Default())

	_, err := uc.Execute(context.Background(), domain.Credentials{
		Email:    "a@b.com",
		Password: "longenough",
	})

	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable))
	assert.Equal(t, 1, provider.signInCalls, "sign-in is side-effecting and must not be retried")
}

func TestSignIn_LocalValidationFirst(t *testing.T) {
	provider := &fakeProvider{}
	uc := NewSignIn(provider, DefaultPasswordMinLength, slog.Default())

	_, err := uc.Execute(context.Background(), domain.Credentials{Email: "", Password: ""})

	assert.True(t, errors.Is(err, domain.ErrValidationFailed))
	assert.Equal(t, 0, provider.signInCalls)
}
