package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"auth-gateway/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrValidationFailed, http.StatusBadRequest, "validation_failed"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{domain.ErrAccountLocked, http.StatusLocked, "account_locked"},
		{domain.ErrAlreadyExists, http.StatusConflict, "already_exists"},
		{domain.ErrMissingToken, http.StatusUnauthorized, "missing_token"},
		{domain.ErrMalformedHeader, http.StatusUnauthorized, "malformed_header"},
		{domain.ErrInvalidToken, http.StatusUnauthorized, "invalid_token"},
		{domain.ErrExpired, http.StatusUnauthorized, "expired"},
		{domain.ErrProviderUnavailable, http.StatusBadGateway, "provider_unavailable"},
		{domain.ErrRateLimited, http.StatusTooManyRequests, "rate_limited"},
		{errors.New("something else"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			he := MapDomainError(tt.err)

			assert.Equal(t, tt.wantStatus, he.Code)
			body, ok := he.Message.(errorBody)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestMapDomainError_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("%w: provider returned status 503", domain.ErrProviderUnavailable)

	he := MapDomainError(wrapped)

	assert.Equal(t, http.StatusBadGateway, he.Code)
	body := he.Message.(errorBody)
	assert.Equal(t, "provider_unavailable", body.Code)
	assert.NotContains(t, body.Message, "503", "raw provider detail must not leak")
}
