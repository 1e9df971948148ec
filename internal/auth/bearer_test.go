package auth

import (
	"errors"
	"testing"

	"auth-gateway/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		token   string
		wantErr error
	}{
		{name: "valid token", header: "Bearer abc123", token: "abc123"},
		{name: "case-insensitive scheme", header: "bearer abc123", token: "abc123"},
		{name: "surrounding whitespace trimmed", header: "Bearer  abc123 ", token: "abc123"},
		{name: "missing header", header: "", wantErr: domain.ErrMissingToken},
		{name: "empty token", header: "Bearer ", wantErr: domain.ErrMissingToken},
		{name: "whitespace token", header: "Bearer    ", wantErr: domain.ErrMissingToken},
		{name: "missing prefix", header: "abc123", wantErr: domain.ErrMalformedHeader},
		{name: "wrong scheme", header: "Basic abc123", wantErr: domain.ErrMalformedHeader},
		{name: "non-ascii token", header: "Bearer abcé123", wantErr: domain.ErrMalformedHeader},
		{name: "control character", header: "Bearer abc\x01def", wantErr: domain.ErrMalformedHeader},
		{name: "embedded space", header: "Bearer ab c", wantErr: domain.ErrMalformedHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := ExtractBearer(tt.header)

			if tt.wantErr != nil {
				assert.Empty(t, token)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.token, token)
		})
	}
}
