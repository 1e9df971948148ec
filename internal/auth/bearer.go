// Package auth extracts bearer credentials from HTTP requests.
package auth

import (
	"strings"

	"auth-gateway/internal/domain"
)

const bearerPrefix = "Bearer "

// ExtractBearer pulls the opaque bearer token out of an Authorization
// header value. It performs syntactic checks only, so obviously invalid
// input is rejected before any provider round trip: no header or empty
// token yields ErrMissingToken, a wrong scheme or non-printable bytes
// yield ErrMalformedHeader. The token itself is never parsed.
func ExtractBearer(header string) (string, error) {
	if header == "" {
		return "", domain.ErrMissingToken
	}

	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", domain.ErrMalformedHeader
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", domain.ErrMissingToken
	}

	for i := 0; i < len(token); i++ {
		if token[i] < '!' || token[i] > '~' {
			return "", domain.ErrMalformedHeader
		}
	}

	return token, nil
}
