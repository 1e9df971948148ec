package token

import (
	"time"

	"auth-gateway/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig holds gateway token generation configuration.
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// gatewayClaims represents the JWT claims asserted to backend services.
type gatewayClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTIssuer mints short-lived HS256 tokens carrying a resolved identity,
// so backend services behind the gateway never handle provider tokens.
// Implements domain.TokenIssuer.
type JWTIssuer struct {
	cfg JWTConfig
}

// NewJWTIssuer creates a new JWT issuer.
func NewJWTIssuer(cfg JWTConfig) *JWTIssuer {
	return &JWTIssuer{cfg: cfg}
}

// IssueGatewayToken generates a signed JWT for the identity.
func (j *JWTIssuer) IssueGatewayToken(identity *domain.Identity) (string, error) {
	now := time.Now()
	claims := gatewayClaims{
		Email: identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.cfg.Issuer,
			Audience:  jwt.ClaimStrings{j.cfg.Audience},
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.cfg.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.cfg.Secret))
	if err != nil {
		return "", domain.ErrTokenGeneration
	}
	return signed, nil
}
