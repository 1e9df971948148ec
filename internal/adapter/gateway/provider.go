// Package gateway implements the identity provider client against the
// provider's REST API. Each operation is a single round trip; provider
// error shapes are translated into the domain error set here and
// nowhere else.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"auth-gateway/internal/domain"
)

// ProviderClient talks to the identity provider's auth REST API.
// Implements domain.IdentityProvider.
type ProviderClient struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

// NewProviderClient creates a provider client with tuned HTTP transport.
// apiKey is the anon key or, for privileged deployments, the service-role
// key; it is attached to every request.
func NewProviderClient(baseURL, apiKey string, timeout time.Duration) *ProviderClient {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	return &ProviderClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// sessionPayload is the provider's token response shape.
type sessionPayload struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int64       `json:"expires_in"`
	ExpiresAt    int64       `json:"expires_at"`
	User         userPayload `json:"user"`
}

// userPayload is the provider's user object shape.
type userPayload struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	Metadata map[string]any `json:"user_metadata"`
}

// errorPayload covers the error shapes the provider emits across
// endpoints: token-endpoint grant errors and API errors.
type errorPayload struct {
	Error       string `json:"error"`
	ErrorCode   string `json:"error_code"`
	Description string `json:"error_description"`
	Msg         string `json:"msg"`
}

// SignUp registers a new account. Never retried: a duplicate submit
// could double-register or mask provider rate limiting.
func (c *ProviderClient) SignUp(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	body := map[string]string{"email": creds.Email, "password": creds.Password}
	return c.postSession(ctx, "/auth/v1/signup", body, c.classifySignUpError)
}

// SignIn exchanges credentials for a session via the password grant.
func (c *ProviderClient) SignIn(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	body := map[string]string{"email": creds.Email, "password": creds.Password}
	return c.postSession(ctx, "/auth/v1/token?grant_type=password", body, c.classifySignInError)
}

// Refresh exchanges a refresh token for a new session pair. The provider
// invalidates the old pair; the caller must discard it.
func (c *ProviderClient) Refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	body := map[string]string{"refresh_token": refreshToken}
	return c.postSession(ctx, "/auth/v1/token?grant_type=refresh_token", body, c.classifyTokenError)
}

// GetUser resolves an access token to the identity it represents.
func (c *ProviderClient) GetUser(ctx context.Context, accessToken string) (*domain.Identity, error) {
	resp, cancel, err := c.do(ctx, http.MethodGet, "/auth/v1/user", nil, accessToken)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.classifyTokenError(resp)
	}

	var user userPayload
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: decoding user response: %w", domain.ErrProviderUnavailable, err)
	}

	claims := map[string]any{"sub": user.ID, "email": user.Email}
	for k, v := range user.Metadata {
		claims[k] = v
	}

	return &domain.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Claims: claims,
	}, nil
}

// SignOut revokes the session behind the access token. Revoking an
// already-revoked token reports ErrInvalidToken, same as any other
// unknown token.
func (c *ProviderClient) SignOut(ctx context.Context, accessToken string) error {
	resp, cancel, err := c.do(ctx, http.MethodPost, "/auth/v1/logout", nil, accessToken)
	if err != nil {
		return err
	}
	defer cancel()
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return domain.ErrInvalidToken
	default:
		return fmt.Errorf("%w: logout returned status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}
}

// postSession posts a JSON body and decodes a session response, running
// classify on non-2xx statuses.
func (c *ProviderClient) postSession(ctx context.Context, path string, body any, classify func(*http.Response) error) (*domain.Session, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %w", domain.ErrProviderUnavailable, err)
	}

	resp, cancel, err := c.do(ctx, http.MethodPost, path, bytes.NewReader(payload), "")
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classify(resp)
	}

	var session sessionPayload
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("%w: decoding session response: %w", domain.ErrProviderUnavailable, err)
	}

	if session.AccessToken == "" || session.User.ID == "" {
		return nil, fmt.Errorf("%w: incomplete session in provider response", domain.ErrProviderUnavailable)
	}

	expiresAt := time.Unix(session.ExpiresAt, 0)
	if session.ExpiresAt == 0 {
		expiresAt = time.Now().Add(time.Duration(session.ExpiresIn) * time.Second)
	}

	return &domain.Session{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		ExpiresAt:    expiresAt,
		UserID:       session.User.ID,
		UserEmail:    session.User.Email,
	}, nil
}

// do issues a single request with the per-call timeout applied. The
// returned cancel must stay deferred in the caller until the response
// body has been fully consumed; canceling earlier aborts the body read.
// A transport failure or timeout surfaces as ErrProviderUnavailable.
func (c *ProviderClient) do(ctx context.Context, method, path string, body io.Reader, bearer string) (*http.Response, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}

	req.Header.Set("apikey", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}
	return resp, cancel, nil
}

// readError drains the error body. Payload content is used for
// classification only and never propagated to callers.
func readError(resp *http.Response) errorPayload {
	var p errorPayload
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return p
	}
	_ = json.Unmarshal(data, &p)
	return p
}

func (c *ProviderClient) classifySignUpError(resp *http.Response) error {
	p := readError(resp)
	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if p.ErrorCode == "user_already_exists" || p.ErrorCode == "email_exists" ||
			strings.Contains(strings.ToLower(p.Msg), "already registered") {
			return domain.ErrAlreadyExists
		}
		return domain.ErrValidationFailed
	case http.StatusConflict:
		return domain.ErrAlreadyExists
	case http.StatusTooManyRequests:
		return domain.ErrRateLimited
	default:
		return fmt.Errorf("%w: signup returned status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}
}

func (c *ProviderClient) classifySignInError(resp *http.Response) error {
	p := readError(resp)
	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized:
		return domain.ErrInvalidCredentials
	case http.StatusForbidden, http.StatusLocked:
		return domain.ErrAccountLocked
	case http.StatusTooManyRequests:
		return domain.ErrRateLimited
	default:
		if p.ErrorCode == "user_banned" {
			return domain.ErrAccountLocked
		}
		return fmt.Errorf("%w: sign-in returned status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}
}

// classifyTokenError covers refresh and get-user failures, where the
// provider distinguishes expired sessions from unknown or revoked tokens.
func (c *ProviderClient) classifyTokenError(resp *http.Response) error {
	p := readError(resp)
	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		if p.ErrorCode == "session_expired" || p.ErrorCode == "refresh_token_expired" ||
			strings.Contains(strings.ToLower(p.Msg), "expired") ||
			strings.Contains(strings.ToLower(p.Description), "expired") {
			return domain.ErrExpired
		}
		return domain.ErrInvalidToken
	case http.StatusTooManyRequests:
		return domain.ErrRateLimited
	default:
		return fmt.Errorf("%w: provider returned status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}
}
