package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration
type Config struct {
	ProviderURL        string        // Identity provider base URL
	ProviderAnonKey    string        // Anon API key
	ProviderServiceKey string        // Service-role API key
	Port               string        // Service port
	ProviderTimeout    time.Duration // Per-call provider timeout
	PasswordMinLength  int           // Local password floor
	ResolveCacheTTL    time.Duration // Resolve cache TTL, 0 disables
	AllowedOrigins     []string      // CORS allow-list, empty disables CORS
	GatewayTokenSecret string        // Secret for signing downstream JWT tokens
	GatewayTokenIssuer string        // JWT issuer claim
	GatewayTokenAud    string        // JWT audience claim
	GatewayTokenTTL    time.Duration // JWT token TTL
}

// Load reads configuration from environment variables with sensible defaults.
// Missing required configuration is a startup-time fatal condition, never a
// per-request error.
func Load() (*Config, error) {
	config := &Config{
		ProviderURL:        getEnv("PROVIDER_URL", ""),
		ProviderAnonKey:    getEnv("PROVIDER_ANON_KEY", ""),
		ProviderServiceKey: getEnv("PROVIDER_SERVICE_KEY", ""),
		Port:               getEnv("PORT", "8080"),
		ProviderTimeout:    5 * time.Second,
		PasswordMinLength:  8,
		ResolveCacheTTL:    0, // Disabled: revocation takes effect immediately
		GatewayTokenSecret: getEnv("GATEWAY_TOKEN_SECRET", ""),
		GatewayTokenIssuer: getEnv("GATEWAY_TOKEN_ISSUER", "auth-gateway"),
		GatewayTokenAud:    getEnv("GATEWAY_TOKEN_AUDIENCE", "backend"),
		GatewayTokenTTL:    5 * time.Minute,
	}

	if origins := getEnv("ALLOWED_ORIGINS", ""); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				config.AllowedOrigins = append(config.AllowedOrigins, origin)
			}
		}
	}

	if timeoutStr := os.Getenv("PROVIDER_TIMEOUT"); timeoutStr != "" {
		duration, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PROVIDER_TIMEOUT format: %w", err)
		}
		config.ProviderTimeout = duration
	}

	if ttlStr := os.Getenv("RESOLVE_CACHE_TTL"); ttlStr != "" {
		duration, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid RESOLVE_CACHE_TTL format: %w", err)
		}
		config.ResolveCacheTTL = duration
	}

	if ttlStr := os.Getenv("GATEWAY_TOKEN_TTL"); ttlStr != "" {
		duration, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid GATEWAY_TOKEN_TTL format: %w", err)
		}
		config.GatewayTokenTTL = duration
	}

	if minLenStr := os.Getenv("PASSWORD_MIN_LENGTH"); minLenStr != "" {
		minLen, err := strconv.Atoi(minLenStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PASSWORD_MIN_LENGTH format: %w", err)
		}
		config.PasswordMinLength = minLen
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// APIKey returns the key used against the provider: the service-role key
// when configured, otherwise the anon key.
func (c *Config) APIKey() string {
	if c.ProviderServiceKey != "" {
		return c.ProviderServiceKey
	}
	return c.ProviderAnonKey
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ProviderURL == "" {
		return fmt.Errorf("PROVIDER_URL cannot be empty")
	}

	if c.ProviderAnonKey == "" && c.ProviderServiceKey == "" {
		return fmt.Errorf("one of PROVIDER_ANON_KEY or PROVIDER_SERVICE_KEY must be set")
	}

	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("PROVIDER_TIMEOUT must be positive")
	}

	if c.PasswordMinLength < 1 {
		return fmt.Errorf("PASSWORD_MIN_LENGTH must be positive")
	}

	if c.ResolveCacheTTL < 0 {
		return fmt.Errorf("RESOLVE_CACHE_TTL cannot be negative")
	}

	return nil
}

// getEnv retrieves an environment variable or returns a fallback value
func getEnv(key, fallback string) string {
	// Check for _FILE suffix
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
