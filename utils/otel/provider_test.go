package otel

import (
	"context"
	"testing"
)

func TestConfigFromEnv(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		t.Setenv("OTEL_SERVICE_NAME", "")
		t.Setenv("OTEL_ENABLED", "")

		cfg := ConfigFromEnv()

		if cfg.ServiceName != "auth-gateway" {
			t.Errorf("expected ServiceName 'auth-gateway', got %s", cfg.ServiceName)
		}
		if !cfg.Enabled {
			t.Error("expected Enabled to be true by default")
		}
	})

	t.Run("disabled via env", func(t *testing.T) {
		t.Setenv("OTEL_ENABLED", "false")

		cfg := ConfigFromEnv()

		if cfg.Enabled {
			t.Error("expected Enabled to be false")
		}
	})
}

func TestInitProvider_Disabled(t *testing.T) {
	cfg := Config{
		ServiceName:  "test",
		Enabled:      false,
		OTLPEndpoint: "http://localhost:4318",
	}

	shutdown, err := InitProvider(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown returned error: %v", err)
	}
}
