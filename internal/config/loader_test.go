package config

import (
	"os"
	"testing"
)

func TestLoader_ParseEnvironment(t *testing.T) {

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		unset := []string{
			"ADMINAPI_HTTP_PORT",
			"ADMINAPI_SQLITE_DSN",
			"ADMINAPI_RATE_LIMIT_RPS",
			"ADMINAPI_RATE_LIMIT_BURST",
		}
		for _, key := range unset {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}

		const token = "super-secret"
		t.Setenv("ADMINAPI_API_TOKEN", token)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 8080 {
			t.Fatalf("expected default HTTP port 8080, got %d", cfg.HTTPPort)
		}
		if cfg.SQLiteDSN != "file:adminapi.db?_foreign_keys=on" {
			t.Fatalf("unexpected default DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.APIToken != token {
			t.Fatalf("expected API token to be %q, got %q", token, cfg.APIToken)
		}
		if cfg.RateLimitRPS != 10 {
			t.Fatalf("expected default rate limit 10 rps, got %g", cfg.RateLimitRPS)
		}
		if cfg.RateLimitBurst != 20 {
			t.Fatalf("expected default burst 20, got %d", cfg.RateLimitBurst)
		}
	})

	t.Run("errors when required values are missing", func(t *testing.T) {
		for _, key := range []string{
			"ADMINAPI_API_TOKEN",
			"ADMINAPI_HTTP_PORT",
			"ADMINAPI_SQLITE_DSN",
		} {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error when required values are missing")
		}
		expected := "missing required environment variables: ADMINAPI_API_TOKEN"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})

	t.Run("parses numeric fields", func(t *testing.T) {
		t.Setenv("ADMINAPI_API_TOKEN", "token-value")
		t.Setenv("ADMINAPI_HTTP_PORT", "9090")
		t.Setenv("ADMINAPI_SQLITE_DSN", "file:/tmp/adminapi.db")
		t.Setenv("ADMINAPI_RATE_LIMIT_RPS", "2.5")
		t.Setenv("ADMINAPI_RATE_LIMIT_BURST", "5")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 9090 {
			t.Fatalf("expected HTTP port 9090, got %d", cfg.HTTPPort)
		}
		if cfg.SQLiteDSN != "file:/tmp/adminapi.db" {
			t.Fatalf("unexpected DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.RateLimitRPS != 2.5 {
			t.Fatalf("expected rate limit 2.5 rps, got %g", cfg.RateLimitRPS)
		}
		if cfg.RateLimitBurst != 5 {
			t.Fatalf("expected burst 5, got %d", cfg.RateLimitBurst)
		}
	})

	t.Run("rejects malformed numeric values", func(t *testing.T) {
		t.Setenv("ADMINAPI_API_TOKEN", "token-value")
		t.Setenv("ADMINAPI_HTTP_PORT", "not-a-port")

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error for malformed port")
		}
		expected := "invalid environment variable values: ADMINAPI_HTTP_PORT"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})
}
