package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	unsetEnvWithCleanup(t, "SERVER_PORT")
	unsetEnvWithCleanup(t, "WITHDRAW_MAX_RETRIES")
	unsetEnvWithCleanup(t, "RATE_LIMIT_PER_MINUTE")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ServerPort != "5000" {
		t.Fatalf("expected default server port 5000, got %q", cfg.ServerPort)
	}
	if cfg.WithdrawMaxRetries != 5 {
		t.Fatalf("expected default withdraw retries 5, got %d", cfg.WithdrawMaxRetries)
	}
	if cfg.EventExchange != "account_events" {
		t.Fatalf("expected default event exchange, got %q", cfg.EventExchange)
	}
	if cfg.CORSAllowedOrigins != "*" {
		t.Fatalf("expected default CORS origins, got %q", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	setEnvWithCleanup(t, "SERVER_PORT", "9100")
	setEnvWithCleanup(t, "DATABASE_URL", "postgres://localhost/quickbank")
	setEnvWithCleanup(t, "WITHDRAW_MAX_RETRIES", "8")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ServerPort != "9100" {
		t.Fatalf("expected server port from env, got %q", cfg.ServerPort)
	}
	if cfg.DatabaseURL != "postgres://localhost/quickbank" {
		t.Fatalf("expected database URL from env, got %q", cfg.DatabaseURL)
	}
	if cfg.WithdrawMaxRetries != 8 {
		t.Fatalf("expected withdraw retries from env, got %d", cfg.WithdrawMaxRetries)
	}
}

func setEnvWithCleanup(t *testing.T, key string, value string) {
	t.Helper()
	prev, hadPrev := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set env %s: %v", key, err)
	}
	t.Cleanup(func() {
		if hadPrev {
			_ = os.Setenv(key, prev)
			return
		}
		_ = os.Unsetenv(key)
	})
}

func unsetEnvWithCleanup(t *testing.T, key string) {
	t.Helper()
	prev, hadPrev := os.LookupEnv(key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset env %s: %v", key, err)
	}
	t.Cleanup(func() {
		if hadPrev {
			_ = os.Setenv(key, prev)
		}
	})
}
