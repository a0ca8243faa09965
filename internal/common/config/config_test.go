package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/twitclone/backend/internal/common/config"
	"github.com/twitclone/backend/internal/common/constants"
)

const testSecret = "test-secret-key-must-be-at-least-32-bytes-long"

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/twitclone")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.HTTPPort != constants.DefaultHTTPPort {
		t.Errorf("expected default port %s, got %s", constants.DefaultHTTPPort, cfg.HTTPPort)
	}
	if cfg.TokenTTL != constants.DefaultTokenTTL {
		t.Errorf("expected default token TTL %v, got %v", constants.DefaultTokenTTL, cfg.TokenTTL)
	}
	if cfg.JWTSecret != testSecret {
		t.Error("expected the secret to be carried through")
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/twitclone")

	_, err := config.Load()
	if !errors.Is(err, config.ErrMissingRequiredEnv) {
		t.Fatalf("expected ErrMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_ShortJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "too-short")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/twitclone")

	_, err := config.Load()
	if !errors.Is(err, config.ErrInvalidJWTSecret) {
		t.Fatalf("expected ErrInvalidJWTSecret, got %v", err)
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DATABASE_URL", "")

	_, err := config.Load()
	if !errors.Is(err, config.ErrMissingRequiredEnv) {
		t.Fatalf("expected ErrMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("TOKEN_TTL", "2m")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.HTTPPort)
	}
	if cfg.TokenTTL != 2*time.Minute {
		t.Errorf("expected token TTL 2m, got %v", cfg.TokenTTL)
	}
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	setRequired(t)
	t.Setenv("TOKEN_TTL", "not-a-duration")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.TokenTTL != constants.DefaultTokenTTL {
		t.Errorf("expected fallback TTL %v, got %v", constants.DefaultTokenTTL, cfg.TokenTTL)
	}
}
