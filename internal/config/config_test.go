package config

import (
	"testing"
	"time"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestParse_Defaults(t *testing.T) {
	t.Setenv("STORAGE", "memory")
	t.Setenv("JWT_SECRET", secret)

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.AppPort != "8080" || cfg.JWTExpiration != 24*time.Hour || cfg.AuthRateLimit != 5 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "http://localhost:*" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("STORAGE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/pm")
	t.Setenv("JWT_SECRET", secret)
	t.Setenv("JWT_EXPIRATION", "90m")
	t.Setenv("API_RATE_LIMIT", "7")
	t.Setenv("AUTH_RATE_WINDOW_SECONDS", "30")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("BCRYPT_COST", "not-a-number")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.JWTExpiration != 90*time.Minute || cfg.APIRateLimit != 7 || cfg.AuthRateWindow != 30*time.Second {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("invalid BCRYPT_COST should keep default, got %d", cfg.BcryptCost)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"missing database url", map[string]string{"STORAGE": "postgres", "DATABASE_URL": "", "JWT_SECRET": secret}},
		{"missing secret", map[string]string{"STORAGE": "memory", "JWT_SECRET": ""}},
		{"short secret", map[string]string{"STORAGE": "memory", "JWT_SECRET": "short"}},
		{"bad storage", map[string]string{"STORAGE": "sqlite", "JWT_SECRET": secret}},
		{"bad expiration", map[string]string{"STORAGE": "memory", "JWT_SECRET": secret, "JWT_EXPIRATION": "-1h"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Parse(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
