package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Port != 3000 {
		t.Errorf("App.Port = %d, want 3000", cfg.App.Port)
	}
	if cfg.Auth.CookieName != "token" {
		t.Errorf("Auth.CookieName = %q, want token", cfg.Auth.CookieName)
	}
	if cfg.Auth.JWTTTL != 24*time.Hour {
		t.Errorf("Auth.JWTTTL = %v, want 24h", cfg.Auth.JWTTTL)
	}
	if !cfg.Auth.AllowSignup {
		t.Error("Auth.AllowSignup should default to true")
	}
	if cfg.Blog.PageSize != 10 {
		t.Errorf("Blog.PageSize = %d, want 10", cfg.Blog.PageSize)
	}
	if cfg.Postgres.StoreTimeout != 5*time.Second {
		t.Errorf("Postgres.StoreTimeout = %v, want 5s", cfg.Postgres.StoreTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8081")
	t.Setenv("JWT_TTL", "0s")
	t.Setenv("ALLOW_SIGNUP", "false")
	t.Setenv("PAGE_SIZE", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.App.Port != 8081 {
		t.Errorf("App.Port = %d, want 8081", cfg.App.Port)
	}
	if cfg.Auth.JWTTTL != 0 {
		t.Errorf("Auth.JWTTTL = %v, want 0", cfg.Auth.JWTTTL)
	}
	if cfg.Auth.AllowSignup {
		t.Error("Auth.AllowSignup should be false")
	}
	if cfg.Blog.PageSize != 5 {
		t.Errorf("Blog.PageSize = %d, want 5", cfg.Blog.PageSize)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "non-numeric port", key: "APP_PORT", val: "abc"},
		{name: "bad duration", key: "JWT_TTL", val: "soon"},
		{name: "zero page size", key: "PAGE_SIZE", val: "0"},
		{name: "negative page size", key: "PAGE_SIZE", val: "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.val)
			}
			if !errors.Is(err, ErrMisconfigured) {
				t.Fatalf("Load() error = %v, want ErrMisconfigured", err)
			}
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	tests := []struct {
		name    string
		cfg     PostgresConfig
		want    string
		wantErr bool
	}{
		{
			name: "database url wins",
			cfg:  PostgresConfig{DatabaseURL: "postgres://a@b/c", User: "x", Database: "y"},
			want: "postgres://a@b/c",
		},
		{
			name: "assembled with password",
			cfg: PostgresConfig{
				Host: "db", Port: "5432", User: "blog", Password: "pw", Database: "blog", SSLMode: "disable",
			},
			want: "postgres://blog:pw@db:5432/blog?sslmode=disable",
		},
		{
			name: "assembled without password",
			cfg:  PostgresConfig{Host: "localhost", Port: "5433", User: "blog", Database: "blog", SSLMode: "require"},
			want: "postgres://blog@localhost:5433/blog?sslmode=require",
		},
		{
			name:    "missing user",
			cfg:     PostgresConfig{Host: "localhost", Port: "5432", Database: "blog"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.DSN()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("DSN() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("DSN() = %q, want %q", got, tt.want)
			}
		})
	}
}
