package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAuthModeUnmarshalText(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    AuthMode
		expectError bool
	}{
		{name: "oauth", input: "oauth", expected: AuthModeOAuth},
		{name: "mock", input: "mock", expected: AuthModeMock},
		{name: "uppercase folds", input: "OAuth", expected: AuthModeOAuth},
		{name: "unknown mode", input: "saml", expectError: true},
		{name: "empty", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m AuthMode
			err := m.UnmarshalText([]byte(tt.input))
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for input %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m != tt.expected {
				t.Fatalf("got %q, want %q", m, tt.expected)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr default = %q, want :8080", cfg.HTTP.Addr)
	}
	if cfg.Postgres.Port != 5432 {
		t.Errorf("Postgres.Port default = %d, want 5432", cfg.Postgres.Port)
	}
	if cfg.Auth.Mode != AuthModeOAuth {
		t.Errorf("Auth.Mode default = %q, want oauth", cfg.Auth.Mode)
	}
	if cfg.Storage.Bucket != "profile-images" {
		t.Errorf("Storage.Bucket default = %q, want profile-images", cfg.Storage.Bucket)
	}
	if cfg.ProfileBootstrap.Attempts != 4 {
		t.Errorf("ProfileBootstrap.Attempts default = %d, want 4", cfg.ProfileBootstrap.Attempts)
	}
	if cfg.ProfileBootstrap.Backoff != 500*time.Millisecond {
		t.Errorf("ProfileBootstrap.Backoff default = %v, want 500ms", cfg.ProfileBootstrap.Backoff)
	}
}

func TestProfileBootstrapSanitize(t *testing.T) {
	p := ProfileBootstrapConfig{Attempts: 0, Backoff: -time.Second}
	p.Sanitize()
	if p.Attempts != 1 {
		t.Errorf("Attempts = %d, want clamp to 1", p.Attempts)
	}
	if p.Backoff != 0 {
		t.Errorf("Backoff = %v, want clamp to 0", p.Backoff)
	}

	p = ProfileBootstrapConfig{Attempts: 50, Backoff: time.Second}
	p.Sanitize()
	if p.Attempts != 10 {
		t.Errorf("Attempts = %d, want clamp to 10", p.Attempts)
	}
}

func TestMissingWarnings(t *testing.T) {
	cfg := AppConfig{Auth: AuthConfig{Mode: AuthModeOAuth}}
	warnings := cfg.MissingWarnings()
	if len(warnings) != 2 {
		t.Fatalf("got %d warnings, want 2: %v", len(warnings), warnings)
	}

	cfg.Auth.OAuth.DiscoveryURL = "https://idp.example.com"
	cfg.Storage.BaseURL = "https://storage.example.com"
	if w := cfg.MissingWarnings(); len(w) != 0 {
		t.Fatalf("got warnings with full config: %v", w)
	}
}
