package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: Authentication configuration
//   - database.go: Database and session store configuration
//   - http.go: HTTP server configuration
//   - storage.go: Object storage configuration
type AppConfig struct {
	// IsDev controls development mode behavior (mock auth defaults, etc.)
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Authentication configuration
	Auth AuthConfig

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Object storage configuration
	Storage StorageConfig `envPrefix:"STORAGE_"`

	// Profile bootstrap (post-auth) configuration
	ProfileBootstrap ProfileBootstrapConfig `envPrefix:"PROFILE_BOOTSTRAP_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.ProfileBootstrap.Sanitize()
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// MissingWarnings returns human-readable warnings for configuration that is
// absent but expected. Missing backend settings degrade features at runtime
// instead of failing startup.
func (c *AppConfig) MissingWarnings() []string {
	var warnings []string
	if c.Auth.Mode == AuthModeOAuth && c.Auth.OAuth.DiscoveryURL == "" {
		warnings = append(warnings, "OAUTH_DISCOVERY_URL is not set; sign-in will be disabled")
	}
	if c.Storage.BaseURL == "" {
		warnings = append(warnings, "STORAGE_BASE_URL is not set; profile image uploads will be skipped")
	}
	return warnings
}
