package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth uses OAuth/OIDC for authentication.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// OAuthConfig contains OAuth/OIDC configuration for the sign-in provider.
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:"collabhub"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	UserID    string `env:"USER_ID"    envDefault:"dev-user"`
	Email     string `env:"EMAIL"      envDefault:"dev@example.com"`
	FirstName string `env:"FIRST_NAME" envDefault:"Dev"`
	LastName  string `env:"LAST_NAME"  envDefault:"User"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// SessionTTL caps session lifetime when the provider does not supply an expiry.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"8h"`
}

// ProfileBootstrapConfig tunes the post-auth profile lookup that tolerates
// asynchronous backend-side provisioning after first sign-in.
type ProfileBootstrapConfig struct {
	// Attempts is the number of profile lookups before synthesizing one.
	Attempts int `env:"ATTEMPTS" envDefault:"4"`

	// Backoff is the linear delay between lookup attempts.
	Backoff time.Duration `env:"BACKOFF" envDefault:"500ms"`
}

// Sanitize clamps bootstrap settings to sane bounds.
func (p *ProfileBootstrapConfig) Sanitize() {
	if p.Attempts < 1 {
		p.Attempts = 1
	}
	if p.Attempts > 10 {
		p.Attempts = 10
	}
	if p.Backoff < 0 {
		p.Backoff = 0
	}
}
