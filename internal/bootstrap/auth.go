package bootstrap

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/collabhub/collabhub-api/config"
	"github.com/collabhub/collabhub-api/internal/adapters/devauth"
	"github.com/collabhub/collabhub-api/internal/adapters/oidc"
	redisadapter "github.com/collabhub/collabhub-api/internal/adapters/redis"
	"github.com/collabhub/collabhub-api/internal/ports"
	"github.com/collabhub/collabhub-api/internal/service"
)

// AuthConfig contains configuration for the auth service.
type AuthConfig struct {
	Auth        config.AuthConfig
	RedisClient redis.UniversalClient
	Profiles    ports.ProfileRepository
	Logger      *slog.Logger
}

// AuthComponents groups the auth service with the adapters it shares with
// the session manager.
type AuthComponents struct {
	Service  *service.AuthService
	Provider ports.AuthProvider
	Sessions ports.SessionStore
}

// BuildAuth creates the auth service and its backing adapters based on the
// configured auth mode. Returns zero components if auth is not configured or
// configuration is invalid; the application then runs with sign-in disabled.
func BuildAuth(cfg AuthConfig) AuthComponents {
	if cfg.RedisClient == nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("auth service disabled: redis client not configured", "mode", cfg.Auth.Mode)
		}
		return AuthComponents{}
	}

	provider := buildAuthProvider(cfg)
	if provider == nil {
		return AuthComponents{}
	}

	// Redis session store shared by the auth service and session manager
	sessionStore := redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, "session:")

	svc := service.NewAuthService(service.AuthServiceOptions{
		Provider: provider,
		Sessions: sessionStore,
		Profiles: cfg.Profiles,
	})

	return AuthComponents{
		Service:  svc,
		Provider: provider,
		Sessions: sessionStore,
	}
}

//nolint:ireturn // provider selection happens at runtime based on auth mode.
func buildAuthProvider(cfg AuthConfig) ports.AuthProvider {
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		return buildDevAuthProvider(cfg)

	case config.AuthModeOAuth:
		return buildOAuthProvider(cfg)

	default:
		return nil
	}
}

//nolint:ireturn // see buildAuthProvider.
func buildDevAuthProvider(cfg AuthConfig) ports.AuthProvider {
	// Explicitly enabled dev auth mode; build a local provider.
	prov, err := devauth.NewProvider(devauth.Config{
		UserID:          cfg.Auth.DevAuth.UserID,
		Email:           cfg.Auth.DevAuth.Email,
		FirstName:       cfg.Auth.DevAuth.FirstName,
		LastName:        cfg.Auth.DevAuth.LastName,
		SessionDuration: cfg.Auth.SessionTTL,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create dev auth provider, auth disabled", "error", err)
		}
		return nil
	}
	return prov
}

//nolint:ireturn // see buildAuthProvider.
func buildOAuthProvider(cfg AuthConfig) ports.AuthProvider {
	// Only enable when fully configured
	oauth := cfg.Auth.OAuth
	if oauth.DiscoveryURL == "" || oauth.ClientID == "" || oauth.ClientSecret == "" {
		if cfg.Logger != nil {
			cfg.Logger.Warn("AuthModeOAuth selected but required config missing; auth disabled",
				"discovery_url_empty", oauth.DiscoveryURL == "",
				"client_id_empty", oauth.ClientID == "",
				"client_secret_empty", oauth.ClientSecret == "",
			)
		}
		return nil
	}

	prov, err := oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     oauth.ClientID,
		ClientSecret: oauth.ClientSecret,
		RedirectURL:  oauth.RedirectURL,
		Scope:        oauth.Scope,
		DiscoveryURL: oauth.DiscoveryURL,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create OIDC provider, auth disabled", "error", err)
		}
		return nil
	}
	return prov
}
