package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/collabhub/collabhub-api/config"
	"github.com/collabhub/collabhub-api/internal/data"
	"github.com/collabhub/collabhub-api/internal/ports"
	"github.com/collabhub/collabhub-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth       *service.AuthService
	Sessions   *service.SessionManager
	PostAuth   *service.PostAuthRouter
	Onboarding *service.OnboardingService
	Profiles   *service.ProfileService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	ProfileRepo    *data.ProfileRepo
	InfluencerRepo *data.InfluencerRepo
	BrandRepo      *data.BrandRepo
}

func buildRepositories(db *sql.DB) *serviceRepositories {
	return &serviceRepositories{
		ProfileRepo:    data.NewProfileRepo(db),
		InfluencerRepo: data.NewInfluencerRepo(db),
		BrandRepo:      data.NewBrandRepo(db),
	}
}

// NewServices wires repositories and adapters into the application services.
func NewServices(deps *ServiceDeps) ServiceContainer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	repos := buildRepositories(deps.DB)

	auth := BuildAuth(AuthConfig{
		Auth:        cfg.Auth,
		RedisClient: deps.RedisClient,
		Profiles:    repos.ProfileRepo,
		Logger:      logger,
	})

	postAuth := service.NewPostAuthRouter(service.PostAuthRouterOptions{
		Repos: service.ProfileReaders{
			Profiles:    repos.ProfileRepo,
			Influencers: repos.InfluencerRepo,
			Brands:      repos.BrandRepo,
		},
		Retry: service.RetryConfig{
			Attempts: cfg.ProfileBootstrap.Attempts,
			Backoff:  cfg.ProfileBootstrap.Backoff,
		},
		Logger: logger,
	})

	// The typed-nil check matters here: OnboardingService skips uploads only
	// when the interface itself is nil.
	var store ports.ObjectStorage
	if client := BuildStorageClient(cfg.Storage, logger); client != nil {
		store = client
	}

	writers := service.ProfileWriters{
		Profiles:    repos.ProfileRepo,
		Influencers: repos.InfluencerRepo,
		Brands:      repos.BrandRepo,
	}

	onboarding := service.NewOnboardingService(service.OnboardingServiceOptions{
		Repos: writers,
		Storage: service.StorageOptions{
			Store:  store,
			Bucket: cfg.Storage.Bucket,
		},
		Logger: logger,
	})

	profiles := service.NewProfileService(service.ProfileServiceOptions{
		Repos: writers,
	})

	var sessions *service.SessionManager
	if auth.Service != nil {
		sessions = service.NewSessionManager(service.SessionManagerOptions{
			Sessions: auth.Sessions,
			Profiles: repos.ProfileRepo,
			Provider: auth.Provider,
		})
	}

	return ServiceContainer{
		Auth:       auth.Service,
		Sessions:   sessions,
		PostAuth:   postAuth,
		Onboarding: onboarding,
		Profiles:   profiles,
	}
}

// ServiceOrchestrationConfig groups dependencies for the service runtime.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunServicesWithShutdown starts the HTTP server and session manager loop,
// then blocks until a termination signal arrives and everything drains.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
	})

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Services.Sessions != nil {
		g.Go(func() error {
			if err := cfg.Services.Sessions.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		return ShutdownHTTPServer(ShutdownConfig{
			Context: context.Background(),
			Server:  server,
			Logger:  logger,
		})
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
