package httpx

import (
	"log/slog"
	"net/http"

	"github.com/collabhub/collabhub-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth         *service.AuthService
	Sessions     *service.SessionManager
	PostAuth     *service.PostAuthRouter
	Profiles     *service.ProfileService
	Onboarding   *service.OnboardingService
	CookieDomain string
	Logger       *slog.Logger
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if services.Auth != nil {
		authHandlers := &AuthHandlers{
			Svc:          services.Auth,
			Router:       services.PostAuth,
			CookieDomain: services.CookieDomain,
			Logger:       logger,
		}
		// The session manager is optional; a nil interface keeps the
		// handlers' dispatch guard meaningful.
		if services.Sessions != nil {
			authHandlers.Events = services.Sessions
		}
		registerAuthRoutes(mux, authHandlers)
	} else {
		registerAuthUnavailableRoutes(mux)
	}

	requireSession := sessionWrap(services.Auth)

	profileHandlers := &ProfileHandlers{Svc: services.Profiles}
	mux.Handle("POST /api/v1/profiles/influencer", requireSession(http.HandlerFunc(profileHandlers.CreateInfluencer)))
	mux.Handle("GET /api/v1/profiles/influencer/{userID}", requireSession(http.HandlerFunc(profileHandlers.GetInfluencer)))
	mux.Handle("PUT /api/v1/profiles/influencer/{userID}", requireSession(http.HandlerFunc(profileHandlers.UpdateInfluencer)))
	mux.Handle("POST /api/v1/profiles/brand", requireSession(http.HandlerFunc(profileHandlers.CreateBrand)))
	mux.Handle("GET /api/v1/profiles/brand/{userID}", requireSession(http.HandlerFunc(profileHandlers.GetBrand)))
	mux.Handle("GET /api/v1/profiles/completion/{userID}", requireSession(http.HandlerFunc(profileHandlers.GetCompletion)))

	onboardingHandlers := &OnboardingHandlers{Svc: services.Onboarding}
	mux.Handle("POST /api/v1/onboarding", requireSession(http.HandlerFunc(onboardingHandlers.Submit)))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	var handler http.Handler = mux
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.Handle("GET /auth/login", http.HandlerFunc(h.Login))
	mux.Handle("GET /auth/callback", http.HandlerFunc(h.Callback))
	mux.Handle("POST /auth/logout", http.HandlerFunc(h.Logout))
	mux.Handle("GET /auth/status", http.HandlerFunc(h.Status))
}

// sessionWrap fails closed when auth is not configured so protected routes
// never run without a verified session.
func sessionWrap(auth *service.AuthService) func(http.Handler) http.Handler {
	if auth == nil {
		return func(http.Handler) http.Handler {
			return http.HandlerFunc(authUnavailable)
		}
	}
	return RequireSession(auth)
}

func registerAuthUnavailableRoutes(mux *http.ServeMux) {
	mux.Handle("GET /auth/login", http.HandlerFunc(authUnavailable))
	mux.Handle("GET /auth/callback", http.HandlerFunc(authUnavailable))
	mux.Handle("POST /auth/logout", http.HandlerFunc(authUnavailable))
	mux.Handle("GET /auth/status", http.HandlerFunc(authUnavailable))
}

func authUnavailable(w http.ResponseWriter, _ *http.Request) {
	WriteDetail(w, http.StatusServiceUnavailable, "authentication is not configured")
}
