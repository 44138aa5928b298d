package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/collabhub/collabhub-api/internal/domain/auth"
	domainprofile "github.com/collabhub/collabhub-api/internal/domain/profile"
	mockauth "github.com/collabhub/collabhub-api/internal/mocks/auth"
	mockprofile "github.com/collabhub/collabhub-api/internal/mocks/profile"
	mockstorage "github.com/collabhub/collabhub-api/internal/mocks/storage"
	"github.com/collabhub/collabhub-api/internal/service"
)

type authFixture struct {
	handler     http.Handler
	sessions    *mockauth.MemorySessionStore
	profiles    *mockprofile.MemoryProfileRepo
	influencers *mockprofile.MemoryInfluencerRepo
	brands      *mockprofile.MemoryBrandRepo
	manager     *service.SessionManager
}

func newAuthFixture() authFixture {
	sessions := mockauth.NewMemorySessionStore()
	profiles := mockprofile.NewMemoryProfileRepo()
	influencers := mockprofile.NewMemoryInfluencerRepo()
	brands := mockprofile.NewMemoryBrandRepo()
	provider := mockauth.NewMockAuthProvider()

	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Provider: provider,
		Sessions: sessions,
		Profiles: profiles,
	})
	postAuth := service.NewPostAuthRouter(service.PostAuthRouterOptions{
		Repos: service.ProfileReaders{
			Profiles:    profiles,
			Influencers: influencers,
			Brands:      brands,
		},
		Retry: service.RetryConfig{Attempts: 1, Backoff: 0},
	})
	profileSvc := service.NewProfileService(service.ProfileServiceOptions{
		Repos: service.ProfileWriters{
			Profiles:    profiles,
			Influencers: influencers,
			Brands:      brands,
		},
	})
	onboardingSvc := service.NewOnboardingService(service.OnboardingServiceOptions{
		Repos: service.ProfileWriters{
			Profiles:    profiles,
			Influencers: influencers,
			Brands:      brands,
		},
		Storage: service.StorageOptions{Store: mockstorage.NewMemoryObjectStore(), Bucket: "profile-images"},
	})

	manager := service.NewSessionManager(service.SessionManagerOptions{
		Sessions: sessions,
		Profiles: profiles,
		Provider: provider,
	})

	handler := NewRouter(RouterServices{
		Auth:       authSvc,
		Sessions:   manager,
		PostAuth:   postAuth,
		Profiles:   profileSvc,
		Onboarding: onboardingSvc,
	})
	return authFixture{
		handler:     handler,
		sessions:    sessions,
		profiles:    profiles,
		influencers: influencers,
		brands:      brands,
		manager:     manager,
	}
}

// startSessionLoop runs the manager's event loop for the test's lifetime.
func startSessionLoop(t *testing.T, f authFixture) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = f.manager.Run(ctx) }()
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLogin_RedirectsToProviderWithCookies(t *testing.T) {
	f := newAuthFixture()

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://mock-idp/auth", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.NotNil(t, cookieByName(cookies, "oauth_state"))
	require.NotNil(t, cookieByName(cookies, "oauth_nonce"))
	require.NotNil(t, cookieByName(cookies, "post_login_redirect"))
}

func TestLogin_RejectsAbsoluteRedirect(t *testing.T) {
	f := newAuthFixture()

	req := httptest.NewRequest(http.MethodGet, "/auth/login?redirect_uri=https://evil.example/", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	redirect := cookieByName(rec.Result().Cookies(), "post_login_redirect")
	require.NotNil(t, redirect)
	assert.Equal(t, "/", redirect.Value)
}

func callbackRequest(state, nonce string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state="+state, nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: state})
	req.AddCookie(&http.Cookie{Name: "oauth_nonce", Value: nonce})
	return req
}

func TestCallback_FirstSignInRoutesToOnboarding(t *testing.T) {
	f := newAuthFixture()

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, callbackRequest("state-1", "nonce-1"))

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/onboarding", rec.Header().Get("Location"))

	// session cookie set and persisted
	sess := cookieByName(rec.Result().Cookies(), "session_id")
	require.NotNil(t, sess)
	assert.NotEmpty(t, sess.Value)
	assert.Equal(t, 1, f.sessions.Len())

	// starter profile synthesized with default role
	p, err := f.profiles.GetByUserID(context.Background(), "mock-user-1")
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleInfluencer, p.Role)
}

func TestCallback_CompleteInfluencerRoutesToBrandDiscovery(t *testing.T) {
	f := newAuthFixture()
	f.profiles.Seed(domainprofile.Profile{UserID: "mock-user-1", Role: domainauth.RoleInfluencer})
	f.influencers.Seed(domainprofile.InfluencerProfile{
		UserID:          "mock-user-1",
		DisplayName:     "Mock User",
		PrimaryCategory: domainprofile.CategoryTechnology,
	})

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, callbackRequest("state-1", "nonce-1"))

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/brand-discovery", rec.Header().Get("Location"))
}

func TestCallback_ExplicitRedirectWins(t *testing.T) {
	f := newAuthFixture()

	req := callbackRequest("state-1", "nonce-1")
	req.AddCookie(&http.Cookie{Name: "post_login_redirect", Value: "/settings"})
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/settings", rec.Header().Get("Location"))
}

func TestCallback_StateMismatch(t *testing.T) {
	f := newAuthFixture()

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=forged", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "state-1"})
	req.AddCookie(&http.Cookie{Name: "oauth_nonce", Value: "nonce-1"})
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCallback_MissingCode(t *testing.T) {
	f := newAuthFixture()

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?state=s", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func seedSession(t *testing.T, f authFixture, userID string) domainauth.Session {
	t.Helper()
	sess := domainauth.Session{
		ID:        "sess-" + userID,
		UserID:    userID,
		Username:  "u-" + userID,
		FirstName: "Test",
		LastName:  "User",
		Email:     userID + "@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, f.sessions.Save(context.Background(), sess))
	return sess
}

func TestLogout_InvalidatesAndClearsCookie(t *testing.T) {
	f := newAuthFixture()
	sess := seedSession(t, f, "u1")

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: sess.ID})
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, 0, f.sessions.Len())

	cleared := cookieByName(rec.Result().Cookies(), "session_id")
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestLogout_BackendFailurePropagatesAndKeepsCookie(t *testing.T) {
	f := newAuthFixture()
	sess := seedSession(t, f, "u1")
	f.sessions.FailDelete = errors.New("redis down")

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: sess.ID})
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Nil(t, cookieByName(rec.Result().Cookies(), "session_id"), "cookie must survive a failed logout")
}

func TestCallback_SignedInReachesSessionManager(t *testing.T) {
	f := newAuthFixture()
	startSessionLoop(t, f)

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, callbackRequest("state-1", "nonce-1"))
	require.Equal(t, http.StatusFound, rec.Code)

	require.Eventually(t, func() bool {
		state := f.manager.State()
		return state.Authenticated() && state.Identity != nil
	}, 2*time.Second, 10*time.Millisecond, "callback must flow through the session event loop")

	state := f.manager.State()
	assert.Equal(t, "mock-user-1", state.Session.UserID)
	assert.Equal(t, "mock-user-1", state.Identity.UserID)
}

func TestLogout_SignedOutReachesSessionManager(t *testing.T) {
	f := newAuthFixture()
	startSessionLoop(t, f)
	sess := seedSession(t, f, "u1")

	f.manager.Dispatch(domainauth.EventSignedIn, &sess)
	require.Eventually(t, func() bool {
		return f.manager.State().Authenticated()
	}, 2*time.Second, 10*time.Millisecond)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: sess.ID})
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusFound, rec.Code)

	require.Eventually(t, func() bool {
		state := f.manager.State()
		return !state.Authenticated() && state.Identity == nil && state.Profile == nil
	}, 2*time.Second, 10*time.Millisecond, "logout must clear the session state")
}

func TestStatus_Unauthenticated(t *testing.T) {
	f := newAuthFixture()

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["authenticated"])
}

func TestStatus_Authenticated(t *testing.T) {
	f := newAuthFixture()
	sess := seedSession(t, f, "u1")

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: sess.ID})
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["authenticated"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "u1", user["id"])
}

func TestRouter_AuthNotConfigured(t *testing.T) {
	handler := NewRouter(RouterServices{})

	for _, path := range []string{"/auth/status", "/api/v1/profiles/influencer/u1"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
	}
}

func TestHealthz(t *testing.T) {
	f := newAuthFixture()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
