package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/collabhub/collabhub-api/internal/domain/auth"
	domainprofile "github.com/collabhub/collabhub-api/internal/domain/profile"
	apperrors "github.com/collabhub/collabhub-api/internal/errors"
	mockprofile "github.com/collabhub/collabhub-api/internal/mocks/profile"
)

type routerFixture struct {
	router      *PostAuthRouter
	profiles    *mockprofile.MemoryProfileRepo
	influencers *mockprofile.MemoryInfluencerRepo
	brands      *mockprofile.MemoryBrandRepo
}

func newRouterForTest(retry RetryConfig) routerFixture {
	profiles := mockprofile.NewMemoryProfileRepo()
	influencers := mockprofile.NewMemoryInfluencerRepo()
	brands := mockprofile.NewMemoryBrandRepo()
	router := NewPostAuthRouter(PostAuthRouterOptions{
		Repos: ProfileReaders{
			Profiles:    profiles,
			Influencers: influencers,
			Brands:      brands,
		},
		Retry: retry,
	})
	return routerFixture{router: router, profiles: profiles, influencers: influencers, brands: brands}
}

func fastRetry() RetryConfig {
	return RetryConfig{Attempts: 3, Backoff: time.Millisecond}
}

func TestPostAuthRouter_NilSession(t *testing.T) {
	f := newRouterForTest(fastRetry())
	dest := f.router.Resolve(context.Background(), nil)
	assert.Equal(t, DestSignIn, dest)
	assert.Equal(t, "/signin", dest.Path())
}

func TestPostAuthRouter_FirstSignIn_SynthesizesAndRoutesToOnboarding(t *testing.T) {
	f := newRouterForTest(fastRetry())
	sess := testSession("sess-1", "u1")
	sess.AvatarURL = "https://idp.example/avatar.png"

	dest := f.router.Resolve(context.Background(), &sess)
	assert.Equal(t, DestOnboarding, dest)

	// retried before giving up
	assert.Equal(t, 3, f.profiles.GetCalls)

	// starter profile persisted with the default role
	created, err := f.profiles.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleInfluencer, created.Role)
	assert.Equal(t, sess.Username, created.Username)
	require.NotNil(t, created.AvatarURL)
	assert.Equal(t, sess.AvatarURL, *created.AvatarURL)
}

func TestPostAuthRouter_SynthesizePersistFailureStillOnboarding(t *testing.T) {
	f := newRouterForTest(fastRetry())
	f.profiles.WriteErr = apperrors.Unavailable("db down")
	sess := testSession("sess-1", "u1")

	dest := f.router.Resolve(context.Background(), &sess)
	assert.Equal(t, DestOnboarding, dest)
}

func TestPostAuthRouter_RoleUnsetRoutesToOnboarding(t *testing.T) {
	f := newRouterForTest(fastRetry())
	f.profiles.Seed(domainprofile.Profile{UserID: "u1"})
	sess := testSession("sess-1", "u1")

	assert.Equal(t, DestOnboarding, f.router.Resolve(context.Background(), &sess))
}

func TestPostAuthRouter_IncompleteInfluencerRoutesToOnboarding(t *testing.T) {
	f := newRouterForTest(fastRetry())
	f.profiles.Seed(domainprofile.Profile{UserID: "u1", Role: domainauth.RoleInfluencer})
	// no influencer sub-profile row
	sess := testSession("sess-1", "u1")

	assert.Equal(t, DestOnboarding, f.router.Resolve(context.Background(), &sess))
}

func TestPostAuthRouter_CompleteInfluencerRoutesToBrandDiscovery(t *testing.T) {
	f := newRouterForTest(fastRetry())
	f.profiles.Seed(domainprofile.Profile{UserID: "u1", Role: domainauth.RoleInfluencer})
	f.influencers.Seed(domainprofile.InfluencerProfile{
		UserID:          "u1",
		DisplayName:     "Ada Codes",
		PrimaryCategory: domainprofile.CategoryTechnology,
	})
	sess := testSession("sess-1", "u1")

	dest := f.router.Resolve(context.Background(), &sess)
	assert.Equal(t, DestBrandDiscovery, dest)
	assert.Equal(t, "/brand-discovery", dest.Path())
	// profile existed; first lookup hit, no retries burned
	assert.Equal(t, 1, f.profiles.GetCalls)
}

func TestPostAuthRouter_CompleteBrandRoutesToInfluencerDiscovery(t *testing.T) {
	f := newRouterForTest(fastRetry())
	f.profiles.Seed(domainprofile.Profile{UserID: "u1", Role: domainauth.RoleBrand})
	f.brands.Seed(domainprofile.BrandProfile{UserID: "u1", CompanyName: "Acme"})
	sess := testSession("sess-1", "u1")

	dest := f.router.Resolve(context.Background(), &sess)
	assert.Equal(t, DestInfluencerDiscovery, dest)
	assert.Equal(t, "/influencer-discovery", dest.Path())
}

func TestPostAuthRouter_AdminRoutesToLanding(t *testing.T) {
	f := newRouterForTest(fastRetry())
	f.profiles.Seed(domainprofile.Profile{UserID: "u1", Role: domainauth.RoleAdmin})
	sess := testSession("sess-1", "u1")

	dest := f.router.Resolve(context.Background(), &sess)
	assert.Equal(t, DestLanding, dest)
	assert.Equal(t, "/", dest.Path())
}

func TestPostAuthRouter_LookupErrorDegradesToOnboarding(t *testing.T) {
	f := newRouterForTest(fastRetry())
	f.profiles.GetErr = apperrors.Internal("boom")
	sess := testSession("sess-1", "u1")

	assert.Equal(t, DestOnboarding, f.router.Resolve(context.Background(), &sess))
	// non-retryable error stops the loop immediately
	assert.Equal(t, 1, f.profiles.GetCalls)
}

func TestPostAuthRouter_UnavailableIsRetried(t *testing.T) {
	f := newRouterForTest(RetryConfig{Attempts: 4, Backoff: time.Millisecond})
	f.profiles.GetErr = apperrors.Unavailable("db warming up")
	sess := testSession("sess-1", "u1")

	assert.Equal(t, DestOnboarding, f.router.Resolve(context.Background(), &sess))
	assert.Equal(t, 4, f.profiles.GetCalls)
}

func TestRetryConfig_Sanitized(t *testing.T) {
	c := RetryConfig{}.sanitized()
	assert.Equal(t, 4, c.Attempts)
	assert.Equal(t, time.Duration(0), c.Backoff)

	c = RetryConfig{Attempts: 2, Backoff: -time.Second}.sanitized()
	assert.Equal(t, 2, c.Attempts)
	assert.Equal(t, time.Duration(0), c.Backoff)
}
