package service

import (
	"context"
	"log/slog"
	"time"

	domainauth "github.com/collabhub/collabhub-api/internal/domain/auth"
	domainprofile "github.com/collabhub/collabhub-api/internal/domain/profile"
	apperrors "github.com/collabhub/collabhub-api/internal/errors"
	"github.com/collabhub/collabhub-api/internal/ports"
)

// Destination names the page a user lands on after authentication.
type Destination string

const (
	DestSignIn              Destination = "signin"
	DestOnboarding          Destination = "onboarding"
	DestBrandDiscovery      Destination = "brand-discovery"
	DestInfluencerDiscovery Destination = "influencer-discovery"
	DestLanding             Destination = "landing"
)

// Path returns the route path for the destination.
func (d Destination) Path() string {
	switch d {
	case DestSignIn:
		return "/signin"
	case DestOnboarding:
		return "/onboarding"
	case DestBrandDiscovery:
		return "/brand-discovery"
	case DestInfluencerDiscovery:
		return "/influencer-discovery"
	default:
		return "/"
	}
}

// ProfileReaders bundles the read side of the profile repositories.
type ProfileReaders struct {
	Profiles    ports.ProfileRepository
	Influencers ports.InfluencerRepository
	Brands      ports.BrandRepository
}

// RetryConfig bounds the profile lookup retry loop. Backoff is linear:
// attempt n sleeps n*Backoff before retrying.
type RetryConfig struct {
	Attempts int
	Backoff  time.Duration
}

func (c RetryConfig) sanitized() RetryConfig {
	if c.Attempts < 1 {
		c.Attempts = 4
	}
	if c.Backoff < 0 {
		c.Backoff = 0
	}
	return c
}

// PostAuthRouterOptions groups dependencies for PostAuthRouter.
type PostAuthRouterOptions struct {
	Repos  ProfileReaders
	Retry  RetryConfig
	Logger *slog.Logger
}

// PostAuthRouter makes the one-shot landing decision after a completed
// sign-in. Errors never surface to the user; every failure degrades to the
// safest destination.
type PostAuthRouter struct {
	repos  ProfileReaders
	retry  RetryConfig
	logger *slog.Logger
}

// NewPostAuthRouter constructs a new PostAuthRouter.
func NewPostAuthRouter(opts PostAuthRouterOptions) *PostAuthRouter {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PostAuthRouter{
		repos:  opts.Repos,
		retry:  opts.Retry.sanitized(),
		logger: logger.With("component", "post-auth-router"),
	}
}

// Resolve decides where the session's user lands. A nil session goes to
// sign-in; a user without a complete profile goes to onboarding; complete
// profiles dispatch on role.
func (r *PostAuthRouter) Resolve(ctx context.Context, session *domainauth.Session) Destination {
	if session == nil {
		return DestSignIn
	}

	profile, err := r.lookupWithRetry(ctx, session.UserID)
	if err != nil {
		// Absence exhausted the retries; the row may lag the identity
		// provider on first sign-in. Synthesize a starter profile.
		if apperrors.IsNotFound(err) {
			r.synthesizeProfile(ctx, session)
			return DestOnboarding
		}
		r.logger.WarnContext(ctx, "profile lookup failed, routing to onboarding", "user_id", session.UserID, "err", err)
		return DestOnboarding
	}

	if !profile.Role.IsSet() || !r.complete(ctx, profile) {
		return DestOnboarding
	}

	switch profile.Role {
	case domainauth.RoleInfluencer:
		return DestBrandDiscovery
	case domainauth.RoleBrand:
		return DestInfluencerDiscovery
	default:
		return DestLanding
	}
}

// lookupWithRetry polls for the profile row with linear backoff. Not-found
// is retried: on a first sign-in the profile write can trail the session.
func (r *PostAuthRouter) lookupWithRetry(ctx context.Context, userID string) (*domainprofile.Profile, error) {
	var lastErr error
	for attempt := 0; attempt < r.retry.Attempts; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, time.Duration(attempt)*r.retry.Backoff); err != nil {
				return nil, lastErr
			}
		}

		profile, err := r.repos.Profiles.GetByUserID(ctx, userID)
		if err == nil {
			return profile, nil
		}
		lastErr = err
		if !apperrors.IsNotFound(err) && !apperrors.IsUnavailable(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

// synthesizeProfile writes a starter row with the default role so the next
// lookup finds the user. Persist failures are logged and swallowed; the
// caller routes to onboarding either way.
func (r *PostAuthRouter) synthesizeProfile(ctx context.Context, session *domainauth.Session) {
	p := &domainprofile.Profile{
		UserID:    session.UserID,
		Username:  session.Username,
		FirstName: session.FirstName,
		LastName:  session.LastName,
		Role:      domainauth.RoleInfluencer,
	}
	if session.AvatarURL != "" {
		avatar := session.AvatarURL
		p.AvatarURL = &avatar
	}

	if _, err := r.repos.Profiles.Upsert(ctx, p); err != nil {
		r.logger.WarnContext(ctx, "starter profile persist failed", "user_id", session.UserID, "err", err)
		return
	}
	r.logger.InfoContext(ctx, "synthesized starter profile", "user_id", session.UserID, "role", string(p.Role))
}

// complete checks the role-specific sub-profile. Fetch failures count as
// incomplete and route to onboarding.
func (r *PostAuthRouter) complete(ctx context.Context, p *domainprofile.Profile) bool {
	details := domainprofile.Details{Profile: *p}

	switch p.Role {
	case domainauth.RoleInfluencer:
		sub, err := r.repos.Influencers.GetByUserID(ctx, p.UserID)
		if err != nil {
			if !apperrors.IsNotFound(err) {
				r.logger.WarnContext(ctx, "influencer sub-profile fetch failed", "user_id", p.UserID, "err", err)
			}
			return false
		}
		details.Influencer = sub
	case domainauth.RoleBrand:
		sub, err := r.repos.Brands.GetByUserID(ctx, p.UserID)
		if err != nil {
			if !apperrors.IsNotFound(err) {
				r.logger.WarnContext(ctx, "brand sub-profile fetch failed", "user_id", p.UserID, "err", err)
			}
			return false
		}
		details.Brand = sub
	}

	return details.Complete()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
