package ports

import (
	"context"

	domainprofile "github.com/collabhub/collabhub-api/internal/domain/profile"
)

// ProfileRepository persists the common profile record.
// GetByUserID returns errors.AppError with ErrCodeNotFound when no row
// exists; callers treat that as "profile absent", not a failure.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domainprofile.Profile, error)
	Upsert(ctx context.Context, p *domainprofile.Profile) (*domainprofile.Profile, error)
}

// InfluencerRepository persists influencer sub-profiles keyed by user id.
type InfluencerRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domainprofile.InfluencerProfile, error)
	Upsert(ctx context.Context, p *domainprofile.InfluencerProfile) (*domainprofile.InfluencerProfile, error)
}

// BrandRepository persists brand sub-profiles keyed by user id.
type BrandRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domainprofile.BrandProfile, error)
	Upsert(ctx context.Context, p *domainprofile.BrandProfile) (*domainprofile.BrandProfile, error)
}
