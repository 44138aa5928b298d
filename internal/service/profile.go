package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainauth "github.com/collabhub/collabhub-api/internal/domain/auth"
	domainprofile "github.com/collabhub/collabhub-api/internal/domain/profile"
	apperrors "github.com/collabhub/collabhub-api/internal/errors"
)

// ProfileServiceOptions groups dependencies for ProfileService.
type ProfileServiceOptions struct {
	Repos ProfileWriters
}

// ProfileService backs the profile REST endpoints: direct reads and
// create/replace writes against the same rows onboarding produces.
type ProfileService struct {
	repos ProfileWriters
}

// NewProfileService constructs a new ProfileService.
func NewProfileService(opts ProfileServiceOptions) *ProfileService {
	return &ProfileService{repos: opts.Repos}
}

// UpsertInfluencer creates or replaces the caller's influencer profile. The
// owner check happens in the HTTP layer; here ownerID is authoritative.
func (s *ProfileService) UpsertInfluencer(ctx context.Context, ownerID string, p *domainprofile.InfluencerProfile) (*domainprofile.InfluencerProfile, error) {
	if p == nil {
		return nil, errors.New("influencer profile is required")
	}
	if strings.TrimSpace(p.DisplayName) == "" {
		return nil, apperrors.ValidationField("display_name", "display_name is required")
	}
	if p.PrimaryCategory == "" {
		p.PrimaryCategory = domainprofile.CategoryOther
	}
	p.UserID = ownerID

	if err := s.ensureRole(ctx, ownerID, domainauth.RoleInfluencer); err != nil {
		return nil, err
	}
	return s.repos.Influencers.Upsert(ctx, p)
}

// GetInfluencer fetches an influencer profile by user id.
func (s *ProfileService) GetInfluencer(ctx context.Context, userID string) (*domainprofile.InfluencerProfile, error) {
	return s.repos.Influencers.GetByUserID(ctx, userID)
}

// UpsertBrand creates or replaces the caller's brand profile.
func (s *ProfileService) UpsertBrand(ctx context.Context, ownerID string, p *domainprofile.BrandProfile) (*domainprofile.BrandProfile, error) {
	if p == nil {
		return nil, errors.New("brand profile is required")
	}
	if strings.TrimSpace(p.CompanyName) == "" {
		return nil, apperrors.ValidationField("company_name", "company_name is required")
	}
	if p.PrimaryCategory == "" {
		p.PrimaryCategory = domainprofile.CategoryOther
	}
	p.UserID = ownerID

	if err := s.ensureRole(ctx, ownerID, domainauth.RoleBrand); err != nil {
		return nil, err
	}
	return s.repos.Brands.Upsert(ctx, p)
}

// GetBrand fetches a brand profile by user id.
func (s *ProfileService) GetBrand(ctx context.Context, userID string) (*domainprofile.BrandProfile, error) {
	return s.repos.Brands.GetByUserID(ctx, userID)
}

// ensureRole keeps the common profile row consistent with a direct
// sub-profile write: the row must exist and carry the matching role.
func (s *ProfileService) ensureRole(ctx context.Context, userID string, role domainauth.Role) error {
	existing, err := s.repos.Profiles.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		if existing.Role == role {
			return nil
		}
		existing.Role = role
		_, err = s.repos.Profiles.Upsert(ctx, existing)
	case apperrors.IsNotFound(err):
		_, err = s.repos.Profiles.Upsert(ctx, &domainprofile.Profile{UserID: userID, Role: role})
	}
	if err != nil {
		return fmt.Errorf("ensure profile role: %w", err)
	}
	return nil
}

// Completion describes how far along a profile is.
type Completion struct {
	UserID        string   `json:"user_id"`
	Role          string   `json:"role"`
	Complete      bool     `json:"complete"`
	Percentage    int      `json:"percentage"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

// Completeness reports the completion state for a user. Absent sub-profile
// rows count as zero progress on their fields, not as errors.
func (s *ProfileService) Completeness(ctx context.Context, userID string) (*Completion, error) {
	profile, err := s.repos.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := domainprofile.Details{Profile: *profile}
	var fields []completionField

	switch profile.Role {
	case domainauth.RoleInfluencer:
		sub, subErr := s.repos.Influencers.GetByUserID(ctx, userID)
		if subErr != nil && !apperrors.IsNotFound(subErr) {
			return nil, subErr
		}
		details.Influencer = sub
		fields = influencerCompletionFields(profile, sub)
	case domainauth.RoleBrand:
		sub, subErr := s.repos.Brands.GetByUserID(ctx, userID)
		if subErr != nil && !apperrors.IsNotFound(subErr) {
			return nil, subErr
		}
		details.Brand = sub
		fields = brandCompletionFields(profile, sub)
	default:
		fields = baseCompletionFields(profile)
	}

	done := 0
	var missing []string
	for _, f := range fields {
		if f.present {
			done++
		} else {
			missing = append(missing, f.name)
		}
	}

	pct := 0
	if len(fields) > 0 {
		pct = done * 100 / len(fields)
	}

	return &Completion{
		UserID:        userID,
		Role:          string(profile.Role),
		Complete:      details.Complete(),
		Percentage:    pct,
		MissingFields: missing,
	}, nil
}

type completionField struct {
	name    string
	present bool
}

func baseCompletionFields(p *domainprofile.Profile) []completionField {
	return []completionField{
		{"role", p.Role.IsSet()},
		{"username", p.Username != ""},
		{"bio", p.Bio != nil && *p.Bio != ""},
		{"avatar_url", p.AvatarURL != nil && *p.AvatarURL != ""},
	}
}

func influencerCompletionFields(p *domainprofile.Profile, sub *domainprofile.InfluencerProfile) []completionField {
	fields := baseCompletionFields(p)
	if sub == nil {
		sub = &domainprofile.InfluencerProfile{}
	}
	return append(fields,
		completionField{"display_name", sub.DisplayName != ""},
		completionField{"primary_category", sub.PrimaryCategory != ""},
		completionField{"content_types", len(sub.ContentTypes) > 0},
		completionField{"languages", len(sub.Languages) > 0},
		completionField{"rates", sub.MinRate != nil || sub.MaxRate != nil},
	)
}

func brandCompletionFields(p *domainprofile.Profile, sub *domainprofile.BrandProfile) []completionField {
	fields := baseCompletionFields(p)
	if sub == nil {
		sub = &domainprofile.BrandProfile{}
	}
	return append(fields,
		completionField{"company_name", sub.CompanyName != ""},
		completionField{"primary_category", sub.PrimaryCategory != ""},
		completionField{"company_website", sub.CompanyWebsite != nil && *sub.CompanyWebsite != ""},
		completionField{"company_email", sub.CompanyEmail != nil && *sub.CompanyEmail != ""},
		completionField{"budget", sub.BudgetMin != nil || sub.BudgetMax != nil},
	)
}
