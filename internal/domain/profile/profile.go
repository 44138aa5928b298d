package profile

// Package profile contains domain types for user profiles and the
// role-specific influencer/brand sub-profiles.

import (
	"time"

	domainauth "github.com/collabhub/collabhub-api/internal/domain/auth"
)

// Profile is the common application-level record describing a user.
// One row per identity, keyed by UserID.
type Profile struct {
	ID        string          `db:"id"          json:"id"`
	UserID    string          `db:"user_id"     json:"user_id"`
	Username  string          `db:"username"    json:"username"`
	FirstName string          `db:"first_name"  json:"first_name"`
	LastName  string          `db:"last_name"   json:"last_name"`
	Role      domainauth.Role `db:"role"        json:"role"`
	Bio       *string         `db:"bio"         json:"bio,omitempty"`
	AvatarURL *string         `db:"avatar_url"  json:"avatar_url,omitempty"`
	CreatedAt time.Time       `db:"created_at"  json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"  json:"updated_at"`
}

// InfluencerProfile holds influencer attributes (category, rates, availability).
type InfluencerProfile struct {
	ID                   string     `db:"id"                      json:"id"`
	UserID               string     `db:"user_id"                 json:"user_id"`
	DisplayName          string     `db:"display_name"            json:"display_name"`
	PrimaryCategory      Category   `db:"primary_category"        json:"primary_category"`
	SecondaryCategories  []Category `db:"secondary_categories"    json:"secondary_categories,omitempty"`
	ContentTypes         []string   `db:"content_types"           json:"content_types,omitempty"`
	Languages            []string   `db:"languages"               json:"languages,omitempty"`
	MinRate              *int64     `db:"min_rate"                json:"min_rate,omitempty"`
	MaxRate              *int64     `db:"max_rate"                json:"max_rate,omitempty"`
	RateCurrency         string     `db:"rate_currency"           json:"rate_currency"`
	TotalCollaborations  int        `db:"total_collaborations"    json:"total_collaborations"`
	IsAvailable          bool       `db:"is_available"            json:"is_available"`
	BookingLeadTimeDays  int        `db:"booking_lead_time_days"  json:"booking_lead_time_days"`
	CreatedAt            time.Time  `db:"created_at"              json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at"              json:"updated_at"`
}

// BrandProfile holds brand attributes (company metadata, budget).
type BrandProfile struct {
	ID                           string     `db:"id"                             json:"id"`
	UserID                       string     `db:"user_id"                        json:"user_id"`
	CompanyName                  string     `db:"company_name"                   json:"company_name"`
	BrandName                    *string    `db:"brand_name"                     json:"brand_name,omitempty"`
	Description                  *string    `db:"description"                    json:"description,omitempty"`
	PrimaryCategory              Category   `db:"primary_category"               json:"primary_category"`
	SecondaryCategories          []Category `db:"secondary_categories"           json:"secondary_categories,omitempty"`
	CompanyWebsite               *string    `db:"company_website"                json:"company_website,omitempty"`
	CompanyEmail                 *string    `db:"company_email"                  json:"company_email,omitempty"`
	BudgetMin                    *int64     `db:"budget_min"                     json:"budget_min,omitempty"`
	BudgetMax                    *int64     `db:"budget_max"                     json:"budget_max,omitempty"`
	BudgetCurrency               string     `db:"budget_currency"                json:"budget_currency"`
	PreviousInfluencerCampaigns  int        `db:"previous_influencer_campaigns"  json:"previous_influencer_campaigns"`
	CreatedAt                    time.Time  `db:"created_at"                     json:"created_at"`
	UpdatedAt                    time.Time  `db:"updated_at"                     json:"updated_at"`
}

// Details pairs the common profile with whichever sub-profile matches its
// role. At most one of Influencer/Brand is non-nil.
type Details struct {
	Profile    Profile
	Influencer *InfluencerProfile
	Brand      *BrandProfile
}

// Complete reports whether the profile satisfies the completeness rule:
// role is set and the role-appropriate required fields are non-empty.
// Incompleteness is the signal that routes a user to onboarding.
func (d Details) Complete() bool {
	if !d.Profile.Role.IsSet() {
		return false
	}
	switch d.Profile.Role {
	case domainauth.RoleInfluencer:
		return d.Influencer != nil &&
			d.Influencer.DisplayName != "" &&
			d.Influencer.PrimaryCategory != ""
	case domainauth.RoleBrand:
		return d.Brand != nil && d.Brand.CompanyName != ""
	default:
		// Admins and future roles have no sub-profile requirements.
		return true
	}
}
