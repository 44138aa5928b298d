package httpx

import (
	"net/http"

	domainprofile "github.com/collabhub/collabhub-api/internal/domain/profile"
	"github.com/collabhub/collabhub-api/internal/service"
)

// ProfileHandlers provides the bearer-token profile API. All errors use the
// `{"detail": "..."}` body shape.
type ProfileHandlers struct {
	Svc *service.ProfileService
}

// influencerProfileRequest is the wire form of an influencer profile write.
type influencerProfileRequest struct {
	DisplayName         string   `json:"display_name"`
	PrimaryCategory     string   `json:"primary_category"`
	SecondaryCategories []string `json:"secondary_categories"`
	ContentTypes        []string `json:"content_types"`
	Languages           []string `json:"languages"`
	MinRate             *int64   `json:"min_rate"`
	MaxRate             *int64   `json:"max_rate"`
	RateCurrency        string   `json:"rate_currency"`
	IsAvailable         *bool    `json:"is_available"`
	BookingLeadTimeDays int      `json:"booking_lead_time_days"`
}

func (req influencerProfileRequest) toDomain() *domainprofile.InfluencerProfile {
	p := &domainprofile.InfluencerProfile{
		DisplayName:         req.DisplayName,
		PrimaryCategory:     domainprofile.ParseCategory(req.PrimaryCategory),
		SecondaryCategories: domainprofile.ParseCategories(req.SecondaryCategories),
		ContentTypes:        req.ContentTypes,
		Languages:           req.Languages,
		MinRate:             req.MinRate,
		MaxRate:             req.MaxRate,
		RateCurrency:        req.RateCurrency,
		BookingLeadTimeDays: req.BookingLeadTimeDays,
		IsAvailable:         true,
	}
	if req.IsAvailable != nil {
		p.IsAvailable = *req.IsAvailable
	}
	return p
}

// brandProfileRequest is the wire form of a brand profile write.
type brandProfileRequest struct {
	CompanyName         string   `json:"company_name"`
	BrandName           *string  `json:"brand_name"`
	Description         *string  `json:"description"`
	PrimaryCategory     string   `json:"primary_category"`
	SecondaryCategories []string `json:"secondary_categories"`
	CompanyWebsite      *string  `json:"company_website"`
	CompanyEmail        *string  `json:"company_email"`
	BudgetMin           *int64   `json:"budget_min"`
	BudgetMax           *int64   `json:"budget_max"`
	BudgetCurrency      string   `json:"budget_currency"`
}

func (req brandProfileRequest) toDomain() *domainprofile.BrandProfile {
	return &domainprofile.BrandProfile{
		CompanyName:         req.CompanyName,
		BrandName:           req.BrandName,
		Description:         req.Description,
		PrimaryCategory:     domainprofile.ParseCategory(req.PrimaryCategory),
		SecondaryCategories: domainprofile.ParseCategories(req.SecondaryCategories),
		CompanyWebsite:      req.CompanyWebsite,
		CompanyEmail:        req.CompanyEmail,
		BudgetMin:           req.BudgetMin,
		BudgetMax:           req.BudgetMax,
		BudgetCurrency:      req.BudgetCurrency,
	}
}

// CreateInfluencer handles POST /api/v1/profiles/influencer.
func (h *ProfileHandlers) CreateInfluencer(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		WriteDetail(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req influencerProfileRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	saved, err := h.Svc.UpsertInfluencer(r.Context(), session.UserID, req.toDomain())
	if err != nil {
		WriteDetailError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, saved)
}

// UpdateInfluencer handles PUT /api/v1/profiles/influencer/{userID}.
// Only the profile owner may update.
func (h *ProfileHandlers) UpdateInfluencer(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		WriteDetail(w, http.StatusUnauthorized, "authentication required")
		return
	}
	userID := r.PathValue("userID")
	if userID != session.UserID {
		WriteDetail(w, http.StatusForbidden, "cannot modify another user's profile")
		return
	}

	var req influencerProfileRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	saved, err := h.Svc.UpsertInfluencer(r.Context(), userID, req.toDomain())
	if err != nil {
		WriteDetailError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, saved)
}

// GetInfluencer handles GET /api/v1/profiles/influencer/{userID}.
func (h *ProfileHandlers) GetInfluencer(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Svc.GetInfluencer(r.Context(), r.PathValue("userID"))
	if err != nil {
		WriteDetailError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, profile)
}

// CreateBrand handles POST /api/v1/profiles/brand.
func (h *ProfileHandlers) CreateBrand(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		WriteDetail(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req brandProfileRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	saved, err := h.Svc.UpsertBrand(r.Context(), session.UserID, req.toDomain())
	if err != nil {
		WriteDetailError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, saved)
}

// GetBrand handles GET /api/v1/profiles/brand/{userID}.
func (h *ProfileHandlers) GetBrand(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Svc.GetBrand(r.Context(), r.PathValue("userID"))
	if err != nil {
		WriteDetailError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, profile)
}

// GetCompletion handles GET /api/v1/profiles/completion/{userID}.
func (h *ProfileHandlers) GetCompletion(w http.ResponseWriter, r *http.Request) {
	completion, err := h.Svc.Completeness(r.Context(), r.PathValue("userID"))
	if err != nil {
		WriteDetailError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, completion)
}
