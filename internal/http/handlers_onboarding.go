package httpx

import (
	"net/http"

	domainauth "github.com/collabhub/collabhub-api/internal/domain/auth"
	"github.com/collabhub/collabhub-api/internal/service"
)

// OnboardingHandlers exposes onboarding submission over HTTP. The same
// service backs the browser flow; this is the API wire path.
type OnboardingHandlers struct {
	Svc *service.OnboardingService
}

// onboardingImage is the wire form of an attached image. Data is base64 in
// JSON per encoding/json []byte handling.
type onboardingImage struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// onboardingRequest is the wire form of a submission.
type onboardingRequest struct {
	Role     string `json:"role"`
	Username string `json:"username"`
	Bio      string `json:"bio"`

	DisplayName      string   `json:"display_name"`
	PlatformUsername string   `json:"platform_username"`
	Categories       []string `json:"categories"`
	ContentTypes     []string `json:"content_types"`
	Languages        []string `json:"languages"`
	MinRate          *int64   `json:"min_rate"`
	MaxRate          *int64   `json:"max_rate"`

	BrandName      string   `json:"brand_name"`
	CompanyName    string   `json:"company_name"`
	CompanyEmail   string   `json:"company_email"`
	CompanyWebsite string   `json:"company_website"`
	Industries     []string `json:"industries"`
	BudgetMin      *int64   `json:"budget_min"`
	BudgetMax      *int64   `json:"budget_max"`

	Image *onboardingImage `json:"image"`
}

func (req onboardingRequest) toInput() service.SubmissionInput {
	in := service.SubmissionInput{
		Role:             domainauth.Role(req.Role),
		Username:         req.Username,
		Bio:              req.Bio,
		DisplayName:      req.DisplayName,
		PlatformUsername: req.PlatformUsername,
		Categories:       req.Categories,
		ContentTypes:     req.ContentTypes,
		Languages:        req.Languages,
		MinRate:          req.MinRate,
		MaxRate:          req.MaxRate,
		BrandName:        req.BrandName,
		CompanyName:      req.CompanyName,
		CompanyEmail:     req.CompanyEmail,
		CompanyWebsite:   req.CompanyWebsite,
		Industries:       req.Industries,
		BudgetMin:        req.BudgetMin,
		BudgetMax:        req.BudgetMax,
	}
	if req.Image != nil {
		in.Image = &service.ImageUpload{
			FileName:    req.Image.FileName,
			ContentType: req.Image.ContentType,
			Data:        req.Image.Data,
		}
	}
	return in
}

// Submit handles POST /api/v1/onboarding.
func (h *OnboardingHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		WriteDetail(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req onboardingRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.Submit(r.Context(), session.Identity(), req.toInput())
	if err != nil {
		WriteDetailError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{
		"profile":    result.Profile,
		"influencer": result.Influencer,
		"brand":      result.Brand,
		"image_url":  result.ImageURL,
	})
}
