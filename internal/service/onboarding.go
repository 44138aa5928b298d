package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	domainauth "github.com/collabhub/collabhub-api/internal/domain/auth"
	domainprofile "github.com/collabhub/collabhub-api/internal/domain/profile"
	apperrors "github.com/collabhub/collabhub-api/internal/errors"
	"github.com/collabhub/collabhub-api/internal/ports"
)

// ProfileWriters bundles the write side of the profile repositories.
type ProfileWriters struct {
	Profiles    ports.ProfileRepository
	Influencers ports.InfluencerRepository
	Brands      ports.BrandRepository
}

// StorageOptions pairs the object store with the bucket profile images go in.
type StorageOptions struct {
	Store  ports.ObjectStorage
	Bucket string
}

// OnboardingServiceOptions groups dependencies for OnboardingService.
type OnboardingServiceOptions struct {
	Repos   ProfileWriters
	Storage StorageOptions
	Logger  *slog.Logger
}

// OnboardingService turns a signup submission into persisted profile rows.
// Validation blocks the write; the optional image upload never does.
type OnboardingService struct {
	repos    ProfileWriters
	storage  StorageOptions
	logger   *slog.Logger
	validate *validator.Validate
}

// NewOnboardingService constructs a new OnboardingService.
func NewOnboardingService(opts OnboardingServiceOptions) *OnboardingService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &OnboardingService{
		repos:    opts.Repos,
		storage:  opts.Storage,
		logger:   logger.With("component", "onboarding"),
		validate: validator.New(),
	}
}

// ImageUpload carries an avatar or logo image attached to a submission.
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// SubmissionInput is the onboarding form payload. Role selects which field
// group is required.
type SubmissionInput struct {
	Role     domainauth.Role
	Username string
	Bio      string

	// Influencer fields
	DisplayName      string
	PlatformUsername string
	Categories       []string
	ContentTypes     []string
	Languages        []string
	MinRate          *int64
	MaxRate          *int64

	// Brand fields
	BrandName      string
	CompanyName    string
	CompanyEmail   string
	CompanyWebsite string
	Industries     []string
	BudgetMin      *int64
	BudgetMax      *int64

	Image *ImageUpload
}

// influencerSubmission carries the fields required of influencers.
type influencerSubmission struct {
	Username         string   `validate:"required"`
	DisplayName      string   `validate:"required"`
	PlatformUsername string   `validate:"required"`
	Bio              string   `validate:"required"`
	Categories       []string `validate:"required,min=1"`
}

// brandSubmission carries the fields required of brands.
type brandSubmission struct {
	Username     string   `validate:"required"`
	BrandName    string   `validate:"required"`
	CompanyEmail string   `validate:"required,email"`
	Industries   []string `validate:"required,min=1"`
}

// SubmissionResult reports what was persisted.
type SubmissionResult struct {
	Profile    *domainprofile.Profile
	Influencer *domainprofile.InfluencerProfile
	Brand      *domainprofile.BrandProfile
	ImageURL   string
}

// Submit validates, optionally uploads the profile image, and writes exactly
// two rows keyed on user id: the common profile and the role sub-profile.
// Resubmission overwrites; the second write wins.
func (s *OnboardingService) Submit(ctx context.Context, identity domainauth.Identity, in SubmissionInput) (*SubmissionResult, error) {
	if identity.UserID == "" {
		return nil, errors.New("identity is required")
	}

	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	imageURL := s.uploadImage(ctx, identity.UserID, in.Image)

	switch in.Role {
	case domainauth.RoleInfluencer:
		return s.submitInfluencer(ctx, identity, in, imageURL)
	case domainauth.RoleBrand:
		return s.submitBrand(ctx, identity, in, imageURL)
	default:
		// validateInput rejects other roles already
		return nil, apperrors.ValidationField("role", "unsupported role")
	}
}

func (s *OnboardingService) validateInput(in SubmissionInput) error {
	var err error
	switch in.Role {
	case domainauth.RoleInfluencer:
		err = s.validate.Struct(influencerSubmission{
			Username:         strings.TrimSpace(in.Username),
			DisplayName:      strings.TrimSpace(in.DisplayName),
			PlatformUsername: strings.TrimSpace(in.PlatformUsername),
			Bio:              strings.TrimSpace(in.Bio),
			Categories:       in.Categories,
		})
	case domainauth.RoleBrand:
		err = s.validate.Struct(brandSubmission{
			Username:     strings.TrimSpace(in.Username),
			BrandName:    strings.TrimSpace(in.BrandName),
			CompanyEmail: strings.TrimSpace(in.CompanyEmail),
			Industries:   in.Industries,
		})
	default:
		return apperrors.ValidationField("role", "role must be influencer or brand")
	}

	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		return apperrors.ValidationField(strings.ToLower(fe.Field()), fieldErrorMessage(fe))
	}
	return apperrors.Wrap(err, apperrors.ErrCodeValidation, "validate submission")
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// uploadImage pushes the image to object storage and returns its public URL.
// Every failure is a warning, never a blocker; the submission proceeds
// without an image.
func (s *OnboardingService) uploadImage(ctx context.Context, userID string, img *ImageUpload) string {
	if img == nil || len(img.Data) == 0 || s.storage.Store == nil {
		return ""
	}

	if err := s.storage.Store.EnsureBucket(ctx, s.storage.Bucket); err != nil {
		s.logger.WarnContext(ctx, "bucket ensure failed, continuing without image", "bucket", s.storage.Bucket, "err", err)
		return ""
	}

	objectPath := fmt.Sprintf("%s/%d%s", userID, time.Now().UnixNano(), imageExtension(img))
	if err := s.storage.Store.Upload(ctx, ports.UploadInput{
		Bucket:      s.storage.Bucket,
		Path:        objectPath,
		ContentType: img.ContentType,
		Data:        img.Data,
	}); err != nil {
		s.logger.WarnContext(ctx, "image upload failed, continuing without image", "path", objectPath, "err", err)
		return ""
	}

	return s.storage.Store.PublicURL(s.storage.Bucket, objectPath)
}

func imageExtension(img *ImageUpload) string {
	if ext := path.Ext(img.FileName); ext != "" {
		return ext
	}
	if exts, err := mime.ExtensionsByType(img.ContentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}

func (s *OnboardingService) submitInfluencer(ctx context.Context, identity domainauth.Identity, in SubmissionInput, imageURL string) (*SubmissionResult, error) {
	profile, err := s.upsertProfile(ctx, identity, in, domainauth.RoleInfluencer, imageURL)
	if err != nil {
		return nil, err
	}

	categories := domainprofile.ParseCategories(in.Categories)
	sub := &domainprofile.InfluencerProfile{
		UserID:              identity.UserID,
		DisplayName:         strings.TrimSpace(in.DisplayName),
		PrimaryCategory:     categories[0],
		SecondaryCategories: categories[1:],
		ContentTypes:        in.ContentTypes,
		Languages:           in.Languages,
		MinRate:             in.MinRate,
		MaxRate:             in.MaxRate,
		IsAvailable:         true,
	}
	saved, err := s.repos.Influencers.Upsert(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("upsert influencer profile: %w", err)
	}

	return &SubmissionResult{Profile: profile, Influencer: saved, ImageURL: imageURL}, nil
}

func (s *OnboardingService) submitBrand(ctx context.Context, identity domainauth.Identity, in SubmissionInput, imageURL string) (*SubmissionResult, error) {
	profile, err := s.upsertProfile(ctx, identity, in, domainauth.RoleBrand, imageURL)
	if err != nil {
		return nil, err
	}

	categories := domainprofile.ParseCategories(in.Industries)
	sub := &domainprofile.BrandProfile{
		UserID:          identity.UserID,
		CompanyName:     strings.TrimSpace(firstNonEmpty(in.CompanyName, in.BrandName)),
		PrimaryCategory: categories[0],
		BudgetMin:       in.BudgetMin,
		BudgetMax:       in.BudgetMax,
	}
	if len(categories) > 1 {
		sub.SecondaryCategories = categories[1:]
	}
	if v := strings.TrimSpace(in.BrandName); v != "" {
		sub.BrandName = &v
	}
	if v := strings.TrimSpace(in.Bio); v != "" {
		sub.Description = &v
	}
	if v := strings.TrimSpace(in.CompanyWebsite); v != "" {
		sub.CompanyWebsite = &v
	}
	if v := strings.TrimSpace(in.CompanyEmail); v != "" {
		sub.CompanyEmail = &v
	}

	saved, err := s.repos.Brands.Upsert(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("upsert brand profile: %w", err)
	}

	return &SubmissionResult{Profile: profile, Brand: saved, ImageURL: imageURL}, nil
}

func (s *OnboardingService) upsertProfile(ctx context.Context, identity domainauth.Identity, in SubmissionInput, role domainauth.Role, imageURL string) (*domainprofile.Profile, error) {
	p := &domainprofile.Profile{
		UserID:    identity.UserID,
		Username:  strings.TrimSpace(in.Username),
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Role:      role,
	}
	if v := strings.TrimSpace(in.Bio); v != "" {
		p.Bio = &v
	}
	switch {
	case imageURL != "":
		p.AvatarURL = &imageURL
	case identity.AvatarURL != "":
		avatar := identity.AvatarURL
		p.AvatarURL = &avatar
	}

	saved, err := s.repos.Profiles.Upsert(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return saved, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
