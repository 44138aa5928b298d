package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/collabhub/collabhub-api/internal/domain/auth"
	domainprofile "github.com/collabhub/collabhub-api/internal/domain/profile"
	apperrors "github.com/collabhub/collabhub-api/internal/errors"
	mockprofile "github.com/collabhub/collabhub-api/internal/mocks/profile"
	mockstorage "github.com/collabhub/collabhub-api/internal/mocks/storage"
)

type onboardingFixture struct {
	svc         *OnboardingService
	profiles    *mockprofile.MemoryProfileRepo
	influencers *mockprofile.MemoryInfluencerRepo
	brands      *mockprofile.MemoryBrandRepo
	store       *mockstorage.MemoryObjectStore
}

func newOnboardingForTest() onboardingFixture {
	profiles := mockprofile.NewMemoryProfileRepo()
	influencers := mockprofile.NewMemoryInfluencerRepo()
	brands := mockprofile.NewMemoryBrandRepo()
	store := mockstorage.NewMemoryObjectStore()
	svc := NewOnboardingService(OnboardingServiceOptions{
		Repos: ProfileWriters{
			Profiles:    profiles,
			Influencers: influencers,
			Brands:      brands,
		},
		Storage: StorageOptions{Store: store, Bucket: "profile-images"},
	})
	return onboardingFixture{svc: svc, profiles: profiles, influencers: influencers, brands: brands, store: store}
}

func testIdentity(userID string) domainauth.Identity {
	return domainauth.Identity{
		UserID:    userID,
		Username:  "u-" + userID,
		FirstName: "Test",
		LastName:  "User",
		Email:     userID + "@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func validInfluencerInput() SubmissionInput {
	return SubmissionInput{
		Role:             domainauth.RoleInfluencer,
		Username:         "adacodes",
		Bio:              "I write about computing",
		DisplayName:      "Ada Codes",
		PlatformUsername: "@adacodes",
		Categories:       []string{"Technology", "Education"},
		ContentTypes:     []string{"video"},
		Languages:        []string{"en"},
	}
}

func validBrandInput() SubmissionInput {
	return SubmissionInput{
		Role:         domainauth.RoleBrand,
		Username:     "acme",
		BrandName:    "Acme",
		CompanyName:  "Acme Corp",
		CompanyEmail: "hello@acme.example",
		Industries:   []string{"Fashion & Beauty"},
	}
}

func TestOnboarding_Influencer_Submit(t *testing.T) {
	f := newOnboardingForTest()

	result, err := f.svc.Submit(context.Background(), testIdentity("u1"), validInfluencerInput())
	require.NoError(t, err)

	require.NotNil(t, result.Profile)
	assert.Equal(t, domainauth.RoleInfluencer, result.Profile.Role)
	assert.Equal(t, "adacodes", result.Profile.Username)
	require.NotNil(t, result.Profile.Bio)

	require.NotNil(t, result.Influencer)
	assert.Equal(t, domainprofile.CategoryTechnology, result.Influencer.PrimaryCategory)
	assert.Equal(t, []domainprofile.Category{domainprofile.CategoryEducation}, result.Influencer.SecondaryCategories)
	assert.True(t, result.Influencer.IsAvailable)

	// exactly one row in each table
	assert.Equal(t, 1, f.profiles.Len())
	assert.Equal(t, 1, f.influencers.Len())
	assert.Equal(t, 0, f.brands.Len())
}

func TestOnboarding_Brand_Submit(t *testing.T) {
	f := newOnboardingForTest()

	result, err := f.svc.Submit(context.Background(), testIdentity("u1"), validBrandInput())
	require.NoError(t, err)

	require.NotNil(t, result.Profile)
	assert.Equal(t, domainauth.RoleBrand, result.Profile.Role)

	require.NotNil(t, result.Brand)
	assert.Equal(t, "Acme Corp", result.Brand.CompanyName)
	assert.Equal(t, domainprofile.CategoryFashionBeauty, result.Brand.PrimaryCategory)
	require.NotNil(t, result.Brand.BrandName)
	assert.Equal(t, "Acme", *result.Brand.BrandName)

	assert.Equal(t, 1, f.profiles.Len())
	assert.Equal(t, 1, f.brands.Len())
	assert.Equal(t, 0, f.influencers.Len())
}

func TestOnboarding_ValidationFailureWritesNothing(t *testing.T) {
	f := newOnboardingForTest()

	in := validInfluencerInput()
	in.DisplayName = ""

	_, err := f.svc.Submit(context.Background(), testIdentity("u1"), in)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "displayname", apperrors.GetField(err))
	assert.Equal(t, 0, f.profiles.Len())
	assert.Equal(t, 0, f.influencers.Len())
}

func TestOnboarding_BrandRequiresValidEmail(t *testing.T) {
	f := newOnboardingForTest()

	in := validBrandInput()
	in.CompanyEmail = "not-an-email"

	_, err := f.svc.Submit(context.Background(), testIdentity("u1"), in)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, 0, f.profiles.Len())
}

func TestOnboarding_RejectsUnknownRole(t *testing.T) {
	f := newOnboardingForTest()

	in := validInfluencerInput()
	in.Role = domainauth.RoleAdmin

	_, err := f.svc.Submit(context.Background(), testIdentity("u1"), in)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestOnboarding_UnknownCategoryFoldsToOther(t *testing.T) {
	f := newOnboardingForTest()

	in := validInfluencerInput()
	in.Categories = []string{"Underwater Basket Weaving"}

	result, err := f.svc.Submit(context.Background(), testIdentity("u1"), in)
	require.NoError(t, err)
	assert.Equal(t, domainprofile.CategoryOther, result.Influencer.PrimaryCategory)
	assert.Empty(t, result.Influencer.SecondaryCategories)
}

func TestOnboarding_ResubmissionOverwrites(t *testing.T) {
	f := newOnboardingForTest()
	identity := testIdentity("u1")

	first, err := f.svc.Submit(context.Background(), identity, validInfluencerInput())
	require.NoError(t, err)

	in := validInfluencerInput()
	in.DisplayName = "Ada v2"
	second, err := f.svc.Submit(context.Background(), identity, in)
	require.NoError(t, err)

	assert.Equal(t, first.Profile.ID, second.Profile.ID)
	assert.Equal(t, first.Influencer.ID, second.Influencer.ID)
	assert.Equal(t, "Ada v2", second.Influencer.DisplayName)
	assert.Equal(t, 1, f.profiles.Len())
	assert.Equal(t, 1, f.influencers.Len())
}

func TestOnboarding_ImageUploaded(t *testing.T) {
	f := newOnboardingForTest()

	in := validInfluencerInput()
	in.Image = &ImageUpload{
		FileName:    "avatar.png",
		ContentType: "image/png",
		Data:        []byte{0x89, 0x50, 0x4e, 0x47},
	}

	result, err := f.svc.Submit(context.Background(), testIdentity("u1"), in)
	require.NoError(t, err)
	assert.NotEmpty(t, result.ImageURL)
	assert.True(t, strings.HasPrefix(result.ImageURL, "https://storage.test/object/public/profile-images/u1/"))
	assert.True(t, strings.HasSuffix(result.ImageURL, ".png"))
	assert.Equal(t, 1, f.store.ObjectCount())

	require.NotNil(t, result.Profile.AvatarURL)
	assert.Equal(t, result.ImageURL, *result.Profile.AvatarURL)
}

func TestOnboarding_UploadFailureDoesNotBlockSubmission(t *testing.T) {
	f := newOnboardingForTest()
	f.store.UploadErr = errors.New("storage down")

	in := validInfluencerInput()
	in.Image = &ImageUpload{FileName: "avatar.png", ContentType: "image/png", Data: []byte{1}}

	result, err := f.svc.Submit(context.Background(), testIdentity("u1"), in)
	require.NoError(t, err)
	assert.Empty(t, result.ImageURL)
	assert.Equal(t, 1, f.profiles.Len())
	assert.Equal(t, 1, f.influencers.Len())
}

func TestOnboarding_BucketEnsureFailureDoesNotBlockSubmission(t *testing.T) {
	f := newOnboardingForTest()
	f.store.EnsureErr = errors.New("storage down")

	in := validInfluencerInput()
	in.Image = &ImageUpload{FileName: "avatar.png", ContentType: "image/png", Data: []byte{1}}

	_, err := f.svc.Submit(context.Background(), testIdentity("u1"), in)
	require.NoError(t, err)
	assert.Equal(t, 0, f.store.ObjectCount())
}

func TestOnboarding_IdentityAvatarUsedWithoutUpload(t *testing.T) {
	f := newOnboardingForTest()
	identity := testIdentity("u1")
	identity.AvatarURL = "https://idp.example/avatar.png"

	result, err := f.svc.Submit(context.Background(), identity, validInfluencerInput())
	require.NoError(t, err)
	require.NotNil(t, result.Profile.AvatarURL)
	assert.Equal(t, identity.AvatarURL, *result.Profile.AvatarURL)
}
