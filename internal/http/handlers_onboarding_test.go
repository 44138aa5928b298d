package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/collabhub/collabhub-api/internal/domain/auth"
)

func TestOnboardingAPI_RequiresAuth(t *testing.T) {
	f := newAuthFixture()

	rec := bearerRequest(t, f, http.MethodPost, "/api/v1/onboarding", `{"role":"influencer"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOnboardingAPI_SubmitInfluencer(t *testing.T) {
	f := newAuthFixture()
	sess := seedSession(t, f, "u1")

	rec := bearerRequest(t, f, http.MethodPost, "/api/v1/onboarding", `{
		"role": "influencer",
		"username": "adacodes",
		"bio": "I write about computing",
		"display_name": "Ada Codes",
		"platform_username": "@adacodes",
		"categories": ["Technology", "Nonsense Label"]
	}`, sess.ID)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	influencer, ok := body["influencer"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "technology", influencer["primary_category"])
	secondary, ok := influencer["secondary_categories"].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"other"}, secondary)

	// role landed on the common profile row
	p, err := f.profiles.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleInfluencer, p.Role)
}

func TestOnboardingAPI_ValidationError(t *testing.T) {
	f := newAuthFixture()
	sess := seedSession(t, f, "u1")

	rec := bearerRequest(t, f, http.MethodPost, "/api/v1/onboarding", `{
		"role": "influencer",
		"username": "adacodes"
	}`, sess.ID)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["detail"])
	assert.Equal(t, 0, f.profiles.Len())
}
