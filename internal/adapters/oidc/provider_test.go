package oidc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  ProviderConfig
		want string
	}{
		{name: "missing client id", cfg: ProviderConfig{}, want: "client ID is required"},
		{
			name: "missing client secret",
			cfg:  ProviderConfig{ClientID: "id"},
			want: "client secret is required",
		},
		{
			name: "missing redirect URL",
			cfg:  ProviderConfig{ClientID: "id", ClientSecret: "secret"},
			want: "redirect URL is required",
		},
		{
			name: "missing discovery URL",
			cfg:  ProviderConfig{ClientID: "id", ClientSecret: "secret", RedirectURL: "http://localhost/cb"},
			want: "discovery URL is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.cfg)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMapClaims(t *testing.T) {
	f := mapClaims(providerClaims{
		Sub:               "user-1",
		Email:             "u@example.com",
		GivenName:         "Ada",
		FamilyName:        "Lovelace",
		Picture:           "https://img.example.com/a.png",
		PreferredUsername: "ada",
		Locale:            "en",
	})

	assert.Equal(t, "user-1", f.subject)
	assert.Equal(t, "u@example.com", f.email)
	assert.Equal(t, "Ada", f.givenName)
	assert.Equal(t, "Lovelace", f.familyName)
	assert.Equal(t, "https://img.example.com/a.png", f.picture)
	assert.Equal(t, "ada", f.preferredUsername)
	assert.Equal(t, "en", f.locale)
}

func TestMapClaimsSplitsCombinedName(t *testing.T) {
	f := mapClaims(providerClaims{Sub: "user-2", Name: "Grace Brewster Hopper"})

	assert.Equal(t, "Grace", f.givenName)
	assert.Equal(t, "Brewster Hopper", f.familyName)
}

func TestFillMissingDoesNotOverwrite(t *testing.T) {
	f := idFields{subject: "user-1", email: "keep@example.com"}
	fillMissing(&f, idFields{
		subject:    "ignored",
		email:      "ignored@example.com",
		givenName:  "Filled",
		familyName: "In",
		picture:    "https://img.example.com/b.png",
	})

	assert.Equal(t, "user-1", f.subject)
	assert.Equal(t, "keep@example.com", f.email)
	assert.Equal(t, "Filled", f.givenName)
	assert.Equal(t, "In", f.familyName)
	assert.Equal(t, "https://img.example.com/b.png", f.picture)
}

func TestGenerateRandomString(t *testing.T) {
	s1, err := generateRandomString(32)
	require.NoError(t, err)
	assert.Len(t, s1, 32)

	s2, err := generateRandomString(32)
	require.NoError(t, err)
	assert.NotEqual(t, s1, s2)

	empty, err := generateRandomString(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetIDTokenFromToken(t *testing.T) {
	_, err := getIDTokenFromToken(nil)
	require.Error(t, err)
}
