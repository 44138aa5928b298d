package data

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/collabhub/collabhub-api/internal/domain/auth"
	domainprofile "github.com/collabhub/collabhub-api/internal/domain/profile"
	apperrors "github.com/collabhub/collabhub-api/internal/errors"
	"github.com/collabhub/collabhub-api/internal/testutil"
)

func testUserID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func TestProfileRepo_Upsert_Get(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewProfileRepo(db)
		userID := testUserID("user")

		// absent profile maps to not found
		_, err := repo.GetByUserID(ctx, userID)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))

		// insert
		created, err := repo.Upsert(ctx, &domainprofile.Profile{
			UserID:    userID,
			Username:  "creator1",
			FirstName: "Ada",
			LastName:  "Lovelace",
			Role:      domainauth.RoleInfluencer,
		})
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		assert.Equal(t, userID, created.UserID)
		assert.Equal(t, domainauth.RoleInfluencer, created.Role)
		assert.Nil(t, created.Bio)
		assert.NotZero(t, created.CreatedAt)

		// get round-trips
		got, err := repo.GetByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "creator1", got.Username)

		// upsert on the same user_id replaces, keeps the row id
		updated, err := repo.Upsert(ctx, &domainprofile.Profile{
			UserID:    userID,
			Username:  "creator1",
			FirstName: "Ada",
			LastName:  "Byron",
			Role:      domainauth.RoleInfluencer,
			Bio:       testutil.StringPtr("countess of computing"),
		})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Byron", updated.LastName)
		require.NotNil(t, updated.Bio)
		assert.Equal(t, "countess of computing", *updated.Bio)
	})
}

func TestProfileRepo_Upsert_RejectsInvalidRole(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewProfileRepo(db)
		_, err := repo.Upsert(context.Background(), &domainprofile.Profile{
			UserID: testUserID("user"),
			Role:   domainauth.Role("superuser"),
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestProfileRepo_RequiresUserID(t *testing.T) {
	repo := NewProfileRepo(nil)
	_, err := repo.GetByUserID(context.Background(), "")
	require.Error(t, err)
	_, err = repo.Upsert(context.Background(), &domainprofile.Profile{})
	require.Error(t, err)
}
