package data

// Package data provides pgx-backed repositories for profiles and the
// role-specific sub-profiles.

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/collabhub/collabhub-api/internal/data/pgxutil"
	domainprofile "github.com/collabhub/collabhub-api/internal/domain/profile"
	apperrors "github.com/collabhub/collabhub-api/internal/errors"
)

// ProfileRepo provides database operations for the common profile record.
type ProfileRepo struct {
	DB *sql.DB
}

// NewProfileRepo creates a new ProfileRepo.
func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{DB: db}
}

const profileColumns = `id, user_id, username, first_name, last_name, role, bio, avatar_url, created_at, updated_at`

// GetByUserID retrieves a profile by identity id. A missing row maps to an
// AppError with ErrCodeNotFound; callers treat that as "profile absent".
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (*domainprofile.Profile, error) {
	if userID == "" {
		return nil, errors.New("user id is required")
	}

	var out domainprofile.Profile
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+profileColumns+`
			FROM user_profiles
			WHERE user_id = $1
		`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[domainprofile.Profile])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Upsert inserts or replaces the profile row keyed on user_id. Repeated
// writes for the same identity overwrite; last write wins.
func (r *ProfileRepo) Upsert(ctx context.Context, p *domainprofile.Profile) (*domainprofile.Profile, error) {
	if p == nil {
		return nil, errors.New("profile is required")
	}
	if p.UserID == "" {
		return nil, errors.New("user id is required")
	}

	var out domainprofile.Profile
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO user_profiles (user_id, username, first_name, last_name, role, bio, avatar_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (user_id) DO UPDATE SET
				username = EXCLUDED.username,
				first_name = EXCLUDED.first_name,
				last_name = EXCLUDED.last_name,
				role = EXCLUDED.role,
				bio = EXCLUDED.bio,
				avatar_url = EXCLUDED.avatar_url,
				updated_at = now()
			RETURNING `+profileColumns+`
		`,
			strings.TrimSpace(p.UserID),
			strings.TrimSpace(p.Username),
			strings.TrimSpace(p.FirstName),
			strings.TrimSpace(p.LastName),
			string(p.Role),
			p.Bio,
			p.AvatarURL,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[domainprofile.Profile])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}
