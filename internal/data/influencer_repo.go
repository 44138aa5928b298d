package data

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/collabhub/collabhub-api/internal/data/pgxutil"
	domainprofile "github.com/collabhub/collabhub-api/internal/domain/profile"
	apperrors "github.com/collabhub/collabhub-api/internal/errors"
)

// InfluencerRepo provides database operations for influencer sub-profiles.
type InfluencerRepo struct {
	DB *sql.DB
}

// NewInfluencerRepo creates a new InfluencerRepo.
func NewInfluencerRepo(db *sql.DB) *InfluencerRepo {
	return &InfluencerRepo{DB: db}
}

// influencerRow mirrors the influencers table. Category columns are plain
// text arrays in Postgres; conversion to the enum happens in toDomain.
type influencerRow struct {
	ID                  string    `db:"id"`
	UserID              string    `db:"user_id"`
	DisplayName         string    `db:"display_name"`
	PrimaryCategory     string    `db:"primary_category"`
	SecondaryCategories []string  `db:"secondary_categories"`
	ContentTypes        []string  `db:"content_types"`
	Languages           []string  `db:"languages"`
	MinRate             *int64    `db:"min_rate"`
	MaxRate             *int64    `db:"max_rate"`
	RateCurrency        string    `db:"rate_currency"`
	TotalCollaborations int       `db:"total_collaborations"`
	IsAvailable         bool      `db:"is_available"`
	BookingLeadTimeDays int       `db:"booking_lead_time_days"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

func (r influencerRow) toDomain() *domainprofile.InfluencerProfile {
	return &domainprofile.InfluencerProfile{
		ID:                  r.ID,
		UserID:              r.UserID,
		DisplayName:         r.DisplayName,
		PrimaryCategory:     domainprofile.Category(r.PrimaryCategory),
		SecondaryCategories: toCategories(r.SecondaryCategories),
		ContentTypes:        r.ContentTypes,
		Languages:           r.Languages,
		MinRate:             r.MinRate,
		MaxRate:             r.MaxRate,
		RateCurrency:        r.RateCurrency,
		TotalCollaborations: r.TotalCollaborations,
		IsAvailable:         r.IsAvailable,
		BookingLeadTimeDays: r.BookingLeadTimeDays,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

const influencerColumns = `id, user_id, display_name, primary_category, secondary_categories,
	content_types, languages, min_rate, max_rate, rate_currency,
	total_collaborations, is_available, booking_lead_time_days, created_at, updated_at`

// GetByUserID retrieves the influencer sub-profile for an identity. A missing
// row maps to an AppError with ErrCodeNotFound.
func (r *InfluencerRepo) GetByUserID(ctx context.Context, userID string) (*domainprofile.InfluencerProfile, error) {
	if userID == "" {
		return nil, errors.New("user id is required")
	}

	var row influencerRow
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+influencerColumns+`
			FROM influencers
			WHERE user_id = $1
		`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		row, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[influencerRow])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return row.toDomain(), nil
}

// Upsert inserts or replaces the influencer sub-profile keyed on user_id.
func (r *InfluencerRepo) Upsert(ctx context.Context, p *domainprofile.InfluencerProfile) (*domainprofile.InfluencerProfile, error) {
	if p == nil {
		return nil, errors.New("influencer profile is required")
	}
	if p.UserID == "" {
		return nil, errors.New("user id is required")
	}

	currency := strings.TrimSpace(p.RateCurrency)
	if currency == "" {
		currency = "USD"
	}
	leadTime := p.BookingLeadTimeDays
	if leadTime <= 0 {
		leadTime = 7
	}

	var row influencerRow
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO influencers (
				user_id, display_name, primary_category, secondary_categories,
				content_types, languages, min_rate, max_rate, rate_currency,
				total_collaborations, is_available, booking_lead_time_days
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (user_id) DO UPDATE SET
				display_name = EXCLUDED.display_name,
				primary_category = EXCLUDED.primary_category,
				secondary_categories = EXCLUDED.secondary_categories,
				content_types = EXCLUDED.content_types,
				languages = EXCLUDED.languages,
				min_rate = EXCLUDED.min_rate,
				max_rate = EXCLUDED.max_rate,
				rate_currency = EXCLUDED.rate_currency,
				total_collaborations = EXCLUDED.total_collaborations,
				is_available = EXCLUDED.is_available,
				booking_lead_time_days = EXCLUDED.booking_lead_time_days,
				updated_at = now()
			RETURNING `+influencerColumns+`
		`,
			strings.TrimSpace(p.UserID),
			strings.TrimSpace(p.DisplayName),
			string(p.PrimaryCategory),
			fromCategories(p.SecondaryCategories),
			emptyIfNil(p.ContentTypes),
			emptyIfNil(p.Languages),
			p.MinRate,
			p.MaxRate,
			currency,
			p.TotalCollaborations,
			p.IsAvailable,
			leadTime,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		row, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[influencerRow])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return row.toDomain(), nil
}

func toCategories(in []string) []domainprofile.Category {
	if len(in) == 0 {
		return nil
	}
	out := make([]domainprofile.Category, len(in))
	for i, s := range in {
		out[i] = domainprofile.Category(s)
	}
	return out
}

func fromCategories(in []domainprofile.Category) []string {
	out := make([]string, len(in))
	for i, c := range in {
		out[i] = string(c)
	}
	return out
}

// emptyIfNil keeps array columns NOT NULL friendly: a nil slice would insert
// SQL NULL instead of an empty array.
func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
