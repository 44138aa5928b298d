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

// BrandRepo provides database operations for brand sub-profiles.
type BrandRepo struct {
	DB *sql.DB
}

// NewBrandRepo creates a new BrandRepo.
func NewBrandRepo(db *sql.DB) *BrandRepo {
	return &BrandRepo{DB: db}
}

type brandRow struct {
	ID                          string    `db:"id"`
	UserID                      string    `db:"user_id"`
	CompanyName                 string    `db:"company_name"`
	BrandName                   *string   `db:"brand_name"`
	Description                 *string   `db:"description"`
	PrimaryCategory             string    `db:"primary_category"`
	SecondaryCategories         []string  `db:"secondary_categories"`
	CompanyWebsite              *string   `db:"company_website"`
	CompanyEmail                *string   `db:"company_email"`
	BudgetMin                   *int64    `db:"budget_min"`
	BudgetMax                   *int64    `db:"budget_max"`
	BudgetCurrency              string    `db:"budget_currency"`
	PreviousInfluencerCampaigns int       `db:"previous_influencer_campaigns"`
	CreatedAt                   time.Time `db:"created_at"`
	UpdatedAt                   time.Time `db:"updated_at"`
}

func (r brandRow) toDomain() *domainprofile.BrandProfile {
	return &domainprofile.BrandProfile{
		ID:                          r.ID,
		UserID:                      r.UserID,
		CompanyName:                 r.CompanyName,
		BrandName:                   r.BrandName,
		Description:                 r.Description,
		PrimaryCategory:             domainprofile.Category(r.PrimaryCategory),
		SecondaryCategories:         toCategories(r.SecondaryCategories),
		CompanyWebsite:              r.CompanyWebsite,
		CompanyEmail:                r.CompanyEmail,
		BudgetMin:                   r.BudgetMin,
		BudgetMax:                   r.BudgetMax,
		BudgetCurrency:              r.BudgetCurrency,
		PreviousInfluencerCampaigns: r.PreviousInfluencerCampaigns,
		CreatedAt:                   r.CreatedAt,
		UpdatedAt:                   r.UpdatedAt,
	}
}

const brandColumns = `id, user_id, company_name, brand_name, description, primary_category,
	secondary_categories, company_website, company_email, budget_min, budget_max,
	budget_currency, previous_influencer_campaigns, created_at, updated_at`

// GetByUserID retrieves the brand sub-profile for an identity. A missing row
// maps to an AppError with ErrCodeNotFound.
func (r *BrandRepo) GetByUserID(ctx context.Context, userID string) (*domainprofile.BrandProfile, error) {
	if userID == "" {
		return nil, errors.New("user id is required")
	}

	var row brandRow
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+brandColumns+`
			FROM brands
			WHERE user_id = $1
		`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		row, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[brandRow])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return row.toDomain(), nil
}

// Upsert inserts or replaces the brand sub-profile keyed on user_id.
func (r *BrandRepo) Upsert(ctx context.Context, p *domainprofile.BrandProfile) (*domainprofile.BrandProfile, error) {
	if p == nil {
		return nil, errors.New("brand profile is required")
	}
	if p.UserID == "" {
		return nil, errors.New("user id is required")
	}

	currency := strings.TrimSpace(p.BudgetCurrency)
	if currency == "" {
		currency = "USD"
	}

	var row brandRow
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO brands (
				user_id, company_name, brand_name, description, primary_category,
				secondary_categories, company_website, company_email, budget_min,
				budget_max, budget_currency, previous_influencer_campaigns
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (user_id) DO UPDATE SET
				company_name = EXCLUDED.company_name,
				brand_name = EXCLUDED.brand_name,
				description = EXCLUDED.description,
				primary_category = EXCLUDED.primary_category,
				secondary_categories = EXCLUDED.secondary_categories,
				company_website = EXCLUDED.company_website,
				company_email = EXCLUDED.company_email,
				budget_min = EXCLUDED.budget_min,
				budget_max = EXCLUDED.budget_max,
				budget_currency = EXCLUDED.budget_currency,
				previous_influencer_campaigns = EXCLUDED.previous_influencer_campaigns,
				updated_at = now()
			RETURNING `+brandColumns+`
		`,
			strings.TrimSpace(p.UserID),
			strings.TrimSpace(p.CompanyName),
			p.BrandName,
			p.Description,
			string(p.PrimaryCategory),
			fromCategories(p.SecondaryCategories),
			p.CompanyWebsite,
			p.CompanyEmail,
			p.BudgetMin,
			p.BudgetMax,
			currency,
			p.PreviousInfluencerCampaigns,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		row, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[brandRow])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return row.toDomain(), nil
}
