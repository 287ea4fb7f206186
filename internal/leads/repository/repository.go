package repository

import (
	"context"
	"fmt"
	"time"

	"zylentrix_crm_backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Lead is a prospective customer captured from intake forms or campaigns.
// Email and phone are each optional but at least one is always present.
type Lead struct {
	ID        uuid.UUID
	Name      string
	Email     *string
	Phone     *string
	Sector    domain.Sector
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UpsertLeadParams struct {
	Name   string
	Email  *string
	Phone  *string
	Sector domain.Sector
}

// Repository implements lead persistence with PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const leadColumns = "id, name, email, phone, sector, created_at, updated_at"

// Upsert inserts the lead or refreshes the existing one matched by email when
// present, otherwise by phone. The second return value reports whether a new
// row was inserted. The (xmax = 0) trick distinguishes a fresh insert from a
// conflict-update in a single round trip.
func (r *Repository) Upsert(ctx context.Context, params UpsertLeadParams) (Lead, bool, error) {
	var query string
	if params.Email != nil {
		query = `
			INSERT INTO leads (name, email, phone, sector)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (email) WHERE email IS NOT NULL
			DO UPDATE SET
				name = EXCLUDED.name,
				phone = COALESCE(EXCLUDED.phone, leads.phone),
				sector = EXCLUDED.sector,
				updated_at = now()
			RETURNING ` + leadColumns + `, (xmax = 0) AS inserted`
	} else {
		query = `
			INSERT INTO leads (name, email, phone, sector)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (phone) WHERE phone IS NOT NULL
			DO UPDATE SET
				name = EXCLUDED.name,
				email = COALESCE(EXCLUDED.email, leads.email),
				sector = EXCLUDED.sector,
				updated_at = now()
			RETURNING ` + leadColumns + `, (xmax = 0) AS inserted`
	}

	var lead Lead
	var sectorRaw string
	var inserted bool
	err := r.pool.QueryRow(ctx, query, params.Name, params.Email, params.Phone, params.Sector.String()).Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &sectorRaw,
		&lead.CreatedAt, &lead.UpdatedAt, &inserted,
	)
	if err != nil {
		return Lead{}, false, fmt.Errorf("upsert lead: %w", err)
	}

	lead.Sector = domain.Sector(sectorRaw)
	return lead, inserted, nil
}

// List returns leads newest first, optionally restricted to one sector.
func (r *Repository) List(ctx context.Context, sector *domain.Sector) ([]Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads`
	args := []interface{}{}
	if sector != nil {
		query += ` WHERE sector = $1`
		args = append(args, sector.String())
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	var sectorRaw string
	err := row.Scan(&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &sectorRaw, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return Lead{}, err
	}
	lead.Sector = domain.Sector(sectorRaw)
	return lead, nil
}
