package repository

import (
	"context"
	"errors"
	"fmt"

	"zylentrix_crm_backend/internal/domain"
	"zylentrix_crm_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserLoad pairs a user with the number of PENDING tasks currently assigned
// to them.
type UserLoad struct {
	UserID       string
	Name         string
	Email        string
	Sector       domain.Sector
	PendingCount int
}

// LeadRef is the lead summary denormalized onto assignment results.
type LeadRef struct {
	ID     uuid.UUID
	Name   string
	Email  *string
	Phone  *string
	Sector domain.Sector
}

// ListUserLoads returns every verified user in the sector with their pending
// task count, ordered by user id so callers resolve ties deterministically.
func (r *Repository) ListUserLoads(ctx context.Context, sector domain.Sector) ([]UserLoad, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.name, u.email, u.sector,
			COUNT(t.id) FILTER (WHERE t.status = 'PENDING') AS pending_count
		FROM users u
		LEFT JOIN tasks t ON t.user_id = u.id
		WHERE u.sector = $1 AND u.email_verified = true
		GROUP BY u.id, u.name, u.email, u.sector
		ORDER BY u.id ASC`,
		sector.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list user loads: %w", err)
	}
	defer rows.Close()

	loads := make([]UserLoad, 0)
	for rows.Next() {
		var load UserLoad
		var sectorRaw string
		if err := rows.Scan(&load.UserID, &load.Name, &load.Email, &sectorRaw, &load.PendingCount); err != nil {
			return nil, fmt.Errorf("scan user load: %w", err)
		}
		load.Sector = domain.Sector(sectorRaw)
		loads = append(loads, load)
	}

	return loads, rows.Err()
}

// GetLeadRef fetches the lead summary attached to assignment responses.
func (r *Repository) GetLeadRef(ctx context.Context, leadID uuid.UUID) (LeadRef, error) {
	var ref LeadRef
	var sectorRaw string
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, phone, sector FROM leads WHERE id = $1`, leadID,
	).Scan(&ref.ID, &ref.Name, &ref.Email, &ref.Phone, &sectorRaw)
	if errors.Is(err, pgx.ErrNoRows) {
		return LeadRef{}, apperr.NotFound("lead not found")
	}
	if err != nil {
		return LeadRef{}, fmt.Errorf("get lead ref: %w", err)
	}

	ref.Sector = domain.Sector(sectorRaw)
	return ref, nil
}
