// Package zurelabs provides the ZureLabs sector module: software clients,
// projects, proposals and the revenue report.
package zurelabs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"zylentrix_crm_backend/internal/domain"
	"zylentrix_crm_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Client struct {
	ID        uuid.UUID
	Name      string
	Email     *string
	Company   *string
	IsActive  bool
	CreatedAt time.Time
}

type Project struct {
	ID          uuid.UUID
	Name        string
	Description *string
	ClientID    uuid.UUID
	Deadline    *time.Time
	CreatedAt   time.Time
}

type Proposal struct {
	ID        uuid.UUID
	Title     string
	Amount    float64
	Status    domain.ProposalStatus
	ClientID  uuid.UUID
	CreatedAt time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) CreateClient(ctx context.Context, client Client) (Client, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO zurelabs_clients (name, email, company, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		client.Name, client.Email, client.Company, client.IsActive,
	).Scan(&client.ID, &client.CreatedAt)
	if err != nil {
		return Client{}, fmt.Errorf("create zurelabs client: %w", err)
	}
	return client, nil
}

func (r *Repository) ListActiveClients(ctx context.Context) ([]Client, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, company, is_active, created_at
		FROM zurelabs_clients WHERE is_active = true ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list active clients: %w", err)
	}
	defer rows.Close()

	clients := make([]Client, 0)
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Company, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *Repository) CreateProject(ctx context.Context, project Project) (Project, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO zurelabs_projects (name, description, client_id, deadline)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		project.Name, project.Description, project.ClientID, project.Deadline,
	).Scan(&project.ID, &project.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Project{}, apperr.NotFound("client not found")
		}
		return Project{}, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

func (r *Repository) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, client_id, deadline, created_at
		FROM zurelabs_projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]Project, 0)
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.ClientID, &p.Deadline, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *Repository) CreateProposal(ctx context.Context, proposal Proposal) (Proposal, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO zurelabs_proposals (title, amount, status, client_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		proposal.Title, proposal.Amount, proposal.Status.String(), proposal.ClientID,
	).Scan(&proposal.ID, &proposal.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Proposal{}, apperr.NotFound("client not found")
		}
		return Proposal{}, fmt.Errorf("create proposal: %w", err)
	}
	return proposal, nil
}

func (r *Repository) ListProposalsByStatus(ctx context.Context, status domain.ProposalStatus) ([]Proposal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, amount, status, client_id, created_at
		FROM zurelabs_proposals WHERE status = $1 ORDER BY created_at DESC`,
		status.String())
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	defer rows.Close()

	proposals := make([]Proposal, 0)
	for rows.Next() {
		var p Proposal
		var statusRaw string
		if err := rows.Scan(&p.ID, &p.Title, &p.Amount, &statusRaw, &p.ClientID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan proposal: %w", err)
		}
		p.Status = domain.ProposalStatus(statusRaw)
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

// TotalPaidRevenue sums the amounts of PAID proposals.
func (r *Repository) TotalPaidRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM zurelabs_proposals WHERE status = 'PAID'`).Scan(&revenue)
	if err != nil {
		return 0, fmt.Errorf("total paid revenue: %w", err)
	}
	return revenue, nil
}
