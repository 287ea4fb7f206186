// Package digizign provides the DigiZign sector module: marketing clients,
// campaigns, campaign feedback and the sector metrics dashboard.
package digizign

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
	"golang.org/x/sync/errgroup"
)

// Client statuses follow the sales pipeline; CONTRACT_SIGNED counts as a
// converted lead in the metrics dashboard.
const (
	ClientStatusNew            = "NEW"
	ClientStatusInTalks        = "IN_TALKS"
	ClientStatusContractSigned = "CONTRACT_SIGNED"
	ClientStatusChurned        = "CHURNED"
)

type Client struct {
	ID          uuid.UUID
	Name        string
	Email       *string
	Phone       *string
	Company     *string
	LeadSource  *string
	AssignedBDE *string
	Status      string
	CreatedAt   time.Time
}

type Campaign struct {
	ID         uuid.UUID
	Name       string
	Type       string
	Budget     float64
	Spend      float64
	Engagement float64
	ROI        float64
	StartDate  time.Time
	EndDate    time.Time
	Status     domain.CampaignStatus
	Scope      *string
	ClientID   uuid.UUID
	CreatedAt  time.Time
}

type Feedback struct {
	ID         uuid.UUID
	CampaignID uuid.UUID
	Rating     int
	Comments   *string
	CreatedAt  time.Time
}

// Metrics is the DigiZign dashboard snapshot.
type Metrics struct {
	TotalRunning       int
	AvgEngagement      float64
	LeadConversionRate float64
	TotalROI           float64
	Budget             float64
	Spend              float64
	UpcomingDeadlines  []CampaignDeadline
}

// CampaignDeadline is a campaign ending within the dashboard's lookahead
// window.
type CampaignDeadline struct {
	ID      uuid.UUID
	Name    string
	EndDate time.Time
	Status  domain.CampaignStatus
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) CreateClient(ctx context.Context, client Client) (Client, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO digizign_clients (name, email, phone, company, lead_source, assigned_bde, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		client.Name, client.Email, client.Phone, client.Company,
		client.LeadSource, client.AssignedBDE, client.Status,
	).Scan(&client.ID, &client.CreatedAt)
	if err != nil {
		return Client{}, fmt.Errorf("create digizign client: %w", err)
	}
	return client, nil
}

func (r *Repository) ListClients(ctx context.Context) ([]Client, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, phone, company, lead_source, assigned_bde, status, created_at
		FROM digizign_clients ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list digizign clients: %w", err)
	}
	defer rows.Close()

	clients := make([]Client, 0)
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company,
			&c.LeadSource, &c.AssignedBDE, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan digizign client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *Repository) CreateCampaign(ctx context.Context, campaign Campaign) (Campaign, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO digizign_campaigns (name, type, budget, spend, engagement, roi, start_date, end_date, status, scope, client_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`,
		campaign.Name, campaign.Type, campaign.Budget, campaign.Spend,
		campaign.Engagement, campaign.ROI, campaign.StartDate, campaign.EndDate,
		campaign.Status.String(), campaign.Scope, campaign.ClientID,
	).Scan(&campaign.ID, &campaign.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Campaign{}, apperr.NotFound("client not found")
		}
		return Campaign{}, fmt.Errorf("create campaign: %w", err)
	}
	return campaign, nil
}

func (r *Repository) ListCampaigns(ctx context.Context) ([]Campaign, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, type, budget, spend, engagement, roi, start_date, end_date, status, scope, client_id, created_at
		FROM digizign_campaigns ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := make([]Campaign, 0)
	for rows.Next() {
		var c Campaign
		var statusRaw string
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Budget, &c.Spend,
			&c.Engagement, &c.ROI, &c.StartDate, &c.EndDate, &statusRaw,
			&c.Scope, &c.ClientID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		c.Status = domain.CampaignStatus(statusRaw)
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

// CountActiveCampaigns counts campaigns that are live or already completed.
func (r *Repository) CountActiveCampaigns(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM digizign_campaigns
		WHERE status IN ('LIVE_CAMPAIGN', 'COMPLETED')`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active campaigns: %w", err)
	}
	return count, nil
}

func (r *Repository) CreateFeedback(ctx context.Context, feedback Feedback) (Feedback, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO digizign_feedbacks (campaign_id, rating, comments)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		feedback.CampaignID, feedback.Rating, feedback.Comments,
	).Scan(&feedback.ID, &feedback.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Feedback{}, apperr.NotFound("campaign not found")
		}
		return Feedback{}, fmt.Errorf("create feedback: %w", err)
	}
	return feedback, nil
}

func (r *Repository) ListFeedbacks(ctx context.Context, campaignID uuid.UUID) ([]Feedback, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, campaign_id, rating, comments, created_at
		FROM digizign_feedbacks WHERE campaign_id = $1 ORDER BY created_at DESC`,
		campaignID)
	if err != nil {
		return nil, fmt.Errorf("list feedbacks: %w", err)
	}
	defer rows.Close()

	feedbacks := make([]Feedback, 0)
	for rows.Next() {
		var f Feedback
		if err := rows.Scan(&f.ID, &f.CampaignID, &f.Rating, &f.Comments, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		feedbacks = append(feedbacks, f)
	}
	return feedbacks, rows.Err()
}

// GetMetrics builds the dashboard snapshot. Budget, spend and ROI aggregate
// over live campaigns only; the deadline list looks seven days ahead. The
// three queries are independent and run concurrently; each goroutine writes
// a disjoint set of fields.
func (r *Repository) GetMetrics(ctx context.Context) (Metrics, error) {
	var m Metrics
	var totalClients, converted int

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := r.pool.QueryRow(gctx, `
			SELECT
				COUNT(*) FILTER (WHERE status = 'LIVE_CAMPAIGN'),
				COALESCE(AVG(engagement), 0),
				COALESCE(SUM(roi) FILTER (WHERE status = 'LIVE_CAMPAIGN'), 0),
				COALESCE(SUM(budget) FILTER (WHERE status = 'LIVE_CAMPAIGN'), 0),
				COALESCE(SUM(spend) FILTER (WHERE status = 'LIVE_CAMPAIGN'), 0)
			FROM digizign_campaigns`).Scan(
			&m.TotalRunning, &m.AvgEngagement, &m.TotalROI, &m.Budget, &m.Spend)
		if err != nil {
			return fmt.Errorf("campaign metrics: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		err := r.pool.QueryRow(gctx, `
			SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'CONTRACT_SIGNED')
			FROM digizign_clients`).Scan(&totalClients, &converted)
		if err != nil {
			return fmt.Errorf("client metrics: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		rows, err := r.pool.Query(gctx, `
			SELECT id, name, end_date, status
			FROM digizign_campaigns
			WHERE end_date >= now() AND end_date <= now() + interval '7 days'
			ORDER BY end_date ASC`)
		if err != nil {
			return fmt.Errorf("upcoming deadlines: %w", err)
		}
		defer rows.Close()

		deadlines := make([]CampaignDeadline, 0)
		for rows.Next() {
			var d CampaignDeadline
			var statusRaw string
			if err := rows.Scan(&d.ID, &d.Name, &d.EndDate, &statusRaw); err != nil {
				return fmt.Errorf("scan deadline: %w", err)
			}
			d.Status = domain.CampaignStatus(statusRaw)
			deadlines = append(deadlines, d)
		}
		m.UpcomingDeadlines = deadlines
		return rows.Err()
	})

	if err := g.Wait(); err != nil {
		return Metrics{}, err
	}

	if totalClients > 0 {
		m.LeadConversionRate = float64(converted) / float64(totalClients) * 100
	}

	return m, nil
}
