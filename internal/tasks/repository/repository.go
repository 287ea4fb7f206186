package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"zylentrix_crm_backend/internal/domain"
	"zylentrix_crm_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	taskNotFoundMessage = "task not found"

	foreignKeyViolationCode = "23503"
)

// Task is a follow-up work item owned by exactly one user and tied to one lead.
type Task struct {
	ID          uuid.UUID
	Title       string
	Description string
	Priority    domain.TaskPriority
	DueDate     *time.Time
	Status      domain.TaskStatus
	Feedback    *string
	UserID      string
	LeadID      uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateTaskParams struct {
	Title       string
	Description string
	Priority    domain.TaskPriority
	DueDate     *time.Time
	Status      domain.TaskStatus
	UserID      string
	LeadID      uuid.UUID
}

type UpdateTaskParams struct {
	Title       *string
	Description *string
	Priority    *domain.TaskPriority
	DueDate     *time.Time
	LeadID      *uuid.UUID
}

// Repository implements task persistence with PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const taskColumns = "id, title, description, priority, due_date, status, feedback, user_id, lead_id, created_at, updated_at"

func (r *Repository) Create(ctx context.Context, params CreateTaskParams) (Task, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, description, priority, due_date, status, user_id, lead_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+taskColumns,
		params.Title, params.Description, params.Priority.String(), params.DueDate,
		params.Status.String(), params.UserID, params.LeadID,
	)

	task, err := scanTask(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
			if strings.Contains(pgErr.ConstraintName, "lead") {
				return Task{}, apperr.NotFound("lead not found")
			}
			return Task{}, apperr.NotFound("user not found")
		}
		return Task{}, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Task, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)

	task, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Task{}, apperr.NotFound(taskNotFoundMessage)
	}
	if err != nil {
		return Task{}, fmt.Errorf("get task by id: %w", err)
	}
	return task, nil
}

// ListByUser returns a user's tasks, optionally filtered by status and sorted
// by due date.
func (r *Repository) ListByUser(ctx context.Context, userID string, status *domain.TaskStatus, dueDateDesc *bool) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1`
	args := []interface{}{userID}

	if status != nil {
		query += ` AND status = $2`
		args = append(args, status.String())
	}

	switch {
	case dueDateDesc == nil:
		query += ` ORDER BY created_at DESC`
	case *dueDateDesc:
		query += ` ORDER BY due_date DESC NULLS LAST`
	default:
		query += ` ORDER BY due_date ASC NULLS LAST`
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateTaskParams) (Task, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE tasks SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			priority = COALESCE($4, priority),
			due_date = COALESCE($5, due_date),
			lead_id = COALESCE($6, lead_id),
			updated_at = now()
		WHERE id = $1
		RETURNING `+taskColumns,
		id, params.Title, params.Description, priorityOrNil(params.Priority), params.DueDate, params.LeadID,
	)

	task, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Task{}, apperr.NotFound(taskNotFoundMessage)
	}
	if err != nil {
		return Task{}, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus) (Task, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE tasks SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+taskColumns,
		id, status.String(),
	)

	task, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Task{}, apperr.NotFound(taskNotFoundMessage)
	}
	if err != nil {
		return Task{}, fmt.Errorf("update task status: %w", err)
	}
	return task, nil
}

func (r *Repository) SetFeedback(ctx context.Context, id uuid.UUID, feedback string) (Task, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE tasks SET feedback = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+taskColumns,
		id, feedback,
	)

	task, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Task{}, apperr.NotFound(taskNotFoundMessage)
	}
	if err != nil {
		return Task{}, fmt.Errorf("set task feedback: %w", err)
	}
	return task, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(taskNotFoundMessage)
	}
	return nil
}

func scanTask(row pgx.Row) (Task, error) {
	var task Task
	var priorityRaw, statusRaw string
	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &priorityRaw, &task.DueDate,
		&statusRaw, &task.Feedback, &task.UserID, &task.LeadID,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return Task{}, err
	}

	task.Priority = domain.TaskPriority(priorityRaw)
	task.Status = domain.TaskStatus(statusRaw)
	return task, nil
}

func priorityOrNil(priority *domain.TaskPriority) *string {
	if priority == nil {
		return nil
	}
	raw := priority.String()
	return &raw
}
