package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"zylentrix_crm_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already in use")
)

// Token types stored in user_tokens.
const (
	TokenTypeEmailVerify   = "email_verify"
	TokenTypePasswordReset = "password_reset"
)

const uniqueViolationCode = "23505"

type User struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  string
	Sector        domain.Sector
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) CreateUser(ctx context.Context, id, name, email, passwordHash string, sector domain.Sector) (User, error) {
	var user User
	var sectorRaw string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, name, email, password_hash, sector)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, password_hash, sector, email_verified, created_at, updated_at
	`, id, name, email, passwordHash, sector.String()).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &sectorRaw,
		&user.EmailVerified, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return User{}, ErrEmailTaken
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}

	user.Sector = domain.Sector(sectorRaw)
	return user, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return r.getUser(ctx, `
		SELECT id, name, email, password_hash, sector, email_verified, created_at, updated_at
		FROM users WHERE email = $1
	`, email)
}

func (r *Repository) GetUserByID(ctx context.Context, id string) (User, error) {
	return r.getUser(ctx, `
		SELECT id, name, email, password_hash, sector, email_verified, created_at, updated_at
		FROM users WHERE id = $1
	`, id)
}

func (r *Repository) getUser(ctx context.Context, query string, arg interface{}) (User, error) {
	var user User
	var sectorRaw string
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &sectorRaw,
		&user.EmailVerified, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("get user: %w", err)
	}

	user.Sector = domain.Sector(sectorRaw)
	return user, nil
}

func (r *Repository) MarkEmailVerified(ctx context.Context, userID string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET email_verified = true, updated_at = now() WHERE id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("mark email verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1
	`, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteUser(ctx context.Context, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) CreateUserToken(ctx context.Context, userID, tokenHash, tokenType string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_tokens (token_hash, user_id, token_type, expires_at)
		VALUES ($1, $2, $3, $4)
	`, tokenHash, userID, tokenType, expiresAt)
	if err != nil {
		return fmt.Errorf("create user token: %w", err)
	}
	return nil
}

// GetUserToken returns the owning user and expiry for an unused token.
func (r *Repository) GetUserToken(ctx context.Context, tokenHash, tokenType string) (string, time.Time, error) {
	var userID string
	var expiresAt time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, expires_at
		FROM user_tokens
		WHERE token_hash = $1 AND token_type = $2 AND used_at IS NULL
	`, tokenHash, tokenType).Scan(&userID, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", time.Time{}, ErrNotFound
	}
	if err != nil {
		return "", time.Time{}, fmt.Errorf("get user token: %w", err)
	}
	return userID, expiresAt, nil
}

func (r *Repository) UseUserToken(ctx context.Context, tokenHash, tokenType string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE user_tokens SET used_at = now()
		WHERE token_hash = $1 AND token_type = $2 AND used_at IS NULL
	`, tokenHash, tokenType)
	if err != nil {
		return fmt.Errorf("use user token: %w", err)
	}
	return nil
}
