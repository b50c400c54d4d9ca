package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/scholarship-service/internal/domain"
)

// ActionToken represents a stored single-use token: password reset or
// magic link.
type ActionToken struct {
	ID        string
	Kind      domain.ActionTokenKind
	UserID    string
	Token     string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// ActionTokenRepository manages single-use auth token persistence.
type ActionTokenRepository interface {
	Create(ctx context.Context, token *ActionToken) error
	GetByToken(ctx context.Context, kind domain.ActionTokenKind, token string) (*ActionToken, error)
	MarkUsed(ctx context.Context, id string) error
}

type actionTokenRepository struct {
	pool *pgxpool.Pool
}

// NewActionTokenRepository constructs the repository.
func NewActionTokenRepository(pool *pgxpool.Pool) ActionTokenRepository {
	return &actionTokenRepository{pool: pool}
}

func (r *actionTokenRepository) Create(ctx context.Context, token *ActionToken) error {
	const query = `
        INSERT INTO auth_action_tokens (kind, user_id, token, expires_at)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		string(token.Kind),
		token.UserID,
		token.Token,
		token.ExpiresAt,
	).Scan(&token.ID, &token.CreatedAt)
}

func (r *actionTokenRepository) GetByToken(ctx context.Context, kind domain.ActionTokenKind, tokenStr string) (*ActionToken, error) {
	const query = `
        SELECT id, kind, user_id, token, expires_at, used_at, created_at
        FROM auth_action_tokens WHERE kind=$1 AND token=$2`
	var token ActionToken
	var rawKind string
	if err := r.pool.QueryRow(ctx, query, string(kind), tokenStr).Scan(
		&token.ID,
		&rawKind,
		&token.UserID,
		&token.Token,
		&token.ExpiresAt,
		&token.UsedAt,
		&token.CreatedAt,
	); err != nil {
		return nil, err
	}
	token.Kind = domain.ActionTokenKind(rawKind)
	return &token, nil
}

func (r *actionTokenRepository) MarkUsed(ctx context.Context, id string) error {
	const query = `
        UPDATE auth_action_tokens SET used_at=NOW()
        WHERE id=$1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
