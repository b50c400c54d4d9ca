package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/scholarship-service/internal/domain"
)

// TrackRepository defines persistence access for learning tracks.
type TrackRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Track, error)
	List(ctx context.Context) ([]domain.Track, error)
}

type trackRepository struct {
	pool *pgxpool.Pool
}

// NewTrackRepository returns a Postgres-backed implementation.
func NewTrackRepository(pool *pgxpool.Pool) TrackRepository {
	return &trackRepository{pool: pool}
}

func (r *trackRepository) GetBySlug(ctx context.Context, slug string) (*domain.Track, error) {
	const query = `
        SELECT slug, name, description, created_at, updated_at
        FROM tracks WHERE slug=$1`

	var track domain.Track
	if err := r.pool.QueryRow(ctx, query, slug).Scan(
		&track.Slug,
		&track.Name,
		&track.Description,
		&track.CreatedAt,
		&track.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &track, nil
}

func (r *trackRepository) List(ctx context.Context) ([]domain.Track, error) {
	const query = `
        SELECT slug, name, description, created_at, updated_at
        FROM tracks ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []domain.Track
	for rows.Next() {
		var track domain.Track
		if err := rows.Scan(
			&track.Slug,
			&track.Name,
			&track.Description,
			&track.CreatedAt,
			&track.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	return tracks, rows.Err()
}
