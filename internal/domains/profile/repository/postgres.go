package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"engagement-backend/internal/domains/profile/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	query := `
		SELECT id, owner_id, display_name, created_at
		FROM profiles
		WHERE id = $1
	`

	p := &model.Profile{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.OwnerID, &p.DisplayName, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) GetPost(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	query := `
		SELECT id, profile_id, created_at
		FROM posts
		WHERE id = $1
	`

	p := &model.Post{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.ProfileID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return p, nil
}
