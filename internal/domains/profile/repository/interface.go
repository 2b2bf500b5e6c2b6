package repository

import (
	"context"

	"github.com/google/uuid"

	"engagement-backend/internal/domains/profile/model"
)

// Repository is the read-only view of profiles and posts the engine needs:
// existence checks and owner resolution.
type Repository interface {
	// GetProfile returns model.ErrProfileNotFound when absent.
	GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error)

	// GetPost returns model.ErrPostNotFound when absent.
	GetPost(ctx context.Context, id uuid.UUID) (*model.Post, error)
}
