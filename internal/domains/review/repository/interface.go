package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"engagement-backend/internal/domains/review/model"
)

// =====================================================
// REVIEW REPOSITORY INTERFACE
// =====================================================

// ListFilter narrows ListByProfile. A nil Published lists every review.
type ListFilter struct {
	Published *bool
}

type ReviewRepository interface {
	// ========================================
	// CRUD Operations
	// ========================================

	Create(ctx context.Context, review *model.Review) error

	// GetByID returns model.ErrReviewNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error)

	// UpdatePublished sets the published flag and returns the updated row.
	UpdatePublished(ctx context.Context, id uuid.UUID, published bool, updatedAt time.Time) (*model.Review, error)

	// Delete returns model.ErrReviewNotFound when nothing was removed.
	Delete(ctx context.Context, id uuid.UUID) error

	// ========================================
	// ABUSE GUARD
	// ========================================

	// FindLatestByFingerprint returns the newest review for the pair, or
	// model.ErrReviewNotFound.
	FindLatestByFingerprint(ctx context.Context, profileID uuid.UUID, fingerprint string) (*model.Review, error)

	// ========================================
	// LIST & STATISTICS
	// ========================================

	// ListByProfile lists newest first and returns the filtered total.
	ListByProfile(ctx context.Context, profileID uuid.UUID, filter ListFilter, page, limit int) ([]*model.Review, int, error)

	CountByProfile(ctx context.Context, profileID uuid.UUID) (int, error)

	// GetRatingBreakdown counts published reviews per rating.
	GetRatingBreakdown(ctx context.Context, profileID uuid.UUID) (map[int]int, error)
}
