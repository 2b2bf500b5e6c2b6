package service

import (
	"context"

	"github.com/google/uuid"

	"engagement-backend/internal/domains/moderation/model"
	reviewModel "engagement-backend/internal/domains/review/model"
)

// ServiceInterface is the owner-only gate over reviews and comments.
// callerID is the authenticated owner; uuid.Nil means anonymous.
// Missing resources fail with NotFound before ownership is checked.
type ServiceInterface interface {
	SetPublished(ctx context.Context, reviewID, callerID uuid.UUID, published bool) (*reviewModel.ReviewResponse, error)
	DeleteReview(ctx context.Context, reviewID, callerID uuid.UUID) error
	DeleteComment(ctx context.Context, commentID, callerID uuid.UUID) error

	// ListProfileReviews is the moderation queue, unpublished reviews included.
	ListProfileReviews(ctx context.Context, profileID, callerID uuid.UUID, req model.ListProfileReviewsRequest) (*reviewModel.ListReviewsResponse, error)
}
