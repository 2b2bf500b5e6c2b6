package service

import (
	"context"

	"engagement-backend/internal/domains/review/model"
)

// =====================================================
// REVIEW SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// SubmitReview validates, checks the origin cooldown and stores an
	// unpublished review. origin is the raw client origin.
	SubmitReview(ctx context.Context, req model.SubmitReviewRequest, origin string) (*model.ReviewResponse, error)

	// ListPublished lists a profile's published reviews with statistics.
	ListPublished(ctx context.Context, req model.ListReviewsRequest) (*model.ListReviewsResponse, error)
}
