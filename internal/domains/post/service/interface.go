package service

import (
	"context"

	"github.com/google/uuid"

	"engagement-backend/internal/domains/post/model"
)

type ServiceInterface interface {
	// ToggleLike flips the like of (postID, anonymousID) and returns the new
	// state with a freshly counted total.
	ToggleLike(ctx context.Context, req model.ToggleLikeRequest) (*model.LikeToggleResponse, error)

	// GetLikeState reports the total and, when anonymousID is set, whether
	// that identity has liked the post.
	GetLikeState(ctx context.Context, postID uuid.UUID, anonymousID string) (*model.LikeStateResponse, error)

	AddComment(ctx context.Context, req model.AddCommentRequest) (*model.CommentResponse, error)

	// ListComments lists newest first, one page at a time.
	ListComments(ctx context.Context, req model.ListCommentsRequest) (*model.ListCommentsResponse, error)
}
