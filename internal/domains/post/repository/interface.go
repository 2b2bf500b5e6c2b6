package repository

import (
	"context"

	"github.com/google/uuid"

	"engagement-backend/internal/domains/post/model"
)

type LikeRepository interface {
	Exists(ctx context.Context, postID uuid.UUID, anonymousID string) (bool, error)

	// Create returns model.ErrLikeExists when the unique constraint on
	// (post_id, anonymous_id) rejects the row.
	Create(ctx context.Context, like *model.PostLike) error

	// Delete returns model.ErrLikeNotFound when no row was removed.
	Delete(ctx context.Context, postID uuid.UUID, anonymousID string) error

	CountByPost(ctx context.Context, postID uuid.UUID) (int, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.PostComment) error

	// GetByID returns model.ErrCommentNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.PostComment, error)

	// ListByPost lists newest first and returns the total for the post.
	ListByPost(ctx context.Context, postID uuid.UUID, page, limit int) ([]*model.PostComment, int, error)

	// Delete returns model.ErrCommentNotFound when no row was removed.
	Delete(ctx context.Context, id uuid.UUID) error
}
