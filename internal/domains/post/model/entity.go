package model

import (
	"time"

	"github.com/google/uuid"
)

// PostLike is unique per (PostID, AnonymousID); storage enforces it.
type PostLike struct {
	ID          uuid.UUID `json:"id"`
	PostID      uuid.UUID `json:"post_id"`
	AnonymousID string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// PostComment is an anonymous comment on a post. Only the owner of the
// post's profile may delete it.
type PostComment struct {
	ID            uuid.UUID `json:"id"`
	PostID        uuid.UUID `json:"post_id"`
	CommenterName string    `json:"commenter_name"`
	AvatarURL     *string   `json:"avatar_url"`
	Comment       string    `json:"comment"`
	AnonymousID   string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}
