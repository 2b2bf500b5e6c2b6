package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is an anonymous star rating left on a profile.
// Fingerprint is a keyed hash of the submitter's origin, never the address.
type Review struct {
	ID        uuid.UUID `json:"id"`
	ProfileID uuid.UUID `json:"profile_id"`

	// Content
	ReviewerName string  `json:"reviewer_name"`
	Rating       int     `json:"rating"` // 1-5
	Comment      string  `json:"comment"`
	AvatarURL    *string `json:"avatar_url"`

	// Abuse & moderation
	Fingerprint string `json:"-"`
	IsPublished bool   `json:"is_published"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CooldownEndsAt is the earliest time the same origin may review the
// profile again.
func (r *Review) CooldownEndsAt() time.Time {
	return r.CreatedAt.Add(CooldownWindow)
}
