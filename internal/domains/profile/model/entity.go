package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile is owned by the profile app. The engine only needs its owner.
type Profile struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Post belongs to a profile; likes and comments hang off it.
type Post struct {
	ID        uuid.UUID `json:"id"`
	ProfileID uuid.UUID `json:"profile_id"`
	CreatedAt time.Time `json:"created_at"`
}
