package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"engagement-backend/internal/domains/profile/model"
)

// ProfileRow mirrors the profiles table for the embedded store.
type ProfileRow struct {
	ID          uuid.UUID `gorm:"type:text;primaryKey"`
	OwnerID     uuid.UUID `gorm:"type:text;not null;index"`
	DisplayName string    `gorm:"not null;default:''"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (ProfileRow) TableName() string { return "profiles" }

// PostRow mirrors the posts table for the embedded store.
type PostRow struct {
	ID        uuid.UUID `gorm:"type:text;primaryKey"`
	ProfileID uuid.UUID `gorm:"type:text;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

func (PostRow) TableName() string { return "posts" }

// Models lists the rows AutoMigrate must create for this domain.
func Models() []interface{} {
	return []interface{}{&ProfileRow{}, &PostRow{}}
}

type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var row ProfileRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &model.Profile{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		DisplayName: row.DisplayName,
		CreatedAt:   row.CreatedAt,
	}, nil
}

func (r *gormRepository) GetPost(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var row PostRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &model.Post{ID: row.ID, ProfileID: row.ProfileID, CreatedAt: row.CreatedAt}, nil
}
