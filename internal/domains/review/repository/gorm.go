package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"engagement-backend/internal/domains/review/model"
)

// ReviewRow mirrors the reviews table for the embedded store.
type ReviewRow struct {
	ID           uuid.UUID `gorm:"type:text;primaryKey"`
	ProfileID    uuid.UUID `gorm:"type:text;not null;index:idx_reviews_cooldown,priority:1;index:idx_reviews_public,priority:1"`
	ReviewerName string    `gorm:"size:100;not null"`
	Rating       int       `gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Comment      string    `gorm:"not null"`
	AvatarURL    *string
	Fingerprint  string    `gorm:"size:64;not null;index:idx_reviews_cooldown,priority:2"`
	IsPublished  bool      `gorm:"not null;default:false;index:idx_reviews_public,priority:2"`
	CreatedAt    time.Time `gorm:"not null;index:idx_reviews_cooldown,priority:3;index:idx_reviews_public,priority:3"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (ReviewRow) TableName() string { return "reviews" }

func (row *ReviewRow) toModel() *model.Review {
	return &model.Review{
		ID:           row.ID,
		ProfileID:    row.ProfileID,
		ReviewerName: row.ReviewerName,
		Rating:       row.Rating,
		Comment:      row.Comment,
		AvatarURL:    row.AvatarURL,
		Fingerprint:  row.Fingerprint,
		IsPublished:  row.IsPublished,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

// Models lists the rows AutoMigrate must create for this domain.
func Models() []interface{} {
	return []interface{}{&ReviewRow{}}
}

type gormReviewRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) ReviewRepository {
	return &gormReviewRepository{db: db}
}

func (r *gormReviewRepository) Create(ctx context.Context, review *model.Review) error {
	row := ReviewRow{
		ID:           review.ID,
		ProfileID:    review.ProfileID,
		ReviewerName: review.ReviewerName,
		Rating:       review.Rating,
		Comment:      review.Comment,
		AvatarURL:    review.AvatarURL,
		Fingerprint:  review.Fingerprint,
		IsPublished:  review.IsPublished,
		CreatedAt:    review.CreatedAt,
		UpdatedAt:    review.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *gormReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	var row ReviewRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return row.toModel(), nil
}

func (r *gormReviewRepository) FindLatestByFingerprint(
	ctx context.Context,
	profileID uuid.UUID,
	fingerprint string,
) (*model.Review, error) {
	var row ReviewRow
	err := r.db.WithContext(ctx).
		Where("profile_id = ? AND fingerprint = ?", profileID, fingerprint).
		Order("created_at DESC, id DESC").
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to find latest review: %w", err)
	}
	return row.toModel(), nil
}

func (r *gormReviewRepository) UpdatePublished(
	ctx context.Context,
	id uuid.UUID,
	published bool,
	updatedAt time.Time,
) (*model.Review, error) {
	result := r.db.WithContext(ctx).
		Model(&ReviewRow{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_published": published, "updated_at": updatedAt})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, model.ErrReviewNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *gormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ReviewRow{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrReviewNotFound
	}
	return nil
}

func (r *gormReviewRepository) ListByProfile(
	ctx context.Context,
	profileID uuid.UUID,
	filter ListFilter,
	page, limit int,
) ([]*model.Review, int, error) {
	q := r.db.WithContext(ctx).Model(&ReviewRow{}).Where("profile_id = ?", profileID)
	if filter.Published != nil {
		q = q.Where("is_published = ?", *filter.Published)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	var rows []ReviewRow
	err := q.Order("created_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}

	reviews := make([]*model.Review, 0, len(rows))
	for i := range rows {
		reviews = append(reviews, rows[i].toModel())
	}
	return reviews, int(total), nil
}

func (r *gormReviewRepository) CountByProfile(ctx context.Context, profileID uuid.UUID) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&ReviewRow{}).Where("profile_id = ?", profileID).Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return int(total), nil
}

func (r *gormReviewRepository) GetRatingBreakdown(ctx context.Context, profileID uuid.UUID) (map[int]int, error) {
	var rows []struct {
		Rating int
		Count  int
	}
	err := r.db.WithContext(ctx).
		Model(&ReviewRow{}).
		Select("rating, COUNT(*) AS count").
		Where("profile_id = ? AND is_published = ?", profileID, true).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get rating breakdown: %w", err)
	}

	breakdown := make(map[int]int, len(rows))
	for _, row := range rows {
		breakdown[row.Rating] = row.Count
	}
	return breakdown, nil
}
