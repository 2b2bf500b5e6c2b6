package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"engagement-backend/internal/domains/post/model"
)

// PostLikeRow mirrors post_likes; the composite unique index is the
// correctness backstop for concurrent toggles.
type PostLikeRow struct {
	ID          uuid.UUID `gorm:"type:text;primaryKey"`
	PostID      uuid.UUID `gorm:"type:text;not null;uniqueIndex:uq_post_likes_post_anonymous,priority:1"`
	AnonymousID string    `gorm:"size:128;not null;uniqueIndex:uq_post_likes_post_anonymous,priority:2"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (PostLikeRow) TableName() string { return "post_likes" }

type PostCommentRow struct {
	ID            uuid.UUID `gorm:"type:text;primaryKey"`
	PostID        uuid.UUID `gorm:"type:text;not null;index:idx_post_comments_post,priority:1"`
	CommenterName string    `gorm:"size:100;not null"`
	AvatarURL     *string
	Comment       string    `gorm:"not null"`
	AnonymousID   string    `gorm:"size:128;not null"`
	CreatedAt     time.Time `gorm:"not null;index:idx_post_comments_post,priority:2"`
}

func (PostCommentRow) TableName() string { return "post_comments" }

func (row *PostCommentRow) toModel() *model.PostComment {
	return &model.PostComment{
		ID:            row.ID,
		PostID:        row.PostID,
		CommenterName: row.CommenterName,
		AvatarURL:     row.AvatarURL,
		Comment:       row.Comment,
		AnonymousID:   row.AnonymousID,
		CreatedAt:     row.CreatedAt,
	}
}

// Models lists the rows AutoMigrate must create for this domain.
func Models() []interface{} {
	return []interface{}{&PostLikeRow{}, &PostCommentRow{}}
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// =====================================================
// LIKES
// =====================================================

type gormLikeRepository struct {
	db *gorm.DB
}

func NewGormLikeRepository(db *gorm.DB) LikeRepository {
	return &gormLikeRepository{db: db}
}

func (r *gormLikeRepository) Exists(ctx context.Context, postID uuid.UUID, anonymousID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PostLikeRow{}).
		Where("post_id = ? AND anonymous_id = ?", postID, anonymousID).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return count > 0, nil
}

func (r *gormLikeRepository) Create(ctx context.Context, like *model.PostLike) error {
	row := PostLikeRow{
		ID:          like.ID,
		PostID:      like.PostID,
		AnonymousID: like.AnonymousID,
		CreatedAt:   like.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isDuplicateKey(err) {
			return model.ErrLikeExists
		}
		return fmt.Errorf("failed to create like: %w", err)
	}
	return nil
}

func (r *gormLikeRepository) Delete(ctx context.Context, postID uuid.UUID, anonymousID string) error {
	result := r.db.WithContext(ctx).
		Where("post_id = ? AND anonymous_id = ?", postID, anonymousID).
		Delete(&PostLikeRow{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete like: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrLikeNotFound
	}
	return nil
}

func (r *gormLikeRepository) CountByPost(ctx context.Context, postID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&PostLikeRow{}).Where("post_id = ?", postID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return int(count), nil
}

// =====================================================
// COMMENTS
// =====================================================

type gormCommentRepository struct {
	db *gorm.DB
}

func NewGormCommentRepository(db *gorm.DB) CommentRepository {
	return &gormCommentRepository{db: db}
}

func (r *gormCommentRepository) Create(ctx context.Context, comment *model.PostComment) error {
	row := PostCommentRow{
		ID:            comment.ID,
		PostID:        comment.PostID,
		CommenterName: comment.CommenterName,
		AvatarURL:     comment.AvatarURL,
		Comment:       comment.Comment,
		AnonymousID:   comment.AnonymousID,
		CreatedAt:     comment.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *gormCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.PostComment, error) {
	var row PostCommentRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return row.toModel(), nil
}

func (r *gormCommentRepository) ListByPost(
	ctx context.Context,
	postID uuid.UUID,
	page, limit int,
) ([]*model.PostComment, int, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&PostCommentRow{}).Where("post_id = ?", postID).Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	var rows []PostCommentRow
	err = r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}

	comments := make([]*model.PostComment, 0, len(rows))
	for i := range rows {
		comments = append(comments, rows[i].toModel())
	}
	return comments, int(total), nil
}

func (r *gormCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&PostCommentRow{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}
