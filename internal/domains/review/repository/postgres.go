package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"engagement-backend/internal/domains/review/model"
)

// =====================================================
// POSTGRES IMPLEMENTATION
// =====================================================

type postgresReviewRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) ReviewRepository {
	return &postgresReviewRepository{pool: pool}
}

const reviewColumns = `
	id, profile_id, reviewer_name, rating, comment, avatar_url,
	fingerprint, is_published, created_at, updated_at
`

type scanner interface {
	Scan(dest ...any) error
}

func scanReview(row scanner) (*model.Review, error) {
	review := &model.Review{}
	err := row.Scan(
		&review.ID,
		&review.ProfileID,
		&review.ReviewerName,
		&review.Rating,
		&review.Comment,
		&review.AvatarURL,
		&review.Fingerprint,
		&review.IsPublished,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	return review, err
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresReviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (
			id, profile_id, reviewer_name, rating, comment, avatar_url,
			fingerprint, is_published, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		review.ID,
		review.ProfileID,
		review.ReviewerName,
		review.Rating,
		review.Comment,
		review.AvatarURL,
		review.Fingerprint,
		review.IsPublished,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// =====================================================
// GET
// =====================================================

func (r *postgresReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	review, err := scanReview(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return review, nil
}

func (r *postgresReviewRepository) FindLatestByFingerprint(
	ctx context.Context,
	profileID uuid.UUID,
	fingerprint string,
) (*model.Review, error) {
	query := `SELECT ` + reviewColumns + `
		FROM reviews
		WHERE profile_id = $1 AND fingerprint = $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	review, err := scanReview(r.pool.QueryRow(ctx, query, profileID, fingerprint))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to find latest review: %w", err)
	}

	return review, nil
}

// =====================================================
// UPDATE & DELETE
// =====================================================

func (r *postgresReviewRepository) UpdatePublished(
	ctx context.Context,
	id uuid.UUID,
	published bool,
	updatedAt time.Time,
) (*model.Review, error) {
	query := `
		UPDATE reviews
		SET is_published = $2, updated_at = $3
		WHERE id = $1
		RETURNING ` + reviewColumns

	review, err := scanReview(r.pool.QueryRow(ctx, query, id, published, updatedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	return review, nil
}

func (r *postgresReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}

	return nil
}

// =====================================================
// LIST & STATISTICS
// =====================================================

func (r *postgresReviewRepository) ListByProfile(
	ctx context.Context,
	profileID uuid.UUID,
	filter ListFilter,
	page, limit int,
) ([]*model.Review, int, error) {
	where := `WHERE profile_id = $1`
	args := []interface{}{profileID}
	if filter.Published != nil {
		where += ` AND is_published = $2`
		args = append(args, *filter.Published)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM reviews ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM reviews %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		reviewColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]*model.Review, 0, limit)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, total, nil
}

func (r *postgresReviewRepository) CountByProfile(ctx context.Context, profileID uuid.UUID) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE profile_id = $1`, profileID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return total, nil
}

func (r *postgresReviewRepository) GetRatingBreakdown(
	ctx context.Context,
	profileID uuid.UUID,
) (map[int]int, error) {
	query := `
		SELECT rating, COUNT(*) as count
		FROM reviews
		WHERE profile_id = $1 AND is_published = true
		GROUP BY rating
		ORDER BY rating DESC
	`

	rows, err := r.pool.Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rating breakdown: %w", err)
	}
	defer rows.Close()

	breakdown := make(map[int]int)
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, fmt.Errorf("failed to scan rating breakdown: %w", err)
		}
		breakdown[rating] = count
	}

	return breakdown, rows.Err()
}
