package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"engagement-backend/internal/domains/post/model"
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// =====================================================
// LIKES
// =====================================================

type postgresLikeRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresLikeRepository(pool *pgxpool.Pool) LikeRepository {
	return &postgresLikeRepository{pool: pool}
}

func (r *postgresLikeRepository) Exists(ctx context.Context, postID uuid.UUID, anonymousID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM post_likes WHERE post_id = $1 AND anonymous_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, postID, anonymousID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return exists, nil
}

func (r *postgresLikeRepository) Create(ctx context.Context, like *model.PostLike) error {
	query := `
		INSERT INTO post_likes (id, post_id, anonymous_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, like.ID, like.PostID, like.AnonymousID, like.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrLikeExists
		}
		return fmt.Errorf("failed to create like: %w", err)
	}
	return nil
}

func (r *postgresLikeRepository) Delete(ctx context.Context, postID uuid.UUID, anonymousID string) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND anonymous_id = $2`,
		postID, anonymousID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrLikeNotFound
	}
	return nil
}

func (r *postgresLikeRepository) CountByPost(ctx context.Context, postID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM post_likes WHERE post_id = $1`, postID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// =====================================================
// COMMENTS
// =====================================================

type postgresCommentRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &postgresCommentRepository{pool: pool}
}

const commentColumns = `id, post_id, commenter_name, avatar_url, comment, anonymous_id, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanComment(row scanner) (*model.PostComment, error) {
	c := &model.PostComment{}
	err := row.Scan(
		&c.ID,
		&c.PostID,
		&c.CommenterName,
		&c.AvatarURL,
		&c.Comment,
		&c.AnonymousID,
		&c.CreatedAt,
	)
	return c, err
}

func (r *postgresCommentRepository) Create(ctx context.Context, comment *model.PostComment) error {
	query := `
		INSERT INTO post_comments (` + commentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		comment.ID,
		comment.PostID,
		comment.CommenterName,
		comment.AvatarURL,
		comment.Comment,
		comment.AnonymousID,
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *postgresCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.PostComment, error) {
	query := `SELECT ` + commentColumns + ` FROM post_comments WHERE id = $1`

	comment, err := scanComment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return comment, nil
}

func (r *postgresCommentRepository) ListByPost(
	ctx context.Context,
	postID uuid.UUID,
	page, limit int,
) ([]*model.PostComment, int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM post_comments WHERE post_id = $1`, postID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	query := `
		SELECT ` + commentColumns + `
		FROM post_comments
		WHERE post_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, postID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*model.PostComment, 0, limit)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return comments, total, nil
}

func (r *postgresCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM post_comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}
