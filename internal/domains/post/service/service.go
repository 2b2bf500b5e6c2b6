package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"engagement-backend/internal/domains/post/model"
	"engagement-backend/internal/domains/post/repository"
	profileModel "engagement-backend/internal/domains/profile/model"
	profileRepo "engagement-backend/internal/domains/profile/repository"
	"engagement-backend/internal/metrics"
	"engagement-backend/internal/shared/apperror"
	"engagement-backend/internal/shared/utils"
)

type postService struct {
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
	profileRepo profileRepo.Repository
	clock       clockwork.Clock
	metrics     *metrics.EngagementMetrics
}

func NewPostService(
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	profileRepo profileRepo.Repository,
	clock clockwork.Clock,
	m *metrics.EngagementMetrics,
) ServiceInterface {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if m == nil {
		m = metrics.NewNopEngagementMetrics()
	}
	return &postService{
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		profileRepo: profileRepo,
		clock:       clock,
		metrics:     m,
	}
}

// =====================================================
// LIKES
// =====================================================

func (s *postService) ToggleLike(ctx context.Context, req model.ToggleLikeRequest) (*model.LikeToggleResponse, error) {
	req.AnonymousID = strings.TrimSpace(req.AnonymousID)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.ensurePost(ctx, req.PostID); err != nil {
		return nil, err
	}

	exists, err := s.likeRepo.Exists(ctx, req.PostID, req.AnonymousID)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	liked := !exists
	if exists {
		if err := s.unlike(ctx, req.PostID, req.AnonymousID); err != nil {
			return nil, err
		}
	} else {
		liked, err = s.like(ctx, req.PostID, req.AnonymousID)
		if err != nil {
			return nil, err
		}
	}

	count, err := s.likeRepo.CountByPost(ctx, req.PostID)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	s.metrics.LikeState(liked)
	return &model.LikeToggleResponse{PostID: req.PostID, Liked: liked, LikeCount: count}, nil
}

// like inserts the row. A unique violation means a concurrent toggle from
// the same identity won the insert; it counts as "already liked" and the
// toggle resolves to unliked.
func (s *postService) like(ctx context.Context, postID uuid.UUID, anonymousID string) (bool, error) {
	err := s.likeRepo.Create(ctx, &model.PostLike{
		ID:          uuid.New(),
		PostID:      postID,
		AnonymousID: anonymousID,
		CreatedAt:   s.clock.Now().UTC(),
	})
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, model.ErrLikeExists) {
		return false, apperror.Storage(err)
	}

	s.metrics.LikeConflicts.Inc()
	log.Debug().Str("post_id", postID.String()).Msg("Concurrent like resolved as unlike")

	if err := s.unlike(ctx, postID, anonymousID); err != nil {
		return false, err
	}
	return false, nil
}

// unlike removes the row; a row already removed by a concurrent toggle is
// the same outcome.
func (s *postService) unlike(ctx context.Context, postID uuid.UUID, anonymousID string) error {
	err := s.likeRepo.Delete(ctx, postID, anonymousID)
	if err != nil && !errors.Is(err, model.ErrLikeNotFound) {
		return apperror.Storage(err)
	}
	return nil
}

func (s *postService) GetLikeState(ctx context.Context, postID uuid.UUID, anonymousID string) (*model.LikeStateResponse, error) {
	if postID == uuid.Nil {
		return nil, apperror.MissingField("post_id: is required")
	}
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}

	count, err := s.likeRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	resp := &model.LikeStateResponse{PostID: postID, LikeCount: count}
	if anonymousID = strings.TrimSpace(anonymousID); anonymousID != "" {
		resp.HasLiked, err = s.likeRepo.Exists(ctx, postID, anonymousID)
		if err != nil {
			return nil, apperror.Storage(err)
		}
	}

	return resp, nil
}

// =====================================================
// COMMENTS
// =====================================================

func (s *postService) AddComment(ctx context.Context, req model.AddCommentRequest) (*model.CommentResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.ensurePost(ctx, req.PostID); err != nil {
		return nil, err
	}

	comment := &model.PostComment{
		ID:            uuid.New(),
		PostID:        req.PostID,
		CommenterName: req.CommenterName,
		AvatarURL:     req.AvatarURL,
		Comment:       req.Comment,
		AnonymousID:   req.AnonymousID,
		CreatedAt:     s.clock.Now().UTC(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, apperror.Storage(err)
	}

	s.metrics.CommentsAdded.Inc()
	resp := model.ToCommentResponse(comment)
	return &resp, nil
}

func (s *postService) ListComments(ctx context.Context, req model.ListCommentsRequest) (*model.ListCommentsResponse, error) {
	if req.PostID == uuid.Nil {
		return nil, apperror.MissingField("post_id: is required")
	}
	if err := s.ensurePost(ctx, req.PostID); err != nil {
		return nil, err
	}

	page, limit := utils.NormalizePage(req.Page, req.Limit)
	comments, total, err := s.commentRepo.ListByPost(ctx, req.PostID, page, limit)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	out := make([]model.CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, model.ToCommentResponse(c))
	}

	return &model.ListCommentsResponse{
		Comments:   out,
		Pagination: model.NewPaginationMeta(page, limit, total),
	}, nil
}

func (s *postService) ensurePost(ctx context.Context, postID uuid.UUID) error {
	if _, err := s.profileRepo.GetPost(ctx, postID); err != nil {
		if errors.Is(err, profileModel.ErrPostNotFound) {
			return profileModel.NewPostNotFoundError()
		}
		return apperror.Storage(err)
	}
	return nil
}
