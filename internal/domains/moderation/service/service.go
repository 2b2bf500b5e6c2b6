package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"engagement-backend/internal/domains/moderation/model"
	postModel "engagement-backend/internal/domains/post/model"
	postRepo "engagement-backend/internal/domains/post/repository"
	profileModel "engagement-backend/internal/domains/profile/model"
	profileRepo "engagement-backend/internal/domains/profile/repository"
	reviewModel "engagement-backend/internal/domains/review/model"
	reviewRepo "engagement-backend/internal/domains/review/repository"
	"engagement-backend/internal/metrics"
	"engagement-backend/internal/shared/apperror"
	"engagement-backend/internal/shared/utils"
	"engagement-backend/pkg/cache"
)

type moderationService struct {
	reviewRepo  reviewRepo.ReviewRepository
	commentRepo postRepo.CommentRepository
	profileRepo profileRepo.Repository
	cache       cache.Cache
	clock       clockwork.Clock
	metrics     *metrics.EngagementMetrics
}

func NewModerationService(
	reviews reviewRepo.ReviewRepository,
	comments postRepo.CommentRepository,
	profiles profileRepo.Repository,
	c cache.Cache,
	clock clockwork.Clock,
	m *metrics.EngagementMetrics,
) ServiceInterface {
	if c == nil {
		c = cache.Noop{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if m == nil {
		m = metrics.NewNopEngagementMetrics()
	}
	return &moderationService{
		reviewRepo:  reviews,
		commentRepo: comments,
		profileRepo: profiles,
		cache:       c,
		clock:       clock,
		metrics:     m,
	}
}

// =====================================================
// REVIEWS
// =====================================================

func (s *moderationService) SetPublished(
	ctx context.Context,
	reviewID, callerID uuid.UUID,
	published bool,
) (*reviewModel.ReviewResponse, error) {
	review, err := s.getReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, review.ProfileID, callerID); err != nil {
		return nil, err
	}

	updated, err := s.reviewRepo.UpdatePublished(ctx, reviewID, published, s.clock.Now().UTC())
	if err != nil {
		if errors.Is(err, reviewModel.ErrReviewNotFound) {
			return nil, reviewModel.NewReviewNotFoundError()
		}
		return nil, apperror.Storage(err)
	}

	s.invalidatePublic(ctx, updated.ProfileID)

	action := metrics.ActionUnpublish
	if published {
		action = metrics.ActionPublish
	}
	s.metrics.Moderation(action)
	log.Info().
		Str("review_id", reviewID.String()).
		Str("owner_id", callerID.String()).
		Bool("published", published).
		Msg("Review moderated")

	resp := reviewModel.ToReviewResponse(updated)
	return &resp, nil
}

func (s *moderationService) DeleteReview(ctx context.Context, reviewID, callerID uuid.UUID) error {
	review, err := s.getReview(ctx, reviewID)
	if err != nil {
		return err
	}

	if err := s.authorize(ctx, review.ProfileID, callerID); err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, reviewModel.ErrReviewNotFound) {
			return reviewModel.NewReviewNotFoundError()
		}
		return apperror.Storage(err)
	}

	s.invalidatePublic(ctx, review.ProfileID)
	s.metrics.Moderation(metrics.ActionDeleteReview)
	log.Info().
		Str("review_id", reviewID.String()).
		Str("owner_id", callerID.String()).
		Msg("Review deleted")

	return nil
}

func (s *moderationService) ListProfileReviews(
	ctx context.Context,
	profileID, callerID uuid.UUID,
	req model.ListProfileReviewsRequest,
) (*reviewModel.ListReviewsResponse, error) {
	if err := s.authorize(ctx, profileID, callerID); err != nil {
		return nil, err
	}

	page, limit := utils.NormalizePage(req.Page, req.Limit)
	reviews, total, err := s.reviewRepo.ListByProfile(ctx, profileID, reviewRepo.ListFilter{Published: req.Published}, page, limit)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	breakdown, err := s.reviewRepo.GetRatingBreakdown(ctx, profileID)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	stats := reviewModel.NewReviewStatistics(breakdown)

	return &reviewModel.ListReviewsResponse{
		Reviews:    reviewModel.ToReviewResponses(reviews),
		Statistics: &stats,
		Pagination: reviewModel.NewPaginationMeta(page, limit, total),
	}, nil
}

// =====================================================
// COMMENTS
// =====================================================

func (s *moderationService) DeleteComment(ctx context.Context, commentID, callerID uuid.UUID) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, postModel.ErrCommentNotFound) {
			return postModel.NewCommentNotFoundError()
		}
		return apperror.Storage(err)
	}

	post, err := s.profileRepo.GetPost(ctx, comment.PostID)
	if err != nil {
		if errors.Is(err, profileModel.ErrPostNotFound) {
			return profileModel.NewPostNotFoundError()
		}
		return apperror.Storage(err)
	}

	if err := s.authorize(ctx, post.ProfileID, callerID); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, postModel.ErrCommentNotFound) {
			return postModel.NewCommentNotFoundError()
		}
		return apperror.Storage(err)
	}

	s.metrics.Moderation(metrics.ActionDeleteComment)
	log.Info().
		Str("comment_id", commentID.String()).
		Str("owner_id", callerID.String()).
		Msg("Comment deleted")

	return nil
}

// =====================================================
// HELPERS
// =====================================================

func (s *moderationService) getReview(ctx context.Context, reviewID uuid.UUID) (*reviewModel.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, reviewModel.ErrReviewNotFound) {
			return nil, reviewModel.NewReviewNotFoundError()
		}
		return nil, apperror.Storage(err)
	}
	return review, nil
}

// authorize resolves the profile owner and compares it with the caller.
// Credentials were verified upstream; this is an identity comparison only.
func (s *moderationService) authorize(ctx context.Context, profileID, callerID uuid.UUID) error {
	profile, err := s.profileRepo.GetProfile(ctx, profileID)
	if err != nil {
		if errors.Is(err, profileModel.ErrProfileNotFound) {
			return profileModel.NewProfileNotFoundError()
		}
		return apperror.Storage(err)
	}

	if callerID == uuid.Nil || profile.OwnerID != callerID {
		log.Warn().
			Str("profile_id", profileID.String()).
			Str("caller_id", callerID.String()).
			Msg("Moderation attempt by non-owner")
		return model.NewForbiddenError()
	}
	return nil
}

func (s *moderationService) invalidatePublic(ctx context.Context, profileID uuid.UUID) {
	pattern := reviewModel.PublicCachePattern(profileID.String())
	if err := s.cache.DeletePattern(ctx, pattern); err != nil {
		log.Warn().Err(err).Str("pattern", pattern).Msg("Failed to invalidate review cache")
	}
}
