package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	profileModel "engagement-backend/internal/domains/profile/model"
	profileRepo "engagement-backend/internal/domains/profile/repository"
	"engagement-backend/internal/domains/review/model"
	"engagement-backend/internal/domains/review/repository"
	"engagement-backend/internal/metrics"
	"engagement-backend/internal/shared/apperror"
	"engagement-backend/internal/shared/utils"
	"engagement-backend/pkg/cache"
)

// Guard is the abuse check run before every insert.
type Guard interface {
	CheckAndRecord(ctx context.Context, profileID uuid.UUID, rawOrigin string) (string, error)
}

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	profileRepo profileRepo.Repository
	guard       Guard
	cache       cache.Cache
	cacheTTL    time.Duration
	clock       clockwork.Clock
	metrics     *metrics.EngagementMetrics
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	profileRepo profileRepo.Repository,
	guard Guard,
	c cache.Cache,
	cacheTTL time.Duration,
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
	return &reviewService{
		reviewRepo:  reviewRepo,
		profileRepo: profileRepo,
		guard:       guard,
		cache:       c,
		cacheTTL:    cacheTTL,
		clock:       clock,
		metrics:     m,
	}
}

// =====================================================
// SUBMIT REVIEW
// =====================================================

func (s *reviewService) SubmitReview(
	ctx context.Context,
	req model.SubmitReviewRequest,
	origin string,
) (*model.ReviewResponse, error) {
	// Step 1: Validate request
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Profile must exist
	if err := s.ensureProfile(ctx, req.ProfileID); err != nil {
		return nil, err
	}

	// Step 3: Origin cooldown
	fingerprint, err := s.guard.CheckAndRecord(ctx, req.ProfileID, origin)
	if err != nil {
		if apperror.Is(err, apperror.KindRateLimited) {
			s.metrics.ReviewsRateLimited.Inc()
		}
		return nil, err
	}

	// Step 4: Persist, always unpublished
	now := s.clock.Now().UTC()
	review := &model.Review{
		ID:           uuid.New(),
		ProfileID:    req.ProfileID,
		ReviewerName: req.ReviewerName,
		Rating:       *req.Rating,
		Comment:      req.Comment,
		AvatarURL:    req.AvatarURL,
		Fingerprint:  fingerprint,
		IsPublished:  false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, apperror.Storage(err)
	}

	s.metrics.ReviewsSubmitted.Inc()
	log.Info().
		Str("review_id", review.ID.String()).
		Str("profile_id", review.ProfileID.String()).
		Msg("Review submitted")

	response := model.ToReviewResponse(review)
	return &response, nil
}

// =====================================================
// LIST PUBLISHED
// =====================================================

func (s *reviewService) ListPublished(
	ctx context.Context,
	req model.ListReviewsRequest,
) (*model.ListReviewsResponse, error) {
	page, limit := utils.NormalizePage(req.Page, req.Limit)
	cacheKey := model.PublicCacheKey(req.ProfileID.String(), page, limit)

	var cached model.ListReviewsResponse
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Review cache read failed")
	}
	if found {
		return &cached, nil
	}

	if err := s.ensureProfile(ctx, req.ProfileID); err != nil {
		return nil, err
	}

	published := true
	reviews, total, err := s.reviewRepo.ListByProfile(ctx, req.ProfileID, repository.ListFilter{Published: &published}, page, limit)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	breakdown, err := s.reviewRepo.GetRatingBreakdown(ctx, req.ProfileID)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	stats := model.NewReviewStatistics(breakdown)

	response := &model.ListReviewsResponse{
		Reviews:    model.ToReviewResponses(reviews),
		Statistics: &stats,
		Pagination: model.NewPaginationMeta(page, limit, total),
	}

	if err := s.cache.Set(ctx, cacheKey, response, s.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Review cache write failed")
	}

	return response, nil
}

func (s *reviewService) ensureProfile(ctx context.Context, profileID uuid.UUID) error {
	if _, err := s.profileRepo.GetProfile(ctx, profileID); err != nil {
		if errors.Is(err, profileModel.ErrProfileNotFound) {
			return profileModel.NewProfileNotFoundError()
		}
		return apperror.Storage(err)
	}
	return nil
}
