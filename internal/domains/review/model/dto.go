package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"engagement-backend/internal/shared/apperror"
	"engagement-backend/internal/shared/utils"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// SubmitReviewRequest is an anonymous review submission.
// ProfileID comes from the path; Rating is a pointer so a missing rating is
// told apart from rating 0.
type SubmitReviewRequest struct {
	ProfileID    uuid.UUID `json:"-"`
	ReviewerName string    `json:"reviewer_name"`
	Rating       *int      `json:"rating"`
	Comment      string    `json:"comment"`
	AvatarURL    *string   `json:"avatar_url"`
}

func (r *SubmitReviewRequest) Normalize() {
	r.ReviewerName = strings.TrimSpace(r.ReviewerName)
	r.Comment = strings.TrimSpace(r.Comment)
	if r.AvatarURL != nil {
		avatar := strings.TrimSpace(*r.AvatarURL)
		if avatar == "" {
			r.AvatarURL = nil
		} else {
			r.AvatarURL = &avatar
		}
	}
}

func (r SubmitReviewRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.ProfileID, validation.By(requiredUUID)),
		validation.Field(&r.ReviewerName,
			validation.Required.ErrorObject(apperror.ErrRuleRequired),
			validation.RuneLength(0, MaxReviewerNameLength).ErrorObject(apperror.TooLong("must be at most 100 characters")),
		),
		validation.Field(&r.Rating, validation.By(ratingInRange)),
		validation.Field(&r.Comment,
			validation.Required.ErrorObject(apperror.ErrRuleRequired),
			validation.RuneLength(0, MaxCommentLength).ErrorObject(apperror.TooLong("must be at most 2000 characters")),
		),
		validation.Field(&r.AvatarURL,
			validation.RuneLength(0, MaxAvatarURLLength).ErrorObject(apperror.TooLong("must be at most 500 characters")),
		),
	)
	return apperror.FromValidation(err)
}

func requiredUUID(value interface{}) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return apperror.ErrRuleRequired
	}
	return nil
}

func ratingInRange(value interface{}) error {
	rating, _ := value.(*int)
	if rating == nil {
		return apperror.ErrRuleRequired
	}
	if *rating < MinRating || *rating > MaxRating {
		return apperror.ErrRuleRating
	}
	return nil
}

// ListReviewsRequest is the public listing query.
type ListReviewsRequest struct {
	ProfileID uuid.UUID `form:"-"`
	Page      int       `form:"page"`
	Limit     int       `form:"limit"`
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// ReviewResponse is the public shape of a review. The fingerprint is never
// exposed.
type ReviewResponse struct {
	ID           uuid.UUID `json:"id"`
	ProfileID    uuid.UUID `json:"profile_id"`
	ReviewerName string    `json:"reviewer_name"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	AvatarURL    *string   `json:"avatar_url"`
	IsPublished  bool      `json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToReviewResponse(r *Review) ReviewResponse {
	return ReviewResponse{
		ID:           r.ID,
		ProfileID:    r.ProfileID,
		ReviewerName: r.ReviewerName,
		Rating:       r.Rating,
		Comment:      r.Comment,
		AvatarURL:    r.AvatarURL,
		IsPublished:  r.IsPublished,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func ToReviewResponses(reviews []*Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ToReviewResponse(r))
	}
	return out
}

// ListReviewsResponse response for list reviews
type ListReviewsResponse struct {
	Reviews    []ReviewResponse  `json:"reviews"`
	Statistics *ReviewStatistics `json:"statistics,omitempty"`
	Pagination PaginationMeta    `json:"pagination"`
}

// ReviewStatistics is computed over published reviews only.
type ReviewStatistics struct {
	TotalReviews    int             `json:"total_reviews"`
	AverageRating   decimal.Decimal `json:"average_rating"`
	RatingBreakdown map[int]int     `json:"rating_breakdown"` // {5: 100, 4: 50, ...}
}

// PaginationMeta pagination metadata
type PaginationMeta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewReviewStatistics derives totals and the one-decimal average from a
// per-rating breakdown.
func NewReviewStatistics(breakdown map[int]int) ReviewStatistics {
	stats := ReviewStatistics{
		AverageRating:   decimal.Zero,
		RatingBreakdown: make(map[int]int, MaxRating),
	}

	var sum int64
	for rating := MinRating; rating <= MaxRating; rating++ {
		count := breakdown[rating]
		stats.RatingBreakdown[rating] = count
		stats.TotalReviews += count
		sum += int64(rating * count)
	}

	if stats.TotalReviews > 0 {
		stats.AverageRating = decimal.NewFromInt(sum).
			Div(decimal.NewFromInt(int64(stats.TotalReviews))).
			Round(1)
	}
	return stats
}

func NewPaginationMeta(page, limit, total int) PaginationMeta {
	totalPages := utils.TotalPages(total, limit)
	return PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
