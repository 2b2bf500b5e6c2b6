package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"engagement-backend/internal/shared/apperror"
	"engagement-backend/internal/shared/utils"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// ToggleLikeRequest flips the caller's like on a post.
type ToggleLikeRequest struct {
	PostID      uuid.UUID `json:"-"`
	AnonymousID string    `json:"anonymous_id"`
}

func (r ToggleLikeRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.PostID, validation.By(requiredUUID)),
		validation.Field(&r.AnonymousID, anonymousIDRules()...),
	)
	return apperror.FromValidation(err)
}

// AddCommentRequest is an anonymous comment submission.
type AddCommentRequest struct {
	PostID        uuid.UUID `json:"-"`
	CommenterName string    `json:"commenter_name"`
	Comment       string    `json:"comment"`
	AnonymousID   string    `json:"anonymous_id"`
	AvatarURL     *string   `json:"avatar_url"`
}

func (r *AddCommentRequest) Normalize() {
	r.CommenterName = strings.TrimSpace(r.CommenterName)
	r.Comment = strings.TrimSpace(r.Comment)
	r.AnonymousID = strings.TrimSpace(r.AnonymousID)
	if r.AvatarURL != nil {
		avatar := strings.TrimSpace(*r.AvatarURL)
		if avatar == "" {
			r.AvatarURL = nil
		} else {
			r.AvatarURL = &avatar
		}
	}
}

func (r AddCommentRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.PostID, validation.By(requiredUUID)),
		validation.Field(&r.CommenterName,
			validation.Required.ErrorObject(apperror.ErrRuleRequired),
			validation.RuneLength(0, MaxCommenterNameLength).ErrorObject(apperror.TooLong("must be at most 100 characters")),
		),
		validation.Field(&r.Comment,
			validation.Required.ErrorObject(apperror.ErrRuleRequired),
			validation.RuneLength(0, MaxCommentLength).ErrorObject(apperror.TooLong("must be at most 500 characters")),
		),
		validation.Field(&r.AnonymousID, anonymousIDRules()...),
		validation.Field(&r.AvatarURL,
			validation.RuneLength(0, MaxAvatarURLLength).ErrorObject(apperror.TooLong("must be at most 500 characters")),
		),
	)
	return apperror.FromValidation(err)
}

func anonymousIDRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.ErrorObject(apperror.ErrRuleRequired),
		validation.RuneLength(0, MaxAnonymousIDLength).ErrorObject(apperror.TooLong("must be at most 128 characters")),
	}
}

func requiredUUID(value interface{}) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return apperror.ErrRuleRequired
	}
	return nil
}

// ListCommentsRequest is the paginated comment listing query.
type ListCommentsRequest struct {
	PostID uuid.UUID `form:"-"`
	Page   int       `form:"page"`
	Limit  int       `form:"limit"`
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// LikeToggleResponse is the state after a toggle with the fresh count.
type LikeToggleResponse struct {
	PostID    uuid.UUID `json:"post_id"`
	Liked     bool      `json:"liked"`
	LikeCount int       `json:"like_count"`
}

// LikeStateResponse reports the count and whether the caller has liked.
type LikeStateResponse struct {
	PostID    uuid.UUID `json:"post_id"`
	LikeCount int       `json:"like_count"`
	HasLiked  bool      `json:"has_liked"`
}

// CommentResponse hides the commenter's anonymous id.
type CommentResponse struct {
	ID            uuid.UUID `json:"id"`
	PostID        uuid.UUID `json:"post_id"`
	CommenterName string    `json:"commenter_name"`
	AvatarURL     *string   `json:"avatar_url"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToCommentResponse(c *PostComment) CommentResponse {
	return CommentResponse{
		ID:            c.ID,
		PostID:        c.PostID,
		CommenterName: c.CommenterName,
		AvatarURL:     c.AvatarURL,
		Comment:       c.Comment,
		CreatedAt:     c.CreatedAt,
	}
}

type ListCommentsResponse struct {
	Comments   []CommentResponse `json:"comments"`
	Pagination PaginationMeta    `json:"pagination"`
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
