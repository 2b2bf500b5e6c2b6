package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"engagement-backend/internal/domains/moderation/model"
	"engagement-backend/internal/domains/moderation/service"
	"engagement-backend/internal/shared/apperror"
	"engagement-backend/internal/shared/middleware"
	"engagement-backend/internal/shared/response"
	"engagement-backend/internal/shared/utils"
)

// ModerationHandler serves the owner routes. AuthMiddleware must run first.
type ModerationHandler struct {
	moderationService service.ServiceInterface
}

func NewModerationHandler(moderationService service.ServiceInterface) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

// SetPublished publishes or hides a review
// PATCH /api/v1/owner/reviews/:id/publish
func (h *ModerationHandler) SetPublished(c *gin.Context) {
	var req model.SetPublishedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.FromDecode(err))
		return
	}
	if req.IsPublished == nil {
		response.FromError(c, apperror.MissingField("is_published: is required"))
		return
	}

	resp, err := h.moderationService.SetPublished(
		c.Request.Context(),
		utils.ParseStringToUUID(c.Param("id")),
		middleware.GetUserID(c),
		*req.IsPublished,
	)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// DeleteReview removes a review
// DELETE /api/v1/owner/reviews/:id
func (h *ModerationHandler) DeleteReview(c *gin.Context) {
	err := h.moderationService.DeleteReview(
		c.Request.Context(),
		utils.ParseStringToUUID(c.Param("id")),
		middleware.GetUserID(c),
	)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// DeleteComment removes a comment on one of the owner's posts
// DELETE /api/v1/owner/comments/:id
func (h *ModerationHandler) DeleteComment(c *gin.Context) {
	err := h.moderationService.DeleteComment(
		c.Request.Context(),
		utils.ParseStringToUUID(c.Param("id")),
		middleware.GetUserID(c),
	)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// ListProfileReviews is the owner moderation queue
// GET /api/v1/owner/profiles/:profile_id/reviews?published=false&page=1&limit=20
func (h *ModerationHandler) ListProfileReviews(c *gin.Context) {
	var req model.ListProfileReviewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.FromError(c, apperror.FromDecode(err))
		return
	}

	resp, err := h.moderationService.ListProfileReviews(
		c.Request.Context(),
		utils.ParseStringToUUID(c.Param("profile_id")),
		middleware.GetUserID(c),
		req,
	)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, resp, &response.Meta{
		Page:  resp.Pagination.Page,
		Limit: resp.Pagination.Limit,
		Total: resp.Pagination.Total,
	})
}
