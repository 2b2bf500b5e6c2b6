package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"engagement-backend/internal/domains/review/model"
	"engagement-backend/internal/domains/review/service"
	"engagement-backend/internal/shared/apperror"
	"engagement-backend/internal/shared/middleware"
	"engagement-backend/internal/shared/response"
	"engagement-backend/internal/shared/utils"
)

// =====================================================
// REVIEW HANDLER
// =====================================================

type ReviewHandler struct {
	reviewService service.ServiceInterface
}

func NewReviewHandler(reviewService service.ServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// SubmitReview creates an unpublished anonymous review
// POST /api/v1/profiles/:profile_id/reviews
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	// Step 1: Bind request body. An empty body falls through to validation.
	var req model.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.FromError(c, apperror.FromDecode(err))
		return
	}

	// Step 2: Profile from path; an unparsable id is a missing field
	req.ProfileID = utils.ParseStringToUUID(c.Param("profile_id"))

	// Step 3: Call service with the resolved origin
	resp, err := h.reviewService.SubmitReview(c.Request.Context(), req, middleware.GetOrigin(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// ListPublished lists a profile's published reviews
// GET /api/v1/profiles/:profile_id/reviews?page=1&limit=20
func (h *ReviewHandler) ListPublished(c *gin.Context) {
	var req model.ListReviewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.FromError(c, apperror.FromDecode(err))
		return
	}

	req.ProfileID = utils.ParseStringToUUID(c.Param("profile_id"))

	resp, err := h.reviewService.ListPublished(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}
