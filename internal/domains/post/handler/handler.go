package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"engagement-backend/internal/domains/post/model"
	"engagement-backend/internal/domains/post/service"
	"engagement-backend/internal/shared/apperror"
	"engagement-backend/internal/shared/middleware"
	"engagement-backend/internal/shared/response"
	"engagement-backend/internal/shared/utils"
)

type PostHandler struct {
	postService service.ServiceInterface
}

func NewPostHandler(postService service.ServiceInterface) *PostHandler {
	return &PostHandler{postService: postService}
}

// bindOptionalJSON binds a JSON body when there is one.
func bindOptionalJSON(c *gin.Context, dest interface{}) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dest); err != nil && !errors.Is(err, io.EOF) {
		response.FromError(c, apperror.FromDecode(err))
		return false
	}
	return true
}

// ToggleLike flips the caller's like
// POST /api/v1/posts/:post_id/likes/toggle
func (h *PostHandler) ToggleLike(c *gin.Context) {
	var req model.ToggleLikeRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	req.PostID = utils.ParseStringToUUID(c.Param("post_id"))
	req.AnonymousID = middleware.AnonymousID(c, req.AnonymousID)

	resp, err := h.postService.ToggleLike(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GetLikeState returns the like count and whether the caller has liked
// GET /api/v1/posts/:post_id/likes?anonymous_id=...
func (h *PostHandler) GetLikeState(c *gin.Context) {
	postID := utils.ParseStringToUUID(c.Param("post_id"))
	anonymousID := middleware.AnonymousID(c, c.Query("anonymous_id"))

	resp, err := h.postService.GetLikeState(c.Request.Context(), postID, anonymousID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// AddComment creates an anonymous comment
// POST /api/v1/posts/:post_id/comments
func (h *PostHandler) AddComment(c *gin.Context) {
	var req model.AddCommentRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	req.PostID = utils.ParseStringToUUID(c.Param("post_id"))
	req.AnonymousID = middleware.AnonymousID(c, req.AnonymousID)

	resp, err := h.postService.AddComment(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// ListComments lists comments newest first
// GET /api/v1/posts/:post_id/comments?page=1&limit=20
func (h *PostHandler) ListComments(c *gin.Context) {
	var req model.ListCommentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.FromError(c, apperror.FromDecode(err))
		return
	}
	req.PostID = utils.ParseStringToUUID(c.Param("post_id"))

	resp, err := h.postService.ListComments(c.Request.Context(), req)
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
