package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engagement-backend/internal/domains/moderation/model"
	reviewModel "engagement-backend/internal/domains/review/model"
	"engagement-backend/internal/shared/apperror"
	"engagement-backend/internal/shared/middleware"
	"engagement-backend/pkg/jwt"
)

type mockService struct {
	setPublishedFn func(ctx context.Context, reviewID, callerID uuid.UUID, published bool) (*reviewModel.ReviewResponse, error)
	deleteReviewFn func(ctx context.Context, reviewID, callerID uuid.UUID) error
}

func (m *mockService) SetPublished(ctx context.Context, reviewID, callerID uuid.UUID, published bool) (*reviewModel.ReviewResponse, error) {
	return m.setPublishedFn(ctx, reviewID, callerID, published)
}

func (m *mockService) DeleteReview(ctx context.Context, reviewID, callerID uuid.UUID) error {
	return m.deleteReviewFn(ctx, reviewID, callerID)
}

func (m *mockService) DeleteComment(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func (m *mockService) ListProfileReviews(context.Context, uuid.UUID, uuid.UUID, model.ListProfileReviewsRequest) (*reviewModel.ListReviewsResponse, error) {
	return &reviewModel.ListReviewsResponse{}, nil
}

func setupRouter(t *testing.T, svc *mockService) (*gin.Engine, *jwt.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	manager := jwt.NewManager("test-secret", time.Hour)
	h := NewModerationHandler(svc)

	r := gin.New()
	owner := r.Group("/owner", middleware.AuthMiddleware(manager))
	owner.PATCH("/reviews/:id/publish", h.SetPublished)
	owner.DELETE("/reviews/:id", h.DeleteReview)
	owner.DELETE("/comments/:id", h.DeleteComment)
	owner.GET("/profiles/:profile_id/reviews", h.ListProfileReviews)
	return r, manager
}

func bearer(t *testing.T, manager *jwt.Manager, userID uuid.UUID) string {
	t.Helper()
	token, err := manager.GenerateAccessToken(userID.String())
	require.NoError(t, err)
	return "Bearer " + token
}

func TestSetPublished_PassesCallerIdentity(t *testing.T) {
	ownerID, reviewID := uuid.New(), uuid.New()
	var gotCaller, gotReview uuid.UUID
	var gotPublished bool

	r, manager := setupRouter(t, &mockService{
		setPublishedFn: func(_ context.Context, rid, caller uuid.UUID, published bool) (*reviewModel.ReviewResponse, error) {
			gotReview, gotCaller, gotPublished = rid, caller, published
			return &reviewModel.ReviewResponse{ID: rid, IsPublished: published}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPatch, "/owner/reviews/"+reviewID.String()+"/publish",
		strings.NewReader(`{"is_published":true}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, manager, ownerID))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ownerID, gotCaller)
	assert.Equal(t, reviewID, gotReview)
	assert.True(t, gotPublished)
}

func TestSetPublished_MissingFlag(t *testing.T) {
	r, manager := setupRouter(t, &mockService{})

	req := httptest.NewRequest(http.MethodPatch, "/owner/reviews/"+uuid.NewString()+"/publish", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, manager, uuid.New()))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), string(apperror.KindMissingField))
}

func TestOwnerRoutes_RequireToken(t *testing.T) {
	r, _ := setupRouter(t, &mockService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/owner/reviews/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodDelete, "/owner/reviews/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteReview_Forbidden(t *testing.T) {
	r, manager := setupRouter(t, &mockService{
		deleteReviewFn: func(context.Context, uuid.UUID, uuid.UUID) error {
			return apperror.New(apperror.KindForbidden, model.ErrCodeForbidden, "Only the profile owner can moderate this content")
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/owner/reviews/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", bearer(t, manager, uuid.New()))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), model.ErrCodeForbidden)
}
