package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engagement-backend/internal/config"
	profileRepo "engagement-backend/internal/domains/profile/repository"
	"engagement-backend/internal/infrastructure/database"
	"engagement-backend/pkg/container"
)

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Name: "test", Environment: "test", Version: "test"},
		Storage: config.StorageConfig{Driver: "sqlite", SQLitePath: ":memory:"},
		Redis:   config.RedisConfig{Enabled: false},
		JWT:     config.JWTConfig{Secret: "router-secret", AccessTokenExpiry: 60},
		Abuse:   config.AbuseConfig{FingerprintSecret: "fp-secret"},
		HTTP:    config.HTTPConfig{CORSOrigins: []string{"*"}, ThrottleRPS: 100, ThrottleBurst: 100},
		Cache:   config.CacheConfig{ReviewTTL: time.Minute},
	}
}

type fixture struct {
	router    *gin.Engine
	app       *container.Container
	ownerID   uuid.UUID
	profileID uuid.UUID
	postID    uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app, err := container.Build(testConfig())
	require.NoError(t, err)
	t.Cleanup(app.Cleanup)

	store, ok := app.Store.(*database.SQLiteDB)
	require.True(t, ok)

	f := &fixture{
		router:    SetupRouter(app),
		app:       app,
		ownerID:   uuid.New(),
		profileID: uuid.New(),
		postID:    uuid.New(),
	}
	now := time.Now().UTC()
	require.NoError(t, store.DB.Create(&profileRepo.ProfileRow{ID: f.profileID, OwnerID: f.ownerID, DisplayName: "Owner", CreatedAt: now}).Error)
	require.NoError(t, store.DB.Create(&profileRepo.PostRow{ID: f.postID, ProfileID: f.profileID, CreatedAt: now}).Error)
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) ownerHeader(t *testing.T, userID uuid.UUID) map[string]string {
	t.Helper()
	token, err := f.app.JWTManager.GenerateAccessToken(userID.String())
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Kind string `json:"kind"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHealthAndMetrics(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"disabled"`)

	w = f.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "engagement_")
}

func TestReviewFlow_HiddenUntilPublished(t *testing.T) {
	f := newFixture(t)
	reviewsPath := "/api/v1/profiles/" + f.profileID.String() + "/reviews"
	origin := map[string]string{"X-Forwarded-For": "198.51.100.4, 10.0.0.1"}

	w := f.do(t, http.MethodPost, reviewsPath, `{"reviewer_name":"Ann","rating":5,"comment":"Great"}`, origin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID          uuid.UUID `json:"id"`
		IsPublished bool      `json:"is_published"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))
	assert.False(t, created.IsPublished)

	// Same origin again inside the cooldown.
	w = f.do(t, http.MethodPost, reviewsPath, `{"reviewer_name":"Ann","rating":4,"comment":"Again"}`, origin)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "RATE_LIMITED", decode(t, w).Error.Kind)

	w = f.do(t, http.MethodGet, reviewsPath, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), created.ID.String())

	// Someone else cannot publish it.
	publishPath := "/api/v1/owner/reviews/" + created.ID.String() + "/publish"
	w = f.do(t, http.MethodPatch, publishPath, `{"is_published":true}`, f.ownerHeader(t, uuid.New()))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(t, http.MethodPatch, publishPath, `{"is_published":true}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(t, http.MethodPatch, publishPath, `{"is_published":true}`, f.ownerHeader(t, f.ownerID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(t, http.MethodGet, reviewsPath, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), created.ID.String())
}

func TestPostFlow_LikesAndComments(t *testing.T) {
	f := newFixture(t)
	postPath := "/api/v1/posts/" + f.postID.String()

	w := f.do(t, http.MethodPost, postPath+"/likes/toggle", `{"anonymous_id":"anon-1"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"liked":true`)

	w = f.do(t, http.MethodGet, postPath+"/likes?anonymous_id=anon-1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"has_liked":true`)
	assert.Contains(t, w.Body.String(), `"like_count":1`)

	w = f.do(t, http.MethodPost, postPath+"/likes/toggle", "", map[string]string{"X-Anonymous-ID": "anon-1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"liked":false`)

	w = f.do(t, http.MethodPost, postPath+"/comments",
		`{"commenter_name":"Bo","comment":"`+strings.Repeat("x", 501)+`","anonymous_id":"anon-2"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "COMMENT_TOO_LONG", decode(t, w).Error.Kind)

	w = f.do(t, http.MethodPost, postPath+"/comments",
		`{"commenter_name":"Bo","comment":"Nice post","anonymous_id":"anon-2"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var comment struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &comment))

	w = f.do(t, http.MethodDelete, "/api/v1/owner/comments/"+comment.ID.String(), "", f.ownerHeader(t, f.ownerID))
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, postPath+"/comments", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), comment.ID.String())
}

func TestListComments_HugePageIsEmpty(t *testing.T) {
	f := newFixture(t)
	postPath := "/api/v1/posts/" + f.postID.String()

	w := f.do(t, http.MethodPost, postPath+"/comments", `{"commenter_name":"Bo","comment":"first","anonymous_id":"anon-1"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = f.do(t, http.MethodGet, postPath+"/comments?page=9223372036854775807&limit=20", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var list struct {
		Comments []json.RawMessage `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &list))
	assert.Empty(t, list.Comments)
}

func TestSubmitReview_FractionalRatingIsInvalidRating(t *testing.T) {
	f := newFixture(t)
	reviewsPath := "/api/v1/profiles/" + f.profileID.String() + "/reviews"

	w := f.do(t, http.MethodPost, reviewsPath, `{"reviewer_name":"Ann","rating":4.5,"comment":"x"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_RATING", decode(t, w).Error.Kind)
}
