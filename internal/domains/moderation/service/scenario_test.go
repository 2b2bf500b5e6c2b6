package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engagement-backend/internal/domains/moderation/model"
	postModel "engagement-backend/internal/domains/post/model"
	postRepo "engagement-backend/internal/domains/post/repository"
	postService "engagement-backend/internal/domains/post/service"
	profileRepo "engagement-backend/internal/domains/profile/repository"
	"engagement-backend/internal/domains/review/guard"
	reviewModel "engagement-backend/internal/domains/review/model"
	reviewRepo "engagement-backend/internal/domains/review/repository"
	reviewService "engagement-backend/internal/domains/review/service"
	"engagement-backend/internal/infrastructure/database"
	"engagement-backend/internal/shared/apperror"
	"engagement-backend/pkg/cache"
)

// End-to-end flows over the embedded store.
func TestScenario_SubmitPublishToggleAndModerate(t *testing.T) {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	models := append(profileRepo.Models(), reviewRepo.Models()...)
	models = append(models, postRepo.Models()...)
	require.NoError(t, db.AutoMigrate(models...))

	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC))
	ownerID, profileID, postID := uuid.New(), uuid.New(), uuid.New()

	require.NoError(t, db.DB.Create(&profileRepo.ProfileRow{ID: profileID, OwnerID: ownerID, DisplayName: "P", CreatedAt: clock.Now()}).Error)
	require.NoError(t, db.DB.Create(&profileRepo.PostRow{ID: postID, ProfileID: profileID, CreatedAt: clock.Now()}).Error)

	profiles := profileRepo.NewGormRepository(db.DB)
	reviews := reviewRepo.NewGormRepository(db.DB)
	likes := postRepo.NewGormLikeRepository(db.DB)
	comments := postRepo.NewGormCommentRepository(db.DB)
	c := cache.Noop{}

	reviewSvc := reviewService.NewReviewService(reviews, profiles, guard.New(reviews, "secret", clock), c, time.Minute, clock, nil)
	postSvc := postService.NewPostService(likes, comments, profiles, clock, nil)
	modSvc := NewModerationService(reviews, comments, profiles, c, clock, nil)

	// Ann reviews P; it starts hidden.
	rating := 5
	submitted, err := reviewSvc.SubmitReview(ctx, reviewModel.SubmitReviewRequest{
		ProfileID: profileID, ReviewerName: "Ann", Rating: &rating, Comment: "Great!",
	}, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, submitted.IsPublished)

	count, err := reviews.CountByProfile(ctx, profileID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	public, err := reviewSvc.ListPublished(ctx, reviewModel.ListReviewsRequest{ProfileID: profileID})
	require.NoError(t, err)
	assert.Empty(t, public.Reviews)

	// The owner publishes it.
	published, err := modSvc.SetPublished(ctx, submitted.ID, ownerID, true)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)

	public, err = reviewSvc.ListPublished(ctx, reviewModel.ListReviewsRequest{ProfileID: profileID})
	require.NoError(t, err)
	require.Len(t, public.Reviews, 1)
	assert.Equal(t, submitted.ID, public.Reviews[0].ID)
	assert.Equal(t, "5", public.Statistics.AverageRating.String())

	// Same origin is cooled down for a day.
	clock.Advance(time.Hour)
	_, err = reviewSvc.SubmitReview(ctx, reviewModel.SubmitReviewRequest{
		ProfileID: profileID, ReviewerName: "Ann", Rating: &rating, Comment: "Again",
	}, "203.0.113.7")
	assert.True(t, apperror.Is(err, apperror.KindRateLimited))

	clock.Advance(24 * time.Hour)
	_, err = reviewSvc.SubmitReview(ctx, reviewModel.SubmitReviewRequest{
		ProfileID: profileID, ReviewerName: "Ann", Rating: &rating, Comment: "Again",
	}, "203.0.113.7")
	require.NoError(t, err)

	// anon_1 likes then unlikes.
	liked, err := postSvc.ToggleLike(ctx, postModel.ToggleLikeRequest{PostID: postID, AnonymousID: "anon_1"})
	require.NoError(t, err)
	assert.Equal(t, postModel.LikeToggleResponse{PostID: postID, Liked: true, LikeCount: 1}, *liked)

	unliked, err := postSvc.ToggleLike(ctx, postModel.ToggleLikeRequest{PostID: postID, AnonymousID: "anon_1"})
	require.NoError(t, err)
	assert.Equal(t, postModel.LikeToggleResponse{PostID: postID, Liked: false, LikeCount: 0}, *unliked)

	// A comment can only be removed by the owner.
	comment, err := postSvc.AddComment(ctx, postModel.AddCommentRequest{
		PostID: postID, CommenterName: "Bo", Comment: "nice", AnonymousID: "anon_1",
	})
	require.NoError(t, err)

	err = modSvc.DeleteComment(ctx, comment.ID, uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	require.NoError(t, modSvc.DeleteComment(ctx, comment.ID, ownerID))
	listed, err := postSvc.ListComments(ctx, postModel.ListCommentsRequest{PostID: postID})
	require.NoError(t, err)
	assert.Empty(t, listed.Comments)

	queue, err := modSvc.ListProfileReviews(ctx, profileID, ownerID, model.ListProfileReviewsRequest{})
	require.NoError(t, err)
	assert.Len(t, queue.Reviews, 2)

	require.NoError(t, modSvc.DeleteReview(ctx, submitted.ID, ownerID))
	_, err = modSvc.SetPublished(ctx, submitted.ID, ownerID, true)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
