package repository

import (
	"context"
	"math"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engagement-backend/internal/domains/post/model"
	"engagement-backend/internal/infrastructure/database"
	"engagement-backend/internal/shared/utils"
)

func openTestDB(t *testing.T) *database.SQLiteDB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.AutoMigrate(Models()...))
	return db
}

func TestGormLike_UniqueConstraint(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormLikeRepository(db.DB)
	ctx := context.Background()
	postID := uuid.New()

	like := &model.PostLike{ID: uuid.New(), PostID: postID, AnonymousID: "anon_1", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, like))

	dup := &model.PostLike{ID: uuid.New(), PostID: postID, AnonymousID: "anon_1", CreatedAt: time.Now().UTC()}
	assert.ErrorIs(t, repo.Create(ctx, dup), model.ErrLikeExists)

	// same identity on another post is fine
	require.NoError(t, repo.Create(ctx, &model.PostLike{ID: uuid.New(), PostID: uuid.New(), AnonymousID: "anon_1", CreatedAt: time.Now().UTC()}))

	exists, err := repo.Exists(ctx, postID, "anon_1")
	require.NoError(t, err)
	assert.True(t, exists)

	count, err := repo.CountByPost(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, repo.Delete(ctx, postID, "anon_1"))
	assert.ErrorIs(t, repo.Delete(ctx, postID, "anon_1"), model.ErrLikeNotFound)

	exists, err = repo.Exists(ctx, postID, "anon_1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormComment_ListNewestFirst(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormCommentRepository(db.DB)
	ctx := context.Background()
	postID := uuid.New()
	base := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		c := &model.PostComment{
			ID:            uuid.New(),
			PostID:        postID,
			CommenterName: "Bo",
			Comment:       "hello",
			AnonymousID:   "anon_1",
			CreatedAt:     base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.Create(ctx, c))
		ids = append(ids, c.ID)
	}

	list, total, err := repo.ListByPost(ctx, postID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, list, 2)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[1], list[1].ID)

	got, err := repo.GetByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "anon_1", got.AnonymousID)

	require.NoError(t, repo.Delete(ctx, ids[0]))
	_, err = repo.GetByID(ctx, ids[0])
	assert.ErrorIs(t, err, model.ErrCommentNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, ids[0]), model.ErrCommentNotFound)
}

func TestGormComment_SameTimestampPagesAreStable(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormCommentRepository(db.DB)
	ctx := context.Background()
	postID := uuid.New()
	at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

	want := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		c := &model.PostComment{ID: uuid.New(), PostID: postID, CommenterName: "Bo", Comment: "same", AnonymousID: "anon_1", CreatedAt: at}
		require.NoError(t, repo.Create(ctx, c))
		want = append(want, c.ID.String())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(want)))

	var got []string
	for page := 1; page <= 3; page++ {
		list, total, err := repo.ListByPost(ctx, postID, page, 2)
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		for _, c := range list {
			got = append(got, c.ID.String())
		}
	}
	assert.Equal(t, want, got)
}

func TestGormComment_PagePastTheEndIsEmpty(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormCommentRepository(db.DB)
	ctx := context.Background()
	postID := uuid.New()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &model.PostComment{
			ID: uuid.New(), PostID: postID, CommenterName: "Bo", Comment: "hi", AnonymousID: "anon_1", CreatedAt: time.Now().UTC(),
		}))
	}

	page, limit := utils.NormalizePage(math.MaxInt, 20)
	list, total, err := repo.ListByPost(ctx, postID, page, limit)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, list)
}
