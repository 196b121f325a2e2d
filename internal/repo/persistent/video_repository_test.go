package persistent

import (
	"context"
	"testing"

	"vidtube/internal/entity"
	"vidtube/internal/model"
	"vidtube/internal/repo/query"
	"vidtube/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoRepository_CreateGetUpdate(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()
	owner := testutil.SeedUser(t, db, "owner")

	video := &entity.Video{
		Title:       "Intro",
		Description: "first upload",
		VideoFile:   "https://cdn.example.com/v.mp4",
		Thumbnail:   "https://cdn.example.com/t.png",
		Duration:    12.5,
		OwnerID:     owner.ID,
	}
	require.NoError(t, repo.Create(ctx, video))
	assert.NotEmpty(t, video.ID)
	assert.False(t, video.IsPublished)

	got, err := repo.GetByID(ctx, video.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Owner)
	assert.Equal(t, "owner", got.Owner.Username)

	got.Title = "Intro v2"
	got.Thumbnail = "https://cdn.example.com/t2.png"
	got.ThumbnailPublicID = "thumbnails/t2.png"
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, "Intro v2", got.Title)
	assert.Equal(t, "thumbnails/t2.png", got.ThumbnailPublicID)

	require.NoError(t, repo.SetPublished(ctx, video.ID, true))
	require.NoError(t, repo.IncrementViews(ctx, video.ID))
	require.NoError(t, repo.IncrementViews(ctx, video.ID))

	got, err = repo.GetByID(ctx, video.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPublished)
	assert.Equal(t, int64(2), got.Views)
}

func TestVideoRepository_List(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()
	alice := testutil.SeedUser(t, db, "alice")
	bob := testutil.SeedUser(t, db, "bob")

	testutil.SeedVideo(t, db, alice.ID, "cooking pasta", true)
	testutil.SeedVideo(t, db, alice.ID, "Cooking rice", true)
	testutil.SeedVideo(t, db, bob.ID, "hiking trip", true)
	hidden := testutil.SeedVideo(t, db, bob.ID, "cooking secret", false)

	page, err := repo.List(ctx, query.NewVideoListQuery(entity.VideoFilter{}))
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Items, 3)
	assert.Equal(t, 1, page.TotalPages)
	for _, v := range page.Items {
		assert.NotEqual(t, hidden.ID, v.ID)
		assert.NotNil(t, v.Owner)
	}

	page, err = repo.List(ctx, query.NewVideoListQuery(entity.VideoFilter{Query: "COOKING", SortBy: "title", SortType: "asc"}))
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Cooking rice", page.Items[0].Title)

	page, err = repo.List(ctx, query.NewVideoListQuery(entity.VideoFilter{OwnerID: bob.ID}))
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	page, err = repo.List(ctx, query.NewVideoListQuery(entity.VideoFilter{Page: 2, Limit: 2}))
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 2, page.TotalPages)

	page, err = repo.List(ctx, query.NewVideoListQuery(entity.VideoFilter{Query: "100%"}))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)

	require.NoError(t, repo.SetPublished(ctx, hidden.ID, true))
	page, err = repo.List(ctx, query.NewVideoListQuery(entity.VideoFilter{}))
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)
}

func TestVideoRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()
	owner := testutil.SeedUser(t, db, "owner")
	fan := testutil.SeedUser(t, db, "fan")
	video := testutil.SeedVideo(t, db, owner.ID, "doomed", true)
	other := testutil.SeedVideo(t, db, owner.ID, "survivor", true)

	comment := &model.CommentModel{Content: "nice", VideoID: video.ID, OwnerID: fan.ID}
	require.NoError(t, db.Create(comment).Error)
	require.NoError(t, db.Create(&model.LikeModel{TargetType: "video", TargetID: video.ID, LikedBy: fan.ID}).Error)
	require.NoError(t, db.Create(&model.LikeModel{TargetType: "comment", TargetID: comment.ID, LikedBy: owner.ID}).Error)
	require.NoError(t, db.Create(&model.LikeModel{TargetType: "video", TargetID: other.ID, LikedBy: fan.ID}).Error)

	playlist := &model.PlaylistModel{Name: "mix", Description: "d", OwnerID: fan.ID}
	require.NoError(t, db.Create(playlist).Error)
	playlists := NewPlaylistRepository(db)
	require.NoError(t, playlists.AddVideo(ctx, playlist.ID, video.ID))
	require.NoError(t, playlists.AddVideo(ctx, playlist.ID, other.ID))
	require.NoError(t, NewUserRepository(db).AddToWatchHistory(ctx, fan.ID, video.ID))

	require.NoError(t, repo.Delete(ctx, video.ID))

	count := func(m interface{}) int64 {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error)
		return n
	}
	assert.Equal(t, int64(1), count(&model.VideoModel{}))
	assert.Equal(t, int64(0), count(&model.CommentModel{}))
	assert.Equal(t, int64(1), count(&model.LikeModel{}))
	assert.Equal(t, int64(1), count(&model.PlaylistVideoModel{}))
	assert.Equal(t, int64(0), count(&model.WatchHistoryModel{}))

	assert.ErrorIs(t, repo.Delete(ctx, video.ID), ErrNotFound)
}
