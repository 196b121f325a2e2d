// Package testutil provides shared fixtures for repository and handler tests.
package testutil

import (
	"testing"

	"vidtube/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens a private in-memory database with every table migrated.
// A single connection keeps the in-memory schema visible to all queries.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

// SeedUser inserts a user row and returns it.
func SeedUser(t *testing.T, db *gorm.DB, username string) *model.UserModel {
	t.Helper()

	u := &model.UserModel{
		Username: username,
		Email:    username + "@example.com",
		FullName: "User " + username,
		Avatar:   "https://cdn.example.com/avatars/" + username + ".png",
		Password: "hashed",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// SeedVideo inserts a video owned by ownerID.
func SeedVideo(t *testing.T, db *gorm.DB, ownerID, title string, published bool) *model.VideoModel {
	t.Helper()

	v := &model.VideoModel{
		Title:             title,
		Description:       "about " + title,
		VideoFile:         "https://cdn.example.com/videos/" + title + ".mp4",
		VideoFilePublicID: "videos/" + ownerID + "/" + title + ".mp4",
		Thumbnail:         "https://cdn.example.com/thumbnails/" + title + ".png",
		ThumbnailPublicID: "thumbnails/" + ownerID + "/" + title + ".png",
		Duration:          42.5,
		IsPublished:       published,
		OwnerID:           ownerID,
	}
	require.NoError(t, db.Create(v).Error)
	return v
}
