// Package media describes the remote asset store used for avatars, cover
// images, thumbnails and video files.
package media

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Asset is an uploaded object. PublicID is the key used to delete it later.
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (*Asset, error)
	Delete(ctx context.Context, publicID string) error
}

// Folders used when building object keys.
const (
	FolderAvatars    = "avatars"
	FolderCovers     = "covers"
	FolderThumbnails = "thumbnails"
	FolderVideos     = "videos"
)

// ObjectKey builds "<folder>/<owner>/<uuid><ext>" from the client file name.
func ObjectKey(folder, ownerID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s/%s%s", folder, ownerID, uuid.New().String(), ext)
}
