// Package query holds the read-side views that join across tables. Each
// builder is a value holding normalised input plus gorm scopes, so the SQL it
// produces can be inspected and run against any gorm dialect.
package query

import (
	"time"

	"vidtube/internal/entity"
)

// ownerColumns projects the public owner fields of users aliased as "o".
const ownerColumns = "o.id AS owner_id, o.username AS owner_username, o.full_name AS owner_full_name, o.avatar AS owner_avatar"

const videoColumns = "v.id, v.title, v.description, v.video_file, v.thumbnail, v.duration, v.views, v.is_published, v.created_at, v.updated_at"

// VideoRow is a video joined with its owner.
type VideoRow struct {
	ID            string
	Title         string
	Description   string
	VideoFile     string
	Thumbnail     string
	Duration      float64
	Views         int64
	IsPublished   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	OwnerID       string
	OwnerUsername string
	OwnerFullName string
	OwnerAvatar   string
}

func (r VideoRow) ToEntity() entity.Video {
	return entity.Video{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		VideoFile:   r.VideoFile,
		Thumbnail:   r.Thumbnail,
		Duration:    r.Duration,
		Views:       r.Views,
		IsPublished: r.IsPublished,
		OwnerID:     r.OwnerID,
		Owner: &entity.Owner{
			ID:       r.OwnerID,
			Username: r.OwnerUsername,
			FullName: r.OwnerFullName,
			Avatar:   r.OwnerAvatar,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// VideoRowsToEntities never returns nil so empty results encode as [].
func VideoRowsToEntities(rows []VideoRow) []entity.Video {
	out := make([]entity.Video, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToEntity())
	}
	return out
}
