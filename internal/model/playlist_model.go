package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlaylistModel struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(150);not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	OwnerID     string    `gorm:"type:uuid;not null;index" json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (PlaylistModel) TableName() string {
	return "playlists"
}

func (p *PlaylistModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// PlaylistVideoModel orders videos inside a playlist. The composite key
// keeps a video at most once per playlist.
type PlaylistVideoModel struct {
	PlaylistID string    `gorm:"type:uuid;primaryKey"`
	VideoID    string    `gorm:"type:uuid;primaryKey;index"`
	Position   int64     `gorm:"not null"`
	AddedAt    time.Time `gorm:"not null"`
}

func (PlaylistVideoModel) TableName() string {
	return "playlist_videos"
}
