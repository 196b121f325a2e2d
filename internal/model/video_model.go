package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VideoModel struct {
	ID                string     `gorm:"type:uuid;primaryKey" json:"id"`
	Title             string     `gorm:"type:varchar(200);not null" json:"title"`
	Description       string     `gorm:"type:text;not null" json:"description"`
	VideoFile         string     `gorm:"type:varchar(500);not null" json:"video_file"`
	VideoFilePublicID string     `gorm:"type:varchar(500)" json:"-"`
	Thumbnail         string     `gorm:"type:varchar(500);not null" json:"thumbnail"`
	ThumbnailPublicID string     `gorm:"type:varchar(500)" json:"-"`
	Duration          float64    `gorm:"not null;default:0" json:"duration"`
	Views             int64      `gorm:"not null;default:0" json:"views"`
	IsPublished       bool       `gorm:"not null;default:false;index:idx_videos_published_created,priority:1" json:"is_published"`
	OwnerID           string     `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner             *UserModel `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CreatedAt         time.Time  `gorm:"index:idx_videos_published_created,priority:2" json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (VideoModel) TableName() string {
	return "videos"
}

func (v *VideoModel) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}
