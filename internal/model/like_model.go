package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikeModel is unique on (target_type, target_id, liked_by).
type LikeModel struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	TargetType string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_likes_target_user,priority:1" json:"target_type"`
	TargetID   string    `gorm:"type:uuid;not null;uniqueIndex:uq_likes_target_user,priority:2" json:"target_id"`
	LikedBy    string    `gorm:"type:uuid;not null;uniqueIndex:uq_likes_target_user,priority:3;index" json:"liked_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func (LikeModel) TableName() string {
	return "likes"
}

func (l *LikeModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
