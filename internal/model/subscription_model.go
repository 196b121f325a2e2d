package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionModel struct {
	ID           string     `gorm:"type:uuid;primaryKey" json:"id"`
	SubscriberID string     `gorm:"type:uuid;not null;uniqueIndex:uq_subscriptions_pair,priority:1" json:"subscriber_id"`
	ChannelID    string     `gorm:"type:uuid;not null;uniqueIndex:uq_subscriptions_pair,priority:2;index" json:"channel_id"`
	Subscriber   *UserModel `gorm:"foreignKey:SubscriberID" json:"subscriber,omitempty"`
	Channel      *UserModel `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
