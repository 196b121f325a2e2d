package entity

import "time"

type Subscription struct {
	ID           string    `json:"id"`
	SubscriberID string    `json:"subscriberId"`
	ChannelID    string    `json:"channelId"`
	Subscriber   *Owner    `json:"subscriber,omitempty"`
	Channel      *Owner    `json:"channel,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
