package query

import (
	"strings"

	"vidtube/internal/entity"

	"gorm.io/gorm"
)

// ChannelProfileQuery loads a user by username together with subscription
// counters and whether ViewerID follows them. password and refresh_token are
// never selected.
type ChannelProfileQuery struct {
	Username string
	ViewerID string
}

func NewChannelProfileQuery(username, viewerID string) ChannelProfileQuery {
	return ChannelProfileQuery{
		Username: strings.ToLower(strings.TrimSpace(username)),
		ViewerID: viewerID,
	}
}

type ChannelProfileRow struct {
	ID                        string
	Username                  string
	FullName                  string
	Email                     string
	Avatar                    string
	CoverImage                string
	SubscribersCount          int64
	ChannelsSubscribedToCount int64
	IsSubscribed              bool
}

func (r ChannelProfileRow) ToEntity() *entity.ChannelProfile {
	return &entity.ChannelProfile{
		ID:                        r.ID,
		Username:                  r.Username,
		FullName:                  r.FullName,
		Email:                     r.Email,
		Avatar:                    r.Avatar,
		CoverImage:                r.CoverImage,
		SubscribersCount:          r.SubscribersCount,
		ChannelsSubscribedToCount: r.ChannelsSubscribedToCount,
		IsSubscribed:              r.IsSubscribed,
	}
}

func (q ChannelProfileQuery) Apply(db *gorm.DB) *gorm.DB {
	counters := `u.id, u.username, u.full_name, u.email, u.avatar, u.cover_image,
		(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id) AS subscribers_count,
		(SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id) AS channels_subscribed_to_count`

	if q.ViewerID == "" {
		db = db.Select(counters + `, FALSE AS is_subscribed`)
	} else {
		db = db.Select(counters+`,
		EXISTS (SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id = ?) AS is_subscribed`, q.ViewerID)
	}

	return db.Table("users AS u").Where("u.username = ?", q.Username).Limit(1)
}
