package query

import "gorm.io/gorm"

// WatchHistoryQuery returns the videos a user watched, oldest first, each
// with its owner.
type WatchHistoryQuery struct {
	UserID string
}

func NewWatchHistoryQuery(userID string) WatchHistoryQuery {
	return WatchHistoryQuery{UserID: userID}
}

func (q WatchHistoryQuery) Apply(db *gorm.DB) *gorm.DB {
	return db.Table("watch_history AS wh").
		Select(videoColumns+", "+ownerColumns).
		Joins("JOIN videos v ON v.id = wh.video_id").
		Joins("JOIN users o ON o.id = v.owner_id").
		Where("wh.user_id = ?", q.UserID).
		Order("wh.watched_at ASC, wh.video_id ASC")
}
