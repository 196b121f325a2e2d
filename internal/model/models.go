package model

// All lists every table in dependency order, for AutoMigrate in tests and seeding.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&VideoModel{},
		&WatchHistoryModel{},
		&CommentModel{},
		&LikeModel{},
		&SubscriptionModel{},
		&PlaylistModel{},
		&PlaylistVideoModel{},
		&TweetModel{},
	}
}
