package query

import "gorm.io/gorm"

// PlaylistVideosQuery loads the videos of one or more playlists in position order.
type PlaylistVideosQuery struct {
	PlaylistIDs []string
}

func NewPlaylistVideosQuery(playlistIDs ...string) PlaylistVideosQuery {
	return PlaylistVideosQuery{PlaylistIDs: playlistIDs}
}

type PlaylistVideoRow struct {
	PlaylistID string
	VideoRow
}

func (q PlaylistVideosQuery) Apply(db *gorm.DB) *gorm.DB {
	return db.Table("playlist_videos AS pv").
		Select("pv.playlist_id, "+videoColumns+", "+ownerColumns).
		Joins("JOIN videos v ON v.id = pv.video_id").
		Joins("JOIN users o ON o.id = v.owner_id").
		Where("pv.playlist_id IN ?", q.PlaylistIDs).
		Order("pv.playlist_id, pv.position ASC")
}
