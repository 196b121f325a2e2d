package persistent

import (
	"context"
	"time"

	"vidtube/internal/entity"
	"vidtube/internal/model"
	"vidtube/internal/repo/query"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *entity.Playlist) error
	GetByID(ctx context.Context, id string) (*entity.Playlist, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Playlist, error)
	AddVideo(ctx context.Context, playlistID, videoID string) error
	RemoveVideo(ctx context.Context, playlistID, videoID string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type playlistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *entity.Playlist) error {
	playlistModel := ToPlaylistModel(playlist)
	if err := r.db.WithContext(ctx).Create(playlistModel).Error; err != nil {
		return translate(err)
	}
	*playlist = *ToPlaylistEntity(playlistModel)
	return nil
}

func (r *playlistRepository) GetByID(ctx context.Context, id string) (*entity.Playlist, error) {
	var playlistModel model.PlaylistModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&playlistModel).Error; err != nil {
		return nil, translate(err)
	}

	playlists := []entity.Playlist{*ToPlaylistEntity(&playlistModel)}
	if err := r.attachVideos(ctx, playlists); err != nil {
		return nil, err
	}
	return &playlists[0], nil
}

func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Playlist, error) {
	var playlistModels []model.PlaylistModel
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&playlistModels).Error; err != nil {
		return nil, err
	}

	playlists := make([]entity.Playlist, 0, len(playlistModels))
	for i := range playlistModels {
		playlists = append(playlists, *ToPlaylistEntity(&playlistModels[i]))
	}
	if err := r.attachVideos(ctx, playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

func (r *playlistRepository) attachVideos(ctx context.Context, playlists []entity.Playlist) error {
	if len(playlists) == 0 {
		return nil
	}

	ids := make([]string, 0, len(playlists))
	index := make(map[string]int, len(playlists))
	for i, p := range playlists {
		ids = append(ids, p.ID)
		index[p.ID] = i
	}

	var rows []query.PlaylistVideoRow
	if err := query.NewPlaylistVideosQuery(ids...).Apply(r.db.WithContext(ctx)).Scan(&rows).Error; err != nil {
		return err
	}
	for _, row := range rows {
		i := index[row.PlaylistID]
		playlists[i].Videos = append(playlists[i].Videos, row.ToEntity())
	}
	return nil
}

// AddVideo appends videoID at the end of the playlist. Adding a video that
// is already present leaves the playlist unchanged.
func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int64
		if err := tx.Model(&model.PlaylistVideoModel{}).
			Select("COALESCE(MAX(position), 0)").
			Where("playlist_id = ?", playlistID).
			Scan(&last).Error; err != nil {
			return err
		}

		entry := &model.PlaylistVideoModel{
			PlaylistID: playlistID,
			VideoID:    videoID,
			Position:   last + 1,
			AddedAt:    time.Now(),
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(entry).Error; err != nil {
			return err
		}
		return tx.Model(&model.PlaylistModel{}).Where("id = ?", playlistID).Update("updated_at", time.Now()).Error
	})
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&model.PlaylistVideoModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *playlistRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&model.PlaylistVideoModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.PlaylistModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
