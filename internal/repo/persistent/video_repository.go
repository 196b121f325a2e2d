package persistent

import (
	"context"

	"vidtube/internal/entity"
	"vidtube/internal/model"
	"vidtube/internal/repo/query"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VideoRepository interface {
	Create(ctx context.Context, video *entity.Video) error
	GetByID(ctx context.Context, id string) (*entity.Video, error)
	List(ctx context.Context, q query.VideoListQuery) (*entity.VideoPage, error)
	Update(ctx context.Context, video *entity.Video) error
	SetPublished(ctx context.Context, id string, published bool) error
	IncrementViews(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *entity.Video) error {
	videoModel := ToVideoModel(video)
	if err := r.db.WithContext(ctx).Create(videoModel).Error; err != nil {
		return translate(err)
	}
	*video = *ToVideoEntity(videoModel)
	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id string) (*entity.Video, error) {
	var videoModel model.VideoModel
	if err := r.db.WithContext(ctx).Preload("Owner").Where("id = ?", id).First(&videoModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToVideoEntity(&videoModel), nil
}

func (r *videoRepository) List(ctx context.Context, q query.VideoListQuery) (*entity.VideoPage, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := q.Filter(db).Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []query.VideoRow
	if err := q.Apply(db).Scan(&rows).Error; err != nil {
		return nil, err
	}

	return &entity.VideoPage{
		Items:      query.VideoRowsToEntities(rows),
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: q.TotalPages(total),
	}, nil
}

// Update writes the editable columns of video.
func (r *videoRepository) Update(ctx context.Context, video *entity.Video) error {
	result := r.db.WithContext(ctx).
		Model(&model.VideoModel{ID: video.ID}).
		Select("title", "description", "thumbnail", "thumbnail_public_id").
		Updates(ToVideoModel(video))
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *videoRepository) SetPublished(ctx context.Context, id string, published bool) error {
	result := r.db.WithContext(ctx).Model(&model.VideoModel{}).Where("id = ?", id).Update("is_published", published)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *videoRepository) IncrementViews(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&model.VideoModel{}).
		Where("id = ?", id).
		UpdateColumn("views", clause.Expr{SQL: "views + ?", Vars: []interface{}{1}}).Error
}

// Delete removes the video with its comments, every like on the video or
// those comments, and its playlist and watch-history entries.
func (r *videoRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&model.CommentModel{}).Select("id").Where("video_id = ?", id)
		if err := tx.Where("target_type = ? AND target_id IN (?)", string(entity.LikeTargetComment), commentIDs).
			Delete(&model.LikeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_type = ? AND target_id = ?", string(entity.LikeTargetVideo), id).
			Delete(&model.LikeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.CommentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.PlaylistVideoModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.WatchHistoryModel{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&model.VideoModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
