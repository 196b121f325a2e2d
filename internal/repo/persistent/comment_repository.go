package persistent

import (
	"context"

	"vidtube/internal/entity"
	"vidtube/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	ListByVideo(ctx context.Context, videoID string, limit, offset int) ([]entity.Comment, int64, error)
	UpdateContent(ctx context.Context, id, content string) (*entity.Comment, error)
	Delete(ctx context.Context, id string) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	commentModel := ToCommentModel(comment)
	if err := r.db.WithContext(ctx).Create(commentModel).Error; err != nil {
		return translate(err)
	}
	return r.reload(ctx, commentModel.ID, comment)
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	var commentModel model.CommentModel
	if err := r.db.WithContext(ctx).Preload("Owner").Where("id = ?", id).First(&commentModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToCommentEntity(&commentModel), nil
}

func (r *commentRepository) reload(ctx context.Context, id string, into *entity.Comment) error {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*into = *c
	return nil
}

// ListByVideo returns the newest comments first.
func (r *commentRepository) ListByVideo(ctx context.Context, videoID string, limit, offset int) ([]entity.Comment, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.CommentModel{}).Where("video_id = ?", videoID).Session(&gorm.Session{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var commentModels []model.CommentModel
	if err := db.Preload("Owner").Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&commentModels).Error; err != nil {
		return nil, 0, err
	}

	comments := make([]entity.Comment, 0, len(commentModels))
	for i := range commentModels {
		comments = append(comments, *ToCommentEntity(&commentModels[i]))
	}
	return comments, total, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id, content string) (*entity.Comment, error) {
	result := r.db.WithContext(ctx).Model(&model.CommentModel{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", string(entity.LikeTargetComment), id).
			Delete(&model.LikeModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.CommentModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
