package persistent

import (
	"context"
	"fmt"

	"vidtube/internal/entity"
	"vidtube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository interface {
	Toggle(ctx context.Context, target entity.LikeTarget, targetID, userID string) (bool, error)
	Count(ctx context.Context, target entity.LikeTarget, targetID string) (int64, error)
	IsLiked(ctx context.Context, target entity.LikeTarget, targetID, userID string) (bool, error)
	TargetExists(ctx context.Context, target entity.LikeTarget, targetID string) (bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle removes the user's like if present, otherwise inserts one. It
// reports whether the target is liked afterwards.
func (r *likeRepository) Toggle(ctx context.Context, target entity.LikeTarget, targetID, userID string) (bool, error) {
	liked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("target_type = ? AND target_id = ? AND liked_by = ?", string(target), targetID, userID).
			Delete(&model.LikeModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		like := &model.LikeModel{
			TargetType: string(target),
			TargetID:   targetID,
			LikedBy:    userID,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

func (r *likeRepository) Count(ctx context.Context, target entity.LikeTarget, targetID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.LikeModel{}).
		Where("target_type = ? AND target_id = ?", string(target), targetID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) IsLiked(ctx context.Context, target entity.LikeTarget, targetID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.LikeModel{}).
		Where("target_type = ? AND target_id = ? AND liked_by = ?", string(target), targetID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) TargetExists(ctx context.Context, target entity.LikeTarget, targetID string) (bool, error) {
	var m interface{}
	switch target {
	case entity.LikeTargetVideo:
		m = &model.VideoModel{}
	case entity.LikeTargetComment:
		m = &model.CommentModel{}
	case entity.LikeTargetTweet:
		m = &model.TweetModel{}
	default:
		return false, fmt.Errorf("unknown like target %q", target)
	}

	var count int64
	err := r.db.WithContext(ctx).Model(m).Where("id = ?", targetID).Count(&count).Error
	return count > 0, err
}
