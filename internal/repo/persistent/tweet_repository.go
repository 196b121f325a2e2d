package persistent

import (
	"context"

	"vidtube/internal/entity"
	"vidtube/internal/model"

	"gorm.io/gorm"
)

type TweetRepository interface {
	Create(ctx context.Context, tweet *entity.Tweet) error
	GetByID(ctx context.Context, id string) (*entity.Tweet, error)
	List(ctx context.Context, limit, offset int) ([]entity.Tweet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Tweet, error)
	UpdateContent(ctx context.Context, id, content string) (*entity.Tweet, error)
	Delete(ctx context.Context, id string) error
}

type tweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *entity.Tweet) error {
	tweetModel := ToTweetModel(tweet)
	if err := r.db.WithContext(ctx).Create(tweetModel).Error; err != nil {
		return translate(err)
	}
	created, err := r.GetByID(ctx, tweetModel.ID)
	if err != nil {
		return err
	}
	*tweet = *created
	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id string) (*entity.Tweet, error) {
	var tweetModel model.TweetModel
	if err := r.db.WithContext(ctx).Preload("Owner").Where("id = ?", id).First(&tweetModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToTweetEntity(&tweetModel), nil
}

func (r *tweetRepository) List(ctx context.Context, limit, offset int) ([]entity.Tweet, error) {
	var tweetModels []model.TweetModel
	err := r.db.WithContext(ctx).Preload("Owner").
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&tweetModels).Error
	if err != nil {
		return nil, err
	}
	return toTweetEntities(tweetModels), nil
}

func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Tweet, error) {
	var tweetModels []model.TweetModel
	err := r.db.WithContext(ctx).Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&tweetModels).Error
	if err != nil {
		return nil, err
	}
	return toTweetEntities(tweetModels), nil
}

func (r *tweetRepository) UpdateContent(ctx context.Context, id, content string) (*entity.Tweet, error) {
	result := r.db.WithContext(ctx).Model(&model.TweetModel{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *tweetRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", string(entity.LikeTargetTweet), id).
			Delete(&model.LikeModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.TweetModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func toTweetEntities(models []model.TweetModel) []entity.Tweet {
	out := make([]entity.Tweet, 0, len(models))
	for i := range models {
		out = append(out, *ToTweetEntity(&models[i]))
	}
	return out
}
