package persistent

import (
	"context"

	"vidtube/internal/entity"
	"vidtube/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, subscriberID, channelID string) (*entity.Subscription, error)
	Delete(ctx context.Context, subscriberID, channelID string) (bool, error)
	Exists(ctx context.Context, subscriberID, channelID string) (bool, error)
	ListChannels(ctx context.Context, subscriberID string) ([]entity.Subscription, error)
	ListSubscribers(ctx context.Context, channelID string) ([]entity.Subscription, error)
	CountSubscribers(ctx context.Context, channelID string) (int64, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Create relies on the unique (subscriber_id, channel_id) index; a repeat
// subscription returns ErrDuplicate.
func (r *subscriptionRepository) Create(ctx context.Context, subscriberID, channelID string) (*entity.Subscription, error) {
	subscriptionModel := &model.SubscriptionModel{
		SubscriberID: subscriberID,
		ChannelID:    channelID,
	}
	if err := r.db.WithContext(ctx).Create(subscriptionModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToSubscriptionEntity(subscriptionModel), nil
}

func (r *subscriptionRepository) Delete(ctx context.Context, subscriberID, channelID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&model.SubscriptionModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *subscriptionRepository) Exists(ctx context.Context, subscriberID, channelID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SubscriptionModel{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}

func (r *subscriptionRepository) ListChannels(ctx context.Context, subscriberID string) ([]entity.Subscription, error) {
	var subscriptionModels []model.SubscriptionModel
	if err := r.db.WithContext(ctx).Preload("Channel").
		Where("subscriber_id = ?", subscriberID).
		Order("created_at DESC").
		Find(&subscriptionModels).Error; err != nil {
		return nil, err
	}
	return toSubscriptionEntities(subscriptionModels), nil
}

func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID string) ([]entity.Subscription, error) {
	var subscriptionModels []model.SubscriptionModel
	if err := r.db.WithContext(ctx).Preload("Subscriber").
		Where("channel_id = ?", channelID).
		Order("created_at DESC").
		Find(&subscriptionModels).Error; err != nil {
		return nil, err
	}
	return toSubscriptionEntities(subscriptionModels), nil
}

func (r *subscriptionRepository) CountSubscribers(ctx context.Context, channelID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SubscriptionModel{}).Where("channel_id = ?", channelID).Count(&count).Error
	return count, err
}

func toSubscriptionEntities(models []model.SubscriptionModel) []entity.Subscription {
	out := make([]entity.Subscription, 0, len(models))
	for i := range models {
		out = append(out, *ToSubscriptionEntity(&models[i]))
	}
	return out
}
