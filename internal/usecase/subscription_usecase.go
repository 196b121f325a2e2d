package usecase

import (
	"context"
	"errors"
	"fmt"

	"vidtube/internal/entity"
	"vidtube/internal/repo/persistent"
	"vidtube/pkg/apperror"
	"vidtube/pkg/logger"
)

type SubscriptionUseCase interface {
	Subscribe(ctx context.Context, subscriberID, channelID string) (*entity.Subscription, error)
	Unsubscribe(ctx context.Context, subscriberID, channelID string) error
	ListSubscribedChannels(ctx context.Context, subscriberID string) ([]entity.Subscription, error)
	ListChannelSubscribers(ctx context.Context, channelID string) ([]entity.Subscription, error)
	IsSubscribed(ctx context.Context, subscriberID, channelID string) (bool, error)
}

type subscriptionUseCase struct {
	subscriptionRepo persistent.SubscriptionRepository
	userRepo         persistent.UserRepository
	logger           *logger.Logger
}

func NewSubscriptionUseCase(
	subscriptionRepo persistent.SubscriptionRepository,
	userRepo persistent.UserRepository,
	logger *logger.Logger,
) SubscriptionUseCase {
	return &subscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

func (uc *subscriptionUseCase) Subscribe(ctx context.Context, subscriberID, channelID string) (*entity.Subscription, error) {
	if err := validateID(channelID, "channel"); err != nil {
		return nil, err
	}
	if subscriberID == channelID {
		return nil, apperror.Validation("You cannot subscribe to yourself")
	}
	if err := uc.requireChannel(ctx, channelID); err != nil {
		return nil, err
	}

	subscription, err := uc.subscriptionRepo.Create(ctx, subscriberID, channelID)
	if errors.Is(err, persistent.ErrDuplicate) {
		return nil, apperror.Conflict("You are already subscribed to this channel")
	}
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	uc.logger.Info("User %s subscribed to %s", subscriberID, channelID)
	return subscription, nil
}

func (uc *subscriptionUseCase) Unsubscribe(ctx context.Context, subscriberID, channelID string) error {
	if err := validateID(channelID, "channel"); err != nil {
		return err
	}

	removed, err := uc.subscriptionRepo.Delete(ctx, subscriberID, channelID)
	if err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	if !removed {
		return apperror.Validation("You are not subscribed to this channel")
	}
	return nil
}

func (uc *subscriptionUseCase) ListSubscribedChannels(ctx context.Context, subscriberID string) ([]entity.Subscription, error) {
	subscriptions, err := uc.subscriptionRepo.ListChannels(ctx, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("list subscribed channels: %w", err)
	}
	return subscriptions, nil
}

func (uc *subscriptionUseCase) ListChannelSubscribers(ctx context.Context, channelID string) ([]entity.Subscription, error) {
	if err := validateID(channelID, "channel"); err != nil {
		return nil, err
	}
	if err := uc.requireChannel(ctx, channelID); err != nil {
		return nil, err
	}

	subscriptions, err := uc.subscriptionRepo.ListSubscribers(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("list channel subscribers: %w", err)
	}
	return subscriptions, nil
}

func (uc *subscriptionUseCase) IsSubscribed(ctx context.Context, subscriberID, channelID string) (bool, error) {
	if err := validateID(channelID, "channel"); err != nil {
		return false, err
	}
	return uc.subscriptionRepo.Exists(ctx, subscriberID, channelID)
}

func (uc *subscriptionUseCase) requireChannel(ctx context.Context, channelID string) error {
	_, err := uc.userRepo.GetByID(ctx, channelID)
	if errors.Is(err, persistent.ErrNotFound) {
		return apperror.NotFound("Channel not found")
	}
	if err != nil {
		return fmt.Errorf("load channel: %w", err)
	}
	return nil
}
