package usecase

import (
	"context"
	"fmt"

	"vidtube/internal/entity"
	"vidtube/internal/repo/persistent"
	"vidtube/pkg/apperror"
	"vidtube/pkg/logger"
)

type LikeUseCase interface {
	ToggleLike(ctx context.Context, targetType, targetID, userID string) (bool, error)
	GetLikeSummary(ctx context.Context, targetType, targetID, userID string) (*entity.LikeSummary, error)
}

type likeUseCase struct {
	likeRepo persistent.LikeRepository
	logger   *logger.Logger
}

func NewLikeUseCase(likeRepo persistent.LikeRepository, logger *logger.Logger) LikeUseCase {
	return &likeUseCase{likeRepo: likeRepo, logger: logger}
}

// ToggleLike reports whether the target is liked after the call.
func (uc *likeUseCase) ToggleLike(ctx context.Context, targetType, targetID, userID string) (bool, error) {
	target, err := uc.resolveTarget(ctx, targetType, targetID)
	if err != nil {
		return false, err
	}

	liked, err := uc.likeRepo.Toggle(ctx, target, targetID, userID)
	if err != nil {
		return false, fmt.Errorf("toggle like: %w", err)
	}
	return liked, nil
}

func (uc *likeUseCase) GetLikeSummary(ctx context.Context, targetType, targetID, userID string) (*entity.LikeSummary, error) {
	target, err := uc.resolveTarget(ctx, targetType, targetID)
	if err != nil {
		return nil, err
	}

	count, err := uc.likeRepo.Count(ctx, target, targetID)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	liked, err := uc.likeRepo.IsLiked(ctx, target, targetID, userID)
	if err != nil {
		return nil, fmt.Errorf("check like: %w", err)
	}
	return &entity.LikeSummary{TargetType: target, TargetID: targetID, Count: count, IsLiked: liked}, nil
}

func (uc *likeUseCase) resolveTarget(ctx context.Context, targetType, targetID string) (entity.LikeTarget, error) {
	target := entity.LikeTarget(targetType)
	if !target.Valid() {
		return "", apperror.Validation("Invalid type")
	}
	if err := validateID(targetID, targetType); err != nil {
		return "", err
	}

	exists, err := uc.likeRepo.TargetExists(ctx, target, targetID)
	if err != nil {
		return "", fmt.Errorf("check like target: %w", err)
	}
	if !exists {
		return "", apperror.NotFound(capitalize(targetType) + " not found")
	}
	return target, nil
}
