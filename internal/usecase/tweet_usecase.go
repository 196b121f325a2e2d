package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vidtube/internal/entity"
	"vidtube/internal/repo/persistent"
	"vidtube/pkg/apperror"
	"vidtube/pkg/logger"
)

type TweetUseCase interface {
	CreateTweet(ctx context.Context, ownerID, content string) (*entity.Tweet, error)
	ListTweets(ctx context.Context, page, limit int) ([]entity.Tweet, error)
	ListUserTweets(ctx context.Context, userID string) ([]entity.Tweet, error)
	UpdateTweet(ctx context.Context, tweetID, userID, content string) (*entity.Tweet, error)
	DeleteTweet(ctx context.Context, tweetID, userID string) error
}

type tweetUseCase struct {
	tweetRepo persistent.TweetRepository
	logger    *logger.Logger
}

func NewTweetUseCase(tweetRepo persistent.TweetRepository, logger *logger.Logger) TweetUseCase {
	return &tweetUseCase{tweetRepo: tweetRepo, logger: logger}
}

func (uc *tweetUseCase) CreateTweet(ctx context.Context, ownerID, content string) (*entity.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.Validation("Tweet content is required")
	}

	tweet := &entity.Tweet{Content: content, OwnerID: ownerID}
	if err := uc.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, fmt.Errorf("create tweet: %w", err)
	}
	return tweet, nil
}

func (uc *tweetUseCase) ListTweets(ctx context.Context, page, limit int) ([]entity.Tweet, error) {
	page, limit = clampPage(page, limit)
	tweets, err := uc.tweetRepo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("list tweets: %w", err)
	}
	return tweets, nil
}

func (uc *tweetUseCase) ListUserTweets(ctx context.Context, userID string) ([]entity.Tweet, error) {
	if err := validateID(userID, "user"); err != nil {
		return nil, err
	}
	tweets, err := uc.tweetRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user tweets: %w", err)
	}
	return tweets, nil
}

func (uc *tweetUseCase) UpdateTweet(ctx context.Context, tweetID, userID, content string) (*entity.Tweet, error) {
	if err := validateID(tweetID, "tweet"); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.Validation("Tweet content is required")
	}

	if _, err := loadOwned(ctx, tweetID, userID, "tweet", "update", uc.tweetRepo.GetByID, tweetOwner); err != nil {
		return nil, err
	}
	tweet, err := uc.tweetRepo.UpdateContent(ctx, tweetID, content)
	if errors.Is(err, persistent.ErrNotFound) {
		return nil, apperror.NotFound("Tweet not found")
	}
	if err != nil {
		return nil, fmt.Errorf("update tweet: %w", err)
	}
	return tweet, nil
}

func (uc *tweetUseCase) DeleteTweet(ctx context.Context, tweetID, userID string) error {
	if _, err := loadOwned(ctx, tweetID, userID, "tweet", "delete", uc.tweetRepo.GetByID, tweetOwner); err != nil {
		return err
	}
	err := uc.tweetRepo.Delete(ctx, tweetID)
	if errors.Is(err, persistent.ErrNotFound) {
		return apperror.NotFound("Tweet not found")
	}
	return err
}

func tweetOwner(t *entity.Tweet) string {
	return t.OwnerID
}
