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

type CommentUseCase interface {
	AddComment(ctx context.Context, userID, videoID, content string) (*entity.Comment, error)
	ListComments(ctx context.Context, videoID, viewerID string, page, limit int) (*entity.CommentPage, error)
	UpdateComment(ctx context.Context, commentID, userID, content string) (*entity.Comment, error)
	DeleteComment(ctx context.Context, commentID, userID string) error
}

type commentUseCase struct {
	commentRepo persistent.CommentRepository
	videoRepo   persistent.VideoRepository
	logger      *logger.Logger
}

func NewCommentUseCase(
	commentRepo persistent.CommentRepository,
	videoRepo persistent.VideoRepository,
	logger *logger.Logger,
) CommentUseCase {
	return &commentUseCase{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		logger:      logger,
	}
}

func (uc *commentUseCase) AddComment(ctx context.Context, userID, videoID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" || videoID == "" {
		return nil, apperror.Validation("All fields are required")
	}
	if _, err := visibleVideo(ctx, uc.videoRepo, videoID, userID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		Content: content,
		VideoID: videoID,
		OwnerID: userID,
	}
	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

func (uc *commentUseCase) ListComments(ctx context.Context, videoID, viewerID string, page, limit int) (*entity.CommentPage, error) {
	if _, err := visibleVideo(ctx, uc.videoRepo, videoID, viewerID); err != nil {
		return nil, err
	}

	page, limit = clampPage(page, limit)
	comments, total, err := uc.commentRepo.ListByVideo(ctx, videoID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return &entity.CommentPage{Items: comments, Total: total, Page: page, Limit: limit}, nil
}

func (uc *commentUseCase) UpdateComment(ctx context.Context, commentID, userID, content string) (*entity.Comment, error) {
	if err := validateID(commentID, "comment"); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.Validation("Comment content is required")
	}

	if _, err := loadOwned(ctx, commentID, userID, "comment", "edit", uc.commentRepo.GetByID, commentOwner); err != nil {
		return nil, err
	}
	comment, err := uc.commentRepo.UpdateContent(ctx, commentID, content)
	if errors.Is(err, persistent.ErrNotFound) {
		return nil, apperror.NotFound("Comment not found")
	}
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

func (uc *commentUseCase) DeleteComment(ctx context.Context, commentID, userID string) error {
	if _, err := loadOwned(ctx, commentID, userID, "comment", "delete", uc.commentRepo.GetByID, commentOwner); err != nil {
		return err
	}
	err := uc.commentRepo.Delete(ctx, commentID)
	if errors.Is(err, persistent.ErrNotFound) {
		return apperror.NotFound("Comment not found")
	}
	return err
}

func commentOwner(c *entity.Comment) string {
	return c.OwnerID
}

// visibleVideo loads a video the viewer may see; unpublished videos are
// reported missing to everyone but their owner.
func visibleVideo(ctx context.Context, videos persistent.VideoRepository, videoID, viewerID string) (*entity.Video, error) {
	video, err := load(ctx, videoID, "video", videos.GetByID)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, apperror.NotFound("Video not found")
	}
	return video, nil
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
