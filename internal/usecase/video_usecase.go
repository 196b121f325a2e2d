package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vidtube/internal/entity"
	"vidtube/internal/repo/persistent"
	"vidtube/internal/repo/query"
	"vidtube/pkg/apperror"
	"vidtube/pkg/logger"
	"vidtube/pkg/media"
)

type PublishVideoInput struct {
	Title       string
	Description string
	Duration    float64
	VideoFile   *Upload
	Thumbnail   *Upload
}

// UpdateVideoInput replaces the thumbnail only when Thumbnail is set.
type UpdateVideoInput struct {
	Title       string
	Description string
	Thumbnail   *Upload
}

type VideoUseCase interface {
	ListVideos(ctx context.Context, filter entity.VideoFilter) (*entity.VideoPage, error)
	PublishVideo(ctx context.Context, ownerID string, in PublishVideoInput) (*entity.Video, error)
	GetVideo(ctx context.Context, videoID, viewerID string) (*entity.Video, error)
	UpdateVideo(ctx context.Context, videoID, userID string, in UpdateVideoInput) (*entity.Video, error)
	DeleteVideo(ctx context.Context, videoID, userID string) error
	TogglePublish(ctx context.Context, videoID, userID string) (*entity.Video, error)
}

type videoUseCase struct {
	videoRepo persistent.VideoRepository
	userRepo  persistent.UserRepository
	media     *mediaManager
	logger    *logger.Logger
}

func NewVideoUseCase(
	videoRepo persistent.VideoRepository,
	userRepo persistent.UserRepository,
	storage media.Storage,
	cleanup CleanupPublisher,
	logger *logger.Logger,
) VideoUseCase {
	return &videoUseCase{
		videoRepo: videoRepo,
		userRepo:  userRepo,
		media:     newMediaManager(storage, cleanup, logger),
		logger:    logger,
	}
}

func (uc *videoUseCase) ListVideos(ctx context.Context, filter entity.VideoFilter) (*entity.VideoPage, error) {
	if filter.OwnerID != "" {
		if err := validateID(filter.OwnerID, "user"); err != nil {
			return nil, err
		}
	}
	page, err := uc.videoRepo.List(ctx, query.NewVideoListQuery(filter))
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return page, nil
}

func (uc *videoUseCase) PublishVideo(ctx context.Context, ownerID string, in PublishVideoInput) (*entity.Video, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" || in.Description == "" {
		return nil, apperror.Validation("All fields are required")
	}
	if in.VideoFile == nil || in.Thumbnail == nil {
		return nil, apperror.Validation("Video file and thumbnail are required")
	}
	if in.Duration < 0 {
		return nil, apperror.Validation("Duration must not be negative")
	}

	videoAsset, err := uc.media.upload(ctx, media.FolderVideos, ownerID, in.VideoFile)
	if err != nil {
		return nil, apperror.Internal("Failed to upload video file or thumbnail", err)
	}
	thumbAsset, err := uc.media.upload(ctx, media.FolderThumbnails, ownerID, in.Thumbnail)
	if err != nil {
		uc.media.discard(ctx, "thumbnail upload failed", videoAsset)
		return nil, apperror.Internal("Failed to upload video file or thumbnail", err)
	}

	video := &entity.Video{
		Title:             in.Title,
		Description:       in.Description,
		VideoFile:         videoAsset.URL,
		VideoFilePublicID: videoAsset.PublicID,
		Thumbnail:         thumbAsset.URL,
		ThumbnailPublicID: thumbAsset.PublicID,
		Duration:          in.Duration,
		IsPublished:       false,
		OwnerID:           ownerID,
	}
	if err := uc.videoRepo.Create(ctx, video); err != nil {
		uc.media.discard(ctx, "video create failed", videoAsset, thumbAsset)
		return nil, apperror.Internal("Something went wrong while saving the video", err)
	}

	uc.logger.Info("User %s uploaded video %s", ownerID, video.ID)
	return video, nil
}

// GetVideo counts a view and records it in the viewer's history. Unpublished
// videos are only visible to their owner.
func (uc *videoUseCase) GetVideo(ctx context.Context, videoID, viewerID string) (*entity.Video, error) {
	video, err := load(ctx, videoID, "video", uc.videoRepo.GetByID)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, apperror.NotFound("Video not found")
	}

	if err := uc.videoRepo.IncrementViews(ctx, video.ID); err != nil {
		return nil, fmt.Errorf("increment views: %w", err)
	}
	video.Views++

	if viewerID != "" {
		if err := uc.userRepo.AddToWatchHistory(ctx, viewerID, video.ID); err != nil {
			return nil, fmt.Errorf("add to watch history: %w", err)
		}
	}
	return video, nil
}

func (uc *videoUseCase) UpdateVideo(ctx context.Context, videoID, userID string, in UpdateVideoInput) (*entity.Video, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if err := validateID(videoID, "video"); err != nil {
		return nil, err
	}
	if in.Title == "" || in.Description == "" {
		return nil, apperror.Validation("All fields are required")
	}

	video, err := loadOwned(ctx, videoID, userID, "video", "update", uc.videoRepo.GetByID, videoOwner)
	if err != nil {
		return nil, err
	}

	previousThumbnail := ""
	var thumbAsset *media.Asset
	if in.Thumbnail != nil {
		thumbAsset, err = uc.media.upload(ctx, media.FolderThumbnails, userID, in.Thumbnail)
		if err != nil {
			return nil, apperror.Internal("Failed to upload thumbnail", err)
		}
		previousThumbnail = video.ThumbnailPublicID
		video.Thumbnail = thumbAsset.URL
		video.ThumbnailPublicID = thumbAsset.PublicID
	}
	video.Title = in.Title
	video.Description = in.Description

	if err := uc.videoRepo.Update(ctx, video); err != nil {
		uc.media.discard(ctx, "video update failed", thumbAsset)
		return nil, fmt.Errorf("update video: %w", err)
	}
	if previousThumbnail != "" {
		uc.media.discardIDs(ctx, "replaced thumbnail", previousThumbnail)
	}

	return uc.videoRepo.GetByID(ctx, video.ID)
}

func (uc *videoUseCase) DeleteVideo(ctx context.Context, videoID, userID string) error {
	video, err := loadOwned(ctx, videoID, userID, "video", "delete", uc.videoRepo.GetByID, videoOwner)
	if err != nil {
		return err
	}

	if err := uc.videoRepo.Delete(ctx, video.ID); err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return apperror.NotFound("Video not found")
		}
		return fmt.Errorf("delete video: %w", err)
	}

	uc.media.discardIDs(ctx, "video deleted", video.VideoFilePublicID, video.ThumbnailPublicID)
	uc.logger.Info("User %s deleted video %s", userID, video.ID)
	return nil
}

func (uc *videoUseCase) TogglePublish(ctx context.Context, videoID, userID string) (*entity.Video, error) {
	video, err := loadOwned(ctx, videoID, userID, "video", "publish", uc.videoRepo.GetByID, videoOwner)
	if err != nil {
		return nil, err
	}

	if err := uc.videoRepo.SetPublished(ctx, video.ID, !video.IsPublished); err != nil {
		return nil, fmt.Errorf("toggle publish: %w", err)
	}
	video.IsPublished = !video.IsPublished
	return video, nil
}

func videoOwner(v *entity.Video) string {
	return v.OwnerID
}
