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

type PlaylistUseCase interface {
	CreatePlaylist(ctx context.Context, ownerID, name, description string) (*entity.Playlist, error)
	ListPlaylists(ctx context.Context, ownerID string) ([]entity.Playlist, error)
	GetPlaylist(ctx context.Context, playlistID string) (*entity.Playlist, error)
	AddVideo(ctx context.Context, playlistID, videoID, userID string) (*entity.Playlist, error)
	RemoveVideo(ctx context.Context, playlistID, videoID, userID string) (*entity.Playlist, error)
	DeletePlaylist(ctx context.Context, playlistID, userID string) error
}

type playlistUseCase struct {
	playlistRepo persistent.PlaylistRepository
	videoRepo    persistent.VideoRepository
	logger       *logger.Logger
}

func NewPlaylistUseCase(
	playlistRepo persistent.PlaylistRepository,
	videoRepo persistent.VideoRepository,
	logger *logger.Logger,
) PlaylistUseCase {
	return &playlistUseCase{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
		logger:       logger,
	}
}

func (uc *playlistUseCase) CreatePlaylist(ctx context.Context, ownerID, name, description string) (*entity.Playlist, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || description == "" {
		return nil, apperror.Validation("All fields are required")
	}

	playlist := &entity.Playlist{Name: name, Description: description, OwnerID: ownerID}
	if err := uc.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, fmt.Errorf("create playlist: %w", err)
	}
	return playlist, nil
}

func (uc *playlistUseCase) ListPlaylists(ctx context.Context, ownerID string) ([]entity.Playlist, error) {
	playlists, err := uc.playlistRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	return playlists, nil
}

func (uc *playlistUseCase) GetPlaylist(ctx context.Context, playlistID string) (*entity.Playlist, error) {
	return load(ctx, playlistID, "playlist", uc.playlistRepo.GetByID)
}

// AddVideo is idempotent: adding a video already in the playlist is a no-op.
func (uc *playlistUseCase) AddVideo(ctx context.Context, playlistID, videoID, userID string) (*entity.Playlist, error) {
	if err := uc.guardVideoChange(ctx, playlistID, videoID, userID); err != nil {
		return nil, err
	}
	if _, err := load(ctx, videoID, "video", uc.videoRepo.GetByID); err != nil {
		return nil, err
	}

	if err := uc.playlistRepo.AddVideo(ctx, playlistID, videoID); err != nil {
		return nil, fmt.Errorf("add video to playlist: %w", err)
	}
	return uc.playlistRepo.GetByID(ctx, playlistID)
}

func (uc *playlistUseCase) RemoveVideo(ctx context.Context, playlistID, videoID, userID string) (*entity.Playlist, error) {
	if err := uc.guardVideoChange(ctx, playlistID, videoID, userID); err != nil {
		return nil, err
	}

	if _, err := uc.playlistRepo.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return nil, fmt.Errorf("remove video from playlist: %w", err)
	}
	return uc.playlistRepo.GetByID(ctx, playlistID)
}

func (uc *playlistUseCase) guardVideoChange(ctx context.Context, playlistID, videoID, userID string) error {
	if err := validateID(playlistID, "playlist"); err != nil {
		return err
	}
	if err := validateID(videoID, "video"); err != nil {
		return err
	}
	_, err := loadOwned(ctx, playlistID, userID, "playlist", "update", uc.playlistRepo.GetByID, playlistOwner)
	return err
}

func (uc *playlistUseCase) DeletePlaylist(ctx context.Context, playlistID, userID string) error {
	if _, err := loadOwned(ctx, playlistID, userID, "playlist", "delete", uc.playlistRepo.GetByID, playlistOwner); err != nil {
		return err
	}
	err := uc.playlistRepo.Delete(ctx, playlistID)
	if errors.Is(err, persistent.ErrNotFound) {
		return apperror.NotFound("Playlist not found")
	}
	return err
}

func playlistOwner(p *entity.Playlist) string {
	return p.OwnerID
}
