package http

import (
	"net/http"

	"vidtube/internal/usecase"
	"vidtube/pkg/logger"
	"vidtube/pkg/response"

	"github.com/gin-gonic/gin"
)

type PlaylistHandler struct {
	playlistUseCase usecase.PlaylistUseCase
	logger          *logger.Logger
}

func NewPlaylistHandler(playlistUseCase usecase.PlaylistUseCase, logger *logger.Logger) *PlaylistHandler {
	return &PlaylistHandler{
		playlistUseCase: playlistUseCase,
		logger:          logger,
	}
}

type CreatePlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type PlaylistVideoRequest struct {
	VideoID string `json:"videoId"`
}

// CreatePlaylist godoc
// @Summary      Create a playlist
// @Tags         playlist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  CreatePlaylistRequest  true  "Playlist"
// @Success      201  {object}  response.Envelope{data=entity.Playlist}
// @Failure      400  {object}  response.ErrorEnvelope
// @Router       /playlist [post]
func (h *PlaylistHandler) CreatePlaylist(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req CreatePlaylistRequest
	if !bindJSON(c, &req) {
		return
	}

	playlist, err := h.playlistUseCase.CreatePlaylist(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, playlist, "Playlist created successfully")
}

// ListPlaylists godoc
// @Summary      The caller's playlists with their videos
// @Tags         playlist
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope{data=[]entity.Playlist}
// @Router       /playlist [get]
func (h *PlaylistHandler) ListPlaylists(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	playlists, err := h.playlistUseCase.ListPlaylists(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, playlists, "Playlists fetched successfully")
}

// GetPlaylist godoc
// @Summary      Get a playlist
// @Tags         playlist
// @Produce      json
// @Security     BearerAuth
// @Param        playlistId  path  string  true  "Playlist ID"
// @Success      200  {object}  response.Envelope{data=entity.Playlist}
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /playlist/{playlistId} [get]
func (h *PlaylistHandler) GetPlaylist(c *gin.Context) {
	playlist, err := h.playlistUseCase.GetPlaylist(c.Request.Context(), c.Param("playlistId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, playlist, "Playlist fetched successfully")
}

// AddVideo godoc
// @Summary      Add a video to a playlist
// @Description  Adding a video that is already present leaves the playlist unchanged.
// @Tags         playlist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        playlistId  path  string                true  "Playlist ID"
// @Param        request     body  PlaylistVideoRequest  true  "Video"
// @Success      200  {object}  response.Envelope{data=entity.Playlist}
// @Failure      403  {object}  response.ErrorEnvelope
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /playlist/{playlistId}/add-video [put]
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req PlaylistVideoRequest
	if !bindJSON(c, &req) {
		return
	}

	playlist, err := h.playlistUseCase.AddVideo(c.Request.Context(), c.Param("playlistId"), req.VideoID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, playlist, "Video added to playlist successfully")
}

// RemoveVideo godoc
// @Summary      Remove a video from a playlist
// @Tags         playlist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        playlistId  path  string                true  "Playlist ID"
// @Param        request     body  PlaylistVideoRequest  true  "Video"
// @Success      200  {object}  response.Envelope{data=entity.Playlist}
// @Failure      403  {object}  response.ErrorEnvelope
// @Router       /playlist/{playlistId}/remove-video [put]
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req PlaylistVideoRequest
	if !bindJSON(c, &req) {
		return
	}

	playlist, err := h.playlistUseCase.RemoveVideo(c.Request.Context(), c.Param("playlistId"), req.VideoID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, playlist, "Video removed from playlist successfully")
}

// DeletePlaylist godoc
// @Summary      Delete a playlist
// @Tags         playlist
// @Produce      json
// @Security     BearerAuth
// @Param        playlistId  path  string  true  "Playlist ID"
// @Success      200  {object}  response.Envelope
// @Failure      403  {object}  response.ErrorEnvelope
// @Router       /playlist/{playlistId} [delete]
func (h *PlaylistHandler) DeletePlaylist(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.playlistUseCase.DeletePlaylist(c.Request.Context(), c.Param("playlistId"), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{}, "Playlist deleted successfully")
}
