package http

import (
	"net/http"
	"strconv"
	"strings"

	"vidtube/internal/entity"
	"vidtube/internal/usecase"
	"vidtube/pkg/apperror"
	"vidtube/pkg/logger"
	"vidtube/pkg/middleware"
	"vidtube/pkg/response"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoUseCase usecase.VideoUseCase
	logger       *logger.Logger
}

func NewVideoHandler(videoUseCase usecase.VideoUseCase, logger *logger.Logger) *VideoHandler {
	return &VideoHandler{
		videoUseCase: videoUseCase,
		logger:       logger,
	}
}

// ListVideos godoc
// @Summary      List published videos
// @Tags         video
// @Produce      json
// @Param        page      query  int     false  "Page number"  default(1)
// @Param        limit     query  int     false  "Page size"    default(10)
// @Param        query     query  string  false  "Search in title and description"
// @Param        sortBy    query  string  false  "createdAt, views, duration or title"
// @Param        sortType  query  string  false  "asc or desc"
// @Param        userId    query  string  false  "Only videos of this owner"
// @Success      200  {object}  response.Envelope{data=entity.VideoPage}
// @Failure      400  {object}  response.ErrorEnvelope
// @Router       /video [get]
func (h *VideoHandler) ListVideos(c *gin.Context) {
	page, err := h.videoUseCase.ListVideos(c.Request.Context(), entity.VideoFilter{
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
		Query:    c.Query("query"),
		SortBy:   c.Query("sortBy"),
		SortType: c.Query("sortType"),
		OwnerID:  c.Query("userId"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page, "Videos fetched successfully")
}

// PublishVideo godoc
// @Summary      Upload a video
// @Description  The video is stored unpublished until its owner toggles it.
// @Tags         video
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  true   "Description"
// @Param        duration     formData  number  false  "Duration in seconds"
// @Param        videoFile    formData  file    true   "Video file"
// @Param        thumbnail    formData  file    true   "Thumbnail image"
// @Success      201  {object}  response.Envelope{data=entity.Video}
// @Failure      400  {object}  response.ErrorEnvelope
// @Router       /video [post]
func (h *VideoHandler) PublishVideo(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var duration float64
	if raw := strings.TrimSpace(c.PostForm("duration")); raw != "" {
		d, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.Error(c, apperror.Validation("Invalid duration"))
			return
		}
		duration = d
	}

	videoFile, closeVideo, err := formUpload(c, "videoFile")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeVideo()

	thumbnail, closeThumb, err := formUpload(c, "thumbnail")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeThumb()

	video, err := h.videoUseCase.PublishVideo(c.Request.Context(), userID, usecase.PublishVideoInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Duration:    duration,
		VideoFile:   videoFile,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, video, "Video uploaded successfully")
}

// GetVideo godoc
// @Summary      Get a video
// @Description  Counts a view and, for signed in viewers, records it in their watch history.
// @Tags         video
// @Produce      json
// @Param        videoId  path  string  true  "Video ID"
// @Success      200  {object}  response.Envelope{data=entity.Video}
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /video/{videoId} [get]
func (h *VideoHandler) GetVideo(c *gin.Context) {
	viewerID := c.GetString(middleware.ContextUserID)

	video, err := h.videoUseCase.GetVideo(c.Request.Context(), c.Param("videoId"), viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, video, "Video fetched successfully")
}

// UpdateVideo godoc
// @Summary      Update title, description and thumbnail
// @Tags         video
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        videoId      path      string  true   "Video ID"
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  true   "Description"
// @Param        thumbnail    formData  file    false  "New thumbnail"
// @Success      200  {object}  response.Envelope{data=entity.Video}
// @Failure      403  {object}  response.ErrorEnvelope
// @Router       /video/{videoId} [patch]
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	thumbnail, closeThumb, err := formUpload(c, "thumbnail")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeThumb()

	title, description := c.PostForm("title"), c.PostForm("description")
	if c.ContentType() == gin.MIMEJSON {
		var req struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		}
		if !bindJSON(c, &req) {
			return
		}
		title, description = req.Title, req.Description
	}

	video, err := h.videoUseCase.UpdateVideo(c.Request.Context(), c.Param("videoId"), userID, usecase.UpdateVideoInput{
		Title:       title,
		Description: description,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, video, "Video details updated successfully")
}

// DeleteVideo godoc
// @Summary      Delete a video with its comments, likes and media
// @Tags         video
// @Produce      json
// @Security     BearerAuth
// @Param        videoId  path  string  true  "Video ID"
// @Success      200  {object}  response.Envelope
// @Failure      403  {object}  response.ErrorEnvelope
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /video/{videoId} [delete]
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.videoUseCase.DeleteVideo(c.Request.Context(), c.Param("videoId"), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{}, "Video deleted successfully")
}

// TogglePublish godoc
// @Summary      Flip the published flag
// @Tags         video
// @Produce      json
// @Security     BearerAuth
// @Param        videoId  path  string  true  "Video ID"
// @Success      200  {object}  response.Envelope{data=entity.Video}
// @Failure      403  {object}  response.ErrorEnvelope
// @Router       /video/{videoId}/toggle-publish [patch]
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	video, err := h.videoUseCase.TogglePublish(c.Request.Context(), c.Param("videoId"), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Video unpublished successfully"
	if video.IsPublished {
		message = "Video published successfully"
	}
	response.JSON(c, http.StatusOK, video, message)
}
