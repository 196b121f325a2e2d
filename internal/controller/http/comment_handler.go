package http

import (
	"net/http"

	"vidtube/internal/usecase"
	"vidtube/pkg/logger"
	"vidtube/pkg/response"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentUseCase usecase.CommentUseCase
	logger         *logger.Logger
}

func NewCommentHandler(commentUseCase usecase.CommentUseCase, logger *logger.Logger) *CommentHandler {
	return &CommentHandler{
		commentUseCase: commentUseCase,
		logger:         logger,
	}
}

type AddCommentRequest struct {
	Content string `json:"content"`
	VideoID string `json:"videoId"`
}

type ContentRequest struct {
	Content string `json:"content"`
}

// AddComment godoc
// @Summary      Comment on a video
// @Tags         comment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  AddCommentRequest  true  "Comment"
// @Success      201  {object}  response.Envelope{data=entity.Comment}
// @Failure      400  {object}  response.ErrorEnvelope
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /comment [post]
func (h *CommentHandler) AddComment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req AddCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentUseCase.AddComment(c.Request.Context(), userID, req.VideoID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, comment, "Comment added successfully")
}

// ListComments godoc
// @Summary      List comments of a video, newest first
// @Tags         comment
// @Produce      json
// @Security     BearerAuth
// @Param        videoId  path   string  true   "Video ID"
// @Param        page     query  int     false  "Page number"
// @Param        limit    query  int     false  "Page size"
// @Success      200  {object}  response.Envelope{data=entity.CommentPage}
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /comment/{videoId} [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	page, err := h.commentUseCase.ListComments(c.Request.Context(), c.Param("videoId"), userID, queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page, "Comments fetched successfully")
}

// UpdateComment godoc
// @Summary      Edit a comment
// @Tags         comment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        commentId  path  string          true  "Comment ID"
// @Param        request    body  ContentRequest  true  "New content"
// @Success      200  {object}  response.Envelope{data=entity.Comment}
// @Failure      403  {object}  response.ErrorEnvelope
// @Router       /comment/{commentId} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req ContentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentUseCase.UpdateComment(c.Request.Context(), c.Param("commentId"), userID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, comment, "Comment updated successfully")
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Tags         comment
// @Produce      json
// @Security     BearerAuth
// @Param        commentId  path  string  true  "Comment ID"
// @Success      200  {object}  response.Envelope
// @Failure      403  {object}  response.ErrorEnvelope
// @Router       /comment/{commentId} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.commentUseCase.DeleteComment(c.Request.Context(), c.Param("commentId"), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{}, "Comment deleted successfully")
}
