package http

import (
	"net/http"

	"vidtube/internal/usecase"
	"vidtube/pkg/logger"
	"vidtube/pkg/response"

	"github.com/gin-gonic/gin"
)

type TweetHandler struct {
	tweetUseCase usecase.TweetUseCase
	logger       *logger.Logger
}

func NewTweetHandler(tweetUseCase usecase.TweetUseCase, logger *logger.Logger) *TweetHandler {
	return &TweetHandler{
		tweetUseCase: tweetUseCase,
		logger:       logger,
	}
}

// CreateTweet godoc
// @Summary      Post a tweet
// @Tags         tweet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  ContentRequest  true  "Tweet"
// @Success      201  {object}  response.Envelope{data=entity.Tweet}
// @Failure      400  {object}  response.ErrorEnvelope
// @Router       /tweet [post]
func (h *TweetHandler) CreateTweet(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req ContentRequest
	if !bindJSON(c, &req) {
		return
	}

	tweet, err := h.tweetUseCase.CreateTweet(c.Request.Context(), userID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, tweet, "Tweet created successfully")
}

// ListTweets godoc
// @Summary      All tweets, newest first
// @Tags         tweet
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "Page number"
// @Param        limit  query  int  false  "Page size"
// @Success      200  {object}  response.Envelope{data=[]entity.Tweet}
// @Router       /tweet [get]
func (h *TweetHandler) ListTweets(c *gin.Context) {
	tweets, err := h.tweetUseCase.ListTweets(c.Request.Context(), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tweets, "All tweets fetched successfully")
}

// ListUserTweets godoc
// @Summary      Tweets of one user
// @Tags         tweet
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path  string  true  "User ID"
// @Success      200  {object}  response.Envelope{data=[]entity.Tweet}
// @Failure      400  {object}  response.ErrorEnvelope
// @Router       /tweet/user/{userId} [get]
func (h *TweetHandler) ListUserTweets(c *gin.Context) {
	tweets, err := h.tweetUseCase.ListUserTweets(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tweets, "User's tweets fetched successfully")
}

// UpdateTweet godoc
// @Summary      Edit a tweet
// @Tags         tweet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tweetId  path  string          true  "Tweet ID"
// @Param        request  body  ContentRequest  true  "New content"
// @Success      200  {object}  response.Envelope{data=entity.Tweet}
// @Failure      403  {object}  response.ErrorEnvelope
// @Router       /tweet/{tweetId} [patch]
func (h *TweetHandler) UpdateTweet(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req ContentRequest
	if !bindJSON(c, &req) {
		return
	}

	tweet, err := h.tweetUseCase.UpdateTweet(c.Request.Context(), c.Param("tweetId"), userID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tweet, "Tweet updated successfully")
}

// DeleteTweet godoc
// @Summary      Delete a tweet
// @Tags         tweet
// @Produce      json
// @Security     BearerAuth
// @Param        tweetId  path  string  true  "Tweet ID"
// @Success      200  {object}  response.Envelope
// @Failure      403  {object}  response.ErrorEnvelope
// @Router       /tweet/{tweetId} [delete]
func (h *TweetHandler) DeleteTweet(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.tweetUseCase.DeleteTweet(c.Request.Context(), c.Param("tweetId"), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{}, "Tweet deleted successfully")
}
