package http

import (
	"net/http"

	"vidtube/internal/usecase"
	"vidtube/pkg/logger"
	"vidtube/pkg/response"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionUseCase usecase.SubscriptionUseCase
	logger              *logger.Logger
}

func NewSubscriptionHandler(subscriptionUseCase usecase.SubscriptionUseCase, logger *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionUseCase: subscriptionUseCase,
		logger:              logger,
	}
}

// Subscribe godoc
// @Summary      Subscribe to a channel
// @Tags         subscription
// @Produce      json
// @Security     BearerAuth
// @Param        channelId  path  string  true  "Channel (user) ID"
// @Success      200  {object}  response.Envelope{data=entity.Subscription}
// @Failure      400  {object}  response.ErrorEnvelope
// @Failure      404  {object}  response.ErrorEnvelope
// @Failure      409  {object}  response.ErrorEnvelope
// @Router       /subscription/subscribe/{channelId} [post]
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionUseCase.Subscribe(c.Request.Context(), userID, c.Param("channelId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sub, "Subscribed to channel successfully")
}

// Unsubscribe godoc
// @Summary      Unsubscribe from a channel
// @Tags         subscription
// @Produce      json
// @Security     BearerAuth
// @Param        channelId  path  string  true  "Channel (user) ID"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.ErrorEnvelope
// @Router       /subscription/unsubscribe/{channelId} [post]
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.subscriptionUseCase.Unsubscribe(c.Request.Context(), userID, c.Param("channelId")); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{}, "Unsubscribed from channel successfully")
}

// ListSubscribedChannels godoc
// @Summary      Channels the caller follows
// @Tags         subscription
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope{data=[]entity.Subscription}
// @Router       /subscription/subscribed-channels [get]
func (h *SubscriptionHandler) ListSubscribedChannels(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	subs, err := h.subscriptionUseCase.ListSubscribedChannels(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subs, "Subscribed channels fetched successfully")
}

// ListChannelSubscribers godoc
// @Summary      Subscribers of a channel
// @Tags         subscription
// @Produce      json
// @Security     BearerAuth
// @Param        channelId  path  string  true  "Channel (user) ID"
// @Success      200  {object}  response.Envelope{data=[]entity.Subscription}
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /subscription/channel-subscribers/{channelId} [get]
func (h *SubscriptionHandler) ListChannelSubscribers(c *gin.Context) {
	subs, err := h.subscriptionUseCase.ListChannelSubscribers(c.Request.Context(), c.Param("channelId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subs, "Subscribers fetched successfully")
}

// IsSubscribed godoc
// @Summary      Whether the caller follows a channel
// @Tags         subscription
// @Produce      json
// @Security     BearerAuth
// @Param        channelId  path  string  true  "Channel (user) ID"
// @Success      200  {object}  response.Envelope
// @Router       /subscription/is-subscribed/{channelId} [get]
func (h *SubscriptionHandler) IsSubscribed(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	subscribed, err := h.subscriptionUseCase.IsSubscribed(c.Request.Context(), userID, c.Param("channelId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"isSubscribed": subscribed}, "Subscription status fetched successfully")
}
