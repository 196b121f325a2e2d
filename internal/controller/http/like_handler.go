package http

import (
	"net/http"

	"vidtube/internal/usecase"
	"vidtube/pkg/logger"
	"vidtube/pkg/response"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeUseCase usecase.LikeUseCase
	logger      *logger.Logger
}

func NewLikeHandler(likeUseCase usecase.LikeUseCase, logger *logger.Logger) *LikeHandler {
	return &LikeHandler{
		likeUseCase: likeUseCase,
		logger:      logger,
	}
}

// ToggleLike godoc
// @Summary      Like or unlike a video, comment or tweet
// @Tags         like
// @Produce      json
// @Security     BearerAuth
// @Param        type      path  string  true  "video, comment or tweet"
// @Param        targetId  path  string  true  "Target ID"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.ErrorEnvelope
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /like/{type}/{targetId} [post]
func (h *LikeHandler) ToggleLike(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	targetType := c.Param("type")

	liked, err := h.likeUseCase.ToggleLike(c.Request.Context(), targetType, c.Param("targetId"), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Unliked " + targetType
	if liked {
		message = "Liked " + targetType
	}
	response.JSON(c, http.StatusOK, gin.H{"liked": liked}, message)
}

// GetLikeCount godoc
// @Summary      Count likes of a target
// @Tags         like
// @Produce      json
// @Security     BearerAuth
// @Param        type      path  string  true  "video, comment or tweet"
// @Param        targetId  path  string  true  "Target ID"
// @Success      200  {object}  response.Envelope{data=entity.LikeSummary}
// @Failure      400  {object}  response.ErrorEnvelope
// @Router       /like/count/{type}/{targetId} [get]
func (h *LikeHandler) GetLikeCount(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	summary, err := h.likeUseCase.GetLikeSummary(c.Request.Context(), c.Param("type"), c.Param("targetId"), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, "Like count fetched successfully")
}
