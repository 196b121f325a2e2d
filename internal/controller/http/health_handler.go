package http

import (
	"net/http"

	"vidtube/pkg/response"

	"github.com/gin-gonic/gin"
)

// Healthcheck godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Envelope
// @Router       /healthcheck [get]
func Healthcheck(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"status": "OK"}, "OK")
}
