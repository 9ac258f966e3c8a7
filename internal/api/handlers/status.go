package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pop-search/internal/api/dto"
	"pop-search/internal/config"
)

// Root handles GET /
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, dto.RootResponse{
		Status:  "ok",
		Message: "Pop Search API is running and welcoming the world!",
		Version: config.Version,
	})
}

// Health handles GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Unix(),
	})
}
