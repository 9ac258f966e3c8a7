package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pop-search/internal/api/dto"
	"pop-search/internal/api/middleware"
	"pop-search/internal/api/services"
)

// SearchHandler handles semantic search
type SearchHandler struct {
	service services.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(service services.SearchService) *SearchHandler {
	return &SearchHandler{
		service: service,
	}
}

// Search handles POST /search
func (h *SearchHandler) Search(c *gin.Context) {
	var req dto.SearchRequest

	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	results, err := h.service.Search(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}
