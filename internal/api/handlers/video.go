package handlers

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pop-search/internal/api/dto"
	"pop-search/internal/api/errors"
	"pop-search/internal/api/middleware"
	"pop-search/internal/api/services"
	"pop-search/internal/app/model"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// VideoHandler handles video analysis and catalog endpoints
type VideoHandler struct {
	service services.VideoService
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(service services.VideoService) *VideoHandler {
	return &VideoHandler{
		service: service,
	}
}

// Analyze handles POST /analyze
// Downloads the video, lets the model describe it and returns the metadata
// without storing it.
func (h *VideoHandler) Analyze(c *gin.Context) {
	var req dto.AnalyzeRequest

	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	metadata, err := h.service.Analyze(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, metadata)
}

// Index handles POST /videos
// Stores previously analyzed metadata so it becomes searchable.
func (h *VideoHandler) Index(c *gin.Context) {
	var req dto.IndexVideoRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		details := map[string]string{"request": "invalid JSON format"}
		if stderrors.Is(err, model.ErrMissingDetails) {
			details = map[string]string{"metadados_estruturados": "is required"}
		}
		middleware.HandleError(c, errors.NewValidationError("Validation failed", details))
		return
	}

	response, err := h.service.Index(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// List handles GET /videos
func (h *VideoHandler) List(c *gin.Context) {
	var query dto.ListVideosQuery

	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	videos, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, videos)
}

// Export handles GET /videos/export
// Streams the catalog as an xlsx workbook.
func (h *VideoHandler) Export(c *gin.Context) {
	var buf bytes.Buffer

	if err := h.service.Export(c.Request.Context(), &buf); err != nil {
		middleware.HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("videos-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
