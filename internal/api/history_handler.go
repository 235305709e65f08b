package api

import (
	"alcyxob/gym-tracker/internal/domain"
	"alcyxob/gym-tracker/internal/export"
	"alcyxob/gym-tracker/internal/service"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HistoryHandler serves completed sessions, snapshots and exports.
type HistoryHandler struct {
	historyService service.HistoryService
	exportService  service.ExportService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyService service.HistoryService, exportService service.ExportService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService, exportService: exportService}
}

// ListHistory godoc
// @Summary List completed sessions, most recent first
// @Tags History
// @Produce json
// @Success 200 {array} HistorySummaryResponse
// @Router /history [get]
func (h *HistoryHandler) ListHistory(c *gin.Context) {
	history := h.historyService.ListHistory(c.Request.Context())
	out := make([]HistorySummaryResponse, len(history))
	for i, record := range history {
		out[i] = mapHistoryToSummary(record)
	}
	c.JSON(http.StatusOK, out)
}

// GetHistory godoc
// @Summary Get one completed session
// @Tags History
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} HistoryDetailResponse
// @Failure 404 {object} gin.H "Session not found"
// @Router /history/{id} [get]
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	ctx := c.Request.Context()
	record, ok := h.historyService.GetHistory(ctx, c.Param("id"))
	if !ok {
		abortWithError(c, http.StatusNotFound, "Session not found.")
		return
	}
	byID := domain.IndexExercises(h.historyService.Snapshot(ctx).Exercises)
	c.JSON(http.StatusOK, mapHistoryToDetail(*record, byID))
}

// Snapshot godoc
// @Summary Export the complete state as JSON
// @Tags History
// @Produce json
// @Success 200 {object} domain.Snapshot
// @Router /snapshot [get]
func (h *HistoryHandler) Snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.historyService.Snapshot(c.Request.Context()))
}

// DownloadWorkbook godoc
// @Summary Download history as an xlsx workbook
// @Tags Exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /exports/history.xlsx [get]
func (h *HistoryHandler) DownloadWorkbook(c *gin.Context) {
	data, err := h.exportService.HistoryWorkbook(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err, "Failed to render history workbook.")
		return
	}
	filename := fmt.Sprintf("workout-history-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, export.ContentTypeXLSX, data)
}

// PublishWorkbook godoc
// @Summary Upload the history workbook to object storage
// @Tags Exports
// @Produce json
// @Success 201 {object} gin.H "url holds a temporary download link"
// @Failure 503 {object} gin.H "Object storage not configured"
// @Router /exports/history [post]
func (h *HistoryHandler) PublishWorkbook(c *gin.Context) {
	url, err := h.exportService.PublishHistoryWorkbook(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err, "Failed to publish history workbook.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
