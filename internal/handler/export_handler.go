package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MaazSajjad/smart-scheduler-sub001/internal/service"
	"github.com/MaazSajjad/smart-scheduler-sub001/pkg/response"
)

type scheduleExporter interface {
	ScheduleCSV(ctx context.Context, versionID string) ([]byte, string, error)
	SchedulePDF(ctx context.Context, versionID string) ([]byte, string, error)
}

// ExportHandler serves timetable downloads.
type ExportHandler struct {
	service scheduleExporter
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// CSV godoc
// @Summary Download a schedule version as CSV
// @Tags Exports
// @Produce text/csv
// @Param id path string true "Schedule version ID"
// @Success 200 {file} file
// @Router /schedules/{id}/export/csv [get]
func (h *ExportHandler) CSV(c *gin.Context) {
	payload, filename, err := h.service.ScheduleCSV(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", payload)
}

// PDF godoc
// @Summary Download a schedule version as PDF
// @Tags Exports
// @Produce application/pdf
// @Param id path string true "Schedule version ID"
// @Success 200 {file} file
// @Router /schedules/{id}/export/pdf [get]
func (h *ExportHandler) PDF(c *gin.Context) {
	payload, filename, err := h.service.SchedulePDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", payload)
}
