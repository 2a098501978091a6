package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartcampus/scs-api/internal/dto"
	"github.com/smartcampus/scs-api/internal/service"
	appErrors "github.com/smartcampus/scs-api/pkg/errors"
	"github.com/smartcampus/scs-api/pkg/response"
)

type exportRenderer interface {
	TimetableCSV(ctx context.Context, departmentID, sectionID string) (*service.ExportFile, error)
	TimetablePDF(ctx context.Context, departmentID, sectionID string) (*service.ExportFile, error)
	SeatingCSV(ctx context.Context, req dto.ExportSeatingRequest) (*service.ExportFile, error)
}

// ExportHandler exposes the export endpoints.
type ExportHandler struct {
	service exportRenderer
	metrics *service.MetricsService
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc *service.ExportService, metrics *service.MetricsService) *ExportHandler {
	return &ExportHandler{service: svc, metrics: metrics}
}

// TimetableCSV godoc
// @Summary Download a section timetable as CSV
// @Tags Exports
// @Produce text/csv
// @Param departmentId query string true "Department ID"
// @Param sectionId query string true "Section ID"
// @Success 200 {file} file
// @Router /exports/timetable.csv [get]
func (h *ExportHandler) TimetableCSV(c *gin.Context) {
	file, err := h.service.TimetableCSV(c.Request.Context(), c.Query("departmentId"), c.Query("sectionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.ObserveExport("csv")
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}

// TimetablePDF godoc
// @Summary Download a section timetable as a landscape PDF grid
// @Tags Exports
// @Produce application/pdf
// @Param departmentId query string true "Department ID"
// @Param sectionId query string true "Section ID"
// @Success 200 {file} file
// @Router /exports/timetable.pdf [get]
func (h *ExportHandler) TimetablePDF(c *gin.Context) {
	file, err := h.service.TimetablePDF(c.Request.Context(), c.Query("departmentId"), c.Query("sectionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.ObserveExport("pdf")
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}

// SeatingCSV godoc
// @Summary Download a seating plan as CSV
// @Description Renders a previously generated seating plan. The exam name heads the file as a preamble line.
// @Tags Exports
// @Accept json
// @Produce text/csv
// @Param payload body dto.ExportSeatingRequest true "Seating export payload"
// @Success 200 {file} file
// @Router /exports/seating.csv [post]
func (h *ExportHandler) SeatingCSV(c *gin.Context) {
	var req dto.ExportSeatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}
	file, err := h.service.SeatingCSV(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.ObserveExport("csv")
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}
