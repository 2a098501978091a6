package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartcampus/scs-api/internal/dto"
	"github.com/smartcampus/scs-api/internal/models"
	"github.com/smartcampus/scs-api/internal/service"
	appErrors "github.com/smartcampus/scs-api/pkg/errors"
	"github.com/smartcampus/scs-api/pkg/response"
)

type timetableGenerator interface {
	Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error)
	Save(ctx context.Context, req dto.SaveTimetableRequest) ([]models.TimetableEntry, error)
	List(ctx context.Context, departmentID, sectionID string) ([]models.TimetableEntry, error)
}

// TimetableHandler exposes the timetable generation endpoints.
type TimetableHandler struct {
	service timetableGenerator
	metrics *service.MetricsService
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc *service.TimetableService, metrics *service.MetricsService) *TimetableHandler {
	return &TimetableHandler{service: svc, metrics: metrics}
}

// Generate godoc
// @Summary Generate a weekly timetable proposal
// @Description Builds a randomized weekly grid for one department section. Nothing is persisted; review the proposal and submit it via /timetable/save.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest true "Generation payload"
// @Success 200 {object} response.Envelope
// @Router /timetable/generate [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
		return
	}
	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.ObserveGeneration(result.Scheduled, len(result.Conflicts))
	response.JSON(c, http.StatusOK, result, nil)
}

// Save godoc
// @Summary Persist a reviewed timetable
// @Description Replaces the stored grid of the department section with the submitted entries.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.SaveTimetableRequest true "Save payload"
// @Success 201 {object} response.Envelope
// @Router /timetable/save [post]
func (h *TimetableHandler) Save(c *gin.Context) {
	var req dto.SaveTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid save payload"))
		return
	}
	entries, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"entries": entries})
}

// List godoc
// @Summary Get the stored timetable of a section
// @Tags Timetable
// @Produce json
// @Param departmentId query string true "Department ID"
// @Param sectionId query string true "Section ID"
// @Success 200 {object} response.Envelope
// @Router /timetable [get]
func (h *TimetableHandler) List(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context(), c.Query("departmentId"), c.Query("sectionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
