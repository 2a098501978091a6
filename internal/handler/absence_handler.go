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

type absenceManager interface {
	MarkAbsent(ctx context.Context, req dto.MarkAbsentRequest) (*models.TeacherAbsence, error)
	ClearAbsent(ctx context.Context, teacherID string) error
	Handle(ctx context.Context, req dto.HandleAbsenceRequest) (*dto.SubstituteResponse, error)
	List(ctx context.Context, departmentID string, unhandledOnly bool) ([]models.TeacherAbsence, error)
}

// AbsenceHandler exposes the absence tracking endpoints.
type AbsenceHandler struct {
	service absenceManager
}

// NewAbsenceHandler constructs the handler.
func NewAbsenceHandler(svc *service.AbsenceService) *AbsenceHandler {
	return &AbsenceHandler{service: svc}
}

// MarkAbsent godoc
// @Summary Mark a teacher absent
// @Tags Absences
// @Accept json
// @Produce json
// @Param payload body dto.MarkAbsentRequest true "Absence payload"
// @Success 201 {object} response.Envelope
// @Router /absences [post]
func (h *AbsenceHandler) MarkAbsent(c *gin.Context) {
	var req dto.MarkAbsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid absence payload"))
		return
	}
	absence, err := h.service.MarkAbsent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, absence)
}

// ClearAbsent godoc
// @Summary Clear a teacher's absence flag
// @Tags Absences
// @Param teacherId path string true "Teacher ID"
// @Success 204
// @Router /absences/teacher/{teacherId} [delete]
func (h *AbsenceHandler) ClearAbsent(c *gin.Context) {
	if err := h.service.ClearAbsent(c.Request.Context(), c.Param("teacherId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Handle godoc
// @Summary Resolve an absence with a substitute
// @Description Applies the substitution to the section's grid and marks the absence handled.
// @Tags Absences
// @Accept json
// @Produce json
// @Param payload body dto.HandleAbsenceRequest true "Handling payload"
// @Success 200 {object} response.Envelope
// @Router /absences/handle [post]
func (h *AbsenceHandler) Handle(c *gin.Context) {
	var req dto.HandleAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid handling payload"))
		return
	}
	result, err := h.service.Handle(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// List godoc
// @Summary List absences of a department
// @Tags Absences
// @Produce json
// @Param departmentId query string true "Department ID"
// @Param unhandled query bool false "Only unhandled absences"
// @Success 200 {object} response.Envelope
// @Router /absences [get]
func (h *AbsenceHandler) List(c *gin.Context) {
	absences, err := h.service.List(c.Request.Context(), c.Query("departmentId"), c.Query("unhandled") == "true")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, absences, nil)
}
