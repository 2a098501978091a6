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

type substitutionApplier interface {
	Candidates(ctx context.Context, departmentID, sectionID, absentTeacherID string) ([]models.Teacher, error)
	Apply(ctx context.Context, req dto.SubstituteRequest) (*dto.SubstituteResponse, error)
}

// SubstitutionHandler exposes the substitution endpoints.
type SubstitutionHandler struct {
	service substitutionApplier
	metrics *service.MetricsService
}

// NewSubstitutionHandler constructs the handler.
func NewSubstitutionHandler(svc *service.SubstitutionService, metrics *service.MetricsService) *SubstitutionHandler {
	return &SubstitutionHandler{service: svc, metrics: metrics}
}

// Candidates godoc
// @Summary List conflict-free substitute candidates
// @Description Returns department teachers free in every slot the absent teacher occupies in this section's grid.
// @Tags Substitution
// @Produce json
// @Param departmentId query string true "Department ID"
// @Param sectionId query string true "Section ID"
// @Param teacherId query string true "Absent teacher ID"
// @Success 200 {object} response.Envelope
// @Router /substitution/candidates [get]
func (h *SubstitutionHandler) Candidates(c *gin.Context) {
	candidates, err := h.service.Candidates(c.Request.Context(), c.Query("departmentId"), c.Query("sectionId"), c.Query("teacherId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, candidates, nil)
}

// Apply godoc
// @Summary Substitute an absent teacher
// @Description Rewrites every entry of the absent teacher to the substitute. Rejected when the substitute already teaches in any affected slot.
// @Tags Substitution
// @Accept json
// @Produce json
// @Param payload body dto.SubstituteRequest true "Substitution payload"
// @Success 200 {object} response.Envelope
// @Router /substitution/apply [post]
func (h *SubstitutionHandler) Apply(c *gin.Context) {
	var req dto.SubstituteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid substitution payload"))
		return
	}
	result, err := h.service.Apply(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.ObserveSubstitution()
	response.JSON(c, http.StatusOK, result, nil)
}
