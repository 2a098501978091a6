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

type seatingPlanner interface {
	Generate(ctx context.Context, req dto.GenerateSeatingRequest) (*dto.SeatingPlanResponse, error)
}

// SeatingHandler exposes the exam seating endpoint.
type SeatingHandler struct {
	service seatingPlanner
	metrics *service.MetricsService
}

// NewSeatingHandler constructs the handler.
func NewSeatingHandler(svc *service.SeatingService, metrics *service.MetricsService) *SeatingHandler {
	return &SeatingHandler{service: svc, metrics: metrics}
}

// Generate godoc
// @Summary Generate an exam seating plan
// @Description Pools students of the selected departments, shuffles them, and deals them seat by seat into the selected classrooms. Rejected with the shortfall when capacity is insufficient.
// @Tags Seating
// @Accept json
// @Produce json
// @Param payload body dto.GenerateSeatingRequest true "Seating payload"
// @Success 200 {object} response.Envelope
// @Router /seating/generate [post]
func (h *SeatingHandler) Generate(c *gin.Context) {
	var req dto.GenerateSeatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid seating payload"))
		return
	}
	plan, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.ObserveSeatingPlan()
	response.JSON(c, http.StatusOK, plan, nil)
}
