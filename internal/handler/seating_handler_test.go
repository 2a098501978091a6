package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smartcampus/scs-api/internal/dto"
	"github.com/smartcampus/scs-api/internal/models"
	"github.com/smartcampus/scs-api/internal/service"
	appErrors "github.com/smartcampus/scs-api/pkg/errors"
)

type seatingServiceMock struct {
	plan *dto.SeatingPlanResponse
	err  error
}

func (m *seatingServiceMock) Generate(ctx context.Context, req dto.GenerateSeatingRequest) (*dto.SeatingPlanResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.plan, nil
}

func validSeatingPayload() []byte {
	raw, _ := json.Marshal(dto.GenerateSeatingRequest{
		ExamName:      "Midterm 2026",
		DepartmentIDs: []string{"dept-cse"},
		ClassroomIDs:  []string{"room-1"},
	})
	return raw
}

func TestSeatingHandlerGenerateSuccess(t *testing.T) {
	mockSvc := &seatingServiceMock{plan: &dto.SeatingPlanResponse{
		ExamName:      "Midterm 2026",
		Entries:       []models.ExamSeatingEntry{{Classroom: "Hall A", SeatNo: 1, RollNumber: "CSE-001"}},
		TotalStudents: 1,
		TotalCapacity: 30,
	}}
	handler := &SeatingHandler{service: mockSvc, metrics: service.NewMetricsService()}

	w := postJSON(t, handler.Generate, "/seating/generate", validSeatingPayload())

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "CSE-001")
}

func TestSeatingHandlerGenerateCapacityRejection(t *testing.T) {
	handler := &SeatingHandler{service: &seatingServiceMock{err: appErrors.ErrCapacityExceeded}, metrics: service.NewMetricsService()}

	w := postJSON(t, handler.Generate, "/seating/generate", validSeatingPayload())

	require.Equal(t, http.StatusPreconditionFailed, w.Code)
	require.Contains(t, w.Body.String(), appErrors.ErrCapacityExceeded.Code)
}

func TestSeatingHandlerGenerateBadJSON(t *testing.T) {
	handler := &SeatingHandler{service: &seatingServiceMock{}, metrics: service.NewMetricsService()}

	w := postJSON(t, handler.Generate, "/seating/generate", []byte(`{`))

	require.Equal(t, http.StatusBadRequest, w.Code)
}
