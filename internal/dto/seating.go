package dto

import "github.com/smartcampus/scs-api/internal/models"

// GenerateSeatingRequest merges students of the selected departments and
// spreads them across the selected classrooms in the given order.
type GenerateSeatingRequest struct {
	ExamName      string   `json:"examName" validate:"required"`
	DepartmentIDs []string `json:"departmentIds" validate:"required,min=1"`
	ClassroomIDs  []string `json:"classroomIds" validate:"required,min=1"`
}

// SeatingPlanResponse is the generated flat seating list.
type SeatingPlanResponse struct {
	ExamName      string                    `json:"examName"`
	Entries       []models.ExamSeatingEntry `json:"entries"`
	TotalStudents int                       `json:"totalStudents"`
	TotalCapacity int                       `json:"totalCapacity"`
}

// ExportSeatingRequest renders a previously generated plan to CSV.
type ExportSeatingRequest struct {
	ExamName string                    `json:"examName" validate:"required"`
	Entries  []models.ExamSeatingEntry `json:"entries" validate:"required,min=1"`
}
