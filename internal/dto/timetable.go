package dto

import "github.com/smartcampus/scs-api/internal/models"

// GenerateTimetableRequest instructs the allocator to build a weekly grid for
// one department section from the selected resource pools.
type GenerateTimetableRequest struct {
	DepartmentID string   `json:"departmentId" validate:"required"`
	SectionID    string   `json:"sectionId" validate:"required"`
	TeacherIDs   []string `json:"teacherIds" validate:"required,min=1"`
	ClassroomIDs []string `json:"classroomIds" validate:"required,min=1"`
	Days         []string `json:"days" validate:"required,min=1"`
}

// GenerateTimetableResponse returns the generated grid plus every cell that
// could not be filled, in generation order.
type GenerateTimetableResponse struct {
	Entries   []models.TimetableEntry `json:"entries"`
	Conflicts []string                `json:"conflicts"`
	Scheduled int                     `json:"scheduled"`
}

// TimetableEntryPayload mirrors a generated entry for persistence.
type TimetableEntryPayload struct {
	Day           string `json:"day" validate:"required"`
	TimeSlot      string `json:"timeSlot" validate:"required"`
	Subject       string `json:"subject" validate:"required"`
	TeacherID     string `json:"teacherId" validate:"required"`
	TeacherName   string `json:"teacherName" validate:"required"`
	ClassroomID   string `json:"classroomId" validate:"required"`
	ClassroomName string `json:"classroomName" validate:"required"`
}

// SaveTimetableRequest replaces the stored grid for a department section.
type SaveTimetableRequest struct {
	DepartmentID string                  `json:"departmentId" validate:"required"`
	SectionID    string                  `json:"sectionId" validate:"required"`
	Entries      []TimetableEntryPayload `json:"entries" validate:"required,min=1,dive"`
}

// SubstituteRequest rewrites every entry of the absent teacher to the
// substitute across the stored grid of one department section.
type SubstituteRequest struct {
	DepartmentID        string `json:"departmentId" validate:"required"`
	SectionID           string `json:"sectionId" validate:"required"`
	AbsentTeacherID     string `json:"absentTeacherId" validate:"required"`
	SubstituteTeacherID string `json:"substituteTeacherId" validate:"required"`
}

// SubstituteResponse reports the rewritten entries.
type SubstituteResponse struct {
	AffectedCount int                     `json:"affectedCount"`
	Entries       []models.TimetableEntry `json:"entries"`
}
