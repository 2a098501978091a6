package dto

import "time"

// MarkAbsentRequest flags a teacher absent for a date.
type MarkAbsentRequest struct {
	TeacherID  string    `json:"teacherId" validate:"required"`
	AbsentDate time.Time `json:"absentDate" validate:"required"`
	Reason     *string   `json:"reason,omitempty"`
}

// HandleAbsenceRequest assigns a substitute to cover a recorded absence in
// one section.
type HandleAbsenceRequest struct {
	AbsenceID           string `json:"absenceId" validate:"required"`
	SectionID           string `json:"sectionId" validate:"required"`
	SubstituteTeacherID string `json:"substituteTeacherId" validate:"required"`
}
