package models

import "time"

// TeacherAbsence records a teacher marked absent and, once handled, the
// substitute that covered the absence.
type TeacherAbsence struct {
	ID                  string    `db:"id" json:"id"`
	TeacherID           string    `db:"teacher_id" json:"teacher_id"`
	DepartmentID        string    `db:"department_id" json:"department_id"`
	AbsentDate          time.Time `db:"absent_date" json:"absent_date"`
	Reason              *string   `db:"reason" json:"reason,omitempty"`
	SubstituteTeacherID *string   `db:"substitute_teacher_id" json:"substitute_teacher_id,omitempty"`
	IsHandled           bool      `db:"is_handled" json:"is_handled"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
}
