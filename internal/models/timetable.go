package models

import "time"

// TimetableEntry is one generated cell of the weekly grid. Subject is copied
// from the assigned teacher at assignment time; substitution overwrites
// teacher and subject while OriginalTeacherID keeps the very first teacher
// that was substituted out.
type TimetableEntry struct {
	ID                string     `db:"id" json:"id"`
	DepartmentID      string     `db:"department_id" json:"department_id"`
	SectionID         string     `db:"section_id" json:"section_id"`
	Day               string     `db:"day" json:"day"`
	TimeSlot          string     `db:"time_slot" json:"time_slot"`
	Subject           string     `db:"subject" json:"subject"`
	TeacherID         string     `db:"teacher_id" json:"teacher_id"`
	TeacherName       string     `db:"teacher_name" json:"teacher_name"`
	ClassroomID       string     `db:"classroom_id" json:"classroom_id"`
	ClassroomName     string     `db:"classroom_name" json:"classroom_name"`
	IsSubstituted     bool       `db:"is_substituted" json:"is_substituted"`
	OriginalTeacherID *string    `db:"original_teacher_id" json:"original_teacher_id,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// CellKey identifies one (day, time-slot) grid cell.
type CellKey struct {
	Day      string
	TimeSlot string
}

// Cell returns the entry's grid cell key.
func (e TimetableEntry) Cell() CellKey {
	return CellKey{Day: e.Day, TimeSlot: e.TimeSlot}
}

// WorkingDays is the ordered week the generator iterates over.
var WorkingDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// IsWorkingDay reports whether the name is one of the six working days.
func IsWorkingDay(day string) bool {
	for _, d := range WorkingDays {
		if d == day {
			return true
		}
	}
	return false
}
