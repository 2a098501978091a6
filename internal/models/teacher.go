package models

import (
	"time"

	"github.com/lib/pq"
)

// Teacher represents an instructor record. Availability holds working day
// names (subset of Monday..Saturday) honoured by the timetable generator.
type Teacher struct {
	ID           string         `db:"id" json:"id"`
	DepartmentID string         `db:"department_id" json:"department_id"`
	Name         string         `db:"name" json:"name"`
	Subject      string         `db:"subject" json:"subject"`
	Email        *string        `db:"email" json:"email,omitempty"`
	Availability pq.StringArray `db:"availability" json:"availability"`
	IsAbsent     bool           `db:"is_absent" json:"is_absent"`
	AbsentDate   *time.Time     `db:"absent_date" json:"absent_date,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

// AvailableOn reports whether the teacher works on the named day.
func (t Teacher) AvailableOn(day string) bool {
	for _, d := range t.Availability {
		if d == day {
			return true
		}
	}
	return false
}

// TeacherFilter captures filtering options for listing teachers.
type TeacherFilter struct {
	DepartmentID string
	Search       string
	Absent       *bool
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}
