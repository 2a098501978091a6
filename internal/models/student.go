package models

import "time"

// Student represents a learner registered to a department section.
type Student struct {
	ID           string    `db:"id" json:"id"`
	DepartmentID string    `db:"department_id" json:"department_id"`
	SectionID    string    `db:"section_id" json:"section_id"`
	Name         string    `db:"name" json:"name"`
	RollNumber   string    `db:"roll_number" json:"roll_number"`
	Email        *string   `db:"email" json:"email,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	DepartmentID string
	SectionID    string
	Search       string
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}
