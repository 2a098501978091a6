package models

import (
	"time"

	"github.com/lib/pq"
)

// Classroom represents a teaching room. UsagePercentage is display-only and
// never enforced by the allocators.
type Classroom struct {
	ID              string         `db:"id" json:"id"`
	DepartmentID    string         `db:"department_id" json:"department_id"`
	Name            string         `db:"name" json:"name"`
	Capacity        int            `db:"capacity" json:"capacity"`
	Facilities      pq.StringArray `db:"facilities" json:"facilities"`
	UsagePercentage *int           `db:"usage_percentage" json:"usage_percentage,omitempty"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
}

// ClassroomFilter captures filtering options for listing classrooms.
type ClassroomFilter struct {
	DepartmentID string
	Search       string
	MinCapacity  int
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}
