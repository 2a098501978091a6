package models

import "time"

// TimeSlot is a day-independent teaching period. Only active slots take part
// in timetable generation. Slots are global, not department scoped.
type TimeSlot struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Label renders the canonical "start-end" form used on timetable entries.
func (t TimeSlot) Label() string {
	return t.StartTime + "-" + t.EndTime
}
