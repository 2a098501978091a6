package models

// ResourceCatalog is the read-only snapshot the timetable generator consumes:
// department teachers, department classrooms and the global active time
// slots. It is fetched (or read from cache) fresh per generation run and is
// always passed explicitly, never reached through shared state.
type ResourceCatalog struct {
	DepartmentID string      `json:"department_id"`
	Teachers     []Teacher   `json:"teachers"`
	Classrooms   []Classroom `json:"classrooms"`
	ActiveSlots  []TimeSlot  `json:"active_slots"`
}

// TeacherByID returns the teacher with the given id, if present.
func (c *ResourceCatalog) TeacherByID(id string) (*Teacher, bool) {
	for i := range c.Teachers {
		if c.Teachers[i].ID == id {
			return &c.Teachers[i], true
		}
	}
	return nil, false
}

// ClassroomByID returns the classroom with the given id, if present.
func (c *ResourceCatalog) ClassroomByID(id string) (*Classroom, bool) {
	for i := range c.Classrooms {
		if c.Classrooms[i].ID == id {
			return &c.Classrooms[i], true
		}
	}
	return nil, false
}
