package models

// ExamSeatingEntry is one seat assignment in a generated seating plan. Branch
// is the display name of the student's source department; mixing branches
// across adjacent seats is the point of the shuffle.
type ExamSeatingEntry struct {
	Classroom   string `json:"classroom"`
	SeatNo      int    `json:"seat_no"`
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	RollNumber  string `json:"roll_number"`
	Branch      string `json:"branch"`
}
