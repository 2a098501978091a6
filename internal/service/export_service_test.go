package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcampus/scs-api/internal/dto"
	"github.com/smartcampus/scs-api/internal/models"
	appErrors "github.com/smartcampus/scs-api/pkg/errors"
)

type archiveStub struct {
	saved map[string][]byte
}

func (a *archiveStub) Save(filename string, data []byte) (string, error) {
	if a.saved == nil {
		a.saved = make(map[string][]byte)
	}
	a.saved[filename] = data
	return "/tmp/" + filename, nil
}

func exportFixtureGrid() []models.TimetableEntry {
	original := "t-9"
	return []models.TimetableEntry{
		{
			DepartmentID: "dept-1", SectionID: "sec-a",
			Day: "Monday", TimeSlot: "09:00-10:00",
			Subject: "Mathematics", TeacherID: "t-1", TeacherName: "Asha Rao",
			ClassroomID: "room-1", ClassroomName: "Room 101",
		},
		{
			DepartmentID: "dept-1", SectionID: "sec-a",
			Day: "Tuesday", TimeSlot: "10:00-11:00",
			Subject: "Physics", TeacherID: "t-2", TeacherName: "Vikram Iyer",
			ClassroomID: "room-2", ClassroomName: "Room 102",
			IsSubstituted: true, OriginalTeacherID: &original,
		},
	}
}

func TestExportTimetableCSVIncludesSubstitutionColumns(t *testing.T) {
	archive := &archiveStub{}
	svc := NewExportService(&gridStoreStub{entries: exportFixtureGrid()}, archive, nil, nil)

	file, err := svc.TimetableCSV(context.Background(), "dept-1", "sec-a")
	require.NoError(t, err)
	assert.Equal(t, "timetable_dept-1_sec-a.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	body := string(file.Payload)
	assert.Contains(t, body, "Day,Time Slot,Subject,Teacher,Classroom,Substituted,Original Teacher")
	assert.Contains(t, body, "Monday,09:00-10:00,Mathematics,Asha Rao,Room 101,No,")
	assert.Contains(t, body, "Tuesday,10:00-11:00,Physics,Vikram Iyer,Room 102,Yes,t-9")
	assert.Contains(t, archive.saved, file.Filename)
}

func TestExportTimetablePDFRendersGrid(t *testing.T) {
	svc := NewExportService(&gridStoreStub{entries: exportFixtureGrid()}, nil, nil, nil)

	file, err := svc.TimetablePDF(context.Background(), "dept-1", "sec-a")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Payload), "%PDF"), "payload must be a PDF document")
}

func TestExportTimetableRejectsEmptyGrid(t *testing.T) {
	svc := NewExportService(&gridStoreStub{}, nil, nil, nil)

	_, err := svc.TimetableCSV(context.Background(), "dept-1", "sec-a")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestExportSeatingCSVCarriesExamPreamble(t *testing.T) {
	archive := &archiveStub{}
	svc := NewExportService(&gridStoreStub{}, archive, nil, nil)

	file, err := svc.SeatingCSV(context.Background(), dto.ExportSeatingRequest{
		ExamName: "Midterm 2026",
		Entries: []models.ExamSeatingEntry{
			{Classroom: "Hall A", SeatNo: 1, StudentID: "s-1", StudentName: "Student 1", RollNumber: "CSE-001", Branch: "Computer Science"},
			{Classroom: "Hall A", SeatNo: 2, StudentID: "s-2", StudentName: "Student 2", RollNumber: "ECE-001", Branch: "Electronics"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "seating_midterm_2026.csv", file.Filename)

	lines := strings.Split(strings.TrimSpace(string(file.Payload)), "\n")
	assert.Contains(t, lines[0], "Exam: Midterm 2026")
	assert.Contains(t, string(file.Payload), "Hall A,1,CSE-001,Student 1,Computer Science")
	assert.Contains(t, archive.saved, file.Filename)
}

func TestExportSeatingCSVRejectsEmptyPlan(t *testing.T) {
	svc := NewExportService(&gridStoreStub{}, nil, nil, nil)

	_, err := svc.SeatingCSV(context.Background(), dto.ExportSeatingRequest{ExamName: "Midterm 2026"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
