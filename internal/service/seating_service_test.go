package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcampus/scs-api/internal/dto"
	"github.com/smartcampus/scs-api/internal/models"
	appErrors "github.com/smartcampus/scs-api/pkg/errors"
	"github.com/smartcampus/scs-api/pkg/random"
)

type seatingStudentsStub struct {
	students []models.Student
}

func (s *seatingStudentsStub) ListByDepartments(ctx context.Context, departmentIDs []string) ([]models.Student, error) {
	return s.students, nil
}

type seatingRoomsStub struct {
	rooms []models.Classroom
}

func (s *seatingRoomsStub) ListByIDs(ctx context.Context, ids []string) ([]models.Classroom, error) {
	return s.rooms, nil
}

type seatingDeptsStub struct {
	departments map[string]*models.Department
}

func (s *seatingDeptsStub) FindByID(ctx context.Context, id string) (*models.Department, error) {
	department, ok := s.departments[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return department, nil
}

func seatingFixtureStudents(departmentID string, count int) []models.Student {
	students := make([]models.Student, 0, count)
	for i := 1; i <= count; i++ {
		students = append(students, models.Student{
			ID:           fmt.Sprintf("%s-stu-%d", departmentID, i),
			DepartmentID: departmentID,
			SectionID:    "sec-a",
			Name:         fmt.Sprintf("Student %d", i),
			RollNumber:   fmt.Sprintf("%s-%03d", departmentID, i),
		})
	}
	return students
}

func newSeatingFixture(students []models.Student, rooms []models.Classroom, src random.Source) *SeatingService {
	depts := &seatingDeptsStub{departments: map[string]*models.Department{
		"dept-cse": {ID: "dept-cse", Code: "CSE", Name: "Computer Science"},
		"dept-ece": {ID: "dept-ece", Code: "ECE", Name: "Electronics"},
	}}
	return NewSeatingService(&seatingStudentsStub{students: students}, &seatingRoomsStub{rooms: rooms}, depts, src, nil, nil)
}

func TestSeatingGenerateSeatsEveryStudentExactlyOnce(t *testing.T) {
	students := append(seatingFixtureStudents("dept-cse", 5), seatingFixtureStudents("dept-ece", 4)...)
	rooms := []models.Classroom{
		{ID: "room-1", Name: "Hall A", Capacity: 6},
		{ID: "room-2", Name: "Hall B", Capacity: 6},
	}
	svc := newSeatingFixture(students, rooms, random.NewSeeded(7))

	plan, err := svc.Generate(context.Background(), dto.GenerateSeatingRequest{
		ExamName:      "Midterm 2026",
		DepartmentIDs: []string{"dept-cse", "dept-ece"},
		ClassroomIDs:  []string{"room-1", "room-2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 9, plan.TotalStudents)
	assert.Equal(t, 12, plan.TotalCapacity)
	require.Len(t, plan.Entries, 9)

	seen := make(map[string]bool)
	for _, e := range plan.Entries {
		assert.False(t, seen[e.StudentID], "student %s seated twice", e.StudentID)
		seen[e.StudentID] = true
	}
}

func TestSeatingGenerateFillsRoomsSequentially(t *testing.T) {
	students := seatingFixtureStudents("dept-cse", 8)
	rooms := []models.Classroom{
		{ID: "room-1", Name: "Hall A", Capacity: 5},
		{ID: "room-2", Name: "Hall B", Capacity: 5},
	}
	svc := newSeatingFixture(students, rooms, random.NewSeeded(7))

	plan, err := svc.Generate(context.Background(), dto.GenerateSeatingRequest{
		ExamName:      "Midterm 2026",
		DepartmentIDs: []string{"dept-cse"},
		ClassroomIDs:  []string{"room-1", "room-2"},
	})
	require.NoError(t, err)

	// First room fills completely before the second is touched, each with
	// seat numbers restarting at 1.
	for i, e := range plan.Entries[:5] {
		assert.Equal(t, "Hall A", e.Classroom)
		assert.Equal(t, i+1, e.SeatNo)
	}
	for i, e := range plan.Entries[5:] {
		assert.Equal(t, "Hall B", e.Classroom)
		assert.Equal(t, i+1, e.SeatNo)
	}
}

func TestSeatingGenerateIsDeterministicForASeed(t *testing.T) {
	students := append(seatingFixtureStudents("dept-cse", 6), seatingFixtureStudents("dept-ece", 6)...)
	rooms := []models.Classroom{{ID: "room-1", Name: "Hall A", Capacity: 12}}
	req := dto.GenerateSeatingRequest{
		ExamName:      "Midterm 2026",
		DepartmentIDs: []string{"dept-cse", "dept-ece"},
		ClassroomIDs:  []string{"room-1"},
	}

	first, err := newSeatingFixture(students, rooms, random.NewSeeded(99)).Generate(context.Background(), req)
	require.NoError(t, err)
	second, err := newSeatingFixture(students, rooms, random.NewSeeded(99)).Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.Entries, second.Entries)
}

func TestSeatingGenerateRejectsInsufficientCapacityWithShortfall(t *testing.T) {
	students := seatingFixtureStudents("dept-cse", 10)
	rooms := []models.Classroom{{ID: "room-1", Name: "Hall A", Capacity: 7}}
	svc := newSeatingFixture(students, rooms, random.NewSeeded(7))

	_, err := svc.Generate(context.Background(), dto.GenerateSeatingRequest{
		ExamName:      "Midterm 2026",
		DepartmentIDs: []string{"dept-cse"},
		ClassroomIDs:  []string{"room-1"},
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrCapacityExceeded.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "3 short")
}

func TestSeatingGenerateRejectsEmptyStudentPool(t *testing.T) {
	rooms := []models.Classroom{{ID: "room-1", Name: "Hall A", Capacity: 10}}
	svc := newSeatingFixture(nil, rooms, random.NewSeeded(7))

	_, err := svc.Generate(context.Background(), dto.GenerateSeatingRequest{
		ExamName:      "Midterm 2026",
		DepartmentIDs: []string{"dept-cse"},
		ClassroomIDs:  []string{"room-1"},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrEmptySelection.Code, appErrors.FromError(err).Code)
}

func TestSeatingGenerateTagsBranchFromDepartment(t *testing.T) {
	students := append(seatingFixtureStudents("dept-cse", 2), seatingFixtureStudents("dept-ece", 2)...)
	rooms := []models.Classroom{{ID: "room-1", Name: "Hall A", Capacity: 4}}
	svc := newSeatingFixture(students, rooms, random.NewSeeded(7))

	plan, err := svc.Generate(context.Background(), dto.GenerateSeatingRequest{
		ExamName:      "Midterm 2026",
		DepartmentIDs: []string{"dept-cse", "dept-ece"},
		ClassroomIDs:  []string{"room-1"},
	})
	require.NoError(t, err)
	branches := make(map[string]int)
	for _, e := range plan.Entries {
		branches[e.Branch]++
	}
	assert.Equal(t, 2, branches["Computer Science"])
	assert.Equal(t, 2, branches["Electronics"])
}
