package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/smartcampus/scs-api/internal/dto"
	"github.com/smartcampus/scs-api/internal/models"
	appErrors "github.com/smartcampus/scs-api/pkg/errors"
	"github.com/smartcampus/scs-api/pkg/random"
)

type seatingStudentReader interface {
	ListByDepartments(ctx context.Context, departmentIDs []string) ([]models.Student, error)
}

type seatingClassroomReader interface {
	ListByIDs(ctx context.Context, ids []string) ([]models.Classroom, error)
}

type seatingDepartmentReader interface {
	FindByID(ctx context.Context, id string) (*models.Department, error)
}

// SeatingService builds exam seating plans: students of the selected
// departments are pooled, shuffled, and dealt seat by seat into the selected
// classrooms in their given order.
type SeatingService struct {
	students    seatingStudentReader
	classrooms  seatingClassroomReader
	departments seatingDepartmentReader
	rand        random.Source
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewSeatingService wires the seating dependencies.
func NewSeatingService(
	students seatingStudentReader,
	classrooms seatingClassroomReader,
	departments seatingDepartmentReader,
	rand random.Source,
	validate *validator.Validate,
	logger *zap.Logger,
) *SeatingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if rand == nil {
		rand = random.New()
	}
	return &SeatingService{
		students:    students,
		classrooms:  classrooms,
		departments: departments,
		rand:        rand,
		validator:   validate,
		logger:      logger,
	}
}

// Generate produces a seating plan. The request is rejected with the seat
// shortfall when the selected classrooms cannot hold every student.
func (s *SeatingService) Generate(ctx context.Context, req dto.GenerateSeatingRequest) (*dto.SeatingPlanResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid seating request")
	}

	branches := make(map[string]string, len(req.DepartmentIDs))
	for _, id := range req.DepartmentIDs {
		department, err := s.departments.FindByID(ctx, id)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("department %s not found", id))
		}
		branches[id] = department.Name
	}

	students, err := s.students.ListByDepartments(ctx, req.DepartmentIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load students")
	}
	if len(students) == 0 {
		return nil, appErrors.Clone(appErrors.ErrEmptySelection, "selected departments have no students")
	}

	rooms, err := s.classrooms.ListByIDs(ctx, req.ClassroomIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load classrooms")
	}
	if len(rooms) != len(req.ClassroomIDs) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "one or more classrooms not found")
	}

	capacity := 0
	for _, room := range rooms {
		capacity += room.Capacity
	}
	if capacity < len(students) {
		return nil, appErrors.Clone(appErrors.ErrCapacityExceeded,
			fmt.Sprintf("need %d seats but selected classrooms hold %d (%d short)", len(students), capacity, len(students)-capacity))
	}

	pool := make([]models.Student, len(students))
	copy(pool, students)
	s.rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	entries := make([]models.ExamSeatingEntry, 0, len(pool))
	next := 0
	for _, room := range rooms {
		for seat := 1; seat <= room.Capacity && next < len(pool); seat++ {
			student := pool[next]
			entries = append(entries, models.ExamSeatingEntry{
				Classroom:   room.Name,
				SeatNo:      seat,
				StudentID:   student.ID,
				StudentName: student.Name,
				RollNumber:  student.RollNumber,
				Branch:      branches[student.DepartmentID],
			})
			next++
		}
	}

	s.logger.Info("seating plan generated",
		zap.String("exam", req.ExamName),
		zap.Int("students", len(pool)),
		zap.Int("capacity", capacity),
		zap.Int("classrooms", len(rooms)),
	)

	return &dto.SeatingPlanResponse{
		ExamName:      req.ExamName,
		Entries:       entries,
		TotalStudents: len(pool),
		TotalCapacity: capacity,
	}, nil
}
