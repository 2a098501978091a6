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

type catalogProvider interface {
	Snapshot(ctx context.Context, departmentID string) (*models.ResourceCatalog, error)
}

type timetableStore interface {
	ListBySection(ctx context.Context, departmentID, sectionID string) ([]models.TimetableEntry, error)
	Replace(ctx context.Context, departmentID, sectionID string, entries []models.TimetableEntry) error
}

type timetableNotifier interface {
	NotifyTimetablePublished(ctx context.Context, departmentID, sectionID string, entryCount int)
}

// TimetableService generates and persists weekly timetables. Generation is a
// single randomized greedy pass over the (day, slot) grid; roughly sixty
// percent of the cells are filled and a cell stays empty when no teacher is
// free for it.
type TimetableService struct {
	catalog         catalogProvider
	store           timetableStore
	notifier        timetableNotifier
	rand            random.Source
	fillProbability float64
	validator       *validator.Validate
	logger          *zap.Logger
}

// NewTimetableService wires the timetable dependencies.
func NewTimetableService(
	catalog catalogProvider,
	store timetableStore,
	notifier timetableNotifier,
	rand random.Source,
	fillProbability float64,
	validate *validator.Validate,
	logger *zap.Logger,
) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if rand == nil {
		rand = random.New()
	}
	if fillProbability <= 0 || fillProbability > 1 {
		fillProbability = 0.6
	}
	return &TimetableService{
		catalog:         catalog,
		store:           store,
		notifier:        notifier,
		rand:            rand,
		fillProbability: fillProbability,
		validator:       validate,
		logger:          logger,
	}
}

// Generate builds a fresh weekly grid for one department section. The result
// is returned to the caller for review; nothing is persisted until Save.
func (s *TimetableService) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable generation request")
	}
	for _, day := range req.Days {
		if !models.IsWorkingDay(day) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown day %q", day))
		}
	}

	catalog, err := s.catalog.Snapshot(ctx, req.DepartmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load resource catalog")
	}
	if len(catalog.Teachers) == 0 {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "department has no teachers")
	}
	if len(catalog.Classrooms) == 0 {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "department has no classrooms")
	}
	if len(catalog.ActiveSlots) == 0 {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "no active time slots configured")
	}

	teachers, err := resolveTeachers(catalog, req.TeacherIDs)
	if err != nil {
		return nil, err
	}
	classrooms, err := resolveClassrooms(catalog, req.ClassroomIDs)
	if err != nil {
		return nil, err
	}

	entries, conflicts := s.allocate(req.DepartmentID, req.SectionID, req.Days, catalog.ActiveSlots, teachers, classrooms)

	s.logger.Info("timetable generated",
		zap.String("department_id", req.DepartmentID),
		zap.String("section_id", req.SectionID),
		zap.Int("scheduled", len(entries)),
		zap.Int("conflicts", len(conflicts)),
	)

	return &dto.GenerateTimetableResponse{
		Entries:   entries,
		Conflicts: conflicts,
		Scheduled: len(entries),
	}, nil
}

// allocate walks the grid day-major, slot-minor. Each cell is filled with the
// configured probability; a filled cell draws a uniform random teacher from
// those free and available that day, and a uniform random free classroom.
// Teacher exhaustion is recorded as a conflict; classroom exhaustion skips
// the cell silently.
func (s *TimetableService) allocate(
	departmentID, sectionID string,
	days []string,
	slots []models.TimeSlot,
	teachers []models.Teacher,
	classrooms []models.Classroom,
) ([]models.TimetableEntry, []string) {
	entries := make([]models.TimetableEntry, 0, len(days)*len(slots))
	conflicts := make([]string, 0)

	usedTeachers := make(map[models.CellKey]map[string]bool)
	usedRooms := make(map[models.CellKey]map[string]bool)

	for _, day := range days {
		for _, slot := range slots {
			if s.rand.Float64() >= s.fillProbability {
				continue
			}

			cell := models.CellKey{Day: day, TimeSlot: slot.Label()}
			if usedTeachers[cell] == nil {
				usedTeachers[cell] = make(map[string]bool)
			}
			if usedRooms[cell] == nil {
				usedRooms[cell] = make(map[string]bool)
			}

			available := make([]models.Teacher, 0, len(teachers))
			for _, t := range teachers {
				if !usedTeachers[cell][t.ID] && t.AvailableOn(day) {
					available = append(available, t)
				}
			}
			if len(available) == 0 {
				conflicts = append(conflicts, fmt.Sprintf("No available teachers for %s %s", day, slot.Label()))
				continue
			}

			freeRooms := make([]models.Classroom, 0, len(classrooms))
			for _, room := range classrooms {
				if !usedRooms[cell][room.ID] {
					freeRooms = append(freeRooms, room)
				}
			}
			if len(freeRooms) == 0 {
				continue
			}

			teacher := available[s.rand.Intn(len(available))]
			room := freeRooms[s.rand.Intn(len(freeRooms))]
			usedTeachers[cell][teacher.ID] = true
			usedRooms[cell][room.ID] = true

			entries = append(entries, models.TimetableEntry{
				DepartmentID:  departmentID,
				SectionID:     sectionID,
				Day:           day,
				TimeSlot:      slot.Label(),
				Subject:       teacher.Subject,
				TeacherID:     teacher.ID,
				TeacherName:   teacher.Name,
				ClassroomID:   room.ID,
				ClassroomName: room.Name,
			})
		}
	}
	return entries, conflicts
}

// Save replaces the stored grid of the department section with the submitted
// entries.
func (s *TimetableService) Save(ctx context.Context, req dto.SaveTimetableRequest) ([]models.TimetableEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable save request")
	}

	entries := make([]models.TimetableEntry, 0, len(req.Entries))
	for _, payload := range req.Entries {
		if !models.IsWorkingDay(payload.Day) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown day %q", payload.Day))
		}
		entries = append(entries, models.TimetableEntry{
			DepartmentID:  req.DepartmentID,
			SectionID:     req.SectionID,
			Day:           payload.Day,
			TimeSlot:      payload.TimeSlot,
			Subject:       payload.Subject,
			TeacherID:     payload.TeacherID,
			TeacherName:   payload.TeacherName,
			ClassroomID:   payload.ClassroomID,
			ClassroomName: payload.ClassroomName,
		})
	}

	if err := s.store.Replace(ctx, req.DepartmentID, req.SectionID, entries); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "persist timetable")
	}

	if s.notifier != nil {
		s.notifier.NotifyTimetablePublished(ctx, req.DepartmentID, req.SectionID, len(entries))
	}

	s.logger.Info("timetable saved",
		zap.String("department_id", req.DepartmentID),
		zap.String("section_id", req.SectionID),
		zap.Int("entries", len(entries)),
	)
	return entries, nil
}

// List returns the stored grid of a department section.
func (s *TimetableService) List(ctx context.Context, departmentID, sectionID string) ([]models.TimetableEntry, error) {
	if departmentID == "" || sectionID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "department and section are required")
	}
	entries, err := s.store.ListBySection(ctx, departmentID, sectionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load timetable")
	}
	return entries, nil
}

func resolveTeachers(catalog *models.ResourceCatalog, ids []string) ([]models.Teacher, error) {
	teachers := make([]models.Teacher, 0, len(ids))
	for _, id := range ids {
		teacher, ok := catalog.TeacherByID(id)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("teacher %s not found in department", id))
		}
		teachers = append(teachers, *teacher)
	}
	return teachers, nil
}

func resolveClassrooms(catalog *models.ResourceCatalog, ids []string) ([]models.Classroom, error) {
	classrooms := make([]models.Classroom, 0, len(ids))
	for _, id := range ids {
		room, ok := catalog.ClassroomByID(id)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("classroom %s not found in department", id))
		}
		classrooms = append(classrooms, *room)
	}
	return classrooms, nil
}
