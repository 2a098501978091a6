package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/smartcampus/scs-api/internal/dto"
	"github.com/smartcampus/scs-api/internal/models"
	appErrors "github.com/smartcampus/scs-api/pkg/errors"
)

type substitutionGridStore interface {
	ListBySection(ctx context.Context, departmentID, sectionID string) ([]models.TimetableEntry, error)
	ApplySubstitution(ctx context.Context, departmentID, sectionID, absentTeacherID, substituteTeacherID, substituteName, subject string) (int, error)
}

type substitutionTeacherReader interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]models.Teacher, error)
}

type substitutionNotifier interface {
	NotifySubstitution(ctx context.Context, departmentID, sectionID, absentName, substituteName string, affected int)
}

// SubstitutionService rewrites a section's stored grid when a teacher is
// absent. The substitute must be free in every cell the absent teacher
// occupies; otherwise the request is rejected rather than double-booking.
type SubstitutionService struct {
	grid      substitutionGridStore
	teachers  substitutionTeacherReader
	notifier  substitutionNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubstitutionService wires the substitution dependencies.
func NewSubstitutionService(
	grid substitutionGridStore,
	teachers substitutionTeacherReader,
	notifier substitutionNotifier,
	validate *validator.Validate,
	logger *zap.Logger,
) *SubstitutionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubstitutionService{
		grid:      grid,
		teachers:  teachers,
		notifier:  notifier,
		validator: validate,
		logger:    logger,
	}
}

// occupancy maps each teacher to the grid cells they currently occupy.
func occupancy(entries []models.TimetableEntry) map[string]map[models.CellKey]bool {
	occupied := make(map[string]map[models.CellKey]bool)
	for _, entry := range entries {
		if occupied[entry.TeacherID] == nil {
			occupied[entry.TeacherID] = make(map[models.CellKey]bool)
		}
		occupied[entry.TeacherID][entry.Cell()] = true
	}
	return occupied
}

// Candidates lists the department teachers that could cover every cell of the
// absent teacher without a clash. The absent teacher is excluded.
func (s *SubstitutionService) Candidates(ctx context.Context, departmentID, sectionID, absentTeacherID string) ([]models.Teacher, error) {
	if departmentID == "" || sectionID == "" || absentTeacherID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "department, section and teacher are required")
	}

	entries, err := s.grid.ListBySection(ctx, departmentID, sectionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load timetable")
	}
	occupied := occupancy(entries)
	absentCells := occupied[absentTeacherID]

	teachers, err := s.teachers.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load teachers")
	}

	candidates := make([]models.Teacher, 0, len(teachers))
	for _, teacher := range teachers {
		if teacher.ID == absentTeacherID || teacher.IsAbsent {
			continue
		}
		if overlaps(occupied[teacher.ID], absentCells) {
			continue
		}
		candidates = append(candidates, teacher)
	}
	return candidates, nil
}

func overlaps(own, target map[models.CellKey]bool) bool {
	for cell := range target {
		if own[cell] {
			return true
		}
	}
	return false
}

// Apply rewrites every entry of the absent teacher to the substitute. The
// entries keep a reference to the first teacher that was substituted out, so
// a later substitution of the substitute still points back at the original.
func (s *SubstitutionService) Apply(ctx context.Context, req dto.SubstituteRequest) (*dto.SubstituteResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid substitution request")
	}
	if req.AbsentTeacherID == req.SubstituteTeacherID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "substitute must differ from the absent teacher")
	}

	absent, err := s.teachers.FindByID(ctx, req.AbsentTeacherID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("teacher %s not found", req.AbsentTeacherID))
	}
	substitute, err := s.teachers.FindByID(ctx, req.SubstituteTeacherID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("teacher %s not found", req.SubstituteTeacherID))
	}
	if substitute.IsAbsent {
		return nil, appErrors.Clone(appErrors.ErrConflict, "substitute teacher is marked absent")
	}

	entries, err := s.grid.ListBySection(ctx, req.DepartmentID, req.SectionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load timetable")
	}
	occupied := occupancy(entries)
	absentCells := occupied[req.AbsentTeacherID]
	if len(absentCells) == 0 {
		return &dto.SubstituteResponse{AffectedCount: 0, Entries: entries}, nil
	}
	if overlaps(occupied[req.SubstituteTeacherID], absentCells) {
		return nil, appErrors.Clone(appErrors.ErrNoSubstitute, fmt.Sprintf("%s already teaches during %s's slots", substitute.Name, absent.Name))
	}

	affected, err := s.grid.ApplySubstitution(ctx, req.DepartmentID, req.SectionID, req.AbsentTeacherID, req.SubstituteTeacherID, substitute.Name, substitute.Subject)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "apply substitution")
	}

	updated, err := s.grid.ListBySection(ctx, req.DepartmentID, req.SectionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "reload timetable")
	}

	if s.notifier != nil {
		s.notifier.NotifySubstitution(ctx, req.DepartmentID, req.SectionID, absent.Name, substitute.Name, affected)
	}

	s.logger.Info("substitution applied",
		zap.String("department_id", req.DepartmentID),
		zap.String("section_id", req.SectionID),
		zap.String("absent_teacher_id", req.AbsentTeacherID),
		zap.String("substitute_teacher_id", req.SubstituteTeacherID),
		zap.Int("affected", affected),
	)
	return &dto.SubstituteResponse{AffectedCount: affected, Entries: updated}, nil
}
