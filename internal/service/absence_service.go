package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/smartcampus/scs-api/internal/dto"
	"github.com/smartcampus/scs-api/internal/models"
	appErrors "github.com/smartcampus/scs-api/pkg/errors"
)

type absenceStore interface {
	Insert(ctx context.Context, absence *models.TeacherAbsence) error
	FindByID(ctx context.Context, id string) (*models.TeacherAbsence, error)
	MarkHandled(ctx context.Context, id, substituteTeacherID string) error
	ListByDepartment(ctx context.Context, departmentID string, unhandledOnly bool) ([]models.TeacherAbsence, error)
}

type absenceTeacherStore interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	SetAbsent(ctx context.Context, id string, absent bool, date *time.Time) error
}

type substitutionApplier interface {
	Apply(ctx context.Context, req dto.SubstituteRequest) (*dto.SubstituteResponse, error)
}

type catalogInvalidator interface {
	Invalidate(ctx context.Context, departmentID string)
}

// AbsenceService tracks teacher absences and drives the substitution flow
// that resolves them.
type AbsenceService struct {
	absences      absenceStore
	teachers      absenceTeacherStore
	substitutions substitutionApplier
	catalog       catalogInvalidator
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewAbsenceService wires the absence dependencies.
func NewAbsenceService(
	absences absenceStore,
	teachers absenceTeacherStore,
	substitutions substitutionApplier,
	catalog catalogInvalidator,
	validate *validator.Validate,
	logger *zap.Logger,
) *AbsenceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AbsenceService{
		absences:      absences,
		teachers:      teachers,
		substitutions: substitutions,
		catalog:       catalog,
		validator:     validate,
		logger:        logger,
	}
}

// MarkAbsent flags a teacher absent and records the absence. The department's
// catalog snapshot is invalidated so the next generation run sees the flag.
func (s *AbsenceService) MarkAbsent(ctx context.Context, req dto.MarkAbsentRequest) (*models.TeacherAbsence, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid absence request")
	}

	teacher, err := s.teachers.FindByID(ctx, req.TeacherID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("teacher %s not found", req.TeacherID))
	}

	date := req.AbsentDate.UTC().Truncate(24 * time.Hour)
	if err := s.teachers.SetAbsent(ctx, teacher.ID, true, &date); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "flag teacher absent")
	}

	absence := &models.TeacherAbsence{
		TeacherID:    teacher.ID,
		DepartmentID: teacher.DepartmentID,
		AbsentDate:   date,
		Reason:       req.Reason,
	}
	if err := s.absences.Insert(ctx, absence); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "record absence")
	}

	if s.catalog != nil {
		s.catalog.Invalidate(ctx, teacher.DepartmentID)
	}

	s.logger.Info("teacher marked absent",
		zap.String("teacher_id", teacher.ID),
		zap.String("department_id", teacher.DepartmentID),
		zap.Time("absent_date", date),
	)
	return absence, nil
}

// ClearAbsent removes the absent flag from a teacher.
func (s *AbsenceService) ClearAbsent(ctx context.Context, teacherID string) error {
	teacher, err := s.teachers.FindByID(ctx, teacherID)
	if err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("teacher %s not found", teacherID))
	}
	if err := s.teachers.SetAbsent(ctx, teacher.ID, false, nil); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "clear absence flag")
	}
	if s.catalog != nil {
		s.catalog.Invalidate(ctx, teacher.DepartmentID)
	}
	return nil
}

// Handle resolves a recorded absence by substituting the teacher's classes in
// the named section and marking the absence handled.
func (s *AbsenceService) Handle(ctx context.Context, req dto.HandleAbsenceRequest) (*dto.SubstituteResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid absence handling request")
	}

	absence, err := s.absences.FindByID(ctx, req.AbsenceID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("absence %s not found", req.AbsenceID))
	}
	if absence.IsHandled {
		return nil, appErrors.Clone(appErrors.ErrConflict, "absence already handled")
	}

	result, err := s.substitutions.Apply(ctx, dto.SubstituteRequest{
		DepartmentID:        absence.DepartmentID,
		SectionID:           req.SectionID,
		AbsentTeacherID:     absence.TeacherID,
		SubstituteTeacherID: req.SubstituteTeacherID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.absences.MarkHandled(ctx, absence.ID, req.SubstituteTeacherID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "mark absence handled")
	}
	return result, nil
}

// List returns a department's absence records, newest first.
func (s *AbsenceService) List(ctx context.Context, departmentID string, unhandledOnly bool) ([]models.TeacherAbsence, error) {
	if departmentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "department is required")
	}
	absences, err := s.absences.ListByDepartment(ctx, departmentID, unhandledOnly)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load absences")
	}
	return absences, nil
}
