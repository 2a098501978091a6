package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/smartcampus/scs-api/internal/models"
	appErrors "github.com/smartcampus/scs-api/pkg/errors"
)

type teacherStore interface {
	List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, int, error)
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id string) error
}

// CreateTeacherRequest adds a teacher to a department roster.
type CreateTeacherRequest struct {
	DepartmentID string   `json:"departmentId" validate:"required"`
	Name         string   `json:"name" validate:"required"`
	Subject      string   `json:"subject" validate:"required"`
	Email        *string  `json:"email,omitempty" validate:"omitempty,email"`
	Availability []string `json:"availability" validate:"required,min=1"`
}

// UpdateTeacherRequest modifies an existing teacher.
type UpdateTeacherRequest struct {
	Name         string   `json:"name" validate:"required"`
	Subject      string   `json:"subject" validate:"required"`
	Email        *string  `json:"email,omitempty" validate:"omitempty,email"`
	Availability []string `json:"availability" validate:"required,min=1"`
}

// TeacherService manages the teacher roster.
type TeacherService struct {
	store     teacherStore
	catalog   catalogInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService wires the teacher dependencies.
func NewTeacherService(store teacherStore, catalog catalogInvalidator, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{store: store, catalog: catalog, validator: validate, logger: logger}
}

// List returns teachers matching the filter.
func (s *TeacherService) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, *models.Pagination, error) {
	teachers, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list teachers")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size < 1 {
		size = 20
	}
	return teachers, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns one teacher.
func (s *TeacherService) Get(ctx context.Context, id string) (*models.Teacher, error) {
	teacher, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("teacher %s not found", id))
	}
	return teacher, nil
}

// Create validates and stores a new teacher.
func (s *TeacherService) Create(ctx context.Context, req CreateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}
	if err := validateDays(req.Availability); err != nil {
		return nil, err
	}

	teacher := &models.Teacher{
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
		Subject:      req.Subject,
		Email:        req.Email,
		Availability: pq.StringArray(req.Availability),
	}
	if err := s.store.Create(ctx, teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create teacher")
	}
	if s.catalog != nil {
		s.catalog.Invalidate(ctx, teacher.DepartmentID)
	}
	s.logger.Info("teacher created", zap.String("id", teacher.ID), zap.String("department_id", teacher.DepartmentID))
	return teacher, nil
}

// Update modifies an existing teacher.
func (s *TeacherService) Update(ctx context.Context, id string, req UpdateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}
	if err := validateDays(req.Availability); err != nil {
		return nil, err
	}

	teacher, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("teacher %s not found", id))
	}
	teacher.Name = req.Name
	teacher.Subject = req.Subject
	teacher.Email = req.Email
	teacher.Availability = pq.StringArray(req.Availability)

	if err := s.store.Update(ctx, teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "update teacher")
	}
	if s.catalog != nil {
		s.catalog.Invalidate(ctx, teacher.DepartmentID)
	}
	return teacher, nil
}

// Delete removes a teacher.
func (s *TeacherService) Delete(ctx context.Context, id string) error {
	teacher, err := s.store.FindByID(ctx, id)
	if err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("teacher %s not found", id))
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "delete teacher")
	}
	if s.catalog != nil {
		s.catalog.Invalidate(ctx, teacher.DepartmentID)
	}
	return nil
}

func validateDays(days []string) error {
	for _, day := range days {
		if !models.IsWorkingDay(day) {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown day %q", day))
		}
	}
	return nil
}
