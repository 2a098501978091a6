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

type classroomStore interface {
	List(ctx context.Context, filter models.ClassroomFilter) ([]models.Classroom, int, error)
	FindByID(ctx context.Context, id string) (*models.Classroom, error)
	Create(ctx context.Context, classroom *models.Classroom) error
	Update(ctx context.Context, classroom *models.Classroom) error
	Delete(ctx context.Context, id string) error
}

// CreateClassroomRequest adds a classroom to a department.
type CreateClassroomRequest struct {
	DepartmentID string   `json:"departmentId" validate:"required"`
	Name         string   `json:"name" validate:"required"`
	Capacity     int      `json:"capacity" validate:"required,gt=0"`
	Facilities   []string `json:"facilities,omitempty"`
}

// UpdateClassroomRequest modifies an existing classroom.
type UpdateClassroomRequest struct {
	Name       string   `json:"name" validate:"required"`
	Capacity   int      `json:"capacity" validate:"required,gt=0"`
	Facilities []string `json:"facilities,omitempty"`
}

// ClassroomService manages classrooms.
type ClassroomService struct {
	store     classroomStore
	catalog   catalogInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassroomService wires the classroom dependencies.
func NewClassroomService(store classroomStore, catalog catalogInvalidator, validate *validator.Validate, logger *zap.Logger) *ClassroomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassroomService{store: store, catalog: catalog, validator: validate, logger: logger}
}

// List returns classrooms matching the filter.
func (s *ClassroomService) List(ctx context.Context, filter models.ClassroomFilter) ([]models.Classroom, *models.Pagination, error) {
	classrooms, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list classrooms")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size < 1 {
		size = 20
	}
	return classrooms, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns one classroom.
func (s *ClassroomService) Get(ctx context.Context, id string) (*models.Classroom, error) {
	classroom, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("classroom %s not found", id))
	}
	return classroom, nil
}

// Create validates and stores a new classroom.
func (s *ClassroomService) Create(ctx context.Context, req CreateClassroomRequest) (*models.Classroom, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid classroom payload")
	}

	classroom := &models.Classroom{
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
		Capacity:     req.Capacity,
		Facilities:   pq.StringArray(req.Facilities),
	}
	if err := s.store.Create(ctx, classroom); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create classroom")
	}
	if s.catalog != nil {
		s.catalog.Invalidate(ctx, classroom.DepartmentID)
	}
	s.logger.Info("classroom created", zap.String("id", classroom.ID), zap.String("department_id", classroom.DepartmentID))
	return classroom, nil
}

// Update modifies an existing classroom.
func (s *ClassroomService) Update(ctx context.Context, id string, req UpdateClassroomRequest) (*models.Classroom, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid classroom payload")
	}

	classroom, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("classroom %s not found", id))
	}
	classroom.Name = req.Name
	classroom.Capacity = req.Capacity
	classroom.Facilities = pq.StringArray(req.Facilities)

	if err := s.store.Update(ctx, classroom); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "update classroom")
	}
	if s.catalog != nil {
		s.catalog.Invalidate(ctx, classroom.DepartmentID)
	}
	return classroom, nil
}

// Delete removes a classroom.
func (s *ClassroomService) Delete(ctx context.Context, id string) error {
	classroom, err := s.store.FindByID(ctx, id)
	if err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("classroom %s not found", id))
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "delete classroom")
	}
	if s.catalog != nil {
		s.catalog.Invalidate(ctx, classroom.DepartmentID)
	}
	return nil
}
