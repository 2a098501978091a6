package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/smartcampus/scs-api/internal/models"
	appErrors "github.com/smartcampus/scs-api/pkg/errors"
)

type departmentStore interface {
	List(ctx context.Context) ([]models.Department, error)
	FindByID(ctx context.Context, id string) (*models.Department, error)
	Create(ctx context.Context, department *models.Department) error
	Update(ctx context.Context, department *models.Department) error
	Delete(ctx context.Context, id string) error
	ListSections(ctx context.Context, departmentID string) ([]models.Section, error)
	CreateSection(ctx context.Context, section *models.Section) error
}

// UpsertDepartmentRequest creates or renames a department.
type UpsertDepartmentRequest struct {
	Code string `json:"code" validate:"required,uppercase"`
	Name string `json:"name" validate:"required"`
}

// CreateSectionRequest adds a section to a department.
type CreateSectionRequest struct {
	Name string `json:"name" validate:"required"`
}

// DepartmentService manages departments and their sections.
type DepartmentService struct {
	store     departmentStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDepartmentService wires the department dependencies.
func NewDepartmentService(store departmentStore, validate *validator.Validate, logger *zap.Logger) *DepartmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepartmentService{store: store, validator: validate, logger: logger}
}

// List returns every department.
func (s *DepartmentService) List(ctx context.Context) ([]models.Department, error) {
	departments, err := s.store.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list departments")
	}
	return departments, nil
}

// Get returns one department.
func (s *DepartmentService) Get(ctx context.Context, id string) (*models.Department, error) {
	department, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("department %s not found", id))
	}
	return department, nil
}

// Create validates and stores a new department.
func (s *DepartmentService) Create(ctx context.Context, req UpsertDepartmentRequest) (*models.Department, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid department payload")
	}

	department := &models.Department{Code: req.Code, Name: req.Name}
	if err := s.store.Create(ctx, department); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create department")
	}
	s.logger.Info("department created", zap.String("id", department.ID), zap.String("code", department.Code))
	return department, nil
}

// Update renames an existing department.
func (s *DepartmentService) Update(ctx context.Context, id string, req UpsertDepartmentRequest) (*models.Department, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid department payload")
	}

	department, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("department %s not found", id))
	}
	department.Code = req.Code
	department.Name = req.Name

	if err := s.store.Update(ctx, department); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "update department")
	}
	return department, nil
}

// Delete removes a department.
func (s *DepartmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("department %s not found", id))
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "delete department")
	}
	return nil
}

// ListSections returns the sections of one department.
func (s *DepartmentService) ListSections(ctx context.Context, departmentID string) ([]models.Section, error) {
	if _, err := s.store.FindByID(ctx, departmentID); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("department %s not found", departmentID))
	}
	sections, err := s.store.ListSections(ctx, departmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list sections")
	}
	return sections, nil
}

// CreateSection adds a section to a department.
func (s *DepartmentService) CreateSection(ctx context.Context, departmentID string, req CreateSectionRequest) (*models.Section, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid section payload")
	}
	if _, err := s.store.FindByID(ctx, departmentID); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("department %s not found", departmentID))
	}

	section := &models.Section{DepartmentID: departmentID, Name: req.Name}
	if err := s.store.CreateSection(ctx, section); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create section")
	}
	return section, nil
}
