package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/smartcampus/scs-api/internal/models"
	appErrors "github.com/smartcampus/scs-api/pkg/errors"
)

type timeSlotStore interface {
	List(ctx context.Context) ([]models.TimeSlot, error)
	FindByID(ctx context.Context, id string) (*models.TimeSlot, error)
	Create(ctx context.Context, slot *models.TimeSlot) error
	Update(ctx context.Context, slot *models.TimeSlot) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type slotCatalogFlusher interface {
	InvalidateAll(ctx context.Context)
}

// UpsertTimeSlotRequest creates or updates a teaching period. Times use the
// 24h "15:04" form.
type UpsertTimeSlotRequest struct {
	Name      string `json:"name" validate:"required"`
	StartTime string `json:"startTime" validate:"required,len=5"`
	EndTime   string `json:"endTime" validate:"required,len=5"`
	IsActive  bool   `json:"isActive"`
}

// TimeSlotService manages the global teaching periods.
type TimeSlotService struct {
	store     timeSlotStore
	catalog   slotCatalogFlusher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimeSlotService wires the time slot dependencies. Slots feed every
// department's catalog snapshot, so mutations flush the whole cache.
func NewTimeSlotService(store timeSlotStore, catalog slotCatalogFlusher, validate *validator.Validate, logger *zap.Logger) *TimeSlotService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimeSlotService{store: store, catalog: catalog, validator: validate, logger: logger}
}

func (s *TimeSlotService) flushCatalog(ctx context.Context) {
	if s.catalog != nil {
		s.catalog.InvalidateAll(ctx)
	}
}

// List returns every configured slot, active or not.
func (s *TimeSlotService) List(ctx context.Context) ([]models.TimeSlot, error) {
	slots, err := s.store.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list time slots")
	}
	return slots, nil
}

// Create validates and stores a new slot.
func (s *TimeSlotService) Create(ctx context.Context, req UpsertTimeSlotRequest) (*models.TimeSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time slot payload")
	}
	if req.StartTime >= req.EndTime {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start time must precede end time")
	}

	slot := &models.TimeSlot{
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsActive:  req.IsActive,
	}
	if err := s.store.Create(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create time slot")
	}
	s.flushCatalog(ctx)
	s.logger.Info("time slot created", zap.String("id", slot.ID), zap.String("label", slot.Label()))
	return slot, nil
}

// Update modifies an existing slot.
func (s *TimeSlotService) Update(ctx context.Context, id string, req UpsertTimeSlotRequest) (*models.TimeSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time slot payload")
	}
	if req.StartTime >= req.EndTime {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start time must precede end time")
	}

	slot, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("time slot %s not found", id))
	}
	slot.Name = req.Name
	slot.StartTime = req.StartTime
	slot.EndTime = req.EndTime
	slot.IsActive = req.IsActive

	if err := s.store.Update(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "update time slot")
	}
	s.flushCatalog(ctx)
	return slot, nil
}

// SetActive toggles whether a slot takes part in generation.
func (s *TimeSlotService) SetActive(ctx context.Context, id string, active bool) error {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("time slot %s not found", id))
	}
	if err := s.store.SetActive(ctx, id, active); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "toggle time slot")
	}
	s.flushCatalog(ctx)
	return nil
}

// Delete removes a slot.
func (s *TimeSlotService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("time slot %s not found", id))
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "delete time slot")
	}
	s.flushCatalog(ctx)
	return nil
}
