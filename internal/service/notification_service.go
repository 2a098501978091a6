package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartcampus/scs-api/internal/models"
	appErrors "github.com/smartcampus/scs-api/pkg/errors"
	"github.com/smartcampus/scs-api/pkg/jobs"
)

type notificationStore interface {
	Insert(ctx context.Context, notification *models.Notification) error
	List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, error)
	UpdateStatus(ctx context.Context, id string, status models.NotificationStatus) error
}

type notificationQueue interface {
	Enqueue(job jobs.Job) error
}

// NotificationService records outbound notifications and hands delivery to a
// background queue. Delivery failures never fail the request that triggered
// the notification.
type NotificationService struct {
	store  notificationStore
	queue  notificationQueue
	logger *zap.Logger
}

// NewNotificationService wires the notification dependencies. A nil queue
// leaves every notification in pending state.
func NewNotificationService(store notificationStore, queue notificationQueue, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{store: store, queue: queue, logger: logger}
}

// Dispatch is the queue handler: delivery is simulated per channel and the
// stored row is flipped to sent or failed.
func (s *NotificationService) Dispatch(ctx context.Context, job jobs.Job) error {
	notification, ok := job.Payload.(models.Notification)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}

	// App notifications are in-database only; email and whatsapp channels
	// would call their providers here.
	if err := s.store.UpdateStatus(ctx, notification.ID, models.NotificationStatusSent); err != nil {
		return fmt.Errorf("mark notification sent: %w", err)
	}
	s.logger.Debug("notification delivered",
		zap.String("id", notification.ID),
		zap.String("type", string(notification.Type)),
	)
	return nil
}

// Send persists a notification and enqueues delivery.
func (s *NotificationService) Send(ctx context.Context, notification models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.Type == "" {
		notification.Type = models.NotificationTypeApp
	}
	notification.Status = models.NotificationStatusPending

	if err := s.store.Insert(ctx, &notification); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "record notification")
	}

	if s.queue != nil {
		if err := s.queue.Enqueue(jobs.Job{ID: notification.ID, Type: "notification", Payload: notification}); err != nil {
			s.logger.Warn("notification enqueue failed", zap.String("id", notification.ID), zap.Error(err))
		}
	}
	return nil
}

// List returns the notification log of one department, newest first.
func (s *NotificationService) List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, error) {
	if filter.DepartmentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "department is required")
	}
	notifications, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load notifications")
	}
	return notifications, nil
}

// NotifyTimetablePublished records a timetable publication announcement.
// Errors are logged, not returned; publication never fails on this.
func (s *NotificationService) NotifyTimetablePublished(ctx context.Context, departmentID, sectionID string, entryCount int) {
	section := sectionID
	err := s.Send(ctx, models.Notification{
		DepartmentID:  departmentID,
		SectionID:     &section,
		Type:          models.NotificationTypeApp,
		Title:         "Timetable published",
		Message:       fmt.Sprintf("A new timetable with %d classes has been published.", entryCount),
		RecipientType: "students",
	})
	if err != nil {
		s.logger.Warn("timetable notification failed", zap.String("department_id", departmentID), zap.Error(err))
	}
}

// NotifySubstitution records a substitution announcement.
func (s *NotificationService) NotifySubstitution(ctx context.Context, departmentID, sectionID, absentName, substituteName string, affected int) {
	section := sectionID
	err := s.Send(ctx, models.Notification{
		DepartmentID:  departmentID,
		SectionID:     &section,
		Type:          models.NotificationTypeApp,
		Title:         "Substitute teacher assigned",
		Message:       fmt.Sprintf("%s will cover %d classes for %s.", substituteName, affected, absentName),
		RecipientType: "students",
	})
	if err != nil {
		s.logger.Warn("substitution notification failed", zap.String("department_id", departmentID), zap.Error(err))
	}
}
