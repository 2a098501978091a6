package models

import "time"

// NotificationType selects the delivery channel.
type NotificationType string

const (
	NotificationTypeApp      NotificationType = "app"
	NotificationTypeEmail    NotificationType = "email"
	NotificationTypeWhatsapp NotificationType = "whatsapp"
)

// NotificationStatus tracks delivery outcome.
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

// Notification is a persisted outbound message record.
type Notification struct {
	ID            string             `db:"id" json:"id"`
	DepartmentID  string             `db:"department_id" json:"department_id"`
	SectionID     *string            `db:"section_id" json:"section_id,omitempty"`
	Type          NotificationType   `db:"type" json:"type"`
	Title         string             `db:"title" json:"title"`
	Message       string             `db:"message" json:"message"`
	RecipientType string             `db:"recipient_type" json:"recipient_type"`
	Status        NotificationStatus `db:"status" json:"status"`
	CreatedAt     time.Time          `db:"created_at" json:"created_at"`
}

// NotificationFilter lists notifications, newest first.
type NotificationFilter struct {
	DepartmentID string
	Limit        int
}
