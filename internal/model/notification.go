package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// Notification event types produced by the triage flow.
const (
	NotificationReportCreated = "rescue_report_created"
	NotificationStatusUpdate  = "rescue_report_status_update"
)

// NotificationRecord is the append-only intent written when a report event
// fires. Delivery is handled asynchronously; status moves to sent/failed
// once the delivery worker has attempted it.
type NotificationRecord struct {
	ID               uuid.UUID          `json:"id"`
	RecipientEmail   string             `json:"recipient_email"`
	Subject          string             `json:"subject"`
	Message          string             `json:"message"`
	NotificationType string             `json:"notification_type"`
	Status           NotificationStatus `json:"status"`
	UserID           *uuid.UUID         `json:"user_id,omitempty"`
	SentAt           *time.Time         `json:"sent_at,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationRecord `json:"notifications"`
	Total         int                  `json:"total"`
}
