package service

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/kryonic-fluke/PawRescue-sub001/internal/messaging"
	"github.com/kryonic-fluke/PawRescue-sub001/internal/model"
	"github.com/kryonic-fluke/PawRescue-sub001/internal/repository"
)

// NotificationService records outbound notification intents. The record and
// its delivery event are committed together through the outbox table; the
// broker worker takes it from there. Enqueue is best-effort and never
// surfaces a failure to the triggering report mutation.
type NotificationService struct {
	notifications *repository.NotificationRepository
	outbox        *repository.OutboxRepository
	users         *repository.UserRepository
}

func NewNotificationService(notifications *repository.NotificationRepository, outbox *repository.OutboxRepository, users *repository.UserRepository) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		outbox:        outbox,
		users:         users,
	}
}

func routingKeyFor(notificationType string) string {
	if notificationType == model.NotificationStatusUpdate {
		return messaging.RoutingKeyStatusUpdate
	}
	return messaging.RoutingKeyReportCreated
}

// Enqueue writes a pending NotificationRecord plus its outbox event. All
// errors are logged and swallowed.
func (s *NotificationService) Enqueue(recipientEmail, subject, message, notificationType string, userID *uuid.UUID) {
	record := &model.NotificationRecord{
		ID:               uuid.New(),
		RecipientEmail:   recipientEmail,
		Subject:          subject,
		Message:          message,
		NotificationType: notificationType,
		Status:           model.NotificationPending,
		UserID:           userID,
		CreatedAt:        time.Now(),
	}

	tx, err := s.notifications.BeginTx()
	if err != nil {
		log.Printf("notify: begin tx: %v", err)
		return
	}

	if err := s.notifications.CreateInTransaction(tx, record); err != nil {
		tx.Rollback()
		log.Printf("notify: create record: %v", err)
		return
	}

	event := messaging.DeliveryMessage{
		NotificationID:   record.ID.String(),
		RecipientEmail:   recipientEmail,
		Subject:          subject,
		Message:          message,
		NotificationType: notificationType,
		Timestamp:        record.CreatedAt.Unix(),
	}
	if err := s.outbox.CreateInTransaction(tx, routingKeyFor(notificationType), event); err != nil {
		tx.Rollback()
		log.Printf("notify: create outbox event: %v", err)
		return
	}

	if err := tx.Commit(); err != nil {
		log.Printf("notify: commit: %v", err)
	}
}

func (s *NotificationService) GetUserNotifications(userIDStr string) (*model.NotificationListResponse, error) {
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}

	notifications, err := s.notifications.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []model.NotificationRecord{}
	}

	// Anonymous submissions carry no user id, so records addressed to the
	// user's registered email would otherwise be invisible here. Resolve the
	// account and fold those in.
	if user, lookupErr := s.users.FindByID(userID); lookupErr == nil {
		byEmail, err := s.notifications.GetByRecipient(user.Email)
		if err != nil {
			return nil, err
		}
		seen := make(map[uuid.UUID]bool, len(notifications))
		for _, n := range notifications {
			seen[n.ID] = true
		}
		for _, n := range byEmail {
			if !seen[n.ID] {
				notifications = append(notifications, n)
			}
		}
	}

	return &model.NotificationListResponse{
		Notifications: notifications,
		Total:         len(notifications),
	}, nil
}

func (s *NotificationService) GetRecipientNotifications(email string) (*model.NotificationListResponse, error) {
	notifications, err := s.notifications.GetByRecipient(email)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []model.NotificationRecord{}
	}

	return &model.NotificationListResponse{
		Notifications: notifications,
		Total:         len(notifications),
	}, nil
}

func (s *NotificationService) OutboxStats() (map[string]int, error) {
	return s.outbox.GetStats()
}

// PendingNotifications counts records the consumer has not delivered yet.
func (s *NotificationService) PendingNotifications() (int, error) {
	return s.notifications.CountPending()
}
