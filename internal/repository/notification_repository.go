package repository

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/kryonic-fluke/PawRescue-sub001/internal/model"
)

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CreateInTransaction inserts the record inside an existing transaction so
// the notification row and its outbox event commit together.
func (r *NotificationRepository) CreateInTransaction(tx *sql.Tx, n *model.NotificationRecord) error {
	query := `
		INSERT INTO notifications (id, recipient_email, subject, message,
			notification_type, status, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := tx.Exec(query,
		n.ID,
		n.RecipientEmail,
		n.Subject,
		n.Message,
		n.NotificationType,
		n.Status,
		n.UserID,
		n.CreatedAt,
	)
	return err
}

func (r *NotificationRepository) GetByUserID(userID uuid.UUID) ([]model.NotificationRecord, error) {
	query := `
		SELECT id, recipient_email, subject, message, notification_type, status,
			user_id, sent_at, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 50
	`
	return r.queryRecords(query, userID)
}

func (r *NotificationRepository) GetByRecipient(email string) ([]model.NotificationRecord, error) {
	query := `
		SELECT id, recipient_email, subject, message, notification_type, status,
			user_id, sent_at, created_at
		FROM notifications
		WHERE recipient_email = $1
		ORDER BY created_at DESC
		LIMIT 50
	`
	return r.queryRecords(query, email)
}

func (r *NotificationRepository) queryRecords(query string, args ...interface{}) ([]model.NotificationRecord, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.NotificationRecord
	for rows.Next() {
		var n model.NotificationRecord
		var userID sql.NullString
		var sentAt sql.NullTime
		err := rows.Scan(
			&n.ID,
			&n.RecipientEmail,
			&n.Subject,
			&n.Message,
			&n.NotificationType,
			&n.Status,
			&userID,
			&sentAt,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if userID.Valid {
			uid, _ := uuid.Parse(userID.String)
			n.UserID = &uid
		}
		if sentAt.Valid {
			n.SentAt = &sentAt.Time
		}
		records = append(records, n)
	}
	return records, rows.Err()
}

func (r *NotificationRepository) MarkSent(id uuid.UUID) error {
	query := `UPDATE notifications SET status = 'sent', sent_at = NOW() WHERE id = $1`
	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *NotificationRepository) MarkFailed(id uuid.UUID) error {
	query := `UPDATE notifications SET status = 'failed' WHERE id = $1`
	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *NotificationRepository) CountPending() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM notifications WHERE status = 'pending'`).Scan(&count)
	return count, err
}

func (r *NotificationRepository) BeginTx() (*sql.Tx, error) {
	return r.db.Begin()
}
