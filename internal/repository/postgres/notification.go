package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Amaan112005/mindmate/internal/models"
)

type NotificationStore struct {
	pool *pgxpool.Pool
}

func NewNotificationStore(pool *pgxpool.Pool) *NotificationStore {
	return &NotificationStore{pool: pool}
}

// Create appends a notification. Request-keyed notifications ride the
// partial unique index on request_id, so replaying the same request's
// notification is a silent no-op.
func (s *NotificationStore) Create(ctx context.Context, n *models.Notification) error {
	if n.RequestID != nil {
		query := `
			INSERT INTO notifications (user_id, message, type, request_id, read, created_at)
			VALUES ($1, $2, $3, $4, FALSE, now())
			ON CONFLICT (request_id) WHERE request_id IS NOT NULL DO NOTHING
			RETURNING id, created_at`

		err := s.pool.QueryRow(ctx, query, n.UserID, n.Message, n.Type, *n.RequestID).
			Scan(&n.ID, &n.CreatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("insert notification: %w", err)
		}
		return nil
	}

	query := `
		INSERT INTO notifications (user_id, message, type, read, created_at)
		VALUES ($1, $2, $3, FALSE, now())
		RETURNING id, created_at`

	err := s.pool.QueryRow(ctx, query, n.UserID, n.Message, n.Type).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (s *NotificationStore) ListByUser(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, message, type, request_id, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	rows, err := s.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]models.Notification, 0)
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Type, &n.RequestID, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}
	return notifications, nil
}

func (s *NotificationStore) MarkAllRead(ctx context.Context, userID string) error {
	query := `UPDATE notifications SET read = TRUE WHERE user_id = $1 AND NOT read`

	if _, err := s.pool.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("mark notifications read: %w", err)
	}
	return nil
}

func (s *NotificationStore) CountUnread(ctx context.Context, userID string) (int, error) {
	query := `SELECT count(*) FROM notifications WHERE user_id = $1 AND NOT read`

	var n int
	if err := s.pool.QueryRow(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}

func (s *NotificationStore) GetSettings(ctx context.Context, userID string) (*models.NotificationSettings, error) {
	query := `
		SELECT user_id, email_notifications, push_notifications, message_notifications
		FROM notification_settings
		WHERE user_id = $1`

	var ns models.NotificationSettings
	err := s.pool.QueryRow(ctx, query, userID).
		Scan(&ns.UserID, &ns.EmailNotifications, &ns.PushNotifications, &ns.MessageNotifications)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get notification settings: %w", err)
	}
	return &ns, nil
}

func (s *NotificationStore) SaveSettings(ctx context.Context, set *models.NotificationSettings) error {
	query := `
		INSERT INTO notification_settings (user_id, email_notifications, push_notifications, message_notifications)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			email_notifications = EXCLUDED.email_notifications,
			push_notifications = EXCLUDED.push_notifications,
			message_notifications = EXCLUDED.message_notifications`

	if _, err := s.pool.Exec(ctx, query,
		set.UserID, set.EmailNotifications, set.PushNotifications, set.MessageNotifications); err != nil {
		return fmt.Errorf("save notification settings: %w", err)
	}
	return nil
}
