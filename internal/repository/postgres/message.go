package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Amaan112005/mindmate/internal/models"
)

type MessageStore struct {
	pool *pgxpool.Pool
}

func NewMessageStore(pool *pgxpool.Pool) *MessageStore {
	return &MessageStore{pool: pool}
}

func (s *MessageStore) Create(ctx context.Context, m *models.Message) error {
	query := `
		INSERT INTO messages (sender_id, recipient_id, content, read, created_at)
		VALUES ($1, $2, $3, FALSE, now())
		RETURNING id, created_at`

	err := s.pool.QueryRow(ctx, query, m.SenderID, m.RecipientID, m.Content).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (s *MessageStore) ListBetween(ctx context.Context, a, b string, limit int, ascending bool) ([]models.Message, error) {
	order := "DESC"
	if ascending {
		order = "ASC"
	}
	query := fmt.Sprintf(`
		SELECT id, sender_id, recipient_id, content, read, created_at
		FROM messages
		WHERE (sender_id = $1 AND recipient_id = $2)
		   OR (sender_id = $2 AND recipient_id = $1)
		ORDER BY created_at %s, id %s
		LIMIT $3`, order, order)

	rows, err := s.pool.Query(ctx, query, a, b, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Content, &m.Read, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return messages, nil
}

func (s *MessageStore) MarkRead(ctx context.Context, recipientID, senderID string) error {
	query := `
		UPDATE messages
		SET read = TRUE
		WHERE recipient_id = $1 AND sender_id = $2 AND NOT read`

	if _, err := s.pool.Exec(ctx, query, recipientID, senderID); err != nil {
		return fmt.Errorf("mark messages read: %w", err)
	}
	return nil
}

func (s *MessageStore) CountUnread(ctx context.Context, userID string) (int, error) {
	query := `SELECT count(*) FROM messages WHERE recipient_id = $1 AND NOT read`

	var n int
	if err := s.pool.QueryRow(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unread messages: %w", err)
	}
	return n, nil
}

func (s *MessageStore) CountUnreadFrom(ctx context.Context, userID, senderID string) (int, error) {
	query := `
		SELECT count(*) FROM messages
		WHERE recipient_id = $1 AND sender_id = $2 AND NOT read`

	var n int
	if err := s.pool.QueryRow(ctx, query, userID, senderID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unread from sender: %w", err)
	}
	return n, nil
}
