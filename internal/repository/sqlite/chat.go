package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Amaan112005/mindmate/internal/models"
)

type ChatStore struct {
	db *sql.DB
}

func NewChatStore(db *sql.DB) *ChatStore {
	return &ChatStore{db: db}
}

func (s *ChatStore) SaveTurn(ctx context.Context, t *models.ChatTurn) error {
	query := `INSERT INTO chat_turns (user_id, message, response, created_at) VALUES (?, ?, ?, ?)`

	t.CreatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, query, t.UserID, t.Message, t.Response, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert chat turn: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("chat insert id: %w", err)
	}
	t.ID = id
	return nil
}

// History returns the most recent turns in chronological order so a
// transcript can be replayed to the model oldest first.
func (s *ChatStore) History(ctx context.Context, userID string, limit int) ([]models.ChatTurn, error) {
	query := `
		SELECT id, user_id, message, response, created_at
		FROM (
			SELECT id, user_id, message, response, created_at
			FROM chat_turns
			WHERE user_id = ?
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		)
		ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list chat turns: %w", err)
	}
	defer rows.Close()

	turns := make([]models.ChatTurn, 0)
	for rows.Next() {
		var t models.ChatTurn
		if err := rows.Scan(&t.ID, &t.UserID, &t.Message, &t.Response, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat turn: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat turns: %w", err)
	}
	return turns, nil
}
