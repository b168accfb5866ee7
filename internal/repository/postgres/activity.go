package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Amaan112005/mindmate/internal/models"
)

type ActivityStore struct {
	pool *pgxpool.Pool
}

func NewActivityStore(pool *pgxpool.Pool) *ActivityStore {
	return &ActivityStore{pool: pool}
}

func (s *ActivityStore) Log(ctx context.Context, userID, action string) error {
	query := `INSERT INTO user_activity (user_id, action, created_at) VALUES ($1, $2, now())`

	if _, err := s.pool.Exec(ctx, query, userID, action); err != nil {
		return fmt.Errorf("log activity: %w", err)
	}
	return nil
}

func (s *ActivityStore) Recent(ctx context.Context, userID string, limit int) ([]models.Activity, error) {
	query := `
		SELECT id, user_id, action, created_at
		FROM user_activity
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	rows, err := s.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	entries := make([]models.Activity, 0)
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Action, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		entries = append(entries, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity: %w", err)
	}
	return entries, nil
}
