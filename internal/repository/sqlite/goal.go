package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Amaan112005/mindmate/internal/models"
)

type GoalStore struct {
	db *sql.DB
}

func NewGoalStore(db *sql.DB) *GoalStore {
	return &GoalStore{db: db}
}

func (s *GoalStore) Create(ctx context.Context, g *models.Goal) error {
	query := `
		INSERT INTO goals (user_id, name, description, type, target_date, target_value, progress, completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, 0, ?)`

	g.CreatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, query,
		g.UserID, g.Name, g.Description, g.Type, g.TargetDate.UTC(), g.TargetValue, g.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("goal insert id: %w", err)
	}
	g.ID = id
	g.Progress = 0
	g.Completed = false
	return nil
}

func (s *GoalStore) List(ctx context.Context, userID string) ([]models.Goal, error) {
	query := `
		SELECT id, user_id, name, COALESCE(description, ''), type, target_date,
			target_value, progress, completed, created_at
		FROM goals
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	goals := make([]models.Goal, 0)
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.Description, &g.Type, &g.TargetDate,
			&g.TargetValue, &g.Progress, &g.Completed, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return goals, nil
}

func (s *GoalStore) UpdateProgress(ctx context.Context, id int64, userID string, progress int) (bool, error) {
	query := `
		UPDATE goals
		SET progress = ?, completed = (? >= target_value)
		WHERE id = ? AND user_id = ?`

	res, err := s.db.ExecContext(ctx, query, progress, progress, id, userID)
	if err != nil {
		return false, fmt.Errorf("update goal progress: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("goal rows affected: %w", err)
	}
	return n > 0, nil
}
