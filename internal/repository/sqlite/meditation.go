package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Amaan112005/mindmate/internal/models"
	"github.com/Amaan112005/mindmate/internal/stats"
)

type MeditationStore struct {
	db *sql.DB
}

func NewMeditationStore(db *sql.DB) *MeditationStore {
	return &MeditationStore{db: db}
}

func (s *MeditationStore) Create(ctx context.Context, m *models.MeditationSession) error {
	query := `
		INSERT INTO meditation_sessions (user_id, session_type, minutes, notes, created_at)
		VALUES (?, ?, ?, ?, ?)`

	m.CreatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, query, m.UserID, m.SessionType, m.Minutes, m.Notes, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert meditation session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("meditation insert id: %w", err)
	}
	m.ID = id
	return nil
}

func (s *MeditationStore) History(ctx context.Context, userID string, limit int) ([]models.MeditationSession, error) {
	query := `
		SELECT id, user_id, session_type, minutes, COALESCE(notes, ''), created_at
		FROM meditation_sessions
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list meditation sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]models.MeditationSession, 0)
	for rows.Next() {
		var m models.MeditationSession
		if err := rows.Scan(&m.ID, &m.UserID, &m.SessionType, &m.Minutes, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan meditation session: %w", err)
		}
		sessions = append(sessions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meditation sessions: %w", err)
	}
	return sessions, nil
}

func (s *MeditationStore) Stats(ctx context.Context, userID string) (stats.MeditationStats, error) {
	query := `
		SELECT count(*), COALESCE(sum(minutes), 0)
		FROM meditation_sessions
		WHERE user_id = ?`

	var st stats.MeditationStats
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&st.Sessions, &st.TotalMinutes); err != nil {
		return stats.MeditationStats{}, fmt.Errorf("meditation stats: %w", err)
	}
	return st, nil
}
