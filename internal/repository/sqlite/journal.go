package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Amaan112005/mindmate/internal/models"
	"github.com/Amaan112005/mindmate/internal/stats"
)

type JournalStore struct {
	db *sql.DB
}

func NewJournalStore(db *sql.DB) *JournalStore {
	return &JournalStore{db: db}
}

func (s *JournalStore) Create(ctx context.Context, e *models.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (user_id, entry_type, content, mood_score, keywords, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	e.CreatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, query,
		e.UserID, e.EntryType, e.Content, e.MoodScore, e.Keywords, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("journal insert id: %w", err)
	}
	e.ID = id
	return nil
}

func (s *JournalStore) List(ctx context.Context, userID string, limit int) ([]models.JournalEntry, error) {
	query := `
		SELECT id, user_id, entry_type, content, mood_score, COALESCE(keywords, ''), created_at
		FROM journal_entries
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	entries := make([]models.JournalEntry, 0)
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.EntryType, &e.Content, &e.MoodScore, &e.Keywords, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal entries: %w", err)
	}
	return entries, nil
}

func (s *JournalStore) Stats(ctx context.Context, userID string) (stats.JournalStats, error) {
	query := `
		SELECT count(*), COALESCE(avg(mood_score), 0)
		FROM journal_entries
		WHERE user_id = ?`

	var st stats.JournalStats
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&st.TotalEntries, &st.AvgMood); err != nil {
		return stats.JournalStats{}, fmt.Errorf("journal stats: %w", err)
	}
	return st, nil
}
