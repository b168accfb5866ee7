package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Amaan112005/mindmate/internal/models"
)

type SleepStore struct {
	db *sql.DB
}

func NewSleepStore(db *sql.DB) *SleepStore {
	return &SleepStore{db: db}
}

func (s *SleepStore) Create(ctx context.Context, e *models.SleepEntry) error {
	query := `
		INSERT INTO sleep_entries (user_id, date, hours, quality, notes)
		VALUES (?, ?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, query, e.UserID, e.Date.UTC(), e.Hours, e.Quality, e.Notes)
	if err != nil {
		return fmt.Errorf("insert sleep entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sleep insert id: %w", err)
	}
	e.ID = id
	return nil
}

func (s *SleepStore) History(ctx context.Context, userID string, limit int) ([]models.SleepEntry, error) {
	query := `
		SELECT id, user_id, date, hours, quality, COALESCE(notes, '')
		FROM sleep_entries
		WHERE user_id = ?
		ORDER BY date DESC, id DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list sleep entries: %w", err)
	}
	defer rows.Close()

	entries := make([]models.SleepEntry, 0)
	for rows.Next() {
		var e models.SleepEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Hours, &e.Quality, &e.Notes); err != nil {
			return nil, fmt.Errorf("scan sleep entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sleep entries: %w", err)
	}
	return entries, nil
}

func (s *SleepStore) Summary(ctx context.Context, userID string) (*models.SleepSummary, error) {
	query := `
		SELECT COALESCE(avg(hours), 0), COALESCE(avg(quality), 0)
		FROM sleep_entries
		WHERE user_id = ?`

	var sum models.SleepSummary
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&sum.AvgHours, &sum.AvgQuality); err != nil {
		return nil, fmt.Errorf("sleep summary: %w", err)
	}

	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	weekQuery := `
		SELECT COALESCE(avg(hours), 0), count(*)
		FROM sleep_entries
		WHERE user_id = ? AND date >= ?`

	var weekAvg float64
	var weekCount int
	if err := s.db.QueryRowContext(ctx, weekQuery, userID, weekAgo).Scan(&weekAvg, &weekCount); err != nil {
		return nil, fmt.Errorf("sleep week summary: %w", err)
	}
	if weekCount > 0 {
		sum.WeekChange = weekAvg - sum.AvgHours
	}
	return &sum, nil
}
