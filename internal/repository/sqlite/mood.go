package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Amaan112005/mindmate/internal/models"
)

type MoodStore struct {
	db *sql.DB
}

func NewMoodStore(db *sql.DB) *MoodStore {
	return &MoodStore{db: db}
}

func (s *MoodStore) Create(ctx context.Context, e *models.MoodEntry) error {
	query := `
		INSERT INTO mood_entries (user_id, mood_score, notes, tags, created_at)
		VALUES (?, ?, ?, ?, ?)`

	e.CreatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, query, e.UserID, e.Score, e.Notes, e.Tags, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert mood entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("mood insert id: %w", err)
	}
	e.ID = id
	return nil
}

func (s *MoodStore) History(ctx context.Context, userID string, limit int) ([]models.MoodEntry, error) {
	query := `
		SELECT id, user_id, mood_score, COALESCE(notes, ''), COALESCE(tags, ''), created_at
		FROM mood_entries
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list mood entries: %w", err)
	}
	defer rows.Close()

	entries := make([]models.MoodEntry, 0)
	for rows.Next() {
		var e models.MoodEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Score, &e.Notes, &e.Tags, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan mood entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mood entries: %w", err)
	}
	return entries, nil
}

// DailyAverages groups entries by calendar day over the trailing window and
// fills days without entries with zero-count points so trend charts keep a
// continuous axis.
func (s *MoodStore) DailyAverages(ctx context.Context, userID string, days int) ([]models.MoodTrendPoint, error) {
	since := time.Now().UTC().AddDate(0, 0, -(days - 1)).Truncate(24 * time.Hour)

	query := `
		SELECT date(created_at), avg(mood_score), count(*)
		FROM mood_entries
		WHERE user_id = ? AND created_at >= ?
		GROUP BY date(created_at)`

	rows, err := s.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("daily mood averages: %w", err)
	}
	defer rows.Close()

	byDay := make(map[string]models.MoodTrendPoint, days)
	for rows.Next() {
		var p models.MoodTrendPoint
		if err := rows.Scan(&p.Date, &p.AvgMood, &p.Count); err != nil {
			return nil, fmt.Errorf("scan mood average: %w", err)
		}
		byDay[p.Date] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mood averages: %w", err)
	}

	points := make([]models.MoodTrendPoint, 0, days)
	for i := 0; i < days; i++ {
		day := since.AddDate(0, 0, i).Format("2006-01-02")
		if p, ok := byDay[day]; ok {
			points = append(points, p)
			continue
		}
		points = append(points, models.MoodTrendPoint{Date: day})
	}
	return points, nil
}

func (s *MoodStore) Summary(ctx context.Context, userID string) (*models.MoodSummary, error) {
	query := `
		SELECT COALESCE(avg(mood_score), 0), count(*)
		FROM mood_entries
		WHERE user_id = ?`

	var sum models.MoodSummary
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&sum.Average, &sum.Count); err != nil {
		return nil, fmt.Errorf("mood summary: %w", err)
	}

	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	weekQuery := `
		SELECT COALESCE(avg(mood_score), 0), count(*)
		FROM mood_entries
		WHERE user_id = ? AND created_at >= ?`

	var weekAvg float64
	var weekCount int
	if err := s.db.QueryRowContext(ctx, weekQuery, userID, weekAgo).Scan(&weekAvg, &weekCount); err != nil {
		return nil, fmt.Errorf("mood week summary: %w", err)
	}
	if weekCount > 0 {
		sum.WeekChange = weekAvg - sum.Average
	}

	history, err := s.DailyAverages(ctx, userID, 7)
	if err != nil {
		return nil, err
	}
	sum.History = history
	return &sum, nil
}
