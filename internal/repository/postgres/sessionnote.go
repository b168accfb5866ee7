package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Amaan112005/mindmate/internal/models"
)

type SessionNoteStore struct {
	pool *pgxpool.Pool
}

func NewSessionNoteStore(pool *pgxpool.Pool) *SessionNoteStore {
	return &SessionNoteStore{pool: pool}
}

func (s *SessionNoteStore) Create(ctx context.Context, n *models.SessionNote) error {
	query := `
		INSERT INTO session_notes (therapist_id, client_id, note, status, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := s.pool.QueryRow(ctx, query, n.TherapistID, n.ClientID, n.Note, n.Status, n.Date).Scan(&n.ID)
	if err != nil {
		return fmt.Errorf("insert session note: %w", err)
	}
	return nil
}

func (s *SessionNoteStore) ListByClient(ctx context.Context, clientID string, limit int) ([]models.SessionNote, error) {
	query := `
		SELECT id, therapist_id, client_id, note, status, date
		FROM session_notes
		WHERE client_id = $1
		ORDER BY date DESC, id DESC
		LIMIT $2`

	rows, err := s.pool.Query(ctx, query, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("list session notes: %w", err)
	}
	defer rows.Close()

	notes := make([]models.SessionNote, 0)
	for rows.Next() {
		var n models.SessionNote
		if err := rows.Scan(&n.ID, &n.TherapistID, &n.ClientID, &n.Note, &n.Status, &n.Date); err != nil {
			return nil, fmt.Errorf("scan session note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session notes: %w", err)
	}
	return notes, nil
}

func (s *SessionNoteStore) Analytics(ctx context.Context, therapistID string, since time.Time) (*models.TherapistAnalytics, error) {
	query := `
		SELECT count(*),
			count(*) FILTER (WHERE status = 'attended'),
			count(*) FILTER (WHERE status = 'cancelled'),
			count(*) FILTER (WHERE status = 'no_show')
		FROM session_notes
		WHERE therapist_id = $1 AND date >= $2`

	var a models.TherapistAnalytics
	err := s.pool.QueryRow(ctx, query, therapistID, since).
		Scan(&a.SessionCount, &a.Attended, &a.Cancelled, &a.NoShow)
	if err != nil {
		return nil, fmt.Errorf("session analytics: %w", err)
	}

	messageQuery := `
		SELECT count(*) FROM messages
		WHERE sender_id = $1 AND created_at >= $2`

	if err := s.pool.QueryRow(ctx, messageQuery, therapistID, since).Scan(&a.MessageCount); err != nil {
		return nil, fmt.Errorf("session analytics messages: %w", err)
	}
	return &a, nil
}
