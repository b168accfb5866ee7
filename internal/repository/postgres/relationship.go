package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Amaan112005/mindmate/internal/models"
)

type RelationshipStore struct {
	pool *pgxpool.Pool
}

func NewRelationshipStore(pool *pgxpool.Pool) *RelationshipStore {
	return &RelationshipStore{pool: pool}
}

func (s *RelationshipStore) Create(ctx context.Context, r *models.Relationship) error {
	query := `
		INSERT INTO therapist_client_relationships (client_id, therapist_id, active, assigned_at)
		VALUES ($1, $2, TRUE, now())
		RETURNING id, assigned_at`

	err := s.pool.QueryRow(ctx, query, r.ClientID, r.TherapistID).Scan(&r.ID, &r.AssignedAt)
	if err != nil {
		return fmt.Errorf("insert relationship: %w", err)
	}
	r.Active = true
	return nil
}

func (s *RelationshipStore) Exists(ctx context.Context, clientID, therapistID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM therapist_client_relationships
			WHERE client_id = $1 AND therapist_id = $2
		)`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, clientID, therapistID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check relationship: %w", err)
	}
	return exists, nil
}

func (s *RelationshipStore) CountByTherapist(ctx context.Context, therapistID string) (int, error) {
	query := `
		SELECT count(*) FROM therapist_client_relationships
		WHERE therapist_id = $1 AND active`

	var n int
	if err := s.pool.QueryRow(ctx, query, therapistID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count relationships: %w", err)
	}
	return n, nil
}

func (s *RelationshipStore) Delete(ctx context.Context, clientID, therapistID string) (bool, error) {
	query := `
		DELETE FROM therapist_client_relationships
		WHERE client_id = $1 AND therapist_id = $2`

	tag, err := s.pool.Exec(ctx, query, clientID, therapistID)
	if err != nil {
		return false, fmt.Errorf("delete relationship: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *RelationshipStore) FirstTherapistIDFor(ctx context.Context, clientID string) (string, error) {
	query := `
		SELECT therapist_id FROM therapist_client_relationships
		WHERE client_id = $1 AND active
		ORDER BY assigned_at ASC
		LIMIT 1`

	var therapistID string
	err := s.pool.QueryRow(ctx, query, clientID).Scan(&therapistID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("lookup therapist for client: %w", err)
	}
	return therapistID, nil
}

func (s *RelationshipStore) ListClientSummaries(ctx context.Context, therapistID string, limit, offset int) ([]models.ClientSummary, error) {
	// INNER JOIN on profiles drops relationships whose client profile is
	// missing instead of failing the whole listing.
	query := `
		SELECT p.id, p.display_name, p.email, r.assigned_at,
			(SELECT max(n.date) FROM session_notes n
			 WHERE n.therapist_id = r.therapist_id AND n.client_id = r.client_id)
		FROM therapist_client_relationships r
		JOIN profiles p ON p.id = r.client_id
		WHERE r.therapist_id = $1 AND r.active
		ORDER BY r.assigned_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.pool.Query(ctx, query, therapistID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list client summaries: %w", err)
	}
	defer rows.Close()

	summaries := make([]models.ClientSummary, 0)
	for rows.Next() {
		var c models.ClientSummary
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.AssignedAt, &c.LastSession); err != nil {
			return nil, fmt.Errorf("scan client summary: %w", err)
		}
		summaries = append(summaries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate client summaries: %w", err)
	}
	return summaries, nil
}
