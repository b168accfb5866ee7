package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Amaan112005/mindmate/internal/models"
)

type RequestStore struct {
	pool *pgxpool.Pool
}

func NewRequestStore(pool *pgxpool.Pool) *RequestStore {
	return &RequestStore{pool: pool}
}

const requestColumns = `id, client_id, therapist_id, client_name, client_email,
	client_phone, problem_description, appointment_at, status, created_at`

func scanRequest(row pgx.Row) (*models.TherapistRequest, error) {
	var r models.TherapistRequest
	err := row.Scan(
		&r.ID,
		&r.ClientID,
		&r.TherapistID,
		&r.ClientName,
		&r.ClientEmail,
		&r.ClientPhone,
		&r.Description,
		&r.AppointmentAt,
		&r.Status,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RequestStore) Create(ctx context.Context, r *models.TherapistRequest) error {
	query := `
		INSERT INTO therapist_requests (client_id, therapist_id, client_name,
			client_email, client_phone, problem_description, appointment_at, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		RETURNING id, created_at`

	err := s.pool.QueryRow(ctx, query,
		r.ClientID, r.TherapistID, r.ClientName, r.ClientEmail,
		r.ClientPhone, r.Description, r.AppointmentAt, r.Status,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert therapist request: %w", err)
	}
	return nil
}

func (s *RequestStore) GetByID(ctx context.Context, id string) (*models.TherapistRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM therapist_requests WHERE id = $1`

	r, err := scanRequest(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get therapist request: %w", err)
	}
	return r, nil
}

func (s *RequestStore) ListPendingByTherapist(ctx context.Context, therapistID string) ([]models.TherapistRequest, error) {
	return s.listPending(ctx, "therapist_id", therapistID)
}

func (s *RequestStore) ListPendingByClient(ctx context.Context, clientID string) ([]models.TherapistRequest, error) {
	return s.listPending(ctx, "client_id", clientID)
}

func (s *RequestStore) listPending(ctx context.Context, column, id string) ([]models.TherapistRequest, error) {
	query := `SELECT ` + requestColumns + `
		FROM therapist_requests
		WHERE ` + column + ` = $1 AND status = $2
		ORDER BY created_at ASC`

	rows, err := s.pool.Query(ctx, query, id, models.RequestStatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}
	defer rows.Close()

	requests := make([]models.TherapistRequest, 0)
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		requests = append(requests, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}
	return requests, nil
}

// UpdateStatusFromPending is the status-transition guard: the WHERE clause
// only matches a row that is still pending, so terminal requests cannot be
// re-transitioned.
func (s *RequestStore) UpdateStatusFromPending(ctx context.Context, id, status string) (bool, error) {
	query := `
		UPDATE therapist_requests
		SET status = $2
		WHERE id = $1 AND status = $3`

	tag, err := s.pool.Exec(ctx, query, id, status, models.RequestStatusPending)
	if err != nil {
		return false, fmt.Errorf("update request status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *RequestStore) DeletePending(ctx context.Context, id, clientID string) (bool, error) {
	query := `
		DELETE FROM therapist_requests
		WHERE id = $1 AND client_id = $2 AND status = $3`

	tag, err := s.pool.Exec(ctx, query, id, clientID, models.RequestStatusPending)
	if err != nil {
		return false, fmt.Errorf("delete pending request: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
