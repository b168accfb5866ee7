package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Amaan112005/mindmate/internal/models"
)

type ProfileStore struct {
	pool *pgxpool.Pool
}

func NewProfileStore(pool *pgxpool.Pool) *ProfileStore {
	return &ProfileStore{pool: pool}
}

const profileColumns = `id, display_name, email, password_hash, is_therapist, is_client,
	specialization, bio, available, created_at`

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID,
		&p.DisplayName,
		&p.Email,
		&p.PasswordHash,
		&p.IsTherapist,
		&p.IsClient,
		&p.Specialization,
		&p.Bio,
		&p.Available,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProfileStore) Create(ctx context.Context, p *models.Profile) error {
	query := `
		INSERT INTO profiles (id, display_name, email, password_hash, is_therapist,
			is_client, specialization, bio, available, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		RETURNING created_at`

	err := s.pool.QueryRow(ctx, query,
		p.ID, p.DisplayName, p.Email, p.PasswordHash, p.IsTherapist,
		p.IsClient, p.Specialization, p.Bio, p.Available,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// UpsertClient creates or refreshes a shadow client record. An existing
// profile keeps its created_at; name and email are overwritten with the
// latest values the caller supplied.
func (s *ProfileStore) UpsertClient(ctx context.Context, p *models.Profile) error {
	query := `
		INSERT INTO profiles (id, display_name, email, is_client, created_at)
		VALUES ($1, $2, $3, TRUE, now())
		ON CONFLICT (id) DO UPDATE
		SET display_name = EXCLUDED.display_name,
		    email = EXCLUDED.email,
		    is_client = TRUE`

	if _, err := s.pool.Exec(ctx, query, p.ID, p.DisplayName, p.Email); err != nil {
		return fmt.Errorf("upsert client profile: %w", err)
	}
	return nil
}

func (s *ProfileStore) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	p, err := scanProfile(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *ProfileStore) GetTherapistByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1 AND is_therapist`

	p, err := scanProfile(s.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get therapist by email: %w", err)
	}
	return p, nil
}

func (s *ProfileStore) ListTherapists(ctx context.Context, specialization string) ([]models.Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles
		WHERE is_therapist AND available`
	args := []any{}
	if specialization != "" {
		query += ` AND specialization = $1`
		args = append(args, specialization)
	}
	query += ` ORDER BY display_name`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list therapists: %w", err)
	}
	defer rows.Close()

	therapists := make([]models.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan therapist: %w", err)
		}
		therapists = append(therapists, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate therapists: %w", err)
	}
	return therapists, nil
}

func (s *ProfileStore) Update(ctx context.Context, p *models.Profile) error {
	query := `
		UPDATE profiles
		SET display_name = $2, specialization = $3, bio = $4, available = $5
		WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, p.ID, p.DisplayName, p.Specialization, p.Bio, p.Available)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update profile: no row for id %s", p.ID)
	}
	return nil
}
