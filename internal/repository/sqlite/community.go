package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Amaan112005/mindmate/internal/models"
)

type CommunityStore struct {
	db *sql.DB
}

func NewCommunityStore(db *sql.DB) *CommunityStore {
	return &CommunityStore{db: db}
}

func (s *CommunityStore) Create(ctx context.Context, p *models.CommunityPost) error {
	query := `INSERT INTO community_posts (user_id, content, likes, created_at) VALUES (?, ?, 0, ?)`

	p.CreatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, query, p.UserID, p.Content, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert community post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("post insert id: %w", err)
	}
	p.ID = id
	p.Likes = 0
	return nil
}

func (s *CommunityStore) ListRecent(ctx context.Context, limit int) ([]models.CommunityPost, error) {
	query := `
		SELECT id, user_id, content, likes, created_at
		FROM community_posts
		ORDER BY created_at DESC, id DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list community posts: %w", err)
	}
	defer rows.Close()

	posts := make([]models.CommunityPost, 0)
	for rows.Next() {
		var p models.CommunityPost
		if err := rows.Scan(&p.ID, &p.UserID, &p.Content, &p.Likes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan community post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate community posts: %w", err)
	}
	return posts, nil
}

func (s *CommunityStore) Like(ctx context.Context, id int64) (bool, error) {
	query := `UPDATE community_posts SET likes = likes + 1 WHERE id = ?`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("like community post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("like rows affected: %w", err)
	}
	return n > 0, nil
}
