package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Amaan112005/mindmate/internal/models"
)

type RPGStore struct {
	db *sql.DB
}

func NewRPGStore(db *sql.DB) *RPGStore {
	return &RPGStore{db: db}
}

func (s *RPGStore) CreateCharacter(ctx context.Context, c *models.RPGCharacter) error {
	stats, err := json.Marshal(c.Stats)
	if err != nil {
		return fmt.Errorf("encode character stats: %w", err)
	}

	query := `
		INSERT INTO rpg_characters (user_id, name, archetype, stats, level, experience, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	c.CreatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, query, c.UserID, c.Name, c.Archetype, string(stats), c.Level, c.Experience, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert character: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("character insert id: %w", err)
	}
	c.ID = id
	return nil
}

// LatestCharacter returns the most recently created character for the
// user, or nil when none exists.
func (s *RPGStore) LatestCharacter(ctx context.Context, userID string) (*models.RPGCharacter, error) {
	query := `
		SELECT id, user_id, name, archetype, stats, level, experience, created_at
		FROM rpg_characters
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	var c models.RPGCharacter
	var stats string
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Archetype, &stats, &c.Level, &c.Experience, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get character: %w", err)
	}
	if err := json.Unmarshal([]byte(stats), &c.Stats); err != nil {
		return nil, fmt.Errorf("decode character stats: %w", err)
	}
	return &c, nil
}

func (s *RPGStore) AddExperience(ctx context.Context, characterID int64, xp, level int) error {
	query := `UPDATE rpg_characters SET experience = ?, level = ? WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, query, xp, level, characterID); err != nil {
		return fmt.Errorf("update character experience: %w", err)
	}
	return nil
}

func (s *RPGStore) RecordQuest(ctx context.Context, q *models.RPGQuest) error {
	query := `INSERT INTO rpg_quests (user_id, quest_name, xp_earned, completed_at) VALUES (?, ?, ?, ?)`

	q.CompletedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, query, q.UserID, q.QuestName, q.XPEarned, q.CompletedAt)
	if err != nil {
		return fmt.Errorf("insert quest: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("quest insert id: %w", err)
	}
	q.ID = id
	return nil
}

func (s *RPGStore) ListQuests(ctx context.Context, userID string, limit int) ([]models.RPGQuest, error) {
	query := `
		SELECT id, user_id, quest_name, xp_earned, completed_at
		FROM rpg_quests
		WHERE user_id = ?
		ORDER BY completed_at DESC, id DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list quests: %w", err)
	}
	defer rows.Close()

	quests := make([]models.RPGQuest, 0)
	for rows.Next() {
		var q models.RPGQuest
		if err := rows.Scan(&q.ID, &q.UserID, &q.QuestName, &q.XPEarned, &q.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan quest: %w", err)
		}
		quests = append(quests, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quests: %w", err)
	}
	return quests, nil
}

// CountQuestsSince counts completions of one quest on or after the cutoff,
// which gates daily and weekly repeats.
func (s *RPGStore) CountQuestsSince(ctx context.Context, userID, questName string, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM rpg_quests WHERE user_id = ? AND quest_name = ? AND completed_at >= ?`

	var n int
	if err := s.db.QueryRowContext(ctx, query, userID, questName, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("count quests: %w", err)
	}
	return n, nil
}

func (s *RPGStore) PracticeSkill(ctx context.Context, userID, skillName string, points, level int, at time.Time) error {
	query := `
		INSERT INTO rpg_skills (user_id, skill_name, level, progress, last_practiced)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, skill_name)
		DO UPDATE SET level = excluded.level, progress = excluded.progress, last_practiced = excluded.last_practiced`

	if _, err := s.db.ExecContext(ctx, query, userID, skillName, level, points, at); err != nil {
		return fmt.Errorf("upsert skill: %w", err)
	}
	return nil
}

func (s *RPGStore) GetSkill(ctx context.Context, userID, skillName string) (*models.RPGSkill, error) {
	query := `
		SELECT id, user_id, skill_name, level, progress, last_practiced
		FROM rpg_skills
		WHERE user_id = ? AND skill_name = ?`

	var sk models.RPGSkill
	err := s.db.QueryRowContext(ctx, query, userID, skillName).Scan(
		&sk.ID, &sk.UserID, &sk.SkillName, &sk.Level, &sk.Progress, &sk.LastPracticed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get skill: %w", err)
	}
	return &sk, nil
}

func (s *RPGStore) ListSkills(ctx context.Context, userID string) ([]models.RPGSkill, error) {
	query := `
		SELECT id, user_id, skill_name, level, progress, last_practiced
		FROM rpg_skills
		WHERE user_id = ?
		ORDER BY skill_name ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	skills := make([]models.RPGSkill, 0)
	for rows.Next() {
		var sk models.RPGSkill
		if err := rows.Scan(&sk.ID, &sk.UserID, &sk.SkillName, &sk.Level, &sk.Progress, &sk.LastPracticed); err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		skills = append(skills, sk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skills: %w", err)
	}
	return skills, nil
}
