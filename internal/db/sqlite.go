package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// WellnessDB wraps the embedded SQLite wellness store.
type WellnessDB struct {
	db     *sql.DB
	logger *zap.Logger
}

// wellnessSchema mirrors the tables the tracking features write to. SQLite
// applies it idempotently on every open.
const wellnessSchema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT UNIQUE NOT NULL,
	email TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	age INTEGER,
	gender TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	last_login DATETIME
);

CREATE TABLE IF NOT EXISTS journal_entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	entry_type TEXT NOT NULL,
	content TEXT NOT NULL,
	mood_score REAL NOT NULL,
	keywords TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_journal_user ON journal_entries(user_id, created_at);

CREATE TABLE IF NOT EXISTS mood_entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	mood_score INTEGER NOT NULL,
	notes TEXT,
	tags TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_mood_user ON mood_entries(user_id, created_at);

CREATE TABLE IF NOT EXISTS sleep_entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	date DATE NOT NULL,
	hours REAL NOT NULL,
	quality INTEGER NOT NULL,
	notes TEXT
);
CREATE INDEX IF NOT EXISTS idx_sleep_user ON sleep_entries(user_id, date);

CREATE TABLE IF NOT EXISTS meditation_sessions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	session_type TEXT NOT NULL,
	minutes INTEGER NOT NULL,
	notes TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_meditation_user ON meditation_sessions(user_id, created_at);

CREATE TABLE IF NOT EXISTS goals (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL,
	description TEXT,
	type TEXT NOT NULL,
	target_date DATE NOT NULL,
	target_value INTEGER NOT NULL,
	progress INTEGER NOT NULL DEFAULT 0,
	completed BOOLEAN NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS community_posts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	content TEXT NOT NULL,
	likes INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS chat_turns (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	message TEXT NOT NULL,
	response TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_chat_user ON chat_turns(user_id, created_at);

CREATE TABLE IF NOT EXISTS rpg_characters (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL,
	archetype TEXT NOT NULL,
	stats TEXT NOT NULL,
	level INTEGER NOT NULL DEFAULT 1,
	experience INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_rpg_characters_user ON rpg_characters(user_id, created_at);

CREATE TABLE IF NOT EXISTS rpg_quests (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	quest_name TEXT NOT NULL,
	xp_earned INTEGER NOT NULL,
	completed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_rpg_quests_user ON rpg_quests(user_id, completed_at);

CREATE TABLE IF NOT EXISTS rpg_skills (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	skill_name TEXT NOT NULL,
	level INTEGER NOT NULL DEFAULT 1,
	progress INTEGER NOT NULL DEFAULT 0,
	last_practiced DATETIME,
	UNIQUE(user_id, skill_name)
);
`

// NewWellnessDB opens (creating if needed) the SQLite file at path and
// applies the schema.
func NewWellnessDB(ctx context.Context, path string, logger *zap.Logger) (*WellnessDB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite handles one writer at a time; serialize access through a
	// single connection instead of bubbling SQLITE_BUSY to callers.
	sqlDB.SetMaxOpenConns(1)

	if _, err := sqlDB.ExecContext(ctx, wellnessSchema); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("apply wellness schema: %w", err)
	}

	logger.Info("wellness store opened", zap.String("path", path))
	return &WellnessDB{db: sqlDB, logger: logger}, nil
}

func (w *WellnessDB) Close() error {
	w.logger.Info("closing wellness store")
	return w.db.Close()
}

func (w *WellnessDB) DB() *sql.DB {
	return w.db
}

func (w *WellnessDB) Health(ctx context.Context) error {
	return w.db.PingContext(ctx)
}
