// Package store persists the question bank and learner brain maps. Two
// engines are supported: a read-only JSON bank loaded from disk, and a
// SQLite database that also carries brain map snapshots.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite connection and hands out repositories.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies recommended
// pragmas, and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Questions returns the question.Store view backed by this database.
func (s *Store) Questions() *QuestionStore {
	return &QuestionStore{db: s.db}
}

// BrainMaps returns the brain map snapshot repository.
func (s *Store) BrainMaps() BrainMapRepo {
	return &brainMapRepo{db: s.db}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// migrate creates the schema. Question documents are stored whole as
// JSON with the filterable columns lifted out; the skill tags get their
// own table so skill lookups stay indexed.
func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS questions (
			id         TEXT PRIMARY KEY,
			type       TEXT NOT NULL,
			difficulty INTEGER NOT NULL,
			passage_id TEXT NOT NULL DEFAULT '',
			doc        TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS question_skills (
			question_id TEXT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
			skill_id    TEXT NOT NULL,
			PRIMARY KEY (question_id, skill_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_question_skills_skill ON question_skills(skill_id)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_type ON questions(type)`,
		`CREATE TABLE IF NOT EXISTS passages (
			id  TEXT PRIMARY KEY,
			doc TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS brainmaps (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    TEXT NOT NULL,
			saved_at   TIMESTAMP NOT NULL,
			doc        TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_brainmaps_user ON brainmaps(user_id, saved_at)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec schema statement: %w", err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. VERBAPREP_DB environment variable
// 2. $XDG_DATA_HOME/verbaprep/verbaprep.db
// 3. ~/.local/share/verbaprep/verbaprep.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("VERBAPREP_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "verbaprep", "verbaprep.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
