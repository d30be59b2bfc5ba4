package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/nkapur/verbaprep/internal/question"
	"github.com/nkapur/verbaprep/internal/taxonomy"
)

// QuestionStore serves bank questions from SQLite. It implements
// question.Store.
type QuestionStore struct {
	db *sql.DB
}

var _ question.Store = (*QuestionStore)(nil)

// QuestionsBySkill returns every question tagged with skillID. A
// difficulty of question.AnyDifficulty matches all bands.
func (s *QuestionStore) QuestionsBySkill(ctx context.Context, skillID string, difficulty int) ([]question.Question, error) {
	q := `SELECT q.doc FROM questions q
		JOIN question_skills qs ON qs.question_id = q.id
		WHERE qs.skill_id = ?`
	args := []any{skillID}
	if difficulty != question.AnyDifficulty {
		q += ` AND q.difficulty = ?`
		args = append(args, difficulty)
	}
	q += ` ORDER BY q.id`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions by skill %s: %w", skillID, err)
	}
	defer rows.Close()
	return scanQuestions(rows)
}

// Questions returns every question of one category, or the whole bank
// when category is empty.
func (s *QuestionStore) Questions(ctx context.Context, category taxonomy.Category) ([]question.Question, error) {
	q := `SELECT doc FROM questions`
	var args []any
	if category != "" {
		q += ` WHERE type = ?`
		args = append(args, string(category))
	}
	q += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()
	return scanQuestions(rows)
}

// Passages returns all stored reading passages.
func (s *QuestionStore) Passages(ctx context.Context) ([]question.Passage, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM passages ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query passages: %w", err)
	}
	defer rows.Close()

	var out []question.Passage
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan passage: %w", err)
		}
		var p question.Passage
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			return nil, fmt.Errorf("decode passage: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Import upserts a bank document's questions and passages in one
// transaction. Existing rows with the same id are replaced.
func (s *QuestionStore) Import(ctx context.Context, bank *Bank) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, p := range bank.Passages {
		doc, err := json.Marshal(p)
		if err != nil {
			return 0, fmt.Errorf("encode passage %s: %w", p.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO passages (id, doc) VALUES (?, ?)
			ON CONFLICT(id) DO UPDATE SET doc = excluded.doc`,
			p.ID, string(doc)); err != nil {
			return 0, fmt.Errorf("upsert passage %s: %w", p.ID, err)
		}
	}

	for _, q := range bank.Questions {
		doc, err := json.Marshal(q)
		if err != nil {
			return 0, fmt.Errorf("encode question %s: %w", q.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO questions (id, type, difficulty, passage_id, doc) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				type = excluded.type,
				difficulty = excluded.difficulty,
				passage_id = excluded.passage_id,
				doc = excluded.doc`,
			q.ID, string(q.Type), q.Difficulty, q.PassageID, string(doc)); err != nil {
			return 0, fmt.Errorf("upsert question %s: %w", q.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM question_skills WHERE question_id = ?`, q.ID); err != nil {
			return 0, fmt.Errorf("clear skills for %s: %w", q.ID, err)
		}
		for _, skillID := range q.Skills {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO question_skills (question_id, skill_id) VALUES (?, ?)`,
				q.ID, skillID); err != nil {
				return 0, fmt.Errorf("tag question %s with %s: %w", q.ID, skillID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return len(bank.Questions), nil
}

func scanQuestions(rows *sql.Rows) ([]question.Question, error) {
	var out []question.Question
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		var q question.Question
		if err := json.Unmarshal([]byte(doc), &q); err != nil {
			return nil, fmt.Errorf("decode question: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
