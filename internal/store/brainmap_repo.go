package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nkapur/verbaprep/internal/brainmap"
)

// BrainMapRepo manages brain map snapshots. Every save appends a new
// row, so earlier states stay recoverable until pruned.
type BrainMapRepo interface {
	// Save stores a new snapshot of the brain map.
	Save(ctx context.Context, bm *brainmap.BrainMap) error

	// Latest returns the most recent snapshot for a user, or nil if the
	// user has never been saved.
	Latest(ctx context.Context, userID string) (*brainmap.BrainMap, error)

	// Prune deletes all but the N most recent snapshots of a user.
	Prune(ctx context.Context, userID string, keep int) error

	// Delete removes every snapshot of a user.
	Delete(ctx context.Context, userID string) error
}

type brainMapRepo struct {
	db *sql.DB
}

func (r *brainMapRepo) Save(ctx context.Context, bm *brainmap.BrainMap) error {
	doc, err := json.Marshal(bm)
	if err != nil {
		return fmt.Errorf("marshal brain map: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO brainmaps (user_id, saved_at, doc) VALUES (?, ?, ?)`,
		bm.UserID, time.Now().UTC(), string(doc))
	if err != nil {
		return fmt.Errorf("save brain map: %w", err)
	}
	return nil
}

func (r *brainMapRepo) Latest(ctx context.Context, userID string) (*brainmap.BrainMap, error) {
	var doc string
	err := r.db.QueryRowContext(ctx,
		`SELECT doc FROM brainmaps WHERE user_id = ? ORDER BY saved_at DESC, id DESC LIMIT 1`,
		userID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest brain map: %w", err)
	}

	var bm brainmap.BrainMap
	if err := json.Unmarshal([]byte(doc), &bm); err != nil {
		return nil, fmt.Errorf("decode brain map: %w", err)
	}
	return &bm, nil
}

func (r *brainMapRepo) Delete(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM brainmaps WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete brain maps: %w", err)
	}
	return nil
}

func (r *brainMapRepo) Prune(ctx context.Context, userID string, keep int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM brainmaps WHERE user_id = ? AND id NOT IN (
			SELECT id FROM brainmaps WHERE user_id = ? ORDER BY saved_at DESC, id DESC LIMIT ?
		)`, userID, userID, keep)
	if err != nil {
		return fmt.Errorf("prune brain maps: %w", err)
	}
	return nil
}
