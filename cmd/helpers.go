package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nkapur/verbaprep/internal/brainmap"
	"github.com/nkapur/verbaprep/internal/question"
	"github.com/nkapur/verbaprep/internal/store"
)

// openStore opens the SQLite store that carries brain map snapshots.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve db path: %w", err)
	}
	return store.Open(dbPath)
}

// openQuestions opens the configured question store backend.
func openQuestions(cmd *cobra.Command) (question.Store, func() error, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve db path: %w", err)
	}
	return store.OpenQuestionStore(store.Engine(cfg.StoreEngine), cfg.BankDir, dbPath)
}

// loadBrainMap returns the latest saved brain map for the user, or a
// fresh one on first use.
func loadBrainMap(ctx context.Context, repo store.BrainMapRepo, userID string) (*brainmap.BrainMap, error) {
	bm, err := repo.Latest(ctx, userID)
	if err != nil {
		return nil, err
	}
	if bm == nil {
		logrus.WithField("user", userID).Info("no saved brain map, starting fresh")
		return brainmap.New(userID), nil
	}
	return bm, nil
}

// saveBrainMap appends a snapshot and prunes old ones per config.
func saveBrainMap(ctx context.Context, repo store.BrainMapRepo, bm *brainmap.BrainMap) error {
	if err := repo.Save(ctx, bm); err != nil {
		return err
	}
	return repo.Prune(ctx, bm.UserID, cfg.SnapshotKeep)
}

// writeJSONFile writes v as indented JSON to path.
func writeJSONFile(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// readJSONFile decodes the JSON file at path into v.
func readJSONFile(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
