package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nkapur/verbaprep/internal/config"
	"github.com/nkapur/verbaprep/internal/store"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "verbaprep",
	Short: "Adaptive GRE verbal practice engine",
	Long:  "VerbaPrep — adaptive assessment engine for GRE verbal reasoning: skill-level mastery tracking, targeted practice tests, and two-section adaptive mock exams.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("parse log level %q: %w", cfg.LogLevel, err)
		}
		logrus.SetLevel(level)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides VERBAPREP_DB env var)")
	rootCmd.PersistentFlags().String("user", "", "Learner profile to operate on (overrides config)")
	rootCmd.PersistentFlags().Int64("seed", 0, "Random seed for test generation (0 = time-based)")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(mockCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(lessonCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then the config/env value, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// resolveUser returns the learner profile from the --user flag or config.
func resolveUser(cmd *cobra.Command) string {
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		return u
	}
	return cfg.User
}

// newRand builds the generation source: seeded from --seed when given so
// runs reproduce, time-based otherwise.
func newRand(cmd *cobra.Command) *rand.Rand {
	seed, _ := cmd.Flags().GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
