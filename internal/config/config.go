// Package config loads application configuration from an optional YAML
// file, a .env file, and environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Env         string `mapstructure:"env"`          // current application environment (local, dev, prod etc)
	User        string `mapstructure:"user"`         // learner profile the CLI operates on
	StoreEngine string `mapstructure:"store_engine"` // question store backend: json or sqlite
	BankDir     string `mapstructure:"bank_dir"`     // directory of question bank JSON files
	DBPath      string `mapstructure:"db_path"`      // SQLite database path; empty means the default location
	LogLevel    string `mapstructure:"log_level"`    // logrus level name
	// SnapshotKeep bounds how many brain map snapshots survive per user.
	SnapshotKeep int `mapstructure:"snapshot_keep"`
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetDefault("env", "local")
	v.SetDefault("user", "default")
	v.SetDefault("store_engine", "json")
	v.SetDefault("bank_dir", "assets/banks")
	v.SetDefault("log_level", "info")
	v.SetDefault("snapshot_keep", 20)

	v.SetEnvPrefix("verbaprep")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	switch cfg.StoreEngine {
	case "json", "sqlite":
	default:
		return nil, fmt.Errorf("invalid store_engine %q: want json or sqlite", cfg.StoreEngine)
	}

	return &cfg, nil
}
