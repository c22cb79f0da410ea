// Package config loads app settings from ~/.tickle/config.yaml, with
// TICKLE_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the runtime settings.
type Config struct {
	// DBPath is the SQLite store location.
	DBPath string

	// NotifyStatePath is where the file-backed notification facility keeps
	// its scheduled set.
	NotifyStatePath string

	// UpcomingDays is the default window for the upcoming smart list.
	UpcomingDays int

	// SnoozeMinutes is the offset offered by the snooze notification action.
	SnoozeMinutes int
}

// Load reads the config file if present and fills defaults otherwise.
func Load() (Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	dir := filepath.Join(homeDir, ".tickle")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("TICKLE")
	v.AutomaticEnv()

	v.SetDefault("db_path", filepath.Join(dir, "tickle.db"))
	v.SetDefault("notify_state_path", filepath.Join(dir, "notifications.json"))
	v.SetDefault("upcoming_days", 7)
	v.SetDefault("snooze_minutes", 15)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		// No config file is fine; defaults apply.
	}

	cfg := Config{
		DBPath:          v.GetString("db_path"),
		NotifyStatePath: v.GetString("notify_state_path"),
		UpcomingDays:    v.GetInt("upcoming_days"),
		SnoozeMinutes:   v.GetInt("snooze_minutes"),
	}
	if cfg.UpcomingDays < 1 {
		cfg.UpcomingDays = 7
	}
	if cfg.SnoozeMinutes < 1 {
		cfg.SnoozeMinutes = 15
	}
	return cfg, nil
}
