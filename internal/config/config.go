// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir points at the directory of cricsheet match YAML files.
	DataDir string `koanf:"data_dir"`

	// ModelPath is where the trained model bundle is persisted.
	ModelPath string `koanf:"model_path"`

	// LeaderboardPath is where the leaderboard side artifact is written.
	LeaderboardPath string `koanf:"leaderboard_path"`

	// PlotPath is where the actual-vs-predicted diagnostic chart is written.
	PlotPath string `koanf:"plot_path"`

	// ParseWorkers bounds concurrent match-file parsing during training.
	ParseWorkers int `koanf:"parse_workers"`

	// MinLeaderboardEvents is the noise floor: players with fewer or equal
	// recorded events are excluded from the leaderboard.
	MinLeaderboardEvents int `koanf:"min_leaderboard_events"`

	// LeaderboardSize caps the persisted leaderboard length.
	LeaderboardSize int `koanf:"leaderboard_size"`

	// DefaultTopK and MaxTopK bound recommendation result sizes.
	DefaultTopK int `koanf:"default_top_k"`
	MaxTopK     int `koanf:"max_top_k"`

	// LiveScoreURL is the live score page scraped on demand.
	LiveScoreURL string `koanf:"live_score_url"`

	// LiveScoreTimeoutMS bounds the live score fetch.
	LiveScoreTimeoutMS int `koanf:"live_score_timeout_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	c := &Config{
		LogLevel:             "info",
		Addr:                 ":8000",
		DataDir:              "data/cricsheet",
		ModelPath:            "artifacts/model.json",
		LeaderboardPath:      "artifacts/leaderboard.json",
		PlotPath:             "artifacts/performance_plot.png",
		ParseWorkers:         runtime.NumCPU(),
		MinLeaderboardEvents: 5,
		LeaderboardSize:      10,
		DefaultTopK:          5,
		MaxTopK:              50,
		LiveScoreURL:         "https://www.cricbuzz.com/cricket-match/live-scores",
		LiveScoreTimeoutMS:   5000,
	}
	return c
}
