// Package config loads and merges hookline configuration from
// .hookline.yaml and resolves per-hook settings, including skip requests
// taken from the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigName is the config file looked up at the repository root.
const DefaultConfigName = ".hookline.yaml"

// HookConfig holds the per-hook settings from the config file.
type HookConfig struct {
	// Enabled gates the hook. Omitted means enabled.
	Enabled *bool `yaml:"enabled"`

	// Required makes the hook run even when a skip is requested, and
	// marks its failure as blocking.
	Required bool `yaml:"required"`

	// WarnOnly downgrades failures to warnings.
	WarnOnly bool `yaml:"warn_only"`

	// Command declares a user-defined hook: the literal argument vector
	// to execute. Names with a command do not need to be builtins.
	Command []string `yaml:"command"`
}

// HistoryConfig controls the sqlite run history.
type HistoryConfig struct {
	// Enabled turns run recording on.
	Enabled bool `yaml:"enabled"`

	// Path is the database location, relative to the git directory
	// unless absolute.
	Path string `yaml:"path"`

	// KeepDays prunes runs older than this many days (0 = keep forever).
	KeepDays int `yaml:"keep_days"`
}

// LogConfig controls the rotating debug log.
type LogConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Path       string `yaml:"path"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Config is the root of .hookline.yaml.
type Config struct {
	// Events maps a lifecycle event (pre-commit, pre-push) to the
	// ordered list of hook names to run for it.
	Events map[string][]string `yaml:"events"`

	// Hooks holds per-hook settings keyed by hook name.
	Hooks map[string]HookConfig `yaml:"hooks"`

	// History configures the sqlite run history.
	History HistoryConfig `yaml:"history"`

	// Log configures the debug log file.
	Log LogConfig `yaml:"log"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Events: map[string][]string{
			"pre-commit": {"gofmt", "trailing-whitespace", "yaml-syntax"},
			"pre-push":   {"go-vet"},
		},
		Hooks: map[string]HookConfig{},
		History: HistoryConfig{
			Enabled:  true,
			Path:     "hookline/history.db",
			KeepDays: 90,
		},
		Log: LogConfig{
			Enabled:    false,
			Path:       "hookline/debug.log",
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
	}
}

// LoadConfig reads the config file at path and merges it over the
// defaults. A missing file yields the defaults; a malformed file is an
// error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if len(loaded.Events) > 0 {
		cfg.Events = loaded.Events
	}
	if len(loaded.Hooks) > 0 {
		cfg.Hooks = loaded.Hooks
	}
	if loaded.History != (HistoryConfig{}) {
		cfg.History = loaded.History
	}
	if loaded.Log != (LogConfig{}) {
		cfg.Log = loaded.Log
	}
	return cfg, nil
}

// ParseSkipList interprets the HOOKLINE_SKIP / SKIP environment value: a
// comma- or space-separated list of hook names, or "all".
func ParseSkipList(value string) map[string]bool {
	skips := make(map[string]bool)
	for _, part := range strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' '
	}) {
		name := strings.ToLower(strings.TrimSpace(part))
		if name != "" {
			skips[name] = true
		}
	}
	return skips
}

// SkipListFromEnv reads the skip request for this run. HOOKLINE_SKIP
// wins over the generic SKIP.
func SkipListFromEnv() map[string]bool {
	if v := os.Getenv("HOOKLINE_SKIP"); v != "" {
		return ParseSkipList(v)
	}
	return ParseSkipList(os.Getenv("SKIP"))
}
