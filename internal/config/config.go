package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// HistoryConfig controls the run history database
type HistoryConfig struct {
	// Enabled records one row per search run
	Enabled bool `yaml:"enabled"`

	// DBPath is the SQLite file; empty means <home>/history.db
	DBPath string `yaml:"db_path"`

	// KeepRuns is the number of most recent runs kept after each insert (0 = keep all)
	KeepRuns int `yaml:"keep_runs"`
}

// Config represents searchtool configuration
type Config struct {
	// ContextLines is used when no context argument is given on the command line
	ContextLines int `yaml:"context_lines"`

	// LogLevel controls diagnostics verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir enables a per-run log file in this directory when set
	LogDir string `yaml:"log_dir"`

	// Color is the output colour mode (auto, always, never)
	Color string `yaml:"color"`

	// SlidingContext selects the corrected context algorithm
	SlidingContext bool `yaml:"sliding_context"`

	// ExcludeDirs lists directory names that are never entered
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// SkipHidden skips directories whose name starts with "."
	SkipHidden bool `yaml:"skip_hidden"`

	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ContextLines:   0,
		LogLevel:       "warn",
		LogDir:         "",
		Color:          "auto",
		SlidingContext: false,
		ExcludeDirs:    []string{},
		SkipHidden:     false,
		History: HistoryConfig{
			Enabled:  false,
			DBPath:   "",
			KeepRuns: 500,
		},
	}
}

// LoadConfig loads configuration from a YAML file.
// A missing file yields the defaults. Keys present in the file override the defaults,
// including explicit zero values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// A second pass into a map tells an explicit zero apart from an absent key
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if _, exists := rawMap["context_lines"]; exists {
		cfg.ContextLines = fileCfg.ContextLines
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(fileCfg.LogLevel)
	}
	if _, exists := rawMap["log_dir"]; exists {
		cfg.LogDir = fileCfg.LogDir
	}
	if fileCfg.Color != "" {
		cfg.Color = strings.ToLower(fileCfg.Color)
	}
	if _, exists := rawMap["sliding_context"]; exists {
		cfg.SlidingContext = fileCfg.SlidingContext
	}
	if fileCfg.ExcludeDirs != nil {
		cfg.ExcludeDirs = fileCfg.ExcludeDirs
	}
	if _, exists := rawMap["skip_hidden"]; exists {
		cfg.SkipHidden = fileCfg.SkipHidden
	}

	if historySection, exists := rawMap["history"]; exists && historySection != nil {
		historyMap, _ := historySection.(map[string]interface{})

		if _, exists := historyMap["enabled"]; exists {
			cfg.History.Enabled = fileCfg.History.Enabled
		}
		if _, exists := historyMap["db_path"]; exists {
			cfg.History.DBPath = fileCfg.History.DBPath
		}
		if _, exists := historyMap["keep_runs"]; exists {
			cfg.History.KeepRuns = fileCfg.History.KeepRuns
		}
	}

	return cfg, nil
}

// MergeWithFlags applies command-line (or environment) overrides.
// Nil pointers mean the flag was not set.
func (c *Config) MergeWithFlags(logLevel *string, logDir *string, colorMode *string, slidingContext *bool) {
	if logLevel != nil {
		c.LogLevel = strings.ToLower(*logLevel)
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if colorMode != nil {
		c.Color = strings.ToLower(*colorMode)
	}
	if slidingContext != nil {
		c.SlidingContext = *slidingContext
	}
}

// ResolveHistoryPath fills an empty history.db_path with the default under home.
func (c *Config) ResolveHistoryPath() error {
	if c.History.DBPath != "" {
		return nil
	}
	path, err := DefaultHistoryDBPath()
	if err != nil {
		return fmt.Errorf("resolve history database path: %w", err)
	}
	c.History.DBPath = path
	return nil
}

// Validate checks that configuration values are valid
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color %q, must be one of: auto, always, never", c.Color)
	}

	if c.ContextLines < 0 {
		return fmt.Errorf("context_lines must be >= 0, got %d", c.ContextLines)
	}

	for _, dir := range c.ExcludeDirs {
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf("exclude_dirs cannot contain empty names")
		}
	}

	if c.History.KeepRuns < 0 {
		return fmt.Errorf("history.keep_runs must be >= 0, got %d", c.History.KeepRuns)
	}
	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history.db_path cannot be empty when history is enabled")
	}

	return nil
}
