package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
// It defines the API endpoint, feed interaction tuning, behavior toggles
// and theme colors.
type Config struct {
	API struct {
		BaseURL        string `yaml:"base_url"`        // Feed API base URL
		TimeoutSeconds int    `yaml:"timeout_seconds"` // Per-request timeout
	} `yaml:"api"`
	Feed struct {
		PreloadRange      int     `yaml:"preload_range"`       // Posts kept mounted each side of the cursor
		DragThresholdPct  float64 `yaml:"drag_threshold_pct"`  // Fraction of viewport height a drag must cross
		DoubleTapWindowMs int     `yaml:"double_tap_window_ms"` // Window for the second tap
		LikePulseMs       int     `yaml:"like_pulse_ms"`       // Like button pulse duration
		HeartBurstMs      int     `yaml:"heart_burst_ms"`      // Double-tap heart overlay duration
		FollowSettleMs    int     `yaml:"follow_settle_ms"`    // Transient "following" duration
		Filter            string  `yaml:"filter"`              // Glob over author handle / caption
	} `yaml:"feed"`
	Behavior struct {
		StartMuted        bool `yaml:"start_muted"`         // Begin playback muted
		Autoplay          bool `yaml:"autoplay"`            // Play the current post on mount
		RollbackOnFailure bool `yaml:"rollback_on_failure"` // Revert optimistic toggles when a mutation fails
	} `yaml:"behavior"`
	Log struct {
		File  string `yaml:"file"`  // Log file path (empty = discard)
		Debug bool   `yaml:"debug"` // Verbose logging
	} `yaml:"log"`
	Theme struct {
		Primary  string `yaml:"primary"`  // Primary color for branding
		Accent   string `yaml:"accent"`   // Accent color for active elements
		Error    string `yaml:"error"`    // Error message color
		Subtle   string `yaml:"subtle"`   // De-emphasized text color
		Border   string `yaml:"border"`   // Border color for frames
	} `yaml:"theme"`
}

// New returns a configuration populated with defaults.
func New() *Config {
	return defaultConfig()
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.API.BaseURL = "http://localhost:8490"
	cfg.API.TimeoutSeconds = 10
	cfg.Feed.PreloadRange = 1
	cfg.Feed.DragThresholdPct = 0.12
	cfg.Feed.DoubleTapWindowMs = 300
	cfg.Feed.LikePulseMs = 350
	cfg.Feed.HeartBurstMs = 1000
	cfg.Feed.FollowSettleMs = 600
	cfg.Behavior.StartMuted = true
	cfg.Behavior.Autoplay = true
	cfg.Theme.Primary = "#7B61FF"
	cfg.Theme.Accent = "#73F59F"
	cfg.Theme.Error = "#F25D94"
	cfg.Theme.Subtle = "#666666"
	cfg.Theme.Border = "#7B61FF"
	return cfg
}

// DefaultPath returns the default config file location
// (~/.config/reel/config.yaml).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "reel", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	// Start with default configuration
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if tempCfg.API.BaseURL != "" {
		cfg.API.BaseURL = tempCfg.API.BaseURL
	}
	if tempCfg.API.TimeoutSeconds > 0 {
		cfg.API.TimeoutSeconds = tempCfg.API.TimeoutSeconds
	}
	if tempCfg.Feed.PreloadRange > 0 {
		cfg.Feed.PreloadRange = tempCfg.Feed.PreloadRange
	}
	if tempCfg.Feed.DragThresholdPct > 0 {
		cfg.Feed.DragThresholdPct = tempCfg.Feed.DragThresholdPct
	}
	if tempCfg.Feed.DoubleTapWindowMs > 0 {
		cfg.Feed.DoubleTapWindowMs = tempCfg.Feed.DoubleTapWindowMs
	}
	if tempCfg.Feed.LikePulseMs > 0 {
		cfg.Feed.LikePulseMs = tempCfg.Feed.LikePulseMs
	}
	if tempCfg.Feed.HeartBurstMs > 0 {
		cfg.Feed.HeartBurstMs = tempCfg.Feed.HeartBurstMs
	}
	if tempCfg.Feed.FollowSettleMs > 0 {
		cfg.Feed.FollowSettleMs = tempCfg.Feed.FollowSettleMs
	}
	if tempCfg.Feed.Filter != "" {
		cfg.Feed.Filter = tempCfg.Feed.Filter
	}
	cfg.Behavior = tempCfg.Behavior
	if tempCfg.Log.File != "" {
		cfg.Log.File = tempCfg.Log.File
	}
	cfg.Log.Debug = tempCfg.Log.Debug
	if tempCfg.Theme.Primary != "" {
		cfg.Theme.Primary = tempCfg.Theme.Primary
	}
	if tempCfg.Theme.Accent != "" {
		cfg.Theme.Accent = tempCfg.Theme.Accent
	}
	if tempCfg.Theme.Error != "" {
		cfg.Theme.Error = tempCfg.Theme.Error
	}
	if tempCfg.Theme.Subtle != "" {
		cfg.Theme.Subtle = tempCfg.Theme.Subtle
	}
	if tempCfg.Theme.Border != "" {
		cfg.Theme.Border = tempCfg.Theme.Border
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that tuning values are usable.
func (c *Config) Validate() error {
	if c.Feed.PreloadRange < 0 {
		return fmt.Errorf("preload_range must be >= 0, got %d", c.Feed.PreloadRange)
	}
	if c.Feed.DragThresholdPct <= 0 || c.Feed.DragThresholdPct >= 1 {
		return fmt.Errorf("drag_threshold_pct must be in (0, 1), got %v", c.Feed.DragThresholdPct)
	}
	if c.Feed.DoubleTapWindowMs <= 0 {
		return fmt.Errorf("double_tap_window_ms must be positive, got %d", c.Feed.DoubleTapWindowMs)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must be set")
	}
	return nil
}

// Save writes the configuration as YAML to the given path, creating
// parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// RequestTimeout returns the API timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}
