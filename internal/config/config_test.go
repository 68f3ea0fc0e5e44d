package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "http://localhost:8490", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 1, cfg.Feed.PreloadRange)
	assert.Equal(t, 0.12, cfg.Feed.DragThresholdPct)
	assert.Equal(t, 300, cfg.Feed.DoubleTapWindowMs)
	assert.True(t, cfg.Behavior.StartMuted)
	assert.True(t, cfg.Behavior.Autoplay)
	assert.False(t, cfg.Behavior.RollbackOnFailure)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFile(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, New(), cfg)
	})

	t.Run("partial file merges over defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
api:
  base_url: http://example.test:9000
feed:
  preload_range: 2
  filter: "alice*"
behavior:
  start_muted: false
  autoplay: true
  rollback_on_failure: true
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := LoadConfigFile(path)
		require.NoError(t, err)
		assert.Equal(t, "http://example.test:9000", cfg.API.BaseURL)
		assert.Equal(t, 2, cfg.Feed.PreloadRange)
		assert.Equal(t, "alice*", cfg.Feed.Filter)
		assert.False(t, cfg.Behavior.StartMuted)
		assert.True(t, cfg.Behavior.RollbackOnFailure)

		// Unset fields keep their defaults.
		assert.Equal(t, 0.12, cfg.Feed.DragThresholdPct)
		assert.Equal(t, 300, cfg.Feed.DoubleTapWindowMs)
		assert.Equal(t, "#7B61FF", cfg.Theme.Primary)
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api: ["), 0o644))
		_, err := LoadConfigFile(path)
		assert.Error(t, err)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("feed:\n  drag_threshold_pct: 1.5\n"), 0o644))
		_, err := LoadConfigFile(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults pass", func(*Config) {}, true},
		{"negative preload", func(c *Config) { c.Feed.PreloadRange = -1 }, false},
		{"zero preload is allowed", func(c *Config) { c.Feed.PreloadRange = 0 }, true},
		{"threshold at one", func(c *Config) { c.Feed.DragThresholdPct = 1 }, false},
		{"threshold at zero", func(c *Config) { c.Feed.DragThresholdPct = 0 }, false},
		{"zero tap window", func(c *Config) { c.Feed.DoubleTapWindowMs = 0 }, false},
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := New()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	cfg := New()
	cfg.API.BaseURL = "http://saved.test"
	cfg.Feed.Filter = "bob*"
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://saved.test", loaded.API.BaseURL)
	assert.Equal(t, "bob*", loaded.Feed.Filter)
	assert.Equal(t, cfg.Feed.PreloadRange, loaded.Feed.PreloadRange)
}
