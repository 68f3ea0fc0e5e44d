package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherDeliversReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, New().Save(path))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	cfg := New()
	cfg.API.BaseURL = "http://reloaded.test"
	require.NoError(t, cfg.Save(path))

	select {
	case got := <-w.Updates():
		assert.Equal(t, "http://reloaded.test", got.API.BaseURL)
	case <-time.After(5 * time.Second):
		t.Fatal("no config update delivered")
	}
}

func TestWatcherIgnoresBrokenEdit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, New().Save(path))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("feed: ["), 0o644))

	select {
	case got := <-w.Updates():
		t.Fatalf("broken config should not be delivered, got %+v", got)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, New().Save(path))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1"), 0o644))

	select {
	case <-w.Updates():
		t.Fatal("unrelated file must not trigger a reload")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	w, err := NewWatcher(path)
	require.NoError(t, err)
	w.Start()
	w.Stop()
	w.Stop()
}
