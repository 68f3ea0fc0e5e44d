package tui

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"reel/internal/client"
	"reel/internal/config"
	"reel/internal/feed"
	"reel/internal/server"
	"reel/internal/tui/messages"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	ts := httptest.NewServer(server.New(server.SeedPosts("http://unused.test")).Handler())
	t.Cleanup(ts.Close)

	cfg := config.New()
	m := New(cfg, client.New(ts.URL, cfg.RequestTimeout()), nil)
	t.Cleanup(m.teardown)
	return m
}

func testPosts(ts *httptest.Server, n int) []feed.Post {
	posts := make([]feed.Post, n)
	for i := range posts {
		posts[i] = feed.Post{
			ID:       fmt.Sprintf("p%d", i),
			Kind:     feed.MediaVideo,
			MediaURL: ts.URL + "/healthz",
			Author:   fmt.Sprintf("author%d", i),
			Caption:  fmt.Sprintf("caption %d", i),
		}
	}
	return posts
}

// loadModel builds a model and feeds it a loaded feed plus a terminal
// size, the way the program does on startup.
func loadModel(t *testing.T, n int) *Model {
	t.Helper()
	ts := httptest.NewServer(server.New(nil).Handler())
	t.Cleanup(ts.Close)

	cfg := config.New()
	m := New(cfg, client.New(ts.URL, cfg.RequestTimeout()), nil)
	t.Cleanup(m.teardown)

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m.Update(messages.FeedLoadedMsg{Posts: testPosts(ts, n)})
	require.True(t, m.State().Loaded)
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestKeyboardNavigation(t *testing.T) {
	m := loadModel(t, 5)

	m.Update(key("j"))
	assert.Equal(t, 1, m.State().Cursor.Index)
	m.Update(key("down"))
	assert.Equal(t, 2, m.State().Cursor.Index)
	m.Update(key("k"))
	m.Update(key("up"))
	m.Update(key("up"))
	assert.Equal(t, 4, m.State().Cursor.Index, "wraps past the start")
}

func TestKeyboardToggles(t *testing.T) {
	m := loadModel(t, 3)
	id := m.State().Current().ID

	m.Update(key("l"))
	assert.True(t, m.State().Liked[id])
	m.Update(key("s"))
	assert.True(t, m.State().Saved[id])
	m.Update(key(" "))
	assert.True(t, m.State().Paused)
	m.Update(key("m"))
	muted := m.State().Muted
	m.Update(key("m"))
	assert.Equal(t, !muted, m.State().Muted)
}

func TestMouseWheelNavigates(t *testing.T) {
	m := loadModel(t, 4)

	m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, 1, m.State().Cursor.Index)
	m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.Equal(t, 0, m.State().Cursor.Index)
}

func TestMouseDragCommits(t *testing.T) {
	m := loadModel(t, 4) // height 40, threshold 0.12 -> 5 rows

	m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, Y: 20})
	m.Update(tea.MouseMsg{Action: tea.MouseActionMotion, Y: 14})
	require.True(t, m.State().Cursor.Dragging)
	assert.InDelta(t, -0.15, m.State().Cursor.DragOffset, 0.001)

	m.Update(tea.MouseMsg{Action: tea.MouseActionRelease, Y: 14})
	assert.False(t, m.State().Cursor.Dragging)
	assert.Equal(t, 1, m.State().Cursor.Index)
	assert.True(t, m.springActive, "snap animation runs after release")
}

func TestMouseDragBelowThresholdSnapsBack(t *testing.T) {
	m := loadModel(t, 4)

	m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, Y: 20})
	m.Update(tea.MouseMsg{Action: tea.MouseActionMotion, Y: 19})
	m.Update(tea.MouseMsg{Action: tea.MouseActionRelease, Y: 19})
	assert.Equal(t, 0, m.State().Cursor.Index)
}

func TestUnmovedClickIsATap(t *testing.T) {
	m := loadModel(t, 4)
	id := m.State().Current().ID

	m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, Y: 20})
	m.Update(tea.MouseMsg{Action: tea.MouseActionRelease, Y: 20})
	assert.Equal(t, id, m.State().PendingTap)
	assert.False(t, m.State().Cursor.Dragging)
}

func TestDoubleClickLikes(t *testing.T) {
	m := loadModel(t, 4)
	id := m.State().Current().ID

	for i := 0; i < 2; i++ {
		m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, Y: 20})
		m.Update(tea.MouseMsg{Action: tea.MouseActionRelease, Y: 20})
	}
	assert.True(t, m.State().Liked[id])
	assert.False(t, m.State().Paused)
}

func TestCommentsCaptureKeys(t *testing.T) {
	m := loadModel(t, 3)

	m.Update(key("c"))
	require.True(t, m.State().CommentsOpen)

	// Ordinary keys go to the composer, not the controller.
	m.Update(key("j"))
	assert.Equal(t, 0, m.State().Cursor.Index)
	assert.Equal(t, "j", m.State().CommentDraft)

	m.Update(key("esc"))
	assert.False(t, m.State().CommentsOpen)
	m.Update(key("j"))
	assert.Equal(t, 1, m.State().Cursor.Index)
}

func TestTimerMessageDrivesController(t *testing.T) {
	m := loadModel(t, 3)
	id := m.State().Current().ID

	m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, Y: 20})
	m.Update(tea.MouseMsg{Action: tea.MouseActionRelease, Y: 20})
	require.Equal(t, id, m.State().PendingTap)

	tapKey := feed.TimerKey{Kind: feed.TimerTap, ID: id}
	m.Update(messages.TimerMsg{Key: tapKey, Gen: m.State().Timers[tapKey]})
	assert.True(t, m.State().Paused)
	assert.Empty(t, m.State().PendingTap)
}

func TestViewStates(t *testing.T) {
	t.Run("loading", func(t *testing.T) {
		m := newTestModel(t)
		assert.Contains(t, m.View(), "loading feed")
	})

	t.Run("load failure", func(t *testing.T) {
		m := newTestModel(t)
		m.Update(messages.FeedLoadedMsg{Err: fmt.Errorf("connection refused")})
		assert.Contains(t, m.View(), "feed unavailable")
	})

	t.Run("empty feed", func(t *testing.T) {
		m := newTestModel(t)
		m.Update(messages.FeedLoadedMsg{Posts: nil})
		assert.Contains(t, m.View(), "nothing to watch")
	})

	t.Run("loaded feed shows post and position", func(t *testing.T) {
		m := loadModel(t, 3)
		out := m.View()
		assert.Contains(t, out, "@author0")
		assert.Contains(t, out, "caption 0")
		assert.Contains(t, out, "1/3")
	})

	t.Run("media error shows retry hint", func(t *testing.T) {
		m := loadModel(t, 3)
		id := m.State().Current().ID
		m.dispatch(feed.MediaFailed{PostID: id, Reason: "404"})
		out := m.View()
		assert.Contains(t, out, "media failed")
		assert.Contains(t, out, "[r] retry")
	})
}

func TestConfigReloadSwapsParams(t *testing.T) {
	m := loadModel(t, 3)
	require.Equal(t, 0.12, m.params.DragThreshold)

	cfg := config.New()
	cfg.Feed.DragThresholdPct = 0.3
	cfg.Behavior.RollbackOnFailure = true
	m.Update(messages.ConfigReloadedMsg{Config: cfg})

	assert.Equal(t, 0.3, m.params.DragThreshold)
	assert.True(t, m.params.RollbackOnFailure)

	var toastLines []string
	for _, tst := range m.toasts {
		toastLines = append(toastLines, tst.text)
	}
	assert.Contains(t, strings.Join(toastLines, "\n"), "config reloaded")
}

func TestTeardownIsIdempotent(t *testing.T) {
	m := loadModel(t, 3)
	m.teardown()
	assert.True(t, m.State().TornDown)
	m.teardown()
	assert.Equal(t, "", m.View(), "quitting model renders nothing")
}

func TestCompactFormatting(t *testing.T) {
	assert.Equal(t, "0", compact(0))
	assert.Equal(t, "999", compact(999))
	assert.Equal(t, "1K", compact(1000))
	assert.Equal(t, "1.2K", compact(1234))
	assert.Equal(t, "1M", compact(1_000_000))
	assert.Equal(t, "3.4M", compact(3_400_000))
}
