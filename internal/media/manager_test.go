package media

import (
	"context"
	"fmt"
	"testing"
	"time"

	"reel/internal/feed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func videoPost(id string) feed.Post {
	return feed.Post{ID: id, Kind: feed.MediaVideo, MediaURL: "http://media.test/" + id}
}

func collect(t *testing.T, m *Manager, n int) []Event {
	t.Helper()
	out := make([]Event, 0, n)
	for len(out) < n {
		select {
		case ev := <-m.Events():
			out = append(out, ev)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d of %d events", len(out), n)
		}
	}
	return out
}

func TestLoadReportsWaitingThenPlaying(t *testing.T) {
	m := NewManagerWithProbe(func(ctx context.Context, url string) error {
		return nil
	})
	defer m.Close()

	m.Load(videoPost("p1"), true)

	events := collect(t, m, 2)
	assert.Equal(t, Event{PostID: "p1", Kind: EventWaiting}, events[0])
	assert.Equal(t, Event{PostID: "p1", Kind: EventPlaying}, events[1])
	assert.Equal(t, []string{"p1"}, m.Mounted())
}

func TestLoadWithoutAutoplayStopsAtWaiting(t *testing.T) {
	m := NewManagerWithProbe(func(ctx context.Context, url string) error {
		return nil
	})
	defer m.Close()

	m.Load(videoPost("p1"), false)

	events := collect(t, m, 1)
	assert.Equal(t, EventWaiting, events[0].Kind)

	select {
	case ev := <-m.Events():
		t.Fatalf("unexpected event without autoplay: %+v", ev)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestLoadFailureCarriesReason(t *testing.T) {
	m := NewManagerWithProbe(func(ctx context.Context, url string) error {
		return fmt.Errorf("media responded 404")
	})
	defer m.Close()

	m.Load(videoPost("p1"), true)

	events := collect(t, m, 2)
	assert.Equal(t, EventWaiting, events[0].Kind)
	assert.Equal(t, EventFailed, events[1].Kind)
	assert.Equal(t, "media responded 404", events[1].Reason)
}

func TestUnloadMidLoadSuppressesEvents(t *testing.T) {
	started := make(chan struct{})
	m := NewManagerWithProbe(func(ctx context.Context, url string) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	defer m.Close()

	m.Load(videoPost("p1"), true)
	events := collect(t, m, 1) // waiting
	require.Equal(t, EventWaiting, events[0].Kind)

	<-started
	m.Unload("p1")
	assert.Empty(t, m.Mounted())

	select {
	case ev := <-m.Events():
		t.Fatalf("event after unload: %+v", ev)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestReloadActsAsRetry(t *testing.T) {
	attempts := 0
	m := NewManagerWithProbe(func(ctx context.Context, url string) error {
		attempts++
		if attempts == 1 {
			return fmt.Errorf("first attempt fails")
		}
		return nil
	})
	defer m.Close()

	m.Load(videoPost("p1"), true)
	events := collect(t, m, 2)
	require.Equal(t, EventFailed, events[1].Kind)

	m.Load(videoPost("p1"), true)
	events = collect(t, m, 2)
	assert.Equal(t, EventWaiting, events[0].Kind)
	assert.Equal(t, EventPlaying, events[1].Kind)
	assert.Equal(t, []string{"p1"}, m.Mounted())
}

func TestPlayAfterPause(t *testing.T) {
	m := NewManagerWithProbe(func(ctx context.Context, url string) error {
		return nil
	})
	defer m.Close()

	m.Load(videoPost("p1"), false)
	collect(t, m, 1) // waiting

	m.Play("p1")
	events := collect(t, m, 1)
	assert.Equal(t, EventPlaying, events[0].Kind)

	m.Pause("p1")
	m.Play("missing") // unmounted ids are ignored
	events = collect(t, m, 0)
	assert.Empty(t, events)
}

func TestCloseTearsDownEverything(t *testing.T) {
	m := NewManagerWithProbe(func(ctx context.Context, url string) error {
		<-ctx.Done()
		return ctx.Err()
	})

	m.Load(videoPost("p1"), true)
	m.Load(videoPost("p2"), true)
	m.Close()

	assert.Empty(t, m.Mounted())

	// Load after close is a no-op.
	m.Load(videoPost("p3"), true)
	assert.Empty(t, m.Mounted())
}
