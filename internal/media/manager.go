// Package media manages the pool of mounted media elements. A terminal
// cannot decode video, so an element is simulated: loading probes the
// media URL over HTTP and the element then reports waiting, playing or
// failed back into the event loop. The controller bounds the pool to
// the preload window, so at most 2×range+1 elements exist at once.
package media

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"reel/internal/feed"
	"reel/internal/log"
)

// EventKind classifies an element callback.
type EventKind int

const (
	EventWaiting EventKind = iota
	EventPlaying
	EventEnded
	EventFailed
)

// Event is one element callback, keyed by post id.
type Event struct {
	PostID string
	Kind   EventKind
	Reason string
}

// ProbeFunc checks that a media URL is reachable. Injectable for tests.
type ProbeFunc func(ctx context.Context, url string) error

// Manager owns the mounted elements.
type Manager struct {
	mu       sync.Mutex
	elements map[string]*element
	events   chan Event
	probe    ProbeFunc
	muted    bool
	closed   bool
}

type element struct {
	post    feed.Post
	cancel  context.CancelFunc
	playing bool
}

// NewManager creates a manager probing over plain HTTP.
func NewManager() *Manager {
	httpc := &http.Client{Timeout: 8 * time.Second}
	return NewManagerWithProbe(func(ctx context.Context, url string) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
		if err != nil {
			return err
		}
		resp, err := httpc.Do(req)
		if err != nil {
			return err
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusMethodNotAllowed {
			// Some origins reject HEAD; fall back to a ranged GET.
			req, err = http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return err
			}
			req.Header.Set("Range", "bytes=0-0")
			resp, err = httpc.Do(req)
			if err != nil {
				return err
			}
			resp.Body.Close()
		}
		if resp.StatusCode >= 400 {
			return fmt.Errorf("media responded %d", resp.StatusCode)
		}
		return nil
	})
}

// NewManagerWithProbe creates a manager with a custom probe.
func NewManagerWithProbe(probe ProbeFunc) *Manager {
	return &Manager{
		elements: make(map[string]*element),
		events:   make(chan Event, 32),
		probe:    probe,
	}
}

// Events returns the element callback channel.
func (m *Manager) Events() <-chan Event {
	return m.events
}

// Load mounts an element for the post and begins loading its media.
// Loading an already-mounted post tears the old element down first, so
// retry is just another Load.
func (m *Manager) Load(post feed.Post, andPlay bool) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	if old, ok := m.elements[post.ID]; ok {
		old.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	el := &element{post: post, cancel: cancel, playing: andPlay}
	m.elements[post.ID] = el
	m.mu.Unlock()

	go m.load(ctx, post)
}

func (m *Manager) load(ctx context.Context, post feed.Post) {
	m.emit(ctx, Event{PostID: post.ID, Kind: EventWaiting})
	if err := m.probe(ctx, post.MediaURL); err != nil {
		if ctx.Err() != nil {
			return // unmounted mid-load
		}
		log.Debug("media load failed for %s: %v", post.ID, err)
		m.emit(ctx, Event{PostID: post.ID, Kind: EventFailed, Reason: err.Error()})
		return
	}
	m.mu.Lock()
	el, ok := m.elements[post.ID]
	playing := ok && el.playing
	m.mu.Unlock()
	if playing {
		m.emit(ctx, Event{PostID: post.ID, Kind: EventPlaying})
	}
}

func (m *Manager) emit(ctx context.Context, ev Event) {
	select {
	case m.events <- ev:
	case <-ctx.Done():
	}
}

// Unload tears down a mounted element.
func (m *Manager) Unload(postID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if el, ok := m.elements[postID]; ok {
		el.cancel()
		delete(m.elements, postID)
	}
}

// Play resumes a mounted element and reports the playing state.
func (m *Manager) Play(postID string) {
	m.mu.Lock()
	el, ok := m.elements[postID]
	if ok {
		el.playing = true
	}
	closed := m.closed
	m.mu.Unlock()
	if ok && !closed {
		select {
		case m.events <- Event{PostID: postID, Kind: EventPlaying}:
		default:
		}
	}
}

// Pause stops playback of a mounted element.
func (m *Manager) Pause(postID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if el, ok := m.elements[postID]; ok {
		el.playing = false
	}
}

// SetMuted applies the global mute flag. Simulated playback carries it
// for display purposes only.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// Mounted returns the ids of currently mounted elements.
func (m *Manager) Mounted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.elements))
	for id := range m.elements {
		out = append(out, id)
	}
	return out
}

// Close tears down every element.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	for id, el := range m.elements {
		el.cancel()
		delete(m.elements, id)
	}
}
