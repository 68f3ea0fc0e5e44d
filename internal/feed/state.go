package feed

import "time"

// Params holds the tuning constants the transition function needs. They
// come from configuration and stay fixed for the life of a controller
// (a config reload swaps the whole Params value).
type Params struct {
	// DragThreshold is the fraction of viewport height a drag must cross
	// to commit a post change.
	DragThreshold float64
	// PreloadRange is how many posts on each side of the cursor keep
	// their media mounted.
	PreloadRange int

	DoubleTapWindow time.Duration
	LikePulse       time.Duration
	HeartBurst      time.Duration
	FollowSettle    time.Duration

	// RollbackOnFailure reverts an optimistic toggle when its mutation
	// fails. Off by default: the server becomes source of truth only on
	// the next full refetch.
	RollbackOnFailure bool

	StartMuted bool
	Autoplay   bool

	// ShareBaseURL is the public URL prefix used when sharing a post.
	ShareBaseURL string
}

// TimerKind identifies the purpose of a pending timer.
type TimerKind int

const (
	TimerTap TimerKind = iota
	TimerLikePulse
	TimerHeartBurst
	TimerFollowSettle
)

// TimerKey identifies one logical timer; ID is a post id or author
// handle depending on the kind.
type TimerKey struct {
	Kind TimerKind
	ID   string
}

// Cursor is the transient navigation state: which post is current plus
// in-flight drag bookkeeping. None of it is persisted.
type Cursor struct {
	Index         int
	DragOffset    float64 // signed fraction of viewport height; negative = dragged up
	Dragging      bool
	Transitioning bool
}

// State is the complete controller state. Step never mutates its input;
// it clones first and returns the successor, so tests can compare
// states across transitions and the event loop can't tear a read.
type State struct {
	Feed   Feed
	Cursor Cursor

	Loaded  bool
	LoadErr string

	Paused bool
	Muted  bool

	// Interaction overlay: the client's optimistic view, reconciled
	// (not replaced) as mutations resolve.
	Liked            map[string]bool
	Saved            map[string]bool
	Followed         map[string]bool // keyed by author handle
	PendingFollow    map[string]bool // transient "following..." by handle
	ExpandedCaptions map[string]bool
	Deltas           map[string]Counters // local count adjustments per post

	// Media lifecycle
	Mounted     map[string]bool
	Buffering   map[string]bool
	MediaErrors map[string]string
	Viewed      map[string]bool

	// Transient visual flags
	LikePulse  map[string]bool
	HeartBurst map[string]bool

	// Comments panel for the current post
	CommentsOpen    bool
	CommentsLoading bool
	Comments        []Comment
	CommentDraft    string
	PostingComment  bool

	// Tap disambiguation: a single tap's pause action is deferred until
	// the double-tap window closes uncontested.
	PendingTap string // post id, empty when no tap pending

	// Timers carries the current generation per timer key; a fired timer
	// whose generation no longer matches is stale and ignored.
	Timers map[TimerKey]int

	TornDown bool
}

// NewState returns the initial (pre-fetch) controller state.
func NewState(p Params) State {
	return State{
		Muted:            p.StartMuted,
		Paused:           !p.Autoplay,
		Liked:            map[string]bool{},
		Saved:            map[string]bool{},
		Followed:         map[string]bool{},
		PendingFollow:    map[string]bool{},
		ExpandedCaptions: map[string]bool{},
		Deltas:           map[string]Counters{},
		Mounted:          map[string]bool{},
		Buffering:        map[string]bool{},
		MediaErrors:      map[string]string{},
		Viewed:           map[string]bool{},
		LikePulse:        map[string]bool{},
		HeartBurst:       map[string]bool{},
		Timers:           map[TimerKey]int{},
	}
}

// Current returns the post under the cursor.
func (s State) Current() Post {
	return s.Feed.At(s.Cursor.Index)
}

// DisplayCounters returns the server counters for a post adjusted by
// the local optimistic deltas.
func (s State) DisplayCounters(p Post) Counters {
	c := p.Counters
	d := s.Deltas[p.ID]
	c.Likes += d.Likes
	c.Comments += d.Comments
	c.Shares += d.Shares
	c.Saves += d.Saves
	c.Views += d.Views
	return c
}

// clone performs a copy deep enough that the successor state shares no
// mutable containers with its predecessor.
func (s State) clone() State {
	ns := s
	ns.Liked = copySet(s.Liked)
	ns.Saved = copySet(s.Saved)
	ns.Followed = copySet(s.Followed)
	ns.PendingFollow = copySet(s.PendingFollow)
	ns.ExpandedCaptions = copySet(s.ExpandedCaptions)
	ns.Mounted = copySet(s.Mounted)
	ns.Buffering = copySet(s.Buffering)
	ns.Viewed = copySet(s.Viewed)
	ns.LikePulse = copySet(s.LikePulse)
	ns.HeartBurst = copySet(s.HeartBurst)

	ns.MediaErrors = make(map[string]string, len(s.MediaErrors))
	for k, v := range s.MediaErrors {
		ns.MediaErrors[k] = v
	}
	ns.Deltas = make(map[string]Counters, len(s.Deltas))
	for k, v := range s.Deltas {
		ns.Deltas[k] = v
	}
	ns.Timers = make(map[TimerKey]int, len(s.Timers))
	for k, v := range s.Timers {
		ns.Timers[k] = v
	}
	ns.Comments = make([]Comment, len(s.Comments))
	copy(ns.Comments, s.Comments)
	return ns
}

func copySet(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
