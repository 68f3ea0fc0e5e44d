package feed

import "time"

// Effect is an instruction for the shell around the reducer: mount or
// control media, fire a network mutation, arm a timer, touch a platform
// capability. Step computes effects; it never performs them.
type Effect interface{ isEffect() }

// LoadMedia mounts a post's media element and begins loading. AndPlay
// asks the element to start playback once loaded.
type LoadMedia struct {
	Post    Post
	AndPlay bool
	Muted   bool
}

// UnloadMedia tears down a mounted media element.
type UnloadMedia struct{ PostID string }

// PlayMedia starts (or resumes) playback of a mounted element.
type PlayMedia struct {
	PostID string
	Muted  bool
}

// PauseMedia pauses a mounted element.
type PauseMedia struct{ PostID string }

// SetMuted applies the global mute flag to every mounted element.
type SetMuted struct{ Muted bool }

// FireMutation dispatches a fire-and-forget backend mutation.
type FireMutation struct {
	Op     MutationOp
	PostID string
	Author string // for follow/unfollow
	Text   string // for comments
}

// FetchComments lazily loads the comment list for a post.
type FetchComments struct{ PostID string }

// StartTimer arms a one-shot timer; the shell must deliver
// TimerFired{Key, Gen} after Duration.
type StartTimer struct {
	Key      TimerKey
	Gen      int
	Duration time.Duration
}

// AnimateSnap asks the shell to animate the drag offset back to rest.
// Direction is -1/+1 for a committed transition, 0 for a cancelled one.
// The shell reports completion with SnapFinished.
type AnimateSnap struct {
	From      float64
	Direction int
}

// CopyToClipboard writes text to the system clipboard, best-effort.
type CopyToClipboard struct{ Text string }

// HapticPulse triggers best-effort haptic feedback.
type HapticPulse struct{}

// ShowToast surfaces a transient message.
type ShowToast struct {
	Text    string
	IsError bool
}

func (LoadMedia) isEffect()       {}
func (UnloadMedia) isEffect()     {}
func (PlayMedia) isEffect()       {}
func (PauseMedia) isEffect()      {}
func (SetMuted) isEffect()        {}
func (FireMutation) isEffect()    {}
func (FetchComments) isEffect()   {}
func (StartTimer) isEffect()      {}
func (AnimateSnap) isEffect()     {}
func (CopyToClipboard) isEffect() {}
func (HapticPulse) isEffect()     {}
func (ShowToast) isEffect()       {}
