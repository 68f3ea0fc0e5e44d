package feed

// MutationOp names a backend mutation fired by the controller.
type MutationOp string

const (
	OpLike     MutationOp = "like"
	OpUnlike   MutationOp = "unlike"
	OpSave     MutationOp = "save"
	OpUnsave   MutationOp = "unsave"
	OpFollow   MutationOp = "follow"
	OpUnfollow MutationOp = "unfollow"
	OpShare    MutationOp = "share"
	OpView     MutationOp = "view"
	OpComment  MutationOp = "comment"
)

// Event is the tagged union of everything that can happen to the
// controller: user input, media element callbacks, timer expiries and
// mutation results. Every state change flows through Step as one of
// these.
type Event interface{ isEvent() }

// FeedLoaded delivers the fetched post list.
type FeedLoaded struct{ Posts []Post }

// FeedLoadFailed reports that the feed fetch failed.
type FeedLoadFailed struct{ Err error }

// DragStarted begins a vertical drag gesture.
type DragStarted struct{}

// DragMoved updates the drag offset, a signed fraction of viewport
// height (negative = dragged up, toward the next post).
type DragMoved struct{ Offset float64 }

// DragReleased ends the gesture; the offset at release decides commit
// versus snap-back.
type DragReleased struct{}

// NextRequested and PrevRequested are the keyboard equivalents of a
// committed drag.
type NextRequested struct{}
type PrevRequested struct{}

// SnapFinished reports that the snap/commit animation settled.
type SnapFinished struct{}

// PauseToggled flips global playback pause.
type PauseToggled struct{}

// MuteToggled flips global mute.
type MuteToggled struct{}

// Tapped is a tap on the media surface of the current post.
type Tapped struct{}

// TimerFired delivers an expired timer. Gen must match the state's
// current generation for the key or the event is stale.
type TimerFired struct {
	Key TimerKey
	Gen int
}

// Media element callbacks, keyed by post id.
type MediaWaiting struct{ PostID string }
type MediaPlaying struct{ PostID string }
type MediaEnded struct{ PostID string }
type MediaFailed struct {
	PostID string
	Reason string
}

// RetryRequested retries the current post's failed media.
type RetryRequested struct{}

// User interaction events on the current post.
type LikeToggled struct{}
type SaveToggled struct{}
type FollowToggled struct{}
type ShareRequested struct{}
type CaptionToggled struct{}
type CommentsToggled struct{}

// CommentDraftChanged mirrors the comment composer contents.
type CommentDraftChanged struct{ Text string }

// CommentSubmitted posts the current draft.
type CommentSubmitted struct{}

// CommentsLoaded delivers the lazily fetched comment list.
type CommentsLoaded struct {
	PostID   string
	Comments []Comment
	Err      error
}

// MutationResolved reports a finished backend mutation. Comment is set
// for OpComment successes.
type MutationResolved struct {
	Op      MutationOp
	PostID  string
	Author  string
	Comment *Comment
	Err     error
}

// TornDown is dispatched once on controller teardown.
type TornDown struct{}

func (FeedLoaded) isEvent()          {}
func (FeedLoadFailed) isEvent()      {}
func (DragStarted) isEvent()         {}
func (DragMoved) isEvent()           {}
func (DragReleased) isEvent()        {}
func (NextRequested) isEvent()       {}
func (PrevRequested) isEvent()       {}
func (SnapFinished) isEvent()        {}
func (PauseToggled) isEvent()        {}
func (MuteToggled) isEvent()         {}
func (Tapped) isEvent()              {}
func (TimerFired) isEvent()          {}
func (MediaWaiting) isEvent()        {}
func (MediaPlaying) isEvent()        {}
func (MediaEnded) isEvent()          {}
func (MediaFailed) isEvent()         {}
func (RetryRequested) isEvent()      {}
func (LikeToggled) isEvent()         {}
func (SaveToggled) isEvent()         {}
func (FollowToggled) isEvent()       {}
func (ShareRequested) isEvent()      {}
func (CaptionToggled) isEvent()      {}
func (CommentsToggled) isEvent()     {}
func (CommentDraftChanged) isEvent() {}
func (CommentSubmitted) isEvent()    {}
func (CommentsLoaded) isEvent()      {}
func (MutationResolved) isEvent()    {}
func (TornDown) isEvent()            {}
