package feed

import (
	"fmt"
	"strings"
	"time"
)

// Step is the single transition function for the controller. Given the
// current state and one event it returns the successor state plus the
// effects the shell must execute. It performs no I/O and never mutates
// its input, so every interleaving the event loop can produce is just a
// sequence of Step calls.
func Step(p Params, s State, ev Event) (State, []Effect) {
	if s.TornDown {
		return s, nil
	}
	ns := s.clone()

	switch ev := ev.(type) {
	case FeedLoaded:
		ns.Feed = NewFeed(ev.Posts)
		ns.Loaded = true
		ns.LoadErr = ""
		ns.Cursor = Cursor{}
		if ns.Feed.Len() == 0 {
			return ns, nil
		}
		return ns, syncWindow(p, &ns)

	case FeedLoadFailed:
		ns.LoadErr = ev.Err.Error()
		return ns, []Effect{ShowToast{Text: "couldn't load feed: " + ev.Err.Error(), IsError: true}}

	case DragStarted:
		if !ns.Loaded || ns.Feed.Len() == 0 {
			return ns, nil
		}
		// A new gesture always begins from a clean offset, even if a
		// snap animation was still settling.
		ns.Cursor.Dragging = true
		ns.Cursor.Transitioning = false
		ns.Cursor.DragOffset = 0
		return ns, nil

	case DragMoved:
		if !ns.Cursor.Dragging {
			return ns, nil
		}
		ns.Cursor.DragOffset = ev.Offset
		return ns, nil

	case DragReleased:
		if !ns.Cursor.Dragging {
			return ns, nil
		}
		offset := ns.Cursor.DragOffset
		ns.Cursor.Dragging = false
		ns.Cursor.DragOffset = 0
		ns.Cursor.Transitioning = true
		if offset <= -p.DragThreshold {
			effects := advance(p, &ns, 1)
			return ns, append(effects, AnimateSnap{From: offset, Direction: 1})
		}
		if offset >= p.DragThreshold {
			effects := advance(p, &ns, -1)
			return ns, append(effects, AnimateSnap{From: offset, Direction: -1})
		}
		return ns, []Effect{AnimateSnap{From: offset, Direction: 0}}

	case SnapFinished:
		ns.Cursor.Transitioning = false
		return ns, nil

	case NextRequested:
		return ns, advance(p, &ns, 1)

	case PrevRequested:
		return ns, advance(p, &ns, -1)

	case PauseToggled:
		return ns, togglePause(&ns)

	case MuteToggled:
		ns.Muted = !ns.Muted
		return ns, []Effect{SetMuted{Muted: ns.Muted}}

	case Tapped:
		return stepTap(p, ns)

	case TimerFired:
		return stepTimer(&ns, ev)

	case MediaWaiting:
		if ns.Mounted[ev.PostID] && ns.MediaErrors[ev.PostID] == "" {
			ns.Buffering[ev.PostID] = true
		}
		return ns, nil

	case MediaPlaying:
		delete(ns.Buffering, ev.PostID)
		delete(ns.MediaErrors, ev.PostID)
		if !ns.Viewed[ev.PostID] {
			ns.Viewed[ev.PostID] = true
			return ns, []Effect{FireMutation{Op: OpView, PostID: ev.PostID}}
		}
		return ns, nil

	case MediaEnded:
		// Videos loop in place; a finished playback restarts unless the
		// feed is globally paused.
		if !ns.Mounted[ev.PostID] || ns.MediaErrors[ev.PostID] != "" || ns.Paused {
			return ns, nil
		}
		return ns, []Effect{PlayMedia{PostID: ev.PostID, Muted: ns.Muted}}

	case MediaFailed:
		if !ns.Mounted[ev.PostID] {
			return ns, nil
		}
		// Error and buffering are mutually exclusive; the error wins.
		delete(ns.Buffering, ev.PostID)
		reason := ev.Reason
		if reason == "" {
			reason = "playback failed"
		}
		ns.MediaErrors[ev.PostID] = reason
		return ns, nil

	case RetryRequested:
		post := ns.Current()
		if post.ID == "" || ns.MediaErrors[post.ID] == "" {
			return ns, nil
		}
		delete(ns.MediaErrors, post.ID)
		return ns, []Effect{LoadMedia{Post: post, AndPlay: !ns.Paused, Muted: ns.Muted}}

	case LikeToggled:
		post := ns.Current()
		if post.ID == "" {
			return ns, nil
		}
		if ns.Liked[post.ID] {
			delete(ns.Liked, post.ID)
			bumpDelta(&ns, post.ID, func(c *Counters) { c.Likes-- })
			return ns, []Effect{FireMutation{Op: OpUnlike, PostID: post.ID}}
		}
		return ns, likeOn(p, &ns, post.ID)

	case SaveToggled:
		post := ns.Current()
		if post.ID == "" {
			return ns, nil
		}
		if ns.Saved[post.ID] {
			delete(ns.Saved, post.ID)
			bumpDelta(&ns, post.ID, func(c *Counters) { c.Saves-- })
			return ns, []Effect{FireMutation{Op: OpUnsave, PostID: post.ID}}
		}
		ns.Saved[post.ID] = true
		bumpDelta(&ns, post.ID, func(c *Counters) { c.Saves++ })
		return ns, []Effect{FireMutation{Op: OpSave, PostID: post.ID}}

	case FollowToggled:
		post := ns.Current()
		if post.Author == "" {
			return ns, nil
		}
		author := post.Author
		switch {
		case ns.Followed[author]:
			// Unfollow is immediate, no transient state.
			delete(ns.Followed, author)
			return ns, []Effect{FireMutation{Op: OpUnfollow, PostID: post.ID, Author: author}}
		case ns.PendingFollow[author]:
			return ns, nil
		default:
			ns.PendingFollow[author] = true
			timer := armTimer(&ns, TimerKey{Kind: TimerFollowSettle, ID: author}, p.FollowSettle)
			return ns, []Effect{timer, FireMutation{Op: OpFollow, PostID: post.ID, Author: author}}
		}

	case ShareRequested:
		post := ns.Current()
		if post.ID == "" {
			return ns, nil
		}
		bumpDelta(&ns, post.ID, func(c *Counters) { c.Shares++ })
		return ns, []Effect{
			CopyToClipboard{Text: shareURL(p, post.ID)},
			FireMutation{Op: OpShare, PostID: post.ID},
			ShowToast{Text: "link copied"},
		}

	case CaptionToggled:
		post := ns.Current()
		if post.ID == "" {
			return ns, nil
		}
		if ns.ExpandedCaptions[post.ID] {
			delete(ns.ExpandedCaptions, post.ID)
		} else {
			ns.ExpandedCaptions[post.ID] = true
		}
		return ns, nil

	case CommentsToggled:
		if ns.CommentsOpen {
			closeComments(&ns)
			return ns, nil
		}
		post := ns.Current()
		if post.ID == "" {
			return ns, nil
		}
		ns.CommentsOpen = true
		ns.CommentsLoading = true
		return ns, []Effect{FetchComments{PostID: post.ID}}

	case CommentsLoaded:
		if !ns.CommentsOpen || ev.PostID != ns.Current().ID {
			return ns, nil
		}
		ns.CommentsLoading = false
		if ev.Err != nil {
			return ns, []Effect{ShowToast{Text: "couldn't load comments", IsError: true}}
		}
		ns.Comments = ev.Comments
		return ns, nil

	case CommentDraftChanged:
		ns.CommentDraft = ev.Text
		return ns, nil

	case CommentSubmitted:
		post := ns.Current()
		text := strings.TrimSpace(ns.CommentDraft)
		if post.ID == "" || text == "" || ns.PostingComment {
			return ns, nil
		}
		ns.PostingComment = true
		return ns, []Effect{FireMutation{Op: OpComment, PostID: post.ID, Text: text}}

	case MutationResolved:
		return stepMutationResolved(p, ns, ev)

	case TornDown:
		ns.TornDown = true
		var effects []Effect
		for id := range ns.Mounted {
			effects = append(effects, UnloadMedia{PostID: id})
		}
		ns.Mounted = map[string]bool{}
		ns.Buffering = map[string]bool{}
		return ns, effects
	}

	return ns, nil
}

// stepTap implements the single/double tap disambiguation: the single
// tap's pause action is deferred on a timer that a second tap preempts.
func stepTap(p Params, ns State) (State, []Effect) {
	post := ns.Current()
	if post.ID == "" {
		return ns, nil
	}

	if ns.PendingTap == post.ID {
		// Second tap inside the window: a double tap.
		ns.PendingTap = ""
		ns.Timers[TimerKey{Kind: TimerTap, ID: post.ID}]++ // invalidate the pending single-tap timer

		ns.HeartBurst[post.ID] = true
		effects := []Effect{
			armTimer(&ns, TimerKey{Kind: TimerHeartBurst, ID: post.ID}, p.HeartBurst),
			HapticPulse{},
		}
		if !ns.Liked[post.ID] {
			effects = append(effects, likeOn(p, &ns, post.ID)...)
		}
		return ns, effects
	}

	ns.PendingTap = post.ID
	return ns, []Effect{armTimer(&ns, TimerKey{Kind: TimerTap, ID: post.ID}, p.DoubleTapWindow)}
}

func stepTimer(ns *State, ev TimerFired) (State, []Effect) {
	if ns.Timers[ev.Key] != ev.Gen {
		return *ns, nil // stale timer
	}
	switch ev.Key.Kind {
	case TimerTap:
		if ns.PendingTap != ev.Key.ID {
			return *ns, nil
		}
		// The window closed uncontested: the tap was a single tap.
		ns.PendingTap = ""
		return *ns, togglePause(ns)
	case TimerLikePulse:
		delete(ns.LikePulse, ev.Key.ID)
	case TimerHeartBurst:
		delete(ns.HeartBurst, ev.Key.ID)
	case TimerFollowSettle:
		if ns.PendingFollow[ev.Key.ID] {
			delete(ns.PendingFollow, ev.Key.ID)
			ns.Followed[ev.Key.ID] = true
		}
	}
	return *ns, nil
}

func stepMutationResolved(p Params, ns State, ev MutationResolved) (State, []Effect) {
	if ev.Err == nil {
		if ev.Op == OpComment {
			ns.PostingComment = false
			ns.CommentDraft = ""
			bumpDelta(&ns, ev.PostID, func(c *Counters) { c.Comments++ })
			if ev.Comment != nil && ns.CommentsOpen && ns.Current().ID == ev.PostID {
				ns.Comments = append(ns.Comments, *ev.Comment)
			}
		}
		// For everything else the server becomes source of truth on the
		// next full refetch; the optimistic overlay stays as-is.
		return ns, nil
	}

	effects := []Effect{ShowToast{Text: mutationFailureText(ev.Op), IsError: true}}
	if ev.Op == OpComment {
		// Keep the draft so the user can retry.
		ns.PostingComment = false
	}
	if !p.RollbackOnFailure {
		return ns, effects
	}

	switch ev.Op {
	case OpLike:
		if ns.Liked[ev.PostID] {
			delete(ns.Liked, ev.PostID)
			bumpDelta(&ns, ev.PostID, func(c *Counters) { c.Likes-- })
		}
	case OpUnlike:
		if !ns.Liked[ev.PostID] {
			ns.Liked[ev.PostID] = true
			bumpDelta(&ns, ev.PostID, func(c *Counters) { c.Likes++ })
		}
	case OpSave:
		if ns.Saved[ev.PostID] {
			delete(ns.Saved, ev.PostID)
			bumpDelta(&ns, ev.PostID, func(c *Counters) { c.Saves-- })
		}
	case OpUnsave:
		if !ns.Saved[ev.PostID] {
			ns.Saved[ev.PostID] = true
			bumpDelta(&ns, ev.PostID, func(c *Counters) { c.Saves++ })
		}
	case OpFollow:
		delete(ns.PendingFollow, ev.Author)
		delete(ns.Followed, ev.Author)
	case OpUnfollow:
		if ev.Author != "" {
			ns.Followed[ev.Author] = true
		}
	case OpShare:
		bumpDelta(&ns, ev.PostID, func(c *Counters) { c.Shares-- })
	}
	return ns, effects
}

// advance moves the cursor by exactly delta (±1), cyclic at both ends,
// and reconciles the preload window. Navigation dismisses the comments
// panel and any pending tap.
func advance(p Params, ns *State, delta int) []Effect {
	if !ns.Loaded || ns.Feed.Len() == 0 {
		return nil
	}
	ns.Cursor.Index = ns.Feed.Wrap(ns.Cursor.Index + delta)
	closeComments(ns)
	if ns.PendingTap != "" {
		ns.Timers[TimerKey{Kind: TimerTap, ID: ns.PendingTap}]++
		ns.PendingTap = ""
	}
	return syncWindow(p, ns)
}

// syncWindow reconciles the mounted media set with the preload window
// around the cursor: exactly the posts within PreloadRange stay
// mounted, in-window videos play unless globally paused, everything
// else is torn down.
func syncWindow(p Params, ns *State) []Effect {
	want := map[string]bool{}
	for _, id := range WindowIDs(ns.Feed, ns.Cursor.Index, p.PreloadRange) {
		want[id] = true
	}

	var effects []Effect
	for id := range ns.Mounted {
		if !want[id] {
			delete(ns.Mounted, id)
			delete(ns.Buffering, id)
			effects = append(effects, UnloadMedia{PostID: id})
		}
	}
	for _, idx := range WindowIndexes(ns.Feed, ns.Cursor.Index, p.PreloadRange) {
		post := ns.Feed.At(idx)
		if !ns.Mounted[post.ID] {
			ns.Mounted[post.ID] = true
			if ns.MediaErrors[post.ID] != "" {
				// A failed element is never reloaded automatically; the
				// retry affordance owns recovery.
				continue
			}
			effects = append(effects, LoadMedia{Post: post, AndPlay: !ns.Paused, Muted: ns.Muted})
			continue
		}
		if post.Kind == MediaVideo && ns.MediaErrors[post.ID] == "" {
			if ns.Paused {
				effects = append(effects, PauseMedia{PostID: post.ID})
			} else {
				effects = append(effects, PlayMedia{PostID: post.ID, Muted: ns.Muted})
			}
		}
	}
	return effects
}

func togglePause(ns *State) []Effect {
	ns.Paused = !ns.Paused
	var effects []Effect
	for id := range ns.Mounted {
		idx := ns.Feed.IndexOf(id)
		if idx < 0 || ns.Feed.At(idx).Kind != MediaVideo || ns.MediaErrors[id] != "" {
			continue
		}
		if ns.Paused {
			effects = append(effects, PauseMedia{PostID: id})
		} else {
			effects = append(effects, PlayMedia{PostID: id, Muted: ns.Muted})
		}
	}
	return effects
}

// likeOn flips a post to liked with the transient pulse and fires the
// mutation. Callers guarantee the post is currently unliked.
func likeOn(p Params, ns *State, postID string) []Effect {
	ns.Liked[postID] = true
	bumpDelta(ns, postID, func(c *Counters) { c.Likes++ })
	ns.LikePulse[postID] = true
	return []Effect{
		armTimer(ns, TimerKey{Kind: TimerLikePulse, ID: postID}, p.LikePulse),
		FireMutation{Op: OpLike, PostID: postID},
	}
}

// armTimer bumps the generation for the key and returns the matching
// StartTimer effect. A previously armed timer for the same key becomes
// stale automatically.
func armTimer(ns *State, key TimerKey, d time.Duration) StartTimer {
	ns.Timers[key]++
	return StartTimer{Key: key, Gen: ns.Timers[key], Duration: d}
}

func bumpDelta(ns *State, postID string, f func(*Counters)) {
	d := ns.Deltas[postID]
	f(&d)
	ns.Deltas[postID] = d
}

func closeComments(ns *State) {
	ns.CommentsOpen = false
	ns.CommentsLoading = false
	ns.Comments = nil
	ns.CommentDraft = ""
	ns.PostingComment = false
}

func shareURL(p Params, postID string) string {
	base := strings.TrimRight(p.ShareBaseURL, "/")
	return fmt.Sprintf("%s/p/%s", base, postID)
}

func mutationFailureText(op MutationOp) string {
	switch op {
	case OpLike, OpUnlike:
		return "like didn't reach the server"
	case OpSave, OpUnsave:
		return "save didn't reach the server"
	case OpFollow, OpUnfollow:
		return "follow didn't reach the server"
	case OpComment:
		return "comment failed to post"
	case OpShare:
		return "share wasn't recorded"
	default:
		return "action failed"
	}
}
