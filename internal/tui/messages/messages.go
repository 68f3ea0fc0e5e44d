// Package messages defines the bubbletea messages that carry async
// results back into the feed model's event loop.
package messages

import (
	"time"

	"reel/internal/client"
	"reel/internal/config"
	"reel/internal/feed"
	"reel/internal/media"
)

// FeedLoadedMsg delivers the result of the initial feed fetch.
type FeedLoadedMsg struct {
	Posts []feed.Post
	Err   error
}

// MediaEventMsg wraps a media element callback.
type MediaEventMsg struct {
	Event media.Event
}

// MutationResultMsg wraps a resolved backend mutation.
type MutationResultMsg struct {
	Result client.Result
}

// CommentsFetchedMsg delivers a lazily loaded comment list.
type CommentsFetchedMsg struct {
	PostID   string
	Comments []feed.Comment
	Err      error
}

// TimerMsg delivers an expired controller timer.
type TimerMsg struct {
	Key feed.TimerKey
	Gen int
}

// SpringTickMsg advances the snap-back spring animation.
type SpringTickMsg time.Time

// ToastTickMsg expires transient toasts.
type ToastTickMsg time.Time

// ConfigReloadedMsg delivers a hot-reloaded configuration.
type ConfigReloadedMsg struct {
	Config *config.Config
}
