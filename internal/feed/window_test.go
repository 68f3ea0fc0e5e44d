package feed_test

import (
	"testing"

	"reel/internal/feed"

	"github.com/alecthomas/assert"
)

func idsFeed(ids ...string) feed.Feed {
	posts := make([]feed.Post, len(ids))
	for i, id := range ids {
		posts[i] = feed.Post{ID: id}
	}
	return feed.NewFeed(posts)
}

func TestWindowIndexes(t *testing.T) {
	f := idsFeed("a", "b", "c", "d", "e", "f")

	t.Run("centered window", func(t *testing.T) {
		assert.Equal(t, []int{1, 2, 3}, feed.WindowIndexes(f, 2, 1))
	})

	t.Run("wraps at the start", func(t *testing.T) {
		assert.Equal(t, []int{5, 0, 1}, feed.WindowIndexes(f, 0, 1))
	})

	t.Run("wraps at the end", func(t *testing.T) {
		assert.Equal(t, []int{4, 5, 0}, feed.WindowIndexes(f, 5, 1))
	})

	t.Run("wider radius", func(t *testing.T) {
		assert.Equal(t, []int{4, 5, 0, 1, 2}, feed.WindowIndexes(f, 0, 2))
	})

	t.Run("covering window lists each index once", func(t *testing.T) {
		short := idsFeed("a", "b", "c")
		assert.Equal(t, []int{0, 1, 2}, feed.WindowIndexes(short, 1, 1))
		assert.Equal(t, []int{0, 1, 2}, feed.WindowIndexes(short, 0, 5))
	})

	t.Run("single post", func(t *testing.T) {
		one := idsFeed("a")
		assert.Equal(t, []int{0}, feed.WindowIndexes(one, 0, 1))
	})

	t.Run("empty feed", func(t *testing.T) {
		assert.Equal(t, 0, len(feed.WindowIndexes(feed.NewFeed(nil), 0, 1)))
	})
}

func TestWindowIDs(t *testing.T) {
	f := idsFeed("a", "b", "c", "d", "e")
	assert.Equal(t, []string{"e", "a", "b"}, feed.WindowIDs(f, 0, 1))
	assert.Equal(t, []string{"b", "c", "d"}, feed.WindowIDs(f, 2, 1))
}

func TestInWindow(t *testing.T) {
	f := idsFeed("a", "b", "c", "d", "e", "f")

	assert.True(t, feed.InWindow(f, 0, 1, 0))
	assert.True(t, feed.InWindow(f, 0, 1, 1))
	assert.True(t, feed.InWindow(f, 0, 1, 5), "wrap-around neighbor")
	assert.False(t, feed.InWindow(f, 0, 1, 2))
	assert.False(t, feed.InWindow(f, 0, 1, 3))
	assert.False(t, feed.InWindow(feed.NewFeed(nil), 0, 1, 0))
}
