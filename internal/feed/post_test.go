package feed_test

import (
	"testing"

	"reel/internal/feed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedWrap(t *testing.T) {
	f := idsFeed("a", "b", "c", "d", "e")

	cases := []struct {
		name string
		in   int
		want int
	}{
		{"identity", 2, 2},
		{"one past the end", 5, 0},
		{"negative one", -1, 4},
		{"large positive", 12, 2},
		{"large negative", -12, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, f.Wrap(tc.in))
		})
	}

	t.Run("empty feed wraps to zero", func(t *testing.T) {
		empty := feed.NewFeed(nil)
		assert.Equal(t, 0, empty.Wrap(7))
		assert.Equal(t, 0, empty.Wrap(-7))
	})
}

func TestFeedAt(t *testing.T) {
	f := idsFeed("a", "b", "c")
	assert.Equal(t, "a", f.At(0).ID)
	assert.Equal(t, "a", f.At(3).ID)
	assert.Equal(t, "c", f.At(-1).ID)
	assert.Equal(t, "", feed.NewFeed(nil).At(0).ID)
}

func TestFeedIndexOf(t *testing.T) {
	f := idsFeed("a", "b", "c")
	assert.Equal(t, 1, f.IndexOf("b"))
	assert.Equal(t, -1, f.IndexOf("zzz"))
}

func TestFeedDistance(t *testing.T) {
	f := idsFeed("a", "b", "c", "d", "e", "f")

	assert.Equal(t, 0, f.Distance(2, 2))
	assert.Equal(t, 1, f.Distance(0, 1))
	assert.Equal(t, 1, f.Distance(0, 5), "shorter way around")
	assert.Equal(t, 3, f.Distance(0, 3))
	assert.Equal(t, 2, f.Distance(1, 5))
	assert.Equal(t, 0, feed.NewFeed(nil).Distance(0, 9))
}

func TestFilterPosts(t *testing.T) {
	posts := []feed.Post{
		{ID: "1", Author: "alice", Caption: "morning coffee"},
		{ID: "2", Author: "bob", Caption: "Street food tour"},
		{ID: "3", Author: "alicia", Caption: "skate clips"},
	}

	t.Run("empty pattern keeps everything", func(t *testing.T) {
		out, err := feed.FilterPosts(posts, "")
		require.NoError(t, err)
		assert.Len(t, out, 3)
	})

	t.Run("author glob", func(t *testing.T) {
		out, err := feed.FilterPosts(posts, "alic*")
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "1", out[0].ID)
		assert.Equal(t, "3", out[1].ID)
	})

	t.Run("caption glob is case-insensitive", func(t *testing.T) {
		out, err := feed.FilterPosts(posts, "*street*")
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "2", out[0].ID)
	})

	t.Run("no matches", func(t *testing.T) {
		out, err := feed.FilterPosts(posts, "nope")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("bad pattern errors", func(t *testing.T) {
		_, err := feed.FilterPosts(posts, "[")
		assert.Error(t, err)
	})
}
