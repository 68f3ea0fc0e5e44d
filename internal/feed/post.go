package feed

import (
	"strings"
	"time"

	"github.com/gobwas/glob"
)

// MediaKind distinguishes video posts from still images.
type MediaKind string

const (
	MediaVideo MediaKind = "video"
	MediaImage MediaKind = "image"
)

// Counters holds the engagement counts displayed with a post. The values
// are whatever the server reported at fetch time; the controller layers
// local deltas on top of them.
type Counters struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
	Saves    int `json:"saves"`
	Views    int `json:"views"`
}

// Post is one entry in the feed. Posts are immutable once fetched.
type Post struct {
	ID        string    `json:"id"`
	Kind      MediaKind `json:"media_kind"`
	MediaURL  string    `json:"media_url"`
	Caption   string    `json:"caption"`
	Author    string    `json:"author"`
	Music     string    `json:"music"`
	Counters  Counters  `json:"counters"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a single comment on a post.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Feed is a fixed-length cyclic sequence of posts. "Infinite" scrolling
// is plain modulo arithmetic over the fetched slice; nothing is ever
// materialized twice.
type Feed struct {
	posts []Post
}

// NewFeed wraps the fetched posts.
func NewFeed(posts []Post) Feed {
	return Feed{posts: posts}
}

// Len returns the number of posts.
func (f Feed) Len() int {
	return len(f.posts)
}

// Wrap maps any integer onto a valid index. Returns 0 for an empty feed.
func (f Feed) Wrap(i int) int {
	n := len(f.posts)
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

// At returns the post at the wrapped index.
func (f Feed) At(i int) Post {
	if len(f.posts) == 0 {
		return Post{}
	}
	return f.posts[f.Wrap(i)]
}

// Posts returns the underlying slice. Callers must not mutate it.
func (f Feed) Posts() []Post {
	return f.posts
}

// IndexOf returns the index of the post with the given id, or -1.
func (f Feed) IndexOf(id string) int {
	for i, p := range f.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Distance returns the wrap-aware index distance between a and b.
func (f Feed) Distance(a, b int) int {
	n := len(f.posts)
	if n == 0 {
		return 0
	}
	d := f.Wrap(a) - f.Wrap(b)
	if d < 0 {
		d = -d
	}
	if n-d < d {
		d = n - d
	}
	return d
}

// FilterPosts keeps posts whose author handle or caption matches the
// glob pattern. An empty pattern keeps everything. Matching is
// case-insensitive.
func FilterPosts(posts []Post, pattern string) ([]Post, error) {
	if pattern == "" {
		return posts, nil
	}
	g, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, err
	}
	var out []Post
	for _, p := range posts {
		if g.Match(strings.ToLower(p.Author)) || g.Match(strings.ToLower(p.Caption)) {
			out = append(out, p)
		}
	}
	return out, nil
}
