// Package server is a small in-memory stand-in for the production feed
// API, so the client runs standalone and integration tests have a live
// surface.
package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"reel/internal/feed"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Server serves the feed API over an in-memory store.
type Server struct {
	mu       sync.Mutex
	posts    []feed.Post
	comments map[string][]feed.Comment
	follows  map[string]int
	seenKeys map[string]bool
}

// New creates a server seeded with the given posts.
func New(posts []feed.Post) *Server {
	return &Server{
		posts:    posts,
		comments: make(map[string][]feed.Comment),
		follows:  make(map[string]int),
		seenKeys: make(map[string]bool),
	}
}

// Handler builds the HTTP handler.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/api/feed", s.handleFeed)
	engine.GET("/api/posts/:id/comments", s.handleComments)
	engine.POST("/api/posts/:id/comments", s.handleAddComment)

	for _, action := range []string{"like", "unlike", "save", "unsave", "share", "view"} {
		action := action
		engine.POST("/api/posts/:id/"+action, func(c *gin.Context) {
			s.handleCounter(c, action)
		})
	}
	engine.POST("/api/authors/:name/follow", func(c *gin.Context) { s.handleFollow(c, 1) })
	engine.POST("/api/authors/:name/unfollow", func(c *gin.Context) { s.handleFollow(c, -1) })

	return engine
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleFeed(c *gin.Context) {
	s.mu.Lock()
	posts := make([]feed.Post, len(s.posts))
	copy(posts, s.posts)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (s *Server) handleComments(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findPost(id) < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	comments := s.comments[id]
	if comments == nil {
		comments = []feed.Comment{}
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (s *Server) handleAddComment(c *gin.Context) {
	id := c.Param("id")
	var body struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.findPost(id)
	if idx < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	comment := feed.Comment{
		ID:        uuid.NewString(),
		PostID:    id,
		Author:    "you",
		Text:      body.Text,
		CreatedAt: time.Now().UTC(),
	}
	s.comments[id] = append(s.comments[id], comment)
	s.posts[idx].Counters.Comments++
	c.JSON(http.StatusCreated, comment)
}

func (s *Server) handleCounter(c *gin.Context, action string) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.replayed(c) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	idx := s.findPost(id)
	if idx < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	counters := &s.posts[idx].Counters
	switch action {
	case "like":
		counters.Likes++
	case "unlike":
		if counters.Likes > 0 {
			counters.Likes--
		}
	case "save":
		counters.Saves++
	case "unsave":
		if counters.Saves > 0 {
			counters.Saves--
		}
	case "share":
		counters.Shares++
	case "view":
		counters.Views++
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown action %q", action)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleFollow(c *gin.Context, delta int) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "author required"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.replayed(c) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	s.follows[name] += delta
	if s.follows[name] < 0 {
		s.follows[name] = 0
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// replayed dedupes requests by idempotency key. Callers must hold the
// lock.
func (s *Server) replayed(c *gin.Context) bool {
	key := c.GetHeader("X-Idempotency-Key")
	if key == "" {
		return false
	}
	if s.seenKeys[key] {
		return true
	}
	s.seenKeys[key] = true
	return false
}

func (s *Server) findPost(id string) int {
	for i, p := range s.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}
