// Package client talks to the feed API. The controller treats it as an
// external collaborator: one feed fetch per mount, then fire-and-forget
// mutations whose results only drive toasts.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"reel/internal/errors"
	"reel/internal/feed"

	"github.com/google/uuid"
)

// Client is a thin HTTP client for the feed API.
type Client struct {
	base string
	http *http.Client
}

// New creates a Client for the given base URL.
func New(base string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.base
}

// ShareURL returns the public link for a post.
func (c *Client) ShareURL(postID string) string {
	return fmt.Sprintf("%s/p/%s", c.base, postID)
}

// FetchFeed returns the post list. Called once per controller mount.
func (c *Client) FetchFeed(ctx context.Context) ([]feed.Post, error) {
	var out struct {
		Posts []feed.Post `json:"posts"`
	}
	if err := c.getJSON(ctx, "/api/feed", &out); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

// Comments returns the comment list for a post.
func (c *Client) Comments(ctx context.Context, postID string) ([]feed.Comment, error) {
	var out struct {
		Comments []feed.Comment `json:"comments"`
	}
	if err := c.getJSON(ctx, "/api/posts/"+postID+"/comments", &out); err != nil {
		return nil, err
	}
	return out.Comments, nil
}

// AddComment posts a comment and returns the created record.
func (c *Client) AddComment(ctx context.Context, postID, text string) (feed.Comment, error) {
	var out feed.Comment
	body := map[string]string{"text": text}
	if err := c.postJSON(ctx, "/api/posts/"+postID+"/comments", body, &out); err != nil {
		return feed.Comment{}, err
	}
	return out, nil
}

// Like, Unlike and friends are the counter mutations. Each request
// carries a fresh idempotency key so a retried delivery can't double
// count on the server side.
func (c *Client) Like(ctx context.Context, postID string) error {
	return c.postJSON(ctx, "/api/posts/"+postID+"/like", nil, nil)
}

func (c *Client) Unlike(ctx context.Context, postID string) error {
	return c.postJSON(ctx, "/api/posts/"+postID+"/unlike", nil, nil)
}

func (c *Client) Save(ctx context.Context, postID string) error {
	return c.postJSON(ctx, "/api/posts/"+postID+"/save", nil, nil)
}

func (c *Client) Unsave(ctx context.Context, postID string) error {
	return c.postJSON(ctx, "/api/posts/"+postID+"/unsave", nil, nil)
}

func (c *Client) Share(ctx context.Context, postID string) error {
	return c.postJSON(ctx, "/api/posts/"+postID+"/share", nil, nil)
}

func (c *Client) View(ctx context.Context, postID string) error {
	return c.postJSON(ctx, "/api/posts/"+postID+"/view", nil, nil)
}

func (c *Client) Follow(ctx context.Context, author string) error {
	return c.postJSON(ctx, "/api/authors/"+author+"/follow", nil, nil)
}

func (c *Client) Unfollow(ctx context.Context, author string) error {
	return c.postJSON(ctx, "/api/authors/"+author+"/unfollow", nil, nil)
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return errors.NewClientError("building request", errors.RequestFailed, err)
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.NewClientError("encoding request", errors.RequestFailed, err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, reader)
	if err != nil {
		return errors.NewClientError("building request", errors.RequestFailed, err)
	}
	req.Header.Set("X-Idempotency-Key", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.NewClientError("request failed", errors.RequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errors.ErrPostNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.NewClientError(
			fmt.Sprintf("unexpected status %d", resp.StatusCode), errors.BadResponse, nil)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewClientError("decoding response", errors.BadResponse, err)
	}
	return nil
}
