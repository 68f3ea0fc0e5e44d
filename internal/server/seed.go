package server

import (
	"fmt"
	"time"

	"reel/internal/feed"
)

// SeedPosts returns sample posts for the demo server. Media URLs point
// back at the server's own health endpoint so loads succeed offline.
func SeedPosts(baseURL string) []feed.Post {
	authors := []string{"lena.codes", "trailmix", "citybeat", "make.waves", "nightshift"}
	captions := []string{
		"golden hour at the pier, no filter",
		"3 ingredient pasta that actually slaps",
		"skating the new bowl before it opens",
		"studio session outtakes #behindthescenes",
		"rooftop timelapse over the old town",
		"thrift flip: jacket edition",
		"first try at latte art went... okay",
		"morning run along the canal",
	}
	music := []string{
		"original sound — lena.codes",
		"Slow Burn — Halverson",
		"Midnight Drive — KOTA",
		"original sound — nightshift",
	}

	now := time.Now().UTC()
	posts := make([]feed.Post, 0, len(captions))
	for i, caption := range captions {
		kind := feed.MediaVideo
		if i%4 == 3 {
			kind = feed.MediaImage
		}
		posts = append(posts, feed.Post{
			ID:       fmt.Sprintf("post-%03d", i+1),
			Kind:     kind,
			MediaURL: fmt.Sprintf("%s/healthz?media=%d", baseURL, i+1),
			Caption:  caption,
			Author:   authors[i%len(authors)],
			Music:    music[i%len(music)],
			Counters: feed.Counters{
				Likes:    311*i + 42,
				Comments: 23*i + 5,
				Shares:   7 * i,
				Saves:    12*i + 3,
				Views:    4811*i + 950,
			},
			CreatedAt: now.Add(-time.Duration(i) * 7 * time.Hour),
		})
	}
	return posts
}
