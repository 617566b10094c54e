package meme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://www.reddit.com"

var ErrNoMemes = errors.New("no suitable posts found")

// defaultSubreddits are rotated through when the caller doesn't name one
var defaultSubreddits = []string{"memes", "dankmemes", "wholesomememes"}

// Meme is one image post
type Meme struct {
	Title     string
	URL       string
	PostLink  string
	Subreddit string
	Ups       int
	NSFW      bool
}

// Client fetches image posts from the Reddit JSON feed
type Client struct {
	httpClient *http.Client
	baseURL    string
	rng        *rand.Rand
}

// NewClient creates a meme client with sane timeouts
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithBaseURL overrides the feed endpoint. Used by tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

// WithRand overrides the random source. Used by tests.
func (c *Client) WithRand(rng *rand.Rand) *Client {
	c.rng = rng
	return c
}

// listing is the slice of the Reddit JSON feed the client reads
type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title     string `json:"title"`
				URL       string `json:"url"`
				Permalink string `json:"permalink"`
				Subreddit string `json:"subreddit"`
				Ups       int    `json:"ups"`
				Stickied  bool   `json:"stickied"`
				Over18    bool   `json:"over_18"`
				PostHint  string `json:"post_hint"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Fetch returns a random image post from the named subreddit, or from the
// default rotation when subreddit is empty. Pinned and non-image posts are
// filtered out.
func (c *Client) Fetch(ctx context.Context, subreddit string) (*Meme, error) {
	if subreddit == "" {
		subreddit = defaultSubreddits[c.rng.Intn(len(defaultSubreddits))]
	}

	endpoint := fmt.Sprintf("%s/r/%s/hot.json?limit=50", c.baseURL, subreddit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error building meme request: %w", err)
	}
	req.Header.Set("User-Agent", "imperialbot/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching memes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("meme feed returned status %d", resp.StatusCode)
	}

	var payload listing
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("error decoding meme feed: %w", err)
	}

	var candidates []Meme
	for _, child := range payload.Data.Children {
		post := child.Data
		if post.Stickied || post.Over18 || !isImageURL(post.URL) {
			continue
		}
		candidates = append(candidates, Meme{
			Title:     post.Title,
			URL:       post.URL,
			PostLink:  defaultBaseURL + post.Permalink,
			Subreddit: post.Subreddit,
			Ups:       post.Ups,
		})
	}

	if len(candidates) == 0 {
		return nil, ErrNoMemes
	}

	meme := candidates[c.rng.Intn(len(candidates))]
	return &meme, nil
}

func isImageURL(u string) bool {
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".gif", ".webp"} {
		if strings.HasSuffix(strings.ToLower(u), ext) {
			return true
		}
	}
	return false
}
