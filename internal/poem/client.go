// Package poem fetches a decorative classical-poem quote from the jinrishici API.
package poem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/julianstephens/wagebar/internal/constants"
	"github.com/julianstephens/wagebar/internal/logger"
)

var ErrEmptyPoem = errors.New("poem service returned no content")

// Poem is the subset of the all.json response that wagebar renders.
type Poem struct {
	Content string `json:"content"`
	Author  string `json:"author"`
	Origin  string `json:"origin"`

	// Fallback marks the built-in quote used when the service cannot be reached.
	Fallback bool `json:"-"`
}

// AuthorLine renders the attribution line shown under the quote.
func (p Poem) AuthorLine() string {
	if p.Fallback {
		return constants.FallbackPoemAuthor
	}
	return fmt.Sprintf("—— %s 《%s》", p.Author, p.Origin)
}

// Fallback returns the static quote shown when a fetch fails.
func Fallback() Poem {
	return Poem{Content: constants.FallbackPoemText, Fallback: true}
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient talks to the public jinrishici endpoint.
func NewClient(timeout time.Duration) *Client {
	return NewClientWithBaseURL(constants.DefaultPoemURL, timeout)
}

func NewClientWithBaseURL(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = constants.DefaultPoemTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch performs a single GET with no retry.
func (c *Client) Fetch(ctx context.Context) (Poem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+constants.PoemPath, nil)
	if err != nil {
		return Poem{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Poem{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Poem{}, fmt.Errorf("poem service returned status %d", resp.StatusCode)
	}

	var p Poem
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Poem{}, fmt.Errorf("decoding poem: %w", err)
	}
	if strings.TrimSpace(p.Content) == "" {
		return Poem{}, ErrEmptyPoem
	}
	return p, nil
}

// FetchOrFallback never fails; any fetch error is logged and replaced by Fallback.
func (c *Client) FetchOrFallback(ctx context.Context) Poem {
	p, err := c.Fetch(ctx)
	if err != nil {
		logger.Warn("Failed to fetch poem, using fallback", "error", err)
		return Fallback()
	}
	logger.Debug("Fetched poem", "author", p.Author, "origin", p.Origin)
	return p
}
