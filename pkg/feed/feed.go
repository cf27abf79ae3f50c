package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrGeneration means the engine could not produce a feed for the URL.
var ErrGeneration = errors.New("feed generation failed")

// Document is a rendered feed as returned by the engine, passed through
// to the client unmodified.
type Document struct {
	ContentType string
	Body        []byte
}

// Generator produces a feed document for a channel URL. The strategy is
// an engine-specific extraction hint with no bearing on authorization.
type Generator interface {
	GenerateFeed(ctx context.Context, rawURL, strategy string) (*Document, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, rawURL, strategy string) (*Document, error)

// GenerateFeed implements Generator.
func (f GeneratorFunc) GenerateFeed(ctx context.Context, rawURL, strategy string) (*Document, error) {
	return f(ctx, rawURL, strategy)
}

// RemoteGenerator calls a feed-scraping engine running as a separate
// service: GET <base>?url=...&strategy=... returning the rendered feed.
type RemoteGenerator struct {
	baseURL string
	client  *http.Client
}

// maxFeedBody bounds how much of the engine's response is read.
const maxFeedBody = 8 * 1024 * 1024

// NewRemoteGenerator creates a client for the engine at baseURL.
func NewRemoteGenerator(baseURL string, timeout time.Duration) *RemoteGenerator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RemoteGenerator{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// GenerateFeed implements Generator.
func (g *RemoteGenerator) GenerateFeed(ctx context.Context, rawURL, strategy string) (*Document, error) {
	q := url.Values{}
	q.Set("url", rawURL)
	if strategy != "" {
		q.Set("strategy", strategy)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building engine request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: engine returned status %d", ErrGeneration, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBody))
	if err != nil {
		return nil, fmt.Errorf("%w: reading engine response: %v", ErrGeneration, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/rss+xml"
	}
	return &Document{ContentType: contentType, Body: body}, nil
}
