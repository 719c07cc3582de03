// Package fetch retrieves raw media bytes over HTTP.
//
// The fetcher is deliberately minimal: one blocking GET per asset, no retry,
// no backoff. A failed download fails the whole pipeline run.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPDoer describes the HTTP client used by the fetcher.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher downloads remote assets.
type Fetcher struct {
	client    HTTPDoer
	userAgent string
}

// New constructs a fetcher. A nil client falls back to a default client with
// the given timeout.
func New(client HTTPDoer, timeout time.Duration, userAgent string) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Fetcher{client: client, userAgent: userAgent}
}

// Fetch performs one blocking GET and returns the response body.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", url, err)
	}
	return data, nil
}
