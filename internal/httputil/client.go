// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP helpers shared by the feed
// ingestor, the discovery scraper, and the arXiv title lookup.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/physics-feeds/pkg/types"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const defaultMaxRetries = 3

// NewClient builds the shared HTTP client: per-request timeout from cfg,
// redirects followed (the default policy).
func NewClient(cfg types.HTTPConfig) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}

// Get issues a GET with the configured User-Agent. The caller owns the
// response body.
func Get(ctx context.Context, client *http.Client, url string, cfg types.HTTPConfig) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	return client.Do(req)
}

// GetWithRetry issues a GET and retries on HTTP 429 (Too Many Requests)
// with exponential backoff starting at RetryBaseDelay. Used for arXiv
// API calls, where 429 signals we should slow down rather than give up.
//
// On each 429 the response body is drained and closed before sleeping.
// If the context is cancelled during a backoff wait the function returns
// ctx.Err(). After exhausting retries the last 429 response is returned
// so the caller can inspect it.
func GetWithRetry(ctx context.Context, client *http.Client, url string, cfg types.HTTPConfig) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		resp, err := Get(ctx, client, url, cfg)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt >= defaultMaxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// EnsureHTTPS upgrades protocol-relative and plain-http URLs to https.
// Other schemes (and relative paths) pass through unchanged.
func EnsureHTTPS(u string) string {
	if u == "" {
		return u
	}
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	if strings.HasPrefix(u, "http://") {
		return "https://" + strings.TrimPrefix(u, "http://")
	}
	return u
}
