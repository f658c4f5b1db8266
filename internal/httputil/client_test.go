package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/physics-feeds/pkg/types"
)

func TestGetSetsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	cfg := types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "physics-feeds/test"}
	resp, err := Get(context.Background(), NewClient(cfg), srv.URL, cfg)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "physics-feeds/test", gotUA)
}

func TestGetWithRetryRecoversFrom429(t *testing.T) {
	old := RetryBaseDelay
	RetryBaseDelay = time.Millisecond
	defer func() { RetryBaseDelay = old }()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "t"}
	resp, err := GetWithRetry(context.Background(), NewClient(cfg), srv.URL, cfg)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetWithRetryReturnsLast429(t *testing.T) {
	old := RetryBaseDelay
	RetryBaseDelay = time.Millisecond
	defer func() { RetryBaseDelay = old }()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	cfg := types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "t"}
	resp, err := GetWithRetry(context.Background(), NewClient(cfg), srv.URL, cfg)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestEnsureHTTPS(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"//x.org/y", "https://x.org/y"},
		{"http://x.org/y", "https://x.org/y"},
		{"https://x.org/y", "https://x.org/y"},
		{"/articles/abc", "/articles/abc"},
	}
	for _, tt := range tests {
		if got := EnsureHTTPS(tt.in); got != tt.want {
			t.Errorf("EnsureHTTPS(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
