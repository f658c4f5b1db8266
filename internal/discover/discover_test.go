package discover

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pdiddy/physics-feeds/pkg/types"
)

func newScanner(srv *httptest.Server) *Scanner {
	return &Scanner{
		Client: srv.Client(),
		HTTP:   types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "physics-feeds/test"},
		W:      io.Discard,
	}
}

func servePage(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDiscoverAlternateLink(t *testing.T) {
	srv := servePage(t, `<html><head>
		<link rel="stylesheet" href="/style.css">
		<link rel="alternate" type="application/rss+xml" href="https://journal.example.org/feed.rss">
	</head><body></body></html>`)

	got := newScanner(srv).Discover(context.Background(), srv.URL)
	if got != "https://journal.example.org/feed.rss" {
		t.Errorf("Discover() = %q", got)
	}
}

func TestDiscoverAtomLink(t *testing.T) {
	srv := servePage(t, `<html><head>
		<link rel="alternate" type="application/atom+xml" href="/latest.atom">
	</head></html>`)

	got := newScanner(srv).Discover(context.Background(), srv.URL)
	if got != "/latest.atom" {
		t.Errorf("Discover() = %q", got)
	}
}

func TestDiscoverNothingAdvertised(t *testing.T) {
	srv := servePage(t, `<html><head><title>no feeds here</title></head></html>`)

	if got := newScanner(srv).Discover(context.Background(), srv.URL); got != "" {
		t.Errorf("Discover() = %q, want \"\"", got)
	}
}

func TestDiscoverErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	if got := newScanner(srv).Discover(context.Background(), srv.URL); got != "" {
		t.Errorf("Discover() = %q, want \"\" on HTTP 403", got)
	}
}

func TestDiscoverUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	s := &Scanner{
		Client: &http.Client{Timeout: time.Second},
		HTTP:   types.HTTPConfig{UserAgent: "physics-feeds/test"},
		W:      io.Discard,
	}
	if got := s.Discover(context.Background(), url); got != "" {
		t.Errorf("Discover() = %q, want \"\" on connection failure", got)
	}
}
