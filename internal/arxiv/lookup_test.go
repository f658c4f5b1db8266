package arxiv

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pdiddy/physics-feeds/pkg/types"
)

const titleSearchAtom = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2408.01234v2</id>
    <title>Quantum Foo</title>
  </entry>
</feed>`

func testCfg() types.HTTPConfig {
	return types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "physics-feeds/test"}
}

func withAPIBase(t *testing.T, url string) {
	t.Helper()
	old := APIBase
	APIBase = url
	t.Cleanup(func() { APIBase = old })
}

func TestNormalizeAbs(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"http://arxiv.org/abs/2408.01234v2", "https://arxiv.org/abs/2408.01234v2"},
		{"https://arxiv.org/pdf/2408.01234", "https://arxiv.org/abs/2408.01234"},
		{"2408.01234v3", "https://arxiv.org/abs/2408.01234"},
		{"https://example.org/nothing", "https://example.org/nothing"},
	}
	for _, tt := range tests {
		if got := NormalizeAbs(tt.in); got != tt.want {
			t.Errorf("NormalizeAbs(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFindByTitleLiveThenCached(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if !strings.Contains(r.URL.RawQuery, "ti") {
			t.Errorf("query %q lacks title restriction", r.URL.RawQuery)
		}
		w.Write([]byte(titleSearchAtom))
	}))
	defer srv.Close()
	withAPIBase(t, srv.URL)

	ix := NewTitleIndex(srv.Client(), testCfg(), "", 0, io.Discard)

	got := ix.FindByTitle(context.Background(), "Quantum  Foo ")
	want := "https://arxiv.org/abs/2408.01234v2"
	if got != want {
		t.Fatalf("FindByTitle() = %q, want %q", got, want)
	}

	// Same title (already normalized) must be served from cache.
	if again := ix.FindByTitle(context.Background(), "Quantum Foo"); again != want {
		t.Errorf("cached FindByTitle() = %q, want %q", again, want)
	}
	if calls.Load() != 1 {
		t.Errorf("live calls = %d, want 1", calls.Load())
	}
	if ix.LiveLookups() != 1 {
		t.Errorf("LiveLookups() = %d, want 1", ix.LiveLookups())
	}
}

func TestFindByTitleCachesMiss(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`<feed xmlns="http://www.w3.org/2005/Atom"></feed>`))
	}))
	defer srv.Close()
	withAPIBase(t, srv.URL)

	ix := NewTitleIndex(srv.Client(), testCfg(), "", 0, io.Discard)
	if got := ix.FindByTitle(context.Background(), "An Unfindable Paper"); got != "" {
		t.Fatalf("FindByTitle() = %q, want \"\"", got)
	}
	if got := ix.FindByTitle(context.Background(), "An Unfindable Paper"); got != "" {
		t.Fatalf("second FindByTitle() = %q, want \"\"", got)
	}
	if calls.Load() != 1 {
		t.Errorf("live calls = %d, want 1 (second call should hit the cached miss)", calls.Load())
	}
}

func TestFindByTitleRejectsShortTitles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("short title reached the network")
	}))
	defer srv.Close()
	withAPIBase(t, srv.URL)

	ix := NewTitleIndex(srv.Client(), testCfg(), "", 0, io.Discard)
	if got := ix.FindByTitle(context.Background(), "Foo"); got != "" {
		t.Errorf("FindByTitle(short) = %q, want \"\"", got)
	}
}

func TestCachePersistsAcrossIndexes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "arxiv_cache.json")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(titleSearchAtom))
	}))
	defer srv.Close()
	withAPIBase(t, srv.URL)

	ix := NewTitleIndex(srv.Client(), testCfg(), path, 0, io.Discard)
	ix.FindByTitle(context.Background(), "Quantum Foo")
	ix.Save()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("cache file not written: %v", err)
	}

	// A fresh index must answer from disk without a server.
	srv.Close()
	reloaded := NewTitleIndex(srv.Client(), testCfg(), path, 0, io.Discard)
	if got := reloaded.FindByTitle(context.Background(), "Quantum Foo"); got != "https://arxiv.org/abs/2408.01234v2" {
		t.Errorf("reloaded FindByTitle() = %q", got)
	}
	if reloaded.LiveLookups() != 0 {
		t.Errorf("LiveLookups() = %d, want 0", reloaded.LiveLookups())
	}
}

func TestFindByTitleNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	withAPIBase(t, srv.URL)

	ix := NewTitleIndex(&http.Client{Timeout: time.Second}, testCfg(), "", 0, io.Discard)
	if got := ix.FindByTitle(context.Background(), "A Paper That Exists Somewhere"); got != "" {
		t.Errorf("FindByTitle() = %q, want \"\" on network failure", got)
	}
}
