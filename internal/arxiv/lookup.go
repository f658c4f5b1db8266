// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/physics-feeds/internal/httputil"
	"github.com/pdiddy/physics-feeds/pkg/types"
)

// absIDPattern pulls the abstract URL out of the first <id> element of a
// title-search response.
var absIDPattern = regexp.MustCompile(`<id>(https?://arxiv\.org/abs/[^<]+)</id>`)

var collapseWS = regexp.MustCompile(`\s+`)

// minTitleLen rejects titles too short to identify a single paper.
const minTitleLen = 8

// TitleIndex resolves paper titles to arXiv abstract URLs. The cache
// maps lowercased normalized titles to an abs URL, with "" recording a
// lookup that found nothing, so repeat titles never hit the network
// again. Mutated only by the single build thread.
type TitleIndex struct {
	client *http.Client
	cfg    types.HTTPConfig
	delay  time.Duration
	path   string
	w      io.Writer

	cache map[string]string
	live  int
}

// NewTitleIndex loads the cache at path (a missing or corrupt file means
// a cold cache) and returns an index ready for lookups. delay is the
// politeness pause applied after each live lookup; diagnostics go to w.
func NewTitleIndex(client *http.Client, cfg types.HTTPConfig, path string, delay time.Duration, w io.Writer) *TitleIndex {
	ix := &TitleIndex{
		client: client,
		cfg:    cfg,
		delay:  delay,
		path:   path,
		w:      w,
		cache:  make(map[string]string),
	}
	if path == "" {
		return ix
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ix
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		fmt.Fprintf(w, "warning: ignoring unreadable title cache %s: %v\n", path, err)
		return ix
	}
	ix.cache = m
	return ix
}

// FindByTitle returns the arXiv abstract URL for a paper with the given
// title, or "" when no match exists. Cached answers (including cached
// misses) return immediately; a live lookup queries the API, caches the
// outcome either way, and then sleeps the politeness delay.
func (ix *TitleIndex) FindByTitle(ctx context.Context, title string) string {
	title = strings.TrimSpace(collapseWS.ReplaceAllString(title, " "))
	if len(title) < minTitleLen {
		return ""
	}
	key := strings.ToLower(title)
	if v, ok := ix.cache[key]; ok {
		return v
	}

	found := ix.search(ctx, title)
	ix.cache[key] = found
	ix.live++

	if ix.delay > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(ix.delay):
		}
	}
	return found
}

func (ix *TitleIndex) search(ctx context.Context, title string) string {
	resp, err := httputil.GetWithRetry(ctx, ix.client, titleQueryURL(title), ix.cfg)
	if err != nil {
		fmt.Fprintf(ix.w, "warning: arXiv title search failed: %v\n", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Fprintf(ix.w, "warning: arXiv title search read failed: %v\n", err)
		return ""
	}
	m := absIDPattern.FindSubmatch(body)
	if m == nil {
		return ""
	}
	return httputil.EnsureHTTPS(html.UnescapeString(string(m[1])))
}

// LiveLookups reports how many lookups hit the network this run.
func (ix *TitleIndex) LiveLookups() int {
	return ix.live
}

// Save persists the cache via a temp file and rename, so an overlapping
// reader never sees a partial write. Best effort: failures are logged
// and the next run simply starts cold for the titles it would have had.
func (ix *TitleIndex) Save() {
	if ix.path == "" {
		return
	}
	data, err := json.MarshalIndent(ix.cache, "", "  ")
	if err != nil {
		fmt.Fprintf(ix.w, "warning: encoding title cache: %v\n", err)
		return
	}
	if dir := filepath.Dir(ix.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(ix.w, "warning: saving title cache: %v\n", err)
			return
		}
	}
	tmp := ix.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		fmt.Fprintf(ix.w, "warning: saving title cache: %v\n", err)
		return
	}
	if err := os.Rename(tmp, ix.path); err != nil {
		fmt.Fprintf(ix.w, "warning: saving title cache: %v\n", err)
	}
}
