// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv talks to the arXiv Atom API: category listings for
// preprint ingestion and title-restricted searches for cross-reference
// enrichment of journal records. Title lookups are backed by a
// persistent cache so each distinct title costs at most one live call
// per cache lifetime.
package arxiv

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/physics-feeds/internal/httputil"
)

// APIBase is the arXiv query endpoint. A var so tests can substitute an
// httptest server.
var APIBase = "https://export.arxiv.org/api/query"

// RSSBase is the arXiv RSS endpoint prefix, also overridable in tests.
var RSSBase = "https://rss.arxiv.org/rss/"

var idPattern = regexp.MustCompile(`(\d{4}\.\d{4,5})(?:v\d+)?`)

// CategoryAPIURL returns the API query for the newest entries in an
// arXiv category (e.g. "cond-mat"), sorted by last update.
func CategoryAPIURL(category string, maxResults int) string {
	return fmt.Sprintf(
		"%s?search_query=cat:%s*&sortBy=lastUpdatedDate&sortOrder=descending&start=0&max_results=%d",
		APIBase, url.QueryEscape(category), maxResults)
}

// CategoryRSSURL returns the RSS feed URL for an arXiv category.
func CategoryRSSURL(category string) string {
	return RSSBase + category
}

// titleQueryURL returns the title-restricted search for one exact title.
func titleQueryURL(title string) string {
	q := url.QueryEscape(`ti:"` + title + `"`)
	return fmt.Sprintf("%s?search_query=%s&start=0&max_results=1", APIBase, q)
}

// NormalizeAbs maps assorted arXiv link forms (pdf links, versioned abs
// links, bare identifiers) to a canonical https abstract URL. Inputs
// without an arXiv identifier pass through with the scheme upgraded.
func NormalizeAbs(raw string) string {
	if raw == "" {
		return ""
	}
	raw = httputil.EnsureHTTPS(html.UnescapeString(raw))
	if strings.Contains(raw, "arxiv.org/abs/") {
		return raw
	}
	if m := idPattern.FindStringSubmatch(raw); m != nil {
		return "https://arxiv.org/abs/" + m[1]
	}
	return raw
}
