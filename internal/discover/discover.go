// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover finds the RSS/Atom feed advertised by a journal
// landing page. Discovery is best effort and inherently flaky: some
// sites block bots, others advertise nothing. A failed discovery simply
// yields no feed for that source this run.
package discover

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/physics-feeds/internal/httputil"
	"github.com/pdiddy/physics-feeds/pkg/types"
)

var (
	natureRSSHref = regexp.MustCompile(`^https://www\.nature\.com/.+\.rss`)
	iopRSSHref    = regexp.MustCompile(`^https?://.+/rss`)
)

// Scanner discovers feeds from landing pages. The zero client is not
// usable; construct with the shared pipeline client.
type Scanner struct {
	Client *http.Client
	HTTP   types.HTTPConfig
	W      io.Writer
}

// Discover fetches pageURL and returns the advertised feed URL, or ""
// when none is found. It first looks for a
// link[rel=alternate][type=application/rss+xml|atom+xml] element, then
// falls back to host-specific href patterns for nature.com and
// iopscience pages.
func (s *Scanner) Discover(ctx context.Context, pageURL string) string {
	resp, err := httputil.Get(ctx, s.Client, pageURL, s.HTTP)
	if err != nil {
		fmt.Fprintf(s.W, "warning: feed discovery failed for %s: %v\n", pageURL, err)
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(s.W, "warning: feed discovery got HTTP %d for %s\n", resp.StatusCode, pageURL)
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		fmt.Fprintf(s.W, "warning: feed discovery parse failed for %s: %v\n", pageURL, err)
		return ""
	}

	if href := alternateFeedLink(doc); href != "" {
		return href
	}

	switch {
	case strings.Contains(pageURL, "nature.com"):
		return firstHrefMatching(doc, natureRSSHref)
	case strings.Contains(pageURL, "iopscience"):
		return firstHrefMatching(doc, iopRSSHref)
	}
	return ""
}

func alternateFeedLink(doc *goquery.Document) string {
	var found string
	doc.Find(`link[rel="alternate"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		typ := strings.ToLower(sel.AttrOr("type", ""))
		if typ != "application/rss+xml" && typ != "application/atom+xml" {
			return true
		}
		if href := sel.AttrOr("href", ""); href != "" {
			found = href
			return false
		}
		return true
	})
	return found
}

func firstHrefMatching(doc *goquery.Document, pat *regexp.Regexp) string {
	var found string
	doc.Find("[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href := sel.AttrOr("href", "")
		if pat.MatchString(href) {
			found = href
			return false
		}
		return true
	})
	return found
}
