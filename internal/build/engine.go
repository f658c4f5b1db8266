// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package build

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/physics-feeds/internal/archive"
	"github.com/pdiddy/physics-feeds/internal/arxiv"
	"github.com/pdiddy/physics-feeds/internal/dedup"
	"github.com/pdiddy/physics-feeds/internal/discover"
	"github.com/pdiddy/physics-feeds/internal/httputil"
	"github.com/pdiddy/physics-feeds/internal/ingest"
	"github.com/pdiddy/physics-feeds/pkg/types"
)

// Engine runs one build. It owns the per-run mutable state (the global
// dedup set, the accumulated raw records, the arXiv title index) and
// passes handles into the ingestor, so a fresh Engine is a fresh run
// with nothing carried over except the on-disk caches.
type Engine struct {
	Config types.BuildConfig
	W      io.Writer

	// Now anchors the window cutoffs and synthesized timestamps.
	// Left zero it defaults to time.Now; tests pin it.
	Now time.Time
}

// feedPlan is one feed URL scheduled for ingestion.
type feedPlan struct {
	url    string
	typ    types.RecordType
	origin string
}

// Run executes the pipeline and returns the emitted document. The only
// errors returned are catalog-load and output-write failures; every
// per-feed problem is recorded in the build report instead.
func (e *Engine) Run(ctx context.Context) (*types.Document, error) {
	sources, err := LoadCatalog(e.Config.SourcesPath)
	if err != nil {
		return nil, err
	}

	now := e.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	client := httputil.NewClient(e.Config.HTTPConfig)
	lookup := arxiv.NewTitleIndex(client, e.Config.HTTPConfig,
		e.Config.Arxiv.CachePath, e.Config.Arxiv.LookupDelay, e.W)
	scanner := &discover.Scanner{Client: client, HTTP: e.Config.HTTPConfig, W: e.W}

	ingestor := &ingest.Ingestor{
		Client:     client,
		HTTP:       e.Config.HTTPConfig,
		Seen:       dedup.NewSet(),
		Lookup:     lookup,
		Now:        now,
		Cutoff:     now.AddDate(0, 0, -e.Config.Window.FallbackDays),
		MaxEntries: e.Config.MaxEntriesPerFeed,
		W:          e.W,
	}

	report := &types.BuildReport{GeneratedAt: now}
	var accumulated []ingest.Timestamped

	// Journal feeds first: their records win dedup ties against the
	// arXiv feeds ingested afterwards.
	for _, src := range sources {
		for _, plan := range e.planFeeds(ctx, scanner, src) {
			recs, rep := ingestor.Ingest(ctx, plan.url, plan.typ, plan.origin, src)
			report.Sources = append(report.Sources, rep)
			accumulated = append(accumulated, recs...)
			e.logAttempt(rep)
		}
	}

	arxivMeta := arxivSourceMeta(e.Config.Arxiv.Category)
	for _, plan := range e.arxivFeeds() {
		recs, rep := ingestor.IngestArxiv(ctx, plan.url, plan.origin, arxivMeta)
		report.Sources = append(report.Sources, rep)
		accumulated = append(accumulated, recs...)
		e.logAttempt(rep)
	}

	kept, windowDays := selectWindow(accumulated, now, e.Config.Window)
	report.WindowDays = windowDays

	// Stable sort keeps ingestion order among equal timestamps, so the
	// first-ingested record stays first.
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].When.After(kept[j].When)
	})

	items := make([]types.PublicationRecord, len(kept))
	for i, it := range kept {
		items[i] = it.Record
	}

	doc := &types.Document{
		GeneratedAt: now,
		WindowDays:  windowDays,
		Coverage:    coverage(kept, now),
		Sources:     sourcesMeta(sources, arxivMeta),
		BuildReport: report,
		Items:       items,
	}

	if err := writeDocument(e.Config.OutputPath, doc); err != nil {
		return nil, err
	}

	lookup.Save()
	e.archiveRun(doc)

	fmt.Fprintf(e.W, "done: %d items, windowDays=%d, %d live title lookups\n",
		len(items), windowDays, lookup.LiveLookups())
	return doc, nil
}

// planFeeds builds the ordered feed list for one source: the recent
// feed, the accepted feed, then a discovered (or heuristically guessed)
// published feed for sources that only give a landing page.
func (e *Engine) planFeeds(ctx context.Context, scanner *discover.Scanner, src types.SourceDescriptor) []feedPlan {
	var plans []feedPlan
	if src.Recent != "" {
		plans = append(plans, feedPlan{src.Recent, types.TypePublished, "recent"})
	}
	if src.Accepted != "" {
		plans = append(plans, feedPlan{src.Accepted, types.TypeAccepted, "accepted"})
	}
	if src.RecentDiscover != "" {
		if found := scanner.Discover(ctx, src.RecentDiscover); found != "" {
			plans = append(plans, feedPlan{found, types.TypePublished, "discover"})
		} else {
			guess := strings.TrimRight(src.RecentDiscover, "/") + "/rss"
			plans = append(plans, feedPlan{guess, types.TypePublished, "heuristic"})
		}
	}
	return plans
}

// arxivFeeds returns the category API feed and the RSS feed. The RSS
// feed is supplementary, not a fallback: it is always ingested, and the
// shared dedup set collapses its overlap with the API feed.
func (e *Engine) arxivFeeds() []feedPlan {
	maxEntries := e.Config.MaxEntriesPerFeed
	if maxEntries <= 0 {
		maxEntries = 200
	}
	apiURL := e.Config.Arxiv.APIURL
	if apiURL == "" {
		apiURL = arxiv.CategoryAPIURL(e.Config.Arxiv.Category, maxEntries)
	}
	rssURL := e.Config.Arxiv.RSSURL
	if rssURL == "" {
		rssURL = arxiv.CategoryRSSURL(e.Config.Arxiv.Category)
	}
	return []feedPlan{
		{apiURL, types.TypePreprint, "api"},
		{rssURL, types.TypePreprint, "rss"},
	}
}

func (e *Engine) logAttempt(rep types.ReportEntry) {
	if rep.OK {
		fmt.Fprintf(e.W, "ok: %s %s (%d entries)\n", rep.Key, rep.Origin, rep.Entries)
		return
	}
	cause := rep.Error
	if cause == "" {
		cause = fmt.Sprintf("HTTP %d, %d entries", rep.Status, rep.Entries)
	}
	fmt.Fprintf(e.W, "failed: %s %s %s: %s\n", rep.Key, rep.Origin, rep.URL, cause)
}

// coverage summarizes the retained time span; an empty run reports the
// build time for both bounds.
func coverage(kept []ingest.Timestamped, now time.Time) types.Coverage {
	cov := types.Coverage{Latest: now, Earliest: now, Count: len(kept)}
	for i, it := range kept {
		if i == 0 || it.When.After(cov.Latest) {
			cov.Latest = it.When
		}
		if i == 0 || it.When.Before(cov.Earliest) {
			cov.Earliest = it.When
		}
	}
	return cov
}

func writeDocument(path string, doc *types.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("writing document: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}

// archiveRun records the retained items in the cross-run archive.
// Best effort: a missing or broken archive never fails the build.
func (e *Engine) archiveRun(doc *types.Document) {
	if e.Config.ArchivePath == "" {
		return
	}
	store, err := archive.Open(e.Config.ArchivePath)
	if err != nil {
		fmt.Fprintf(e.W, "warning: opening archive: %v\n", err)
		return
	}
	defer store.Close()

	if err := store.RecordRun(doc); err != nil {
		fmt.Fprintf(e.W, "warning: archiving run: %v\n", err)
		return
	}
	total, err := store.RecordCount()
	if err == nil {
		fmt.Fprintf(e.W, "archive: %d items recorded, %d total\n", len(doc.Items), total)
	}
}
