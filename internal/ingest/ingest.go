// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest drives one feed URL through fetch, parse, and
// per-entry record assembly. Failures never escape the ingestor: every
// fetch attempt produces a report entry, and a broken feed simply
// contributes zero records while the rest of the build continues.
package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/pdiddy/physics-feeds/internal/arxiv"
	"github.com/pdiddy/physics-feeds/internal/dedup"
	"github.com/pdiddy/physics-feeds/internal/extract"
	"github.com/pdiddy/physics-feeds/internal/httputil"
	"github.com/pdiddy/physics-feeds/pkg/types"
)

const (
	defaultMaxEntries = 200

	apsPublisher = "American Physical Society"
)

// Timestamped pairs a record with its resolved timestamp so the merge
// engine can window and sort without re-parsing dates.
type Timestamped struct {
	When   time.Time
	Record types.PublicationRecord
}

// Ingestor holds the per-run collaborators shared by all feed
// ingestions: the HTTP client, the global dedup set, and the arXiv
// title index used for cross-reference enrichment. Owned by the merge
// engine; mutated only by the single build thread.
type Ingestor struct {
	Client *http.Client
	HTTP   types.HTTPConfig
	Seen   dedup.Set
	Lookup *arxiv.TitleIndex

	// Now anchors synthesized fallback timestamps; Cutoff is the oldest
	// timestamp worth keeping during ingestion (the fallback-window
	// horizon, so later re-filtering never needs a re-fetch).
	Now    time.Time
	Cutoff time.Time

	// MaxEntries caps how many entries of one feed are examined
	// (default 200).
	MaxEntries int

	W io.Writer
}

// Ingest fetches and parses one journal feed and assembles its records.
// The report entry captures the attempt whether or not it succeeded;
// the record list is empty whenever rep.OK is false.
func (in *Ingestor) Ingest(ctx context.Context, feedURL string, typ types.RecordType, origin string, src types.SourceDescriptor) ([]Timestamped, types.ReportEntry) {
	rep := types.ReportEntry{
		Key:     src.Key,
		Journal: src.FullName(),
		Type:    typ,
		Origin:  origin,
		URL:     feedURL,
	}
	feed := in.fetch(ctx, feedURL, &rep)
	if !rep.OK {
		return nil, rep
	}

	fallbackIdx := 0
	var out []Timestamped
	for _, item := range in.cap(feed.Items) {
		e := extract.Entry{Item: item}

		dt, ok := extract.Date(e)
		if !ok {
			// Synthesized timestamps decrease strictly with position so
			// dateless entries keep their feed order after sorting.
			dt = in.Now.Add(-time.Duration(fallbackIdx) * time.Hour)
			fallbackIdx++
		}
		if dt.Before(in.Cutoff) {
			continue
		}

		doi := extract.DOI(e)
		link := extract.CanonicalLink(e.RawLink(), feedURL, doi)
		if !in.Seen.Add(dedup.Compute(doi, link)) {
			continue
		}

		title := e.Title()
		authors := extract.Authors(e)
		rawSummary := e.RawSummary()
		cit := extract.ParseCitation(rawSummary)

		rec := types.PublicationRecord{
			JournalKey:   src.Key,
			Journal:      src.FullName(),
			JournalShort: src.ShortName(),
			Type:         typ,
			Title:        title,
			Authors:      authors,
			Date:         dt,
			Link:         link,
			DOI:          doi,
			Summary:      extract.CleanSummary(rawSummary, authors),
			Volume:       cit.Volume,
			Pages:        cit.Pages,
			Citation:     cit.Text,
		}

		if apsKey(src.Key) {
			rec.Publisher = apsPublisher
			// Accepted manuscripts usually have a companion preprint;
			// annotate it when a title match exists.
			if typ == types.TypeAccepted {
				if abs := in.Lookup.FindByTitle(ctx, title); abs != "" {
					rec.Arxiv = arxiv.NormalizeAbs(abs)
					// Claim the preprint identity too, so the arXiv
					// category feeds (ingested later) do not emit a
					// second record for the same manuscript.
					in.Seen.Add(dedup.Compute("", rec.Arxiv))
				}
			}
		}

		out = append(out, Timestamped{When: dt, Record: rec})
	}
	return out, rep
}

// IngestArxiv fetches one arXiv category feed (API or RSS; both pass
// through the same dedup set, so overlap between them collapses).
// Entries without a parseable date take the build time rather than a
// decreasing fallback: arXiv feeds are already newest-first and dense.
func (in *Ingestor) IngestArxiv(ctx context.Context, feedURL, origin string, meta types.SourceMeta) ([]Timestamped, types.ReportEntry) {
	rep := types.ReportEntry{
		Key:     meta.Key,
		Journal: meta.Journal,
		Type:    types.TypePreprint,
		Origin:  origin,
		URL:     feedURL,
	}
	feed := in.fetch(ctx, feedURL, &rep)
	if !rep.OK {
		return nil, rep
	}

	var out []Timestamped
	for _, item := range in.cap(feed.Items) {
		e := extract.Entry{Item: item}

		dt, ok := extract.Date(e)
		if !ok {
			dt = in.Now
		}
		if dt.Before(in.Cutoff) {
			continue
		}

		raw := e.GUID()
		if raw == "" {
			raw = e.RawLink()
		}
		doi := extract.DOI(e)
		abs := arxiv.NormalizeAbs(raw)
		link := abs
		if link == "" {
			link = extract.CanonicalLink(raw, feedURL, doi)
		}
		if !in.Seen.Add(dedup.Compute(doi, link)) {
			continue
		}

		authors := extract.Authors(e)
		arxivURL := abs
		if arxivURL == "" {
			arxivURL = link
		}

		out = append(out, Timestamped{When: dt, Record: types.PublicationRecord{
			JournalKey:   meta.Key,
			Journal:      meta.Journal,
			JournalShort: meta.Short,
			Type:         types.TypePreprint,
			Title:        e.Title(),
			Authors:      authors,
			Date:         dt,
			Link:         link,
			DOI:          doi,
			Arxiv:        arxivURL,
			Summary:      extract.CleanSummary(e.RawSummary(), authors),
		}})
	}
	return out, rep
}

// fetch performs the HTTP request and parse, filling rep as it goes.
// Success means HTTP 200 and at least one parsed entry.
func (in *Ingestor) fetch(ctx context.Context, feedURL string, rep *types.ReportEntry) *gofeed.Feed {
	resp, err := httputil.Get(ctx, in.Client, feedURL, in.HTTP)
	if err != nil {
		rep.Error = err.Error()
		return nil
	}
	defer resp.Body.Close()

	rep.Status = resp.StatusCode
	rep.ContentType = resp.Header.Get("Content-Type")

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		rep.Error = fmt.Sprintf("reading body: %v", err)
		return nil
	}

	feed, lenient, err := parseLeniently(string(body))
	if err != nil {
		rep.Error = fmt.Sprintf("parsing feed: %v", err)
		return nil
	}
	rep.Lenient = lenient
	rep.Entries = len(feed.Items)
	rep.OK = rep.Status == http.StatusOK && rep.Entries > 0
	return feed
}

// parseLeniently parses the body as RSS/Atom, retrying once on a
// sanitized copy when publishers ship bytes that are not legal XML. The
// lenient flag records that the feed only parsed after sanitization.
func parseLeniently(body string) (*gofeed.Feed, bool, error) {
	feed, err := gofeed.NewParser().ParseString(body)
	if err == nil {
		return feed, false, nil
	}

	cleaned := stripIllegalXMLChars(body)
	if cleaned == body {
		return nil, false, err
	}
	feed, err2 := gofeed.NewParser().ParseString(cleaned)
	if err2 != nil {
		return nil, false, err
	}
	return feed, true, nil
}

// stripIllegalXMLChars drops control characters that XML 1.0 forbids.
func stripIllegalXMLChars(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}

func (in *Ingestor) cap(items []*gofeed.Item) []*gofeed.Item {
	max := in.MaxEntries
	if max <= 0 {
		max = defaultMaxEntries
	}
	if len(items) > max {
		return items[:max]
	}
	return items
}

// apsKey reports whether a catalog key belongs to an American Physical
// Society venue (PR* journals and RMP).
func apsKey(key string) bool {
	return strings.HasPrefix(key, "PR") || key == "RMP"
}
