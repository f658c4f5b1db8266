// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the physics-feeds
// build pipeline: publication records, the source catalog, the build
// report, and the output document.
package types

import "time"

// RecordType classifies a publication record by its lifecycle stage.
type RecordType string

const (
	// TypePublished marks articles from a journal's "recent" feed.
	TypePublished RecordType = "published"

	// TypeAccepted marks manuscripts accepted but not yet published,
	// often still missing a DOI or volume.
	TypeAccepted RecordType = "accepted"

	// TypePreprint marks arXiv entries.
	TypePreprint RecordType = "preprint"
)

// PublicationRecord is the normalized representation of one feed entry.
// Every record carries a date: either parsed from the feed or a
// synthesized fallback, so downstream sorting never sees a zero time.
type PublicationRecord struct {
	// JournalKey is the catalog key of the source venue (e.g. "PRL").
	JournalKey string `json:"journalKey" yaml:"journalKey"`

	// Journal is the full venue name.
	Journal string `json:"journal" yaml:"journal"`

	// JournalShort is the abbreviated venue name used for display.
	JournalShort string `json:"journalShort" yaml:"journalShort"`

	// Type is the lifecycle stage: published, accepted, or preprint.
	Type RecordType `json:"type" yaml:"type"`

	// Title is the article title with entities decoded.
	Title string `json:"title" yaml:"title"`

	// Authors lists author names in feed order.
	Authors []string `json:"authors" yaml:"authors"`

	// Date is the publication timestamp in UTC.
	Date time.Time `json:"date" yaml:"date"`

	// Link is the canonical HTTPS article URL.
	Link string `json:"link" yaml:"link"`

	// DOI is the article DOI when one could be extracted.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Arxiv is the canonical arXiv abstract URL, set for preprints and
	// for accepted records matched to a preprint by title.
	Arxiv string `json:"arxiv,omitempty" yaml:"arxiv,omitempty"`

	// Summary is the cleaned abstract text.
	Summary string `json:"summary" yaml:"summary"`

	// Volume, Pages, and Citation come from publisher citation stamps
	// embedded in the raw abstract.
	Volume   string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Pages    string `json:"pages,omitempty" yaml:"pages,omitempty"`
	Citation string `json:"citation,omitempty" yaml:"citation,omitempty"`

	// Publisher is set for venues with a recognized catalog key.
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`
}

// ReportEntry captures the outcome of one feed fetch attempt.
type ReportEntry struct {
	Key         string     `json:"key" yaml:"key"`
	Journal     string     `json:"journal" yaml:"journal"`
	Type        RecordType `json:"type" yaml:"type"`
	Origin      string     `json:"origin" yaml:"origin"`
	URL         string     `json:"url" yaml:"url"`
	OK          bool       `json:"ok" yaml:"ok"`
	Status      int        `json:"status" yaml:"status"`
	ContentType string     `json:"contentType" yaml:"contentType"`
	Entries     int        `json:"entries" yaml:"entries"`

	// Lenient reports that the body only parsed after sanitization.
	Lenient bool `json:"lenient" yaml:"lenient"`

	// Error holds the failure cause for transport or parse errors.
	Error string `json:"error" yaml:"error"`
}

// BuildReport aggregates one ReportEntry per fetch attempt in a run.
type BuildReport struct {
	GeneratedAt time.Time     `json:"generatedAt" yaml:"generatedAt"`
	WindowDays  int           `json:"windowDays" yaml:"windowDays"`
	Sources     []ReportEntry `json:"sources" yaml:"sources"`
}

// Coverage summarizes the time span of the retained records.
type Coverage struct {
	Latest   time.Time `json:"latest" yaml:"latest"`
	Earliest time.Time `json:"earliest" yaml:"earliest"`
	Count    int       `json:"count" yaml:"count"`
}

// Document is the final output of a build run. Items are sorted by date
// descending; the document is written even when Items is empty.
type Document struct {
	GeneratedAt time.Time           `json:"generatedAt" yaml:"generatedAt"`
	WindowDays  int                 `json:"windowDays" yaml:"windowDays"`
	Coverage    Coverage            `json:"coverage" yaml:"coverage"`
	Sources     []SourceMeta        `json:"sources" yaml:"sources"`
	BuildReport *BuildReport        `json:"buildReport,omitempty" yaml:"buildReport,omitempty"`
	Items       []PublicationRecord `json:"items" yaml:"items"`
}
