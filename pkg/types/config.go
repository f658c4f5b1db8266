// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by every stage that makes
// network requests.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// WindowConfig holds the time-window policy. Records within PrimaryDays
// of the build time are kept; when that leaves nothing, the accumulated
// set is re-filtered against FallbackDays instead.
type WindowConfig struct {
	PrimaryDays  int `json:"primary_days" yaml:"primary_days"`
	FallbackDays int `json:"fallback_days" yaml:"fallback_days"`
}

// ArxivConfig holds settings for the arXiv category feeds and the title
// lookup used for cross-reference enrichment.
type ArxivConfig struct {
	// Category is the arXiv category to ingest (e.g. "cond-mat").
	Category string `json:"category" yaml:"category"`

	// APIURL and RSSURL override the category feed URLs. Empty means
	// derive them from Category; tests point them at local servers.
	APIURL string `json:"api_url,omitempty" yaml:"api_url,omitempty"`
	RSSURL string `json:"rss_url,omitempty" yaml:"rss_url,omitempty"`

	// CachePath is the title-lookup cache file. Empty disables
	// persistence (the in-memory cache still bounds lookups per run).
	CachePath string `json:"cache_path" yaml:"cache_path"`

	// LookupDelay is the politeness delay applied after each live title
	// lookup. Cached hits incur no delay.
	LookupDelay time.Duration `json:"lookup_delay" yaml:"lookup_delay"`
}

// BuildConfig groups all settings for one build run.
type BuildConfig struct {
	HTTPConfig `yaml:",inline"`

	// SourcesPath is the source catalog file (.json, .yaml, or .yml).
	SourcesPath string `json:"sources_path" yaml:"sources_path"`

	// OutputPath is where the result document is written.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// ArchivePath is the cross-run SQLite archive. Empty disables it.
	ArchivePath string `json:"archive_path,omitempty" yaml:"archive_path,omitempty"`

	// MaxEntriesPerFeed caps how many entries of one feed are examined
	// (default 200).
	MaxEntriesPerFeed int `json:"max_entries_per_feed" yaml:"max_entries_per_feed"`

	Window WindowConfig `json:"window" yaml:"window"`
	Arxiv  ArxivConfig  `json:"arxiv" yaml:"arxiv"`
}
