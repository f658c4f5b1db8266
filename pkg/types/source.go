// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SourceDescriptor is one entry of the source catalog: a publication
// venue and its feed URLs. Loaded once at process start, never mutated.
// A source contributes records only if at least one of Recent, Accepted,
// or RecentDiscover is set.
type SourceDescriptor struct {
	// Key uniquely identifies the venue within the catalog.
	Key string `json:"key" yaml:"key"`

	// Journal is the full venue name.
	Journal string `json:"journal" yaml:"journal"`

	// Short is the abbreviated name; defaults to Key when empty.
	Short string `json:"short,omitempty" yaml:"short,omitempty"`

	// Recent is the feed URL for recently published articles.
	Recent string `json:"recent,omitempty" yaml:"recent,omitempty"`

	// Accepted is the feed URL for accepted manuscripts.
	Accepted string `json:"accepted,omitempty" yaml:"accepted,omitempty"`

	// RecentDiscover is a landing-page URL to scan for an advertised
	// RSS/Atom feed when the venue publishes no stable feed URL.
	RecentDiscover string `json:"recentDiscover,omitempty" yaml:"recentDiscover,omitempty"`

	// BG and FG are optional display colors for the venue badge.
	BG string `json:"bg,omitempty" yaml:"bg,omitempty"`
	FG string `json:"fg,omitempty" yaml:"fg,omitempty"`
}

// ShortName returns Short, falling back to Key.
func (s SourceDescriptor) ShortName() string {
	if s.Short != "" {
		return s.Short
	}
	return s.Key
}

// FullName returns Journal, falling back to Key.
func (s SourceDescriptor) FullName() string {
	if s.Journal != "" {
		return s.Journal
	}
	return s.Key
}

// SourceMeta is the per-venue entry of the output document's sources
// table. Colors are always populated, from the catalog or the default
// palette.
type SourceMeta struct {
	Key     string `json:"key" yaml:"key"`
	Journal string `json:"journal" yaml:"journal"`
	Short   string `json:"short" yaml:"short"`
	BG      string `json:"bg" yaml:"bg"`
	FG      string `json:"fg" yaml:"fg"`
}
