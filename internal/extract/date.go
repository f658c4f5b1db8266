// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"time"

	"github.com/araddon/dateparse"
)

// Date resolves the entry timestamp in UTC. Resolution order: the
// parser's pre-parsed updated/published times, then the raw strings on
// those keys as ISO-8601, then the vendor-specific date keys (dc:date,
// prism:publicationDate, issued), where a bare YYYY-MM-DD means midnight
// UTC. Returns ok=false when nothing parses; the caller chooses the
// fallback policy.
func Date(e Entry) (time.Time, bool) {
	if t := e.Item.UpdatedParsed; t != nil {
		return t.UTC(), true
	}
	if t := e.Item.PublishedParsed; t != nil {
		return t.UTC(), true
	}

	for _, s := range e.dateStrings() {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t.UTC(), true
		}
	}

	for _, s := range e.vendorDateStrings() {
		if len(s) == 10 {
			if t, err := time.Parse("2006-01-02", s); err == nil {
				return t.UTC(), true
			}
			continue
		}
		if t, err := dateparse.ParseIn(s, time.UTC); err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}
