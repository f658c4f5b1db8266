// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package build

import (
	"time"

	"github.com/pdiddy/physics-feeds/internal/ingest"
	"github.com/pdiddy/physics-feeds/pkg/types"
)

// applyWindow returns the records within days of now, preserving
// accumulation order.
func applyWindow(items []ingest.Timestamped, now time.Time, days int) []ingest.Timestamped {
	cutoff := now.AddDate(0, 0, -days)
	out := make([]ingest.Timestamped, 0, len(items))
	for _, it := range items {
		if !it.When.Before(cutoff) {
			out = append(out, it)
		}
	}
	return out
}

// selectWindow applies the primary window and, when that yields nothing,
// re-filters the same accumulated set against the fallback window. It
// returns the retained records and the window length actually used. No
// re-fetching happens here: the fallback reuses what ingestion already
// gathered.
func selectWindow(items []ingest.Timestamped, now time.Time, w types.WindowConfig) ([]ingest.Timestamped, int) {
	kept := applyWindow(items, now, w.PrimaryDays)
	if len(kept) > 0 || w.FallbackDays <= w.PrimaryDays {
		return kept, w.PrimaryDays
	}
	return applyWindow(items, now, w.FallbackDays), w.FallbackDays
}
