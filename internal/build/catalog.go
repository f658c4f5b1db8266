// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package build orchestrates a whole run: load the catalog, ingest
// every configured feed plus the arXiv category feeds, window and sort
// the accumulated records, and emit the result document.
package build

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/physics-feeds/pkg/types"
)

// LoadCatalog reads the source catalog. The on-disk contract is a JSON
// array; a .yaml/.yml extension selects YAML instead. Failing to load
// the catalog is the one process-fatal condition of a build: with no
// sources there is nothing to do.
func LoadCatalog(path string) ([]types.SourceDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source catalog: %w", err)
	}

	var sources []types.SourceDescriptor
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &sources); err != nil {
			return nil, fmt.Errorf("parsing source catalog %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &sources); err != nil {
			return nil, fmt.Errorf("parsing source catalog %s: %w", path, err)
		}
	}

	for i, s := range sources {
		if s.Key == "" {
			return nil, fmt.Errorf("source catalog %s: entry %d has no key", path, i)
		}
	}
	return sources, nil
}

// defaultTones is the fallback badge palette (light background, dark
// foreground), assigned by catalog index when a source declares no
// colors.
var defaultTones = []types.SourceMeta{
	{BG: "#fde2e4", FG: "#9f1d2d"},
	{BG: "#e0f2fe", FG: "#0b4f71"},
	{BG: "#dcfce7", FG: "#166534"},
	{BG: "#ede9fe", FG: "#5b21b6"},
	{BG: "#fff7ed", FG: "#9a3412"},
	{BG: "#e0e7ff", FG: "#3730a3"},
	{BG: "#f0fdf4", FG: "#166534"},
	{BG: "#faf5ff", FG: "#7e22ce"},
	{BG: "#ecfeff", FG: "#155e75"},
	{BG: "#fdf2f8", FG: "#9d174d"},
	{BG: "#fefce8", FG: "#854d0e"},
	{BG: "#fee2e2", FG: "#991b1b"},
	{BG: "#eef2ff", FG: "#3730a3"},
	{BG: "#f0f9ff", FG: "#075985"},
	{BG: "#fffbeb", FG: "#92400e"},
	{BG: "#f5f3ff", FG: "#4c1d95"},
	{BG: "#ecfccb", FG: "#3f6212"},
	{BG: "#fef2f2", FG: "#9f1239"},
	{BG: "#e6fffb", FG: "#0e7490"},
	{BG: "#f1f5f9", FG: "#0f172a"},
}

// sourcesMeta builds the output document's sources table: one entry per
// catalog source with colors filled from the palette where missing,
// plus the arXiv pseudo-source appended last.
func sourcesMeta(sources []types.SourceDescriptor, arxivSource types.SourceMeta) []types.SourceMeta {
	out := make([]types.SourceMeta, 0, len(sources)+1)
	for i, s := range sources {
		tone := defaultTones[i%len(defaultTones)]
		bg, fg := s.BG, s.FG
		if bg == "" {
			bg = tone.BG
		}
		if fg == "" {
			fg = tone.FG
		}
		out = append(out, types.SourceMeta{
			Key:     s.Key,
			Journal: s.FullName(),
			Short:   s.ShortName(),
			BG:      bg,
			FG:      fg,
		})
	}
	return append(out, arxivSource)
}

// arxivSourceMeta returns the pseudo-source describing the arXiv
// category feeds. The default cond-mat category keeps its historical
// key so existing consumers keep matching it.
func arxivSourceMeta(category string) types.SourceMeta {
	meta := types.SourceMeta{
		Journal: "arXiv: " + category,
		Short:   "arXiv " + category,
		BG:      "#e6fffb",
		FG:      "#0e7490",
	}
	if category == "cond-mat" {
		meta.Key = "arXivCM"
	} else {
		meta.Key = "arXiv-" + category
	}
	return meta
}
