// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package build

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pdiddy/physics-feeds/pkg/types"
)

func writeCatalog(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCatalogJSON(t *testing.T) {
	path := writeCatalog(t, "sources.json", `[
  {"key": "PRL", "journal": "Physical Review Letters", "short": "PRL",
   "recent": "https://feeds.aps.org/rss/recent/prl.xml",
   "accepted": "https://feeds.aps.org/rss/accepted/prl.xml"},
  {"key": "NatPhys", "journal": "Nature Physics",
   "recentDiscover": "https://www.nature.com/nphys/"}
]`)

	sources, err := LoadCatalog(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 2 {
		t.Fatalf("len(sources) = %d, want 2", len(sources))
	}
	if sources[0].Accepted != "https://feeds.aps.org/rss/accepted/prl.xml" {
		t.Errorf("Accepted = %q", sources[0].Accepted)
	}
	if sources[1].RecentDiscover == "" {
		t.Error("RecentDiscover not loaded")
	}
}

func TestLoadCatalogYAML(t *testing.T) {
	path := writeCatalog(t, "sources.yaml", `
- key: PRB
  journal: Physical Review B
  recent: https://feeds.aps.org/rss/recent/prb.xml
  bg: "#e0f2fe"
  fg: "#0b4f71"
`)

	sources, err := LoadCatalog(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 1 {
		t.Fatalf("len(sources) = %d, want 1", len(sources))
	}
	if sources[0].Key != "PRB" || sources[0].BG != "#e0f2fe" {
		t.Errorf("source = %+v", sources[0])
	}
}

func TestLoadCatalogRejectsMissingKey(t *testing.T) {
	path := writeCatalog(t, "sources.json", `[{"journal": "No Key Journal"}]`)
	if _, err := LoadCatalog(path); err == nil {
		t.Error("want error for a source without a key")
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("want error for a missing catalog file")
	}
}

func TestSourcesMetaFillsColors(t *testing.T) {
	sources := []types.SourceDescriptor{
		{Key: "PRL", Journal: "Physical Review Letters"},
		{Key: "PRB", Journal: "Physical Review B", BG: "#111111", FG: "#eeeeee"},
	}
	arx := arxivSourceMeta("cond-mat")

	meta := sourcesMeta(sources, arx)
	if len(meta) != 3 {
		t.Fatalf("len(meta) = %d, want 3", len(meta))
	}
	if meta[0].BG == "" || meta[0].FG == "" {
		t.Errorf("palette not applied: %+v", meta[0])
	}
	if meta[1].BG != "#111111" || meta[1].FG != "#eeeeee" {
		t.Errorf("declared colors overridden: %+v", meta[1])
	}
	if meta[2].Key != "arXivCM" {
		t.Errorf("pseudo-source = %+v, want it appended last", meta[2])
	}
}

func TestArxivSourceMetaKeys(t *testing.T) {
	if got := arxivSourceMeta("cond-mat").Key; got != "arXivCM" {
		t.Errorf("cond-mat key = %q", got)
	}
	if got := arxivSourceMeta("quant-ph").Key; got != "arXiv-quant-ph" {
		t.Errorf("quant-ph key = %q", got)
	}
}
