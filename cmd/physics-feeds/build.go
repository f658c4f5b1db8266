// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/physics-feeds/internal/build"
	"github.com/pdiddy/physics-feeds/pkg/types"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultUserAgent   = "physics-feeds/1.2 (+github actions)"
	defaultSources     = "data/sources.json"
	defaultOutput      = "data/articles.json"
	defaultCache       = "data/arxiv_cache.json"
	defaultCategory    = "cond-mat"
	defaultMaxEntries  = 200
	defaultWindowDays  = 3
	defaultFallback    = 14
	defaultLookupDelay = 150 * time.Millisecond
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Fetch all feeds and emit the article document",
	Long: `Build loads the source catalog, fetches every journal feed plus the arXiv
category feeds, deduplicates and windows the entries, and writes the result
document. Feed failures are recorded in the document's build report; only a
missing catalog or an unwritable output fails the run.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("sources", "", "source catalog file (default "+defaultSources+")")
	buildCmd.Flags().String("out", "", "output document path (default "+defaultOutput+")")
	buildCmd.Flags().String("cache", "", "arXiv title cache file (default "+defaultCache+")")
	buildCmd.Flags().String("archive", "", "SQLite archive of all runs (empty disables)")
	buildCmd.Flags().String("category", "", "arXiv category to ingest (default "+defaultCategory+")")
	buildCmd.Flags().Int("window-days", 0, "primary time window in days (default 3)")
	buildCmd.Flags().Int("fallback-days", 0, "fallback window when the primary is empty (default 14)")
	buildCmd.Flags().Int("max-entries", 0, "entries examined per feed (default 200)")
	buildCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	buildCmd.Flags().String("user-agent", "", "HTTP User-Agent header")

	rootCmd.AddCommand(buildCmd)
}

// stringSetting resolves a string option: flag, then config file, then
// the built-in default.
func stringSetting(cmd *cobra.Command, flag, key, fallback string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

func intSetting(cmd *cobra.Command, flag, key string, fallback int) int {
	if v, _ := cmd.Flags().GetInt(flag); v != 0 {
		return v
	}
	if v := viper.GetInt(key); v != 0 {
		return v
	}
	return fallback
}

func durationSetting(cmd *cobra.Command, flag, key string, fallback time.Duration) time.Duration {
	if v, _ := cmd.Flags().GetDuration(flag); v != 0 {
		return v
	}
	if v := viper.GetDuration(key); v != 0 {
		return v
	}
	return fallback
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := types.BuildConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   durationSetting(cmd, "timeout", "timeout", defaultTimeout),
			UserAgent: stringSetting(cmd, "user-agent", "user_agent", defaultUserAgent),
		},
		SourcesPath:       stringSetting(cmd, "sources", "sources_path", defaultSources),
		OutputPath:        stringSetting(cmd, "out", "output_path", defaultOutput),
		ArchivePath:       stringSetting(cmd, "archive", "archive_path", ""),
		MaxEntriesPerFeed: intSetting(cmd, "max-entries", "max_entries_per_feed", defaultMaxEntries),
		Window: types.WindowConfig{
			PrimaryDays:  intSetting(cmd, "window-days", "window.primary_days", defaultWindowDays),
			FallbackDays: intSetting(cmd, "fallback-days", "window.fallback_days", defaultFallback),
		},
		Arxiv: types.ArxivConfig{
			Category:    stringSetting(cmd, "category", "arxiv.category", defaultCategory),
			CachePath:   stringSetting(cmd, "cache", "arxiv.cache_path", defaultCache),
			LookupDelay: defaultLookupDelay,
		},
	}

	engine := &build.Engine{Config: cfg, W: os.Stderr}
	_, err := engine.Run(cmd.Context())
	return err
}
