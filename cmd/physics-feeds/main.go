// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the physics-feeds CLI.
// It aggregates physics journal feeds and arXiv category listings into
// a single deduplicated article document for the reader frontend.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the physics-feeds CLI.
var rootCmd = &cobra.Command{
	Use:   "physics-feeds",
	Short: "Aggregate physics journal and arXiv feeds into one article document",
	Long: `physics-feeds ingests the RSS/Atom feeds of a configurable set of physics
journals plus the arXiv category feeds, deduplicates entries that describe the
same publication, links accepted manuscripts to their arXiv preprints, and
emits a single JSON document of recent articles.

The build subcommand runs the whole pipeline; per-feed failures are recorded
in the output's build report rather than aborting the run.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./physics-feeds.yaml or ~/.config/physics-feeds/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("physics-feeds")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "physics-feeds"))
		}
	}

	viper.SetEnvPrefix("PHYSICS_FEEDS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
