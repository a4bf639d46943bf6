// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the visio2md CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the visio2md CLI.
var rootCmd = &cobra.Command{
	Use:   "visio2md",
	Short: "Convert Visio diagrams to Markdown or JSON",
	Long: `visio2md converts Visio (.vsdx) files into human-readable Markdown with
embedded Mermaid diagrams, or into a structured JSON export of pages,
shapes, and connections.

The diagram output is a topological view of the shape graph: explicit
connectors are rendered as edges, and when a page has few or no
connectors, edges are inferred from shape nesting and document order.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./visio2md.yaml or ~/.config/visio2md/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable diagnostic logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("visio2md")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "visio2md"))
		}
	}

	viper.SetDefault("format", "markdown")
	viper.SetDefault("max_depth", 5)
	viper.SetDefault("infer_threshold", 2)

	viper.SetEnvPrefix("VISIO2MD")
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
