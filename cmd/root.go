// Package cmd provides the command-line interface for sfcsplit with
// configuration management supporting multiple configuration sources.
//
// Configuration precedence, highest first:
//  1. Command-line flags (--production, --root, etc.)
//  2. Environment variables with the SFCSPLIT_ prefix
//     (SFCSPLIT_BUILD_PRODUCTION, SFCSPLIT_LOG_FORMAT, ...)
//  3. Configuration file (.sfcsplit.yml in the working directory or $HOME)
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/componentry/sfcsplit/internal/config"
	"github.com/componentry/sfcsplit/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sfcsplit",
	Short: "Decompose composite component files into addressable sub-requests",
	Long: `sfcsplit decomposes a composite component source file - one document
mixing a script section, a template section, style sections, and custom
metadata sections - into a set of virtual sub-requests a build pipeline can
resolve as independent files, and assembles the facade module that imports
them and exports one component object.

Key Features:
  • Deterministic scope tokens for scoped styling and section correlation
  • Canonical query-encoded addressing that survives incremental rebuilds
  • CSS-module export-map wiring and custom-block dispatch
  • Watch mode re-running the transform on change

Quick Start:
  sfcsplit split app.vue          Print the facade module for one document
  sfcsplit watch app.vue          Re-transform on every change
  sfcsplit config                 Show the effective configuration
  sfcsplit version                Show version information`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It is called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default .sfcsplit.yml)")

	rootCmd.PersistentFlags().Bool("production", false, "enable production output")
	rootCmd.PersistentFlags().Bool("ssr", false, "assemble the server-rendering variant")
	rootCmd.PersistentFlags().String("root", "", "project root for path normalization")
	rootCmd.PersistentFlags().Bool("expose-filename", false,
		"keep a basename display field in production output")
	rootCmd.PersistentFlags().Bool("content-scope", false,
		"derive scope tokens from path and content instead of path alone")
	rootCmd.PersistentFlags().StringSlice("block-import", nil,
		"custom block types admitted for side-effect imports")
	rootCmd.PersistentFlags().StringSlice("block-invoke", nil,
		"custom block types invoked against the component object")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (text, json)")

	bind := map[string]string{
		"build.production":       "production",
		"build.server_rendering": "ssr",
		"build.root":             "root",
		"build.expose_filename":  "expose-filename",
		"build.content_scope":    "content-scope",
		"blocks.import":          "block-import",
		"blocks.invoke":          "block-invoke",
		"log.level":              "log-level",
		"log.format":             "log-format",
	}
	for key, flag := range bind {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "flag binding failed: %v\n", err)
			os.Exit(1)
		}
	}

	addFlagValidation(rootCmd, "log-level", oneOf("debug", "info", "warn", "error"))
	addFlagValidation(rootCmd, "log-format", oneOf("text", "json"))
}

// loadConfig resolves the effective configuration for a command run.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// newLogger builds the CLI logger from the log configuration.
func newLogger(cfg *config.Config) logging.Logger {
	level := logging.LevelInfo
	switch cfg.Log.Level {
	case "debug":
		level = logging.LevelDebug
	case "warn":
		level = logging.LevelWarn
	case "error":
		level = logging.LevelError
	}

	return logging.NewLogger(&logging.Config{
		Level:  level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
}
