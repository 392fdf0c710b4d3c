package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/componentry/sfcsplit/internal/diagnostics"
	"github.com/componentry/sfcsplit/internal/transform"
	"github.com/componentry/sfcsplit/internal/watcher"
)

var watchDebounce time.Duration

// watchCmd re-runs the transform whenever a watched document changes.
var watchCmd = &cobra.Command{
	Use:     "watch FILE...",
	Aliases: []string{"w"},
	Short:   "Re-transform composite documents on change",
	Long: `Watch keeps the engine running and re-transforms each document whenever
its file changes. The descriptor cache carries over between rebuilds, so a
rebuild overwrites the document's entry and every regenerated address stays
stable unless the content-sensitive scope mode is active and the content
changed.

Examples:
  sfcsplit watch app.vue
  sfcsplit watch src/*.vue --content-scope`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 100*time.Millisecond,
		"delay before a changed file is re-transformed")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	logger := newLogger(cfg).WithComponent("watch")
	engine := transform.NewEngine(nil, nil, cfg.Policy())
	opts := buildOptions(cfg)

	rebuild := func(path string) {
		source, err := os.ReadFile(path)
		if err != nil {
			logger.Error(ctx, err, "cannot read changed file", "path", path)
			return
		}

		sink := &diagnostics.CollectingSink{}
		result := engine.Transform(string(source), path, opts, sink)
		if result == nil {
			for _, d := range sink.Diagnostics {
				logger.Warn(ctx, d, "transform failed", "path", path)
			}
			return
		}

		logger.Info(ctx, "document transformed",
			"path", path,
			"scope", result.ScopeToken,
			"bytes", len(result.Code),
		)
	}

	fw, err := watcher.New(watchDebounce, rebuild)
	if err != nil {
		return err
	}

	for _, arg := range args {
		path, err := filepath.Abs(arg)
		if err != nil {
			return fmt.Errorf("cannot resolve %s: %w", arg, err)
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("cannot watch %s: %w", arg, err)
		}
		rebuild(path)
	}

	logger.Info(ctx, "watching", "files", len(args), "debounce", watchDebounce.String())

	return fw.Run(ctx)
}
