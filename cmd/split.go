package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/componentry/sfcsplit/internal/config"
	"github.com/componentry/sfcsplit/internal/diagnostics"
	"github.com/componentry/sfcsplit/internal/transform"
)

var (
	splitOutput  string
	splitShowMap bool
)

// splitCmd runs one transform and prints the facade module.
var splitCmd = &cobra.Command{
	Use:     "split FILE",
	Aliases: []string{"s"},
	Short:   "Decompose one composite document and print its facade module",
	Long: `Split parses the composite document, routes each section into a virtual
sub-request, and prints the assembled facade module.

On structural errors every diagnostic is printed to stderr with its resource
and position, nothing is printed to stdout, and the command exits non-zero.

Examples:
  sfcsplit split app.vue                      # facade module on stdout
  sfcsplit split app.vue -o app.facade.js    # write to a file
  sfcsplit split app.vue --production --ssr  # server-rendering production build`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().StringVarP(&splitOutput, "output", "o", "", "write the facade module to a file")
	splitCmd.Flags().BoolVar(&splitShowMap, "map", false, "print the source-map placeholder as JSON to stderr")
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	resource, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("cannot resolve %s: %w", args[0], err)
	}

	source, err := os.ReadFile(resource)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", args[0], err)
	}

	engine := transform.NewEngine(nil, nil, cfg.Policy())
	sink := &diagnostics.CollectingSink{}

	result := engine.Transform(string(source), resource, buildOptions(cfg), sink)
	if result == nil {
		for _, d := range sink.Diagnostics {
			fmt.Fprintln(os.Stderr, d.Error())
		}
		return fmt.Errorf("%s: %d structural error(s)", args[0], len(sink.Diagnostics))
	}

	if splitShowMap {
		raw, err := json.Marshal(result.Map)
		if err == nil {
			fmt.Fprintln(os.Stderr, string(raw))
		}
	}

	if splitOutput != "" {
		return os.WriteFile(splitOutput, []byte(result.Code), 0644)
	}

	fmt.Print(result.Code)
	return nil
}

// buildOptions maps the effective configuration onto transform options.
func buildOptions(cfg *config.Config) transform.Options {
	return transform.Options{
		Production:            cfg.Build.Production,
		ServerRendering:       cfg.Build.ServerRendering,
		Root:                  cfg.Build.Root,
		ExposeFilename:        cfg.Build.ExposeFilename,
		ContentSensitiveScope: cfg.Build.ContentScope,
		TemplateCompiler:      cfg.Build.TemplateOptions,
	}
}
