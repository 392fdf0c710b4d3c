// Package config provides configuration management for the sfcsplit CLI
// using Viper for flexible configuration loading from files, environment
// variables, and command-line flags.
//
// The configuration system supports YAML files (.sfcsplit.yml), environment
// variable overrides with the SFCSPLIT_ prefix, and flag bindings. It manages
// build options (production, server rendering, project root) and the
// custom-block policy applied during routing.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/componentry/sfcsplit/internal/router"
)

// Config is the effective CLI configuration.
type Config struct {
	Build  BuildConfig  `yaml:"build" mapstructure:"build"`
	Blocks BlocksConfig `yaml:"blocks" mapstructure:"blocks"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// BuildConfig holds the per-transform build options.
type BuildConfig struct {
	// Production enables production output
	Production bool `yaml:"production" mapstructure:"production"`
	// ServerRendering selects the server-rendering facade variant
	ServerRendering bool `yaml:"server_rendering" mapstructure:"server_rendering"`
	// Root is the project root paths are normalized against
	Root string `yaml:"root" mapstructure:"root"`
	// ExposeFilename keeps a basename display field in production output
	ExposeFilename bool `yaml:"expose_filename" mapstructure:"expose_filename"`
	// ContentScope makes the scope token content-sensitive
	ContentScope bool `yaml:"content_scope" mapstructure:"content_scope"`
	// TemplateOptions are passed through to the external template compiler
	TemplateOptions map[string]string `yaml:"template_options" mapstructure:"template_options"`
}

// BlocksConfig is the custom-block policy: block types absent from both
// lists are dropped.
type BlocksConfig struct {
	// Import lists block types admitted for side-effect imports
	Import []string `yaml:"import" mapstructure:"import"`
	// Invoke lists block types whose sub-module mutates the script object
	Invoke []string `yaml:"invoke" mapstructure:"invoke"`
	// ProductionOnly lists block types dropped outside production builds
	ProductionOnly []string `yaml:"production_only" mapstructure:"production_only"`
}

// LogConfig controls CLI logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from the config file, environment, and any bound
// flags, applying defaults for everything left unset.
func Load(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".sfcsplit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetEnvPrefix("SFCSPLIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "text"
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validate rejects configurations that would produce ambiguous routing.
func validate(config *Config) error {
	seen := make(map[string]string)
	for _, t := range config.Blocks.Import {
		seen[t] = "import"
	}
	for _, t := range config.Blocks.Invoke {
		if prior, ok := seen[t]; ok && prior != "invoke" {
			return fmt.Errorf("block type %q listed under both import and invoke", t)
		}
		seen[t] = "invoke"
	}

	switch config.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %s", config.Log.Format)
	}

	return nil
}

// Policy builds the router's custom-block policy from the block lists.
// Production-only types are admitted only when production is set.
func (c *Config) Policy() router.BlockPolicy {
	importSet := toSet(c.Blocks.Import)
	invokeSet := toSet(c.Blocks.Invoke)
	prodOnly := toSet(c.Blocks.ProductionOnly)
	production := c.Build.Production

	return router.PolicyFunc(func(blockType string) router.Action {
		if prodOnly[blockType] && !production {
			return router.ActionDrop
		}
		switch {
		case invokeSet[blockType]:
			return router.ActionMutate
		case importSet[blockType]:
			return router.ActionSideEffect
		default:
			return router.ActionDrop
		}
	})
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
