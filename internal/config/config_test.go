package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/componentry/sfcsplit/internal/router"
)

func TestLoad_FromFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sfcsplit.yml")
	content := `build:
  production: true
  server_rendering: true
  root: /work/app
  expose_filename: true
blocks:
  import:
    - docs
  invoke:
    - i18n
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.True(t, cfg.Build.Production)
	assert.True(t, cfg.Build.ServerRendering)
	assert.Equal(t, "/work/app", cfg.Build.Root)
	assert.True(t, cfg.Build.ExposeFilename)
	assert.Equal(t, []string{"docs"}, cfg.Blocks.Import)
	assert.Equal(t, []string{"i18n"}, cfg.Blocks.Invoke)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Build.Production)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoad_RejectsAmbiguousBlockPolicy(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sfcsplit.yml")
	content := `blocks:
  import: [docs]
  invoke: [docs]
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))

	_, err := Load(cfgPath)
	assert.ErrorContains(t, err, "docs")
}

func TestPolicy_Dispatch(t *testing.T) {
	cfg := &Config{
		Blocks: BlocksConfig{
			Import: []string{"docs"},
			Invoke: []string{"i18n"},
		},
	}
	policy := cfg.Policy()

	assert.Equal(t, router.ActionSideEffect, policy.Decide("docs"))
	assert.Equal(t, router.ActionMutate, policy.Decide("i18n"))
	assert.Equal(t, router.ActionDrop, policy.Decide("fixtures"))
}

func TestPolicy_ProductionOnlyBlocks(t *testing.T) {
	base := BlocksConfig{
		Invoke:         []string{"analytics"},
		ProductionOnly: []string{"analytics"},
	}

	dev := (&Config{Blocks: base}).Policy()
	assert.Equal(t, router.ActionDrop, dev.Decide("analytics"))

	prod := (&Config{Build: BuildConfig{Production: true}, Blocks: base}).Policy()
	assert.Equal(t, router.ActionMutate, prod.Decide("analytics"))
}
