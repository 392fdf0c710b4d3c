package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/componentry/sfcsplit/internal/config"
)

func TestFlagValidation(t *testing.T) {
	levelFlag := rootCmd.PersistentFlags().Lookup("log-level")
	require.NotNil(t, levelFlag)

	assert.NoError(t, levelFlag.Value.Set("debug"))
	assert.Error(t, levelFlag.Value.Set("loud"))

	formatFlag := rootCmd.PersistentFlags().Lookup("log-format")
	require.NotNil(t, formatFlag)

	assert.NoError(t, formatFlag.Value.Set("json"))
	assert.Error(t, formatFlag.Value.Set("xml"))

	require.NoError(t, levelFlag.Value.Set(""))
	require.NoError(t, formatFlag.Value.Set(""))
}

func TestBuildOptions_MapsConfig(t *testing.T) {
	cfg := &config.Config{
		Build: config.BuildConfig{
			Production:      true,
			ServerRendering: true,
			Root:            "/work",
			ExposeFilename:  true,
			ContentScope:    true,
			TemplateOptions: map[string]string{"whitespace": "condense"},
		},
	}

	opts := buildOptions(cfg)

	assert.True(t, opts.Production)
	assert.True(t, opts.ServerRendering)
	assert.Equal(t, "/work", opts.Root)
	assert.True(t, opts.ExposeFilename)
	assert.True(t, opts.ContentSensitiveScope)
	assert.Equal(t, "condense", opts.TemplateCompiler["whitespace"])
}

func TestSplitCommand_WritesFacade(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "Button.vue")
	out := filepath.Join(dir, "Button.facade.js")

	source := "<template>\n  <button/>\n</template>\n<script>\nexport default {}\n</script>\n"
	require.NoError(t, os.WriteFile(doc, []byte(source), 0644))

	rootCmd.SetArgs([]string{"split", doc, "-o", out})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		splitOutput = ""
	})

	require.NoError(t, rootCmd.Execute())

	facade, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(facade), "?vue&type=script")
	assert.Contains(t, string(facade), "export default script")
}

func TestSplitCommand_StructuralErrorFails(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "Broken.vue")
	require.NoError(t, os.WriteFile(doc, []byte("<template>\n<p>never closed\n"), 0644))

	rootCmd.SetArgs([]string{"split", doc})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	assert.Error(t, rootCmd.Execute())
}
