package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/componentry/sfcsplit/internal/diagnostics"
)

const buttonDoc = `<template>
  <div class="btn">{{ label }}</div>
</template>

<script lang="ts">
export default {}
</script>

<style scoped>
.btn { color: red; }
</style>

<style module="classes" lang="scss">
.btn { color: blue; }
</style>

<docs>
# Button
</docs>
`

func TestParse_FullDocument(t *testing.T) {
	d, diags := New().Parse(buttonDoc, "/src/Button.vue")
	require.Empty(t, diags)

	assert.Equal(t, "/src/Button.vue", d.Path)
	assert.Equal(t, buttonDoc, d.Source)

	require.NotNil(t, d.Template)
	assert.Equal(t, "\n  <div class=\"btn\">{{ label }}</div>\n", d.Template.Content)
	assert.Equal(t, 1, d.Template.Line)

	require.NotNil(t, d.Script)
	lang, ok := d.Script.Lang()
	require.True(t, ok)
	assert.Equal(t, "ts", lang)
	assert.Equal(t, "\nexport default {}\n", d.Script.Content)
	assert.Nil(t, d.ScriptSetup)

	require.Len(t, d.Styles, 2)
	assert.True(t, d.Styles[0].Scoped)
	assert.False(t, d.Styles[0].Module)
	assert.False(t, d.Styles[1].Scoped)
	assert.True(t, d.Styles[1].Module)
	assert.Equal(t, "classes", d.Styles[1].ModuleName)
	assert.Equal(t, "\n.btn { color: blue; }\n", d.Styles[1].Content)

	require.Len(t, d.CustomBlocks, 1)
	assert.Equal(t, "docs", d.CustomBlocks[0].Type)
	assert.Equal(t, "\n# Button\n", d.CustomBlocks[0].Content)
}

func TestParse_AttributeOrderPreserved(t *testing.T) {
	source := `<style lang="scss" scoped media="print"></style>`

	d, diags := New().Parse(source, "/src/x.vue")
	require.Empty(t, diags)
	require.Len(t, d.Styles, 1)

	attrs := d.Styles[0].Attrs
	require.Len(t, attrs, 3)
	assert.Equal(t, "lang", attrs[0].Name)
	assert.Equal(t, "scoped", attrs[1].Name)
	assert.True(t, attrs[1].Bool)
	assert.Equal(t, "media", attrs[2].Name)
	assert.Equal(t, "print", attrs[2].Value)
}

func TestParse_ScriptSetupVariant(t *testing.T) {
	source := "<script setup>\nconst x = 1\n</script>\n<template><p/></template>\n"

	d, diags := New().Parse(source, "/src/x.vue")
	require.Empty(t, diags)

	assert.Nil(t, d.Script)
	require.NotNil(t, d.ScriptSetup)
	assert.Equal(t, "\nconst x = 1\n", d.ScriptSetup.Content)
}

func TestParse_BothScriptVariants(t *testing.T) {
	source := "<script>\nexport default {}\n</script>\n<script setup>\nconst x = 1\n</script>\n"

	d, diags := New().Parse(source, "/src/x.vue")
	require.Empty(t, diags)
	require.NotNil(t, d.Script)
	require.NotNil(t, d.ScriptSetup)
}

func TestParse_ExternalSrc(t *testing.T) {
	source := `<style src="./theme.css"></style>`

	d, diags := New().Parse(source, "/src/x.vue")
	require.Empty(t, diags)
	require.Len(t, d.Styles, 1)

	src, ok := d.Styles[0].Src()
	require.True(t, ok)
	assert.Equal(t, "./theme.css", src)
	assert.Empty(t, d.Styles[0].Content)
}

func TestParse_SectionOrderDefinesIndex(t *testing.T) {
	source := "<style>.a{}</style><style>.b{}</style><style>.c{}</style>"

	d, diags := New().Parse(source, "/src/x.vue")
	require.Empty(t, diags)
	require.Len(t, d.Styles, 3)
	assert.Equal(t, ".a{}", d.Styles[0].Content)
	assert.Equal(t, ".b{}", d.Styles[1].Content)
	assert.Equal(t, ".c{}", d.Styles[2].Content)
}

func TestParse_UnterminatedBlock(t *testing.T) {
	source := "<template>\n<div>never closed\n"

	_, diags := New().Parse(source, "/src/x.vue")
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.CodeUnterminatedBlock, diags[0].Code)
	assert.Equal(t, diagnostics.KindStructural, diags[0].Kind)
	assert.Equal(t, "/src/x.vue", diags[0].Resource)
	assert.Equal(t, 1, diags[0].Line)
}

func TestParse_DuplicateSections(t *testing.T) {
	source := "<template><p/></template>\n<template><q/></template>\n"

	_, diags := New().Parse(source, "/src/x.vue")
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.CodeDuplicateBlock, diags[0].Code)
	assert.Equal(t, 2, diags[0].Line)
}

func TestParse_TopLevelNoiseIgnored(t *testing.T) {
	source := "<!-- header comment -->\n\n<template><p/></template>\nstray text\n"

	d, diags := New().Parse(source, "/src/x.vue")
	require.Empty(t, diags)
	require.NotNil(t, d.Template)
	assert.Empty(t, d.CustomBlocks)
}

func TestParse_Deterministic(t *testing.T) {
	p := New()
	a, _ := p.Parse(buttonDoc, "/src/Button.vue")
	b, _ := p.Parse(buttonDoc, "/src/Button.vue")

	assert.Equal(t, a, b)
}
