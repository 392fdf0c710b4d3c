// Package assembler turns a routing plan into the final facade module text.
// The module is built as an ordered list of typed fragments that serialize
// once at the end, so section ordering and conditional-inclusion rules live
// in the data structure instead of ad hoc string concatenation.
package assembler

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/componentry/sfcsplit/internal/router"
	"github.com/componentry/sfcsplit/internal/scope"
)

// Options carries the per-transform inputs the assembler needs.
type Options struct {
	// Production selects the production metadata variant
	Production bool
	// ServerRendering binds the server render function name
	ServerRendering bool
	// ExposeFilename opts into a basename-only display field in production
	ExposeFilename bool
	// ScopeToken is the document's deterministic identity
	ScopeToken string
	// ShortPath is the normalized display path of the document
	ShortPath string
	// NoopRender binds a placeholder render function when no template
	// address was generated for the document
	NoopRender bool
}

// SourceMap is the placeholder mapping emitted alongside the facade module.
// Real source-map content is an external concern; the fields stay empty.
type SourceMap struct {
	Version  int      `json:"version"`
	Sources  []string `json:"sources"`
	Names    []string `json:"names"`
	Mappings string   `json:"mappings"`
}

// Result is the assembled facade module.
type Result struct {
	Code string
	Map  SourceMap
}

// fragment is one statement group of the facade module.
type fragment interface {
	writeTo(b *strings.Builder)
}

// importFragment imports a sub-request, optionally binding its default
// export. An empty binding is a side-effect import.
type importFragment struct {
	binding string
	request string
}

func (f importFragment) writeTo(b *strings.Builder) {
	if f.binding == "" {
		fmt.Fprintf(b, "import %q\n", f.request)
		return
	}
	fmt.Fprintf(b, "import %s from %q\n", f.binding, f.request)
}

// namedImportFragment imports a named export from a sub-request.
type namedImportFragment struct {
	name    string
	request string
}

func (f namedImportFragment) writeTo(b *strings.Builder) {
	fmt.Fprintf(b, "import { %s } from %q\n", f.name, f.request)
}

// exportAllFragment re-exports every named export of the script sub-request,
// preserving author-declared exports on the facade.
type exportAllFragment struct {
	request string
}

func (f exportAllFragment) writeTo(b *strings.Builder) {
	fmt.Fprintf(b, "export * from %q\n", f.request)
}

// statementFragment is a single literal statement.
type statementFragment string

func (f statementFragment) writeTo(b *strings.Builder) {
	b.WriteString(string(f))
	b.WriteByte('\n')
}

// exportDefaultFragment closes the module with the script object export.
type exportDefaultFragment struct{}

func (exportDefaultFragment) writeTo(b *strings.Builder) {
	b.WriteString("export default script\n")
}

// Assemble serializes a routing plan into facade module text. Emission order
// is fixed: script, template binding, styles, custom blocks, metadata,
// default export.
func Assemble(plan *router.Plan, opts Options) Result {
	var frags []fragment

	if plan.Script != nil {
		frags = append(frags,
			importFragment{binding: "script", request: plan.Script.Request},
			exportAllFragment{request: plan.Script.Request},
		)
	} else {
		frags = append(frags, statementFragment("const script = {}"))
	}

	renderName := "render"
	if opts.ServerRendering {
		renderName = "ssrRender"
	}
	if plan.Template != nil {
		frags = append(frags,
			namedImportFragment{name: renderName, request: plan.Template.Request},
			statementFragment(fmt.Sprintf("script.%s = %s", renderName, renderName)),
		)
	} else if opts.NoopRender {
		frags = append(frags,
			statementFragment(fmt.Sprintf("const %s = () => {}", renderName)),
			statementFragment(fmt.Sprintf("script.%s = %s", renderName, renderName)),
		)
	}

	frags = append(frags, styleFragments(plan.Styles)...)

	for _, block := range plan.Blocks {
		binding := fmt.Sprintf("block%d", block.Index)
		frags = append(frags, importFragment{binding: binding, request: block.Request})
		if block.Invoke {
			frags = append(frags, statementFragment(fmt.Sprintf("%s(script)", binding)))
		}
	}

	frags = append(frags, metadataFragments(plan, opts)...)
	frags = append(frags, exportDefaultFragment{})

	var b strings.Builder
	for _, f := range frags {
		f.writeTo(&b)
	}

	return Result{
		Code: b.String(),
		Map: SourceMap{
			Version: 3,
			Sources: []string{opts.ShortPath},
		},
	}
}

// styleFragments emits the style imports. Every section is imported for side
// effects; CSS-module sections additionally import the generated class-name
// map and register it on the script object under their export name.
func styleFragments(styles []router.StyleRoute) []fragment {
	var frags []fragment
	declaredMap := false

	for _, style := range styles {
		frags = append(frags, importFragment{request: style.Request})
		if !style.Module {
			continue
		}

		binding := fmt.Sprintf("style%d", style.Index)
		frags = append(frags, importFragment{binding: binding, request: style.ModuleRequest})
		if !declaredMap {
			frags = append(frags, statementFragment("script.__cssModules = {}"))
			declaredMap = true
		}
		frags = append(frags, statementFragment(
			fmt.Sprintf("script.__cssModules[%q] = %s", style.ExportName, binding)))
	}

	return frags
}

// metadataFragments attaches the scope attribute and the display-path field.
func metadataFragments(plan *router.Plan, opts Options) []fragment {
	var frags []fragment

	for _, style := range plan.Styles {
		if style.Scoped {
			frags = append(frags, statementFragment(
				fmt.Sprintf("script.__scopeId = %q", scope.Attribute(opts.ScopeToken))))
			break
		}
	}

	if !opts.Production {
		frags = append(frags, statementFragment(
			fmt.Sprintf("script.__file = %q", opts.ShortPath)))
	} else if opts.ExposeFilename {
		frags = append(frags, statementFragment(
			fmt.Sprintf("script.__file = %q", filepath.Base(opts.ShortPath))))
	}

	return frags
}
