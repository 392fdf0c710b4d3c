// Package router decides, for each section of a parsed document, whether the
// section needs its own virtual sub-request, and constructs the sub-request
// addresses. Addresses are rebuilt fresh on every transform; their stability
// across rebuilds comes entirely from the determinism of the scope token and
// the query encoding.
package router

import (
	"fmt"
	"net/url"

	"github.com/componentry/sfcsplit/internal/diagnostics"
	"github.com/componentry/sfcsplit/internal/query"
	"github.com/componentry/sfcsplit/internal/types"
)

// requestFlag marks a synthesized address as belonging to this engine. Host
// pipelines match on it to route follow-up resolutions back here.
const requestFlag = "vue"

// Language fallbacks applied when a section declares no lang attribute.
const (
	scriptLangFallback   = "js"
	templateLangFallback = "js"
	styleLangFallback    = "css"
)

// Action describes how a custom block is wired into the facade module.
type Action int

const (
	// ActionDrop excludes the block entirely: no address, no output.
	ActionDrop Action = iota
	// ActionSideEffect imports the block's sub-request for side effects only.
	ActionSideEffect
	// ActionMutate imports the block's sub-request and invokes the imported
	// value against the assembled script object.
	ActionMutate
)

// BlockPolicy decides the fate of a custom block from its type.
type BlockPolicy interface {
	Decide(blockType string) Action
}

// PolicyFunc adapts a plain function to a BlockPolicy.
type PolicyFunc func(blockType string) Action

// Decide implements BlockPolicy.
func (f PolicyFunc) Decide(blockType string) Action { return f(blockType) }

// DropAll is the zero policy: every custom block is rejected.
var DropAll = PolicyFunc(func(string) Action { return ActionDrop })

// Options carries the per-transform inputs the router needs.
type Options struct {
	// ServerRendering selects the server-rendering variant of the facade
	ServerRendering bool
	// ScopeToken is the document's deterministic identity
	ScopeToken string
}

// ScriptRoute is the routing decision for the script section.
type ScriptRoute struct {
	Request string
}

// TemplateRoute is the routing decision for the template section.
type TemplateRoute struct {
	Request string
}

// StyleRoute is the routing decision for one style section. A CSS-module
// section produces two addresses sharing the same base request: Request for
// side-effect inclusion and ModuleRequest for the class-name export map.
type StyleRoute struct {
	Index         int
	Request       string
	Scoped        bool
	Module        bool
	ModuleRequest string
	// ExportName is the key under which the class-name map is exposed;
	// "$style" unless the section named its own export.
	ExportName string
}

// BlockRoute is the routing decision for one admitted custom block.
type BlockRoute struct {
	Index   int
	Type    string
	Request string
	Invoke  bool
}

// Plan is the complete set of routing decisions for one document. Nil script
// and template routes mean the assembler falls back to the empty placeholder
// object and the no-op render binding respectively.
type Plan struct {
	Script   *ScriptRoute
	Template *TemplateRoute
	Styles   []StyleRoute
	Blocks   []BlockRoute
}

// Route computes the routing plan for a parsed document. It returns an
// address-collision diagnostic if two sections resolve to the same address,
// which violates the one-address-per-section invariant and indicates a
// configuration error.
func Route(d *types.Descriptor, opts Options, policy BlockPolicy) (*Plan, *diagnostics.Diagnostic) {
	if policy == nil {
		policy = DropAll
	}

	plan := &Plan{}
	seen := make(map[string]bool)

	claim := func(request string) *diagnostics.Diagnostic {
		if seen[request] {
			return diagnostics.NewAddressCollision(d.Path, request)
		}
		seen[request] = true
		return nil
	}

	if script := scriptSection(d); script != nil {
		req := sectionRequest(d, script, "script", -1, "", query.Encode(script.Attrs, scriptLangFallback, false))
		if diag := claim(req); diag != nil {
			return nil, diag
		}
		plan.Script = &ScriptRoute{Request: req}
	}

	// When the script-setup variant inlines the template and server rendering
	// is off, the template compiles as part of the script sub-request. A
	// separate template address there would double-compile it.
	if d.Template != nil && (opts.ServerRendering || d.ScriptSetup == nil) {
		req := sectionRequest(d, d.Template, "template", -1, opts.ScopeToken,
			query.Encode(d.Template.Attrs, templateLangFallback, true))
		if diag := claim(req); diag != nil {
			return nil, diag
		}
		plan.Template = &TemplateRoute{Request: req}
	}

	for i, style := range d.Styles {
		route := StyleRoute{
			Index:      i,
			Scoped:     style.Scoped,
			Module:     style.Module,
			ExportName: style.ModuleName,
		}
		if route.Module && route.ExportName == "" {
			route.ExportName = "$style"
		}

		// The side-effect address strips the module attribute so both
		// variants target the identical base request.
		plain := query.Encode(style.Attrs.Without("module"), styleLangFallback, false)
		route.Request = sectionRequest(d, &style.Block, "style", i, opts.ScopeToken, plain)
		if diag := claim(route.Request); diag != nil {
			return nil, diag
		}

		if route.Module {
			full := query.Encode(style.Attrs, styleLangFallback, false)
			route.ModuleRequest = sectionRequest(d, &style.Block, "style", i, opts.ScopeToken, full) + ".js"
			if diag := claim(route.ModuleRequest); diag != nil {
				return nil, diag
			}
		}

		plan.Styles = append(plan.Styles, route)
	}

	for i, block := range d.CustomBlocks {
		action := policy.Decide(block.Type)
		if action == ActionDrop {
			continue
		}

		req := sectionRequest(d, &block.Block, block.Type, i, opts.ScopeToken,
			query.Encode(block.Attrs, "", false))
		if diag := claim(req); diag != nil {
			return nil, diag
		}

		plan.Blocks = append(plan.Blocks, BlockRoute{
			Index:   i,
			Type:    block.Type,
			Request: req,
			Invoke:  action == ActionMutate,
		})
	}

	return plan, nil
}

// scriptSection picks the section whose attributes address the script
// sub-request. A lone script-setup variant still gets a script address; the
// script compiler resolves both variants from the cached descriptor.
func scriptSection(d *types.Descriptor) *types.Block {
	if d.Script != nil {
		return d.Script
	}
	return d.ScriptSetup
}

// sectionRequest builds one virtual address. Parameter order is fixed:
// flag, type, index, id, src, encoded attributes, language suffix.
func sectionRequest(d *types.Descriptor, b *types.Block, kind string, index int, id, attrsQuery string) string {
	base := d.Path
	src, external := b.Src()
	if external {
		base = src
	}

	req := base + "?" + requestFlag + "&type=" + url.QueryEscape(kind)
	if index >= 0 {
		req += fmt.Sprintf("&index=%d", index)
	}
	if id != "" {
		req += "&id=" + id
	}
	if external {
		req += "&src"
	}

	return req + attrsQuery
}
