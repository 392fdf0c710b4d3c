// Package transform wires the parser, descriptor cache, section router, and
// output assembler into the document transform entry point. One call turns a
// composite document into the facade module text the host pipeline consumes;
// the synthesized sub-request addresses inside it resolve back through the
// engine's cache.
package transform

import (
	"github.com/componentry/sfcsplit/internal/assembler"
	"github.com/componentry/sfcsplit/internal/cache"
	"github.com/componentry/sfcsplit/internal/diagnostics"
	"github.com/componentry/sfcsplit/internal/parser"
	"github.com/componentry/sfcsplit/internal/router"
	"github.com/componentry/sfcsplit/internal/scope"
	"github.com/componentry/sfcsplit/internal/types"
)

// Options carries the build options of one transform invocation.
type Options struct {
	// Production selects production output: no display path unless
	// ExposeFilename, and production-only custom blocks admitted
	Production bool
	// ServerRendering selects the server-rendering facade variant
	ServerRendering bool
	// Root is the project root paths are normalized against
	Root string
	// ExposeFilename opts into a basename display field in production
	ExposeFilename bool
	// ContentSensitiveScope derives the scope token from path and content
	// instead of path alone
	ContentSensitiveScope bool
	// TemplateCompiler holds pass-through options for the external template
	// compiler resolving template sub-requests; the engine never interprets
	// them
	TemplateCompiler map[string]string
}

// Result is the output of a successful transform.
type Result struct {
	Code string
	Map  assembler.SourceMap
	// ScopeToken is the identity every emitted address carries
	ScopeToken string
}

// Engine is the decomposition-and-synthesis engine. It is safe for
// concurrent transforms of distinct resources; the descriptor cache is the
// only shared state.
type Engine struct {
	parser parser.Parser
	cache  *cache.DescriptorCache
	policy router.BlockPolicy
}

// NewEngine creates an engine. A nil parser selects the default block
// parser; a nil policy drops every custom block.
func NewEngine(p parser.Parser, c *cache.DescriptorCache, policy router.BlockPolicy) *Engine {
	if p == nil {
		p = parser.New()
	}
	if c == nil {
		c = cache.NewDescriptorCache()
	}
	if policy == nil {
		policy = router.DropAll
	}

	return &Engine{parser: p, cache: c, policy: policy}
}

// Cache exposes the engine's descriptor cache to collaborators that resolve
// sub-requests out of band.
func (e *Engine) Cache() *cache.DescriptorCache {
	return e.cache
}

// Transform decomposes the document at resource and assembles its facade
// module. On structural diagnostics every finding is reported to sink and
// the transform returns nil; the caller can keep processing other resources.
func (e *Engine) Transform(source, resource string, opts Options, sink diagnostics.Sink) *Result {
	descriptor, diags := e.parser.Parse(source, resource)
	if len(diags) > 0 {
		for _, d := range diags {
			sink.Report(d)
		}
		return nil
	}

	// A failed later attempt may leave this entry behind; the next
	// successful transform of the same resource overwrites it.
	e.cache.Set(resource, descriptor)

	shortPath := scope.NormalizePath(resource, opts.Root)
	token := scope.Token(shortPath, source, opts.ContentSensitiveScope)

	plan, diag := router.Route(descriptor, router.Options{
		ServerRendering: opts.ServerRendering,
		ScopeToken:      token,
	}, e.policy)
	if diag != nil {
		sink.Report(diag)
		return nil
	}

	out := assembler.Assemble(plan, assembler.Options{
		Production:      opts.Production,
		ServerRendering: opts.ServerRendering,
		ExposeFilename:  opts.ExposeFilename,
		ScopeToken:      token,
		ShortPath:       shortPath,
		NoopRender:      plan.Template == nil,
	})

	return &Result{Code: out.Code, Map: out.Map, ScopeToken: token}
}

// Section resolves a previously synthesized address back to the raw content
// of the section it names, using the cached descriptor of the parent
// document. It reports false when the address is foreign, the document was
// never transformed, or the index is out of range.
func (e *Engine) Section(request string) (string, bool) {
	req, ok := router.ParseRequest(request)
	if !ok || req.Src {
		return "", false
	}

	descriptor, ok := e.cache.Get(req.Base)
	if !ok {
		return "", false
	}

	switch req.Type {
	case "script":
		if block := scriptBlock(descriptor); block != nil {
			return block.Content, true
		}
	case "template":
		if descriptor.Template != nil {
			return descriptor.Template.Content, true
		}
	case "style":
		if req.Index >= 0 && req.Index < len(descriptor.Styles) {
			return descriptor.Styles[req.Index].Content, true
		}
	default:
		if req.Index >= 0 && req.Index < len(descriptor.CustomBlocks) {
			block := descriptor.CustomBlocks[req.Index]
			if block.Type == req.Type {
				return block.Content, true
			}
		}
	}

	return "", false
}

func scriptBlock(d *types.Descriptor) *types.Block {
	if d.Script != nil {
		return d.Script
	}
	return d.ScriptSetup
}
