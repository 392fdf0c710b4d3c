// Package parser turns raw composite-document text into a structured
// descriptor. The transform engine only depends on the Parser interface; the
// default implementation here scans the document with the html tokenizer so
// the CLI works end to end without a host-supplied parser.
package parser

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/componentry/sfcsplit/internal/diagnostics"
	"github.com/componentry/sfcsplit/internal/types"
)

// Parser produces a descriptor from raw document text, or structural
// diagnostics when the document is malformed. Implementations must be pure:
// same text in, same descriptor out.
type Parser interface {
	Parse(source, path string) (*types.Descriptor, []*diagnostics.Diagnostic)
}

// BlockParser is the default parser. It recognizes top-level script,
// template, and style sections plus arbitrary custom sections, preserving
// section order and attribute declaration order.
type BlockParser struct{}

// New creates the default block parser.
func New() *BlockParser {
	return &BlockParser{}
}

// Verify that BlockParser implements the Parser interface.
var _ Parser = (*BlockParser)(nil)

// Parse scans source into a descriptor. Section content is the raw byte
// range between the open and close tags; nothing is reformatted. Returned
// diagnostics are structural: an unterminated section or a duplicated
// singular section (script, script setup, template).
func (p *BlockParser) Parse(source, path string) (*types.Descriptor, []*diagnostics.Diagnostic) {
	d := &types.Descriptor{Path: path, Source: source}
	var diags []*diagnostics.Diagnostic

	z := html.NewTokenizer(strings.NewReader(source))
	offset := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() != io.EOF {
				diags = append(diags, diagnostics.NewStructural(
					diagnostics.CodeMalformedTag, z.Err().Error(),
				).WithLocation(path, lineAt(source, offset), 0))
			}
			return d, diags
		}

		raw := z.Raw()
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			// Top-level text, comments, and doctypes are not sections.
			offset += len(raw)
			continue
		}

		tagLine := lineAt(source, offset)
		name, attrs := tagNameAndAttrs(z)
		offset += len(raw)

		block := types.Block{Line: lineAt(source, offset), Attrs: attrs}

		if tt == html.StartTagToken {
			content, next, ok := p.readContent(z, source, name, offset)
			if !ok {
				diags = append(diags, diagnostics.NewStructural(
					diagnostics.CodeUnterminatedBlock,
					"section <"+name+"> is never closed",
				).WithLocation(path, tagLine, 0))
				return d, diags
			}
			block.Content = content
			offset = next
		}

		if diag := addBlock(d, name, block); diag != nil {
			diags = append(diags, diag.WithLocation(path, tagLine, 0))
		}
	}
}

// readContent consumes tokens until the matching end tag of name, returning
// the raw content slice and the offset just past the end tag. ok is false
// when the document ends before the section closes.
func (p *BlockParser) readContent(z *html.Tokenizer, source, name string, start int) (content string, next int, ok bool) {
	offset := start
	depth := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return "", offset, false
		}

		raw := z.Raw()

		switch tt {
		case html.StartTagToken:
			tag, _ := z.TagName()
			if string(tag) == name {
				depth++
			}
		case html.EndTagToken:
			tag, _ := z.TagName()
			if string(tag) == name {
				if depth == 0 {
					return source[start:offset], offset + len(raw), true
				}
				depth--
			}
		}

		offset += len(raw)
	}
}

// addBlock files a closed section into the descriptor slot its tag selects.
func addBlock(d *types.Descriptor, name string, block types.Block) *diagnostics.Diagnostic {
	switch name {
	case "script":
		if block.Attrs.Has("setup") {
			if d.ScriptSetup != nil {
				return duplicate("script setup")
			}
			d.ScriptSetup = &block
			return nil
		}
		if d.Script != nil {
			return duplicate("script")
		}
		d.Script = &block
	case "template":
		if d.Template != nil {
			return duplicate("template")
		}
		d.Template = &block
	case "style":
		style := &types.StyleBlock{Block: block, Scoped: block.Attrs.Has("scoped")}
		for _, a := range block.Attrs {
			if a.Name == "module" {
				style.Module = true
				style.ModuleName = a.Value
			}
		}
		d.Styles = append(d.Styles, style)
	default:
		d.CustomBlocks = append(d.CustomBlocks, &types.CustomBlock{Block: block, Type: name})
	}

	return nil
}

func duplicate(kind string) *diagnostics.Diagnostic {
	return diagnostics.NewStructural(
		diagnostics.CodeDuplicateBlock,
		"document declares more than one "+kind+" section",
	)
}

// tagNameAndAttrs drains the current tag's name and attribute list in
// declaration order. A valueless attribute is recorded as a bare flag.
func tagNameAndAttrs(z *html.Tokenizer) (string, types.AttributeList) {
	name, hasAttr := z.TagName()

	var attrs types.AttributeList
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		attrs = append(attrs, types.Attribute{
			Name:  string(key),
			Value: string(val),
			Bool:  len(val) == 0,
		})
	}

	return string(name), attrs
}

// lineAt returns the 1-based line number of the byte offset.
func lineAt(source string, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	return 1 + strings.Count(source[:offset], "\n")
}
