package router

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/componentry/sfcsplit/internal/query"
	"github.com/componentry/sfcsplit/internal/types"
)

// Request is a parsed virtual address. The host pipeline hands addresses
// back to the engine in this form to fetch one section's content.
type Request struct {
	// Base is the document path or the external src the address targets
	Base string
	// Type is the section kind: script, template, style, or a custom type
	Type string
	// Index selects one of a plural section kind; -1 when absent
	Index int
	// ID is the scope token of the parent document, when carried
	ID string
	// Src marks the section as delegating to an external file
	Src bool
	// Attrs holds the user-declared attributes recovered from the query
	Attrs types.AttributeList
	// Lang is the trailing language suffix, when one was appended
	Lang string
	// ModuleMap marks the class-name export-map variant of a CSS module
	ModuleMap bool
}

// ParseRequest decodes a virtual address produced by Route. It reports
// failure when the address does not carry the engine's flag or lacks the
// type parameter required for routing. Parameter order beyond the flag is
// not significant.
func ParseRequest(request string) (*Request, bool) {
	base, rawQuery, ok := strings.Cut(request, "?")
	if !ok {
		return nil, false
	}

	req := &Request{Base: base, Index: -1}
	if strings.HasSuffix(rawQuery, ".js") {
		// The export-map marker is a ".js" appended after a complete
		// language suffix; a bare "&lang.js" is itself a language suffix.
		trimmed := strings.TrimSuffix(rawQuery, ".js")
		if i := strings.LastIndex(trimmed, "&lang."); i >= 0 && len(trimmed) > i+len("&lang.") {
			req.ModuleMap = true
			rawQuery = trimmed
		}
	}

	parts := strings.Split(rawQuery, "&")
	if len(parts) == 0 || parts[0] != requestFlag {
		return nil, false
	}

	var rest []string
	for _, part := range parts[1:] {
		key, value, hasValue := strings.Cut(part, "=")
		switch {
		case key == "type" && hasValue:
			kind, err := url.QueryUnescape(value)
			if err != nil {
				return nil, false
			}
			req.Type = kind
		case key == "index" && hasValue:
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, false
			}
			req.Index = n
		case key == "id" && hasValue:
			req.ID = value
		case key == "src" && !hasValue:
			req.Src = true
		default:
			rest = append(rest, part)
		}
	}

	if req.Type == "" {
		return nil, false
	}

	req.Attrs, req.Lang = query.Parse(strings.Join(rest, "&"))

	return req, true
}
