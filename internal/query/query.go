// Package query implements the canonical query-encoding protocol used to
// address each section of a composite document as a separate virtual request.
// Encoding must be pure and order-stable: the emitted suffix follows the
// declaration order of the source attribute list byte for byte.
package query

import (
	"net/url"
	"strings"

	"github.com/componentry/sfcsplit/internal/types"
)

// reserved keys are owned by the section router, never by user-declared
// attributes. Filtering them here prevents collision with routing metadata.
var reserved = map[string]bool{
	"id":    true,
	"index": true,
	"src":   true,
	"type":  true,
	"lang":  true,
}

// Reserved reports whether key is owned by the router.
func Reserved(key string) bool {
	return reserved[key]
}

// Encode serializes an attribute list into a canonical query-string suffix.
// Each emitted parameter is prefixed with '&'; the result is empty when
// nothing survives filtering and no language applies.
//
// Reserved keys are always skipped. Bare attributes serialize as a lone key,
// valued attributes as key=value, both percent-encoded. A language suffix
// `&lang.<X>` is appended when a fallback language was supplied or the list
// declares `lang`: X is the forced fallback when forceFallback is set,
// otherwise the declared lang when present, otherwise the fallback.
func Encode(attrs types.AttributeList, langFallback string, forceFallback bool) string {
	var b strings.Builder

	for _, a := range attrs {
		if reserved[a.Name] {
			continue
		}
		b.WriteByte('&')
		b.WriteString(url.QueryEscape(a.Name))
		if !a.Bool {
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(a.Value))
		}
	}

	declared, hasLang := attrs.Get("lang")
	if langFallback != "" || hasLang {
		lang := declared
		if forceFallback || lang == "" {
			lang = langFallback
		}
		b.WriteString("&lang.")
		b.WriteString(lang)
	}

	return b.String()
}

// Parse decodes a query-string suffix produced by Encode back into an
// attribute list and the trailing language, if one was appended. The inverse
// only recovers what Encode emitted: reserved keys were filtered on the way
// out and cannot reappear.
func Parse(q string) (types.AttributeList, string) {
	var (
		attrs types.AttributeList
		lang  string
	)

	parts := strings.Split(q, "&")
	for i, part := range parts {
		if part == "" {
			continue
		}
		// Encode always appends the language suffix last and never with a
		// value, so an attribute literally named "lang.<x>" stays an
		// attribute everywhere else.
		if i == len(parts)-1 && !strings.Contains(part, "=") {
			if rest, ok := strings.CutPrefix(part, "lang."); ok {
				lang = rest
				continue
			}
		}

		key, value, hasValue := strings.Cut(part, "=")
		name, err := url.QueryUnescape(key)
		if err != nil {
			continue
		}
		if !hasValue {
			attrs = append(attrs, types.Attribute{Name: name, Bool: true})
			continue
		}
		decoded, err := url.QueryUnescape(value)
		if err != nil {
			continue
		}
		attrs = append(attrs, types.Attribute{Name: name, Value: decoded})
	}

	return attrs, lang
}
