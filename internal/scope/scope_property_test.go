//go:build property
// +build property

package scope

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestScopeProperties tests invariant properties of the scope token
func TestScopeProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	pathGen := gen.RegexMatch(`^[a-z]{1,8}/[A-Z][a-zA-Z0-9]{0,10}\.vue$`)

	// Property 1: the token is a pure function of its inputs
	properties.Property("token stability", prop.ForAll(
		func(path, content string) bool {
			return Token(path, content, true) == Token(path, content, true) &&
				Token(path, content, false) == Token(path, content, false)
		},
		pathGen,
		gen.AlphaString(),
	))

	// Property 2: path mode ignores content
	properties.Property("path mode content independence", prop.ForAll(
		func(path, contentA, contentB string) bool {
			return Token(path, contentA, false) == Token(path, contentB, false)
		},
		pathGen,
		gen.AlphaString(),
		gen.AlphaString(),
	))

	// Property 3: content mode separates distinct contents
	properties.Property("content mode sensitivity", prop.ForAll(
		func(path, contentA, contentB string) bool {
			if contentA == contentB {
				return true
			}
			return Token(path, contentA, true) != Token(path, contentB, true)
		},
		pathGen,
		gen.AlphaString(),
		gen.AlphaString(),
	))

	// Property 4: distinct paths get distinct tokens
	properties.Property("path separation", prop.ForAll(
		func(pathA, pathB string) bool {
			if pathA == pathB {
				return true
			}
			return Token(pathA, "", false) != Token(pathB, "", false)
		},
		pathGen,
		pathGen,
	))

	properties.TestingRun(t)
}
