//go:build property
// +build property

package query

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/componentry/sfcsplit/internal/types"
)

// TestQueryProperties tests invariant properties of the query encoder
func TestQueryProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	attrName := gen.RegexMatch(`^[a-z][a-z0-9-]{0,12}$`).SuchThat(func(s string) bool {
		return !Reserved(s)
	})

	// Property 1: encoding is deterministic
	properties.Property("encoding determinism", prop.ForAll(
		func(name, value string) bool {
			attrs := types.AttributeList{{Name: name, Value: value}}
			return Encode(attrs, "css", false) == Encode(attrs, "css", false)
		},
		attrName,
		gen.AlphaString(),
	))

	// Property 2: encode then parse recovers the attribute list
	properties.Property("round trip", prop.ForAll(
		func(names []string, value string, bare bool) bool {
			seen := make(map[string]bool)
			var attrs types.AttributeList
			for _, name := range names {
				if seen[name] {
					continue
				}
				seen[name] = true
				a := types.Attribute{Name: name}
				if bare {
					a.Bool = true
				} else {
					a.Value = value
				}
				attrs = append(attrs, a)
			}
			if len(attrs) == 0 {
				return true
			}

			decoded, _ := Parse(Encode(attrs, "", false))
			return reflect.DeepEqual(attrs, decoded)
		},
		gen.SliceOfN(4, attrName),
		gen.AlphaString(),
		gen.Bool(),
	))

	// Property 3: reserved keys never survive encoding
	properties.Property("reserved keys filtered", prop.ForAll(
		func(value string) bool {
			attrs := types.AttributeList{
				{Name: "id", Value: value},
				{Name: "index", Value: value},
				{Name: "src", Value: value},
				{Name: "type", Value: value},
			}
			return Encode(attrs, "", false) == ""
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
