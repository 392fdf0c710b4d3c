// Package types provides the shared data model for parsed composite component
// documents. This package contains shared types to avoid circular dependencies
// between the parser, cache, router, and assembler packages.
package types

// Attribute is a single attribute declared on a section tag. A bare attribute
// (present without a value, e.g. `scoped`) is represented with Bool set.
type Attribute struct {
	// Name is the attribute name as written in the source
	Name string
	// Value is the attribute value; empty for bare attributes
	Value string
	// Bool marks a presence-only attribute with no declared value
	Bool bool
}

// AttributeList preserves the source declaration order of a section's
// attributes. Order is part of the addressing contract: the query encoder
// walks the list front to back.
type AttributeList []Attribute

// Get returns the value of the named attribute and whether it was declared.
// Bare attributes report an empty value and true.
func (l AttributeList) Get(name string) (string, bool) {
	for _, a := range l {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Has reports whether the named attribute was declared at all.
func (l AttributeList) Has(name string) bool {
	_, ok := l.Get(name)
	return ok
}

// Without returns a copy of the list with the named attribute removed.
// The receiver is never modified.
func (l AttributeList) Without(name string) AttributeList {
	out := make(AttributeList, 0, len(l))
	for _, a := range l {
		if a.Name != name {
			out = append(out, a)
		}
	}
	return out
}

// Block is one top-level section of a composite document.
type Block struct {
	// Content is the raw text between the section's open and close tags
	Content string
	// Line is the 1-based source line on which the section's content starts
	Line int
	// Attrs holds the section tag's attributes in declaration order
	Attrs AttributeList
}

// Src returns the external source reference of the section, if the section
// delegates its content to another file via a `src` attribute.
func (b *Block) Src() (string, bool) {
	return b.Attrs.Get("src")
}

// Lang returns the declared processing language of the section, if any.
func (b *Block) Lang() (string, bool) {
	return b.Attrs.Get("lang")
}

// StyleBlock is a style section. Scoped styling and CSS-module compilation
// are cross-section features wired by the assembler.
type StyleBlock struct {
	Block
	// Scoped marks the section for scoped styling keyed by the document's
	// scope token
	Scoped bool
	// Module reports whether the section compiles to a class-name export map
	Module bool
	// ModuleName is the custom export name for the map; empty selects the
	// default "$style" key
	ModuleName string
}

// CustomBlock is a non-standard top-level section (documentation, i18n
// tables, test fixtures). Type is the tag name and drives filtering.
type CustomBlock struct {
	Block
	Type string
}

// Descriptor is the parsed structure of one composite document. Section order
// within Styles and CustomBlocks is parse order and defines the numeric index
// used in every address generated from them.
type Descriptor struct {
	// Path is the absolute resource identity of the document
	Path string
	// Source is the full raw document text
	Source string

	Script       *Block
	ScriptSetup  *Block
	Template     *Block
	Styles       []*StyleBlock
	CustomBlocks []*CustomBlock
}
