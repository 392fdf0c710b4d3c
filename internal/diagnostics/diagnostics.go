// Package diagnostics provides structured error reporting for document
// transforms. Diagnostics are surfaced to the caller through a sink rather
// than thrown as uncontrolled faults, so a host pipeline can continue
// processing other resources after one resource fails.
package diagnostics

import (
	"errors"
	"fmt"
	"strings"
)

// Kind categorizes a diagnostic.
type Kind string

const (
	// KindStructural marks malformed document structure found by the parser.
	// The transform aborts and returns no output.
	KindStructural Kind = "structural"
	// KindAddressCollision marks two sections resolving to an identical
	// virtual address. Fatal configuration error for the document.
	KindAddressCollision Kind = "address-collision"
	// KindInternal marks an unexpected engine failure.
	KindInternal Kind = "internal"
)

// Common diagnostic codes.
const (
	CodeUnterminatedBlock = "ERR_UNTERMINATED_BLOCK"
	CodeNestedBlock       = "ERR_NESTED_TOP_LEVEL_BLOCK"
	CodeDuplicateBlock    = "ERR_DUPLICATE_BLOCK"
	CodeMalformedTag      = "ERR_MALFORMED_TAG"
	CodeAddressCollision  = "ERR_ADDRESS_COLLISION"
	CodeInternal          = "ERR_INTERNAL"
)

// Diagnostic is a structured error tied to a resource and source position.
type Diagnostic struct {
	Kind    Kind
	Code    string
	Message string
	// Resource is the absolute identity of the document being transformed
	Resource string
	// Line and Column are 1-based; zero means unknown
	Line   int
	Column int
	Cause  error
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	var parts []string

	if d.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", d.Code))
	}

	if d.Resource != "" {
		location := d.Resource
		if d.Line > 0 {
			location += fmt.Sprintf(":%d", d.Line)
			if d.Column > 0 {
				location += fmt.Sprintf(":%d", d.Column)
			}
		}
		parts = append(parts, location)
	}

	parts = append(parts, d.Message)

	result := strings.Join(parts, " ")

	if d.Cause != nil {
		result += fmt.Sprintf(": %v", d.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (d *Diagnostic) Unwrap() error {
	return d.Cause
}

// Is implements error comparison by kind and code.
func (d *Diagnostic) Is(target error) bool {
	var t *Diagnostic
	if errors.As(target, &t) {
		return d.Kind == t.Kind && d.Code == t.Code
	}

	return false
}

// WithLocation attaches resource and position information.
func (d *Diagnostic) WithLocation(resource string, line, column int) *Diagnostic {
	d.Resource = resource
	d.Line = line
	d.Column = column

	return d
}

// NewStructural creates a structural diagnostic.
func NewStructural(code, message string) *Diagnostic {
	return &Diagnostic{
		Kind:    KindStructural,
		Code:    code,
		Message: message,
	}
}

// NewAddressCollision creates a collision diagnostic for a duplicated address.
func NewAddressCollision(resource, address string) *Diagnostic {
	return &Diagnostic{
		Kind:     KindAddressCollision,
		Code:     CodeAddressCollision,
		Message:  "two sections resolve to the same address: " + address,
		Resource: resource,
	}
}

// NewInternal creates an internal diagnostic wrapping a cause.
func NewInternal(message string, cause error) *Diagnostic {
	return &Diagnostic{
		Kind:    KindInternal,
		Code:    CodeInternal,
		Message: message,
		Cause:   cause,
	}
}

// IsStructural reports whether err is a structural diagnostic.
func IsStructural(err error) bool {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d.Kind == KindStructural
	}

	return false
}

// Sink receives diagnostics during a transform. Implementations must be safe
// for use from a single transform invocation; the engine never reports to a
// sink from more than one goroutine.
type Sink interface {
	Report(d *Diagnostic)
}

// CollectingSink is a Sink that accumulates everything reported to it.
type CollectingSink struct {
	Diagnostics []*Diagnostic
}

// Report appends d to the collected list.
func (s *CollectingSink) Report(d *Diagnostic) {
	s.Diagnostics = append(s.Diagnostics, d)
}

// HasErrors reports whether anything was collected.
func (s *CollectingSink) HasErrors() bool {
	return len(s.Diagnostics) > 0
}
