// Package scope computes the deterministic identity token for a composite
// document. The token namespaces the document's scoped styling and threads
// every section address back to its parent document, so it must be a pure
// function of its inputs: no randomness, no time component.
package scope

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// tokenLen is the length of the emitted hex token.
const tokenLen = 8

// NormalizePath relativizes path against root, strips any leading
// parent-directory escapes, normalizes separators to '/', and applies
// Unicode NFC so the same file yields the same token on platforms that
// store decomposed names.
func NormalizePath(path, root string) string {
	short := path
	if root != "" {
		if rel, err := filepath.Rel(root, path); err == nil {
			short = rel
		}
	}

	short = filepath.ToSlash(short)
	for strings.HasPrefix(short, "../") {
		short = strings.TrimPrefix(short, "../")
	}

	return norm.NFC.String(short)
}

// Token derives the scope token for a document. In content-sensitive mode the
// token covers the raw document text as well, so edits produce a fresh token;
// otherwise it depends on the normalized path alone and is stable across
// content changes.
func Token(normPath, source string, contentSensitive bool) string {
	input := normPath
	if contentSensitive {
		input = normPath + "\n" + source
	}

	sum := sha256.Sum256([]byte(input))

	return hex.EncodeToString(sum[:])[:tokenLen]
}

// Attribute returns the scoped-styling attribute value for a token, attached
// to the assembled component when any style section declares itself scoped.
func Attribute(token string) string {
	return "data-v-" + token
}
