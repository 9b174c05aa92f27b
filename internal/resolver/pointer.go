// File: internal/resolver/pointer.go
// Brief: Local JSON Pointer lookup within a document value tree.

package resolver

import (
	"regexp"
	"strings"

	"github.com/example/clispec/internal/document"
)

// pointerPattern is the accepted $ref grammar: "#" alone, or "#" followed by
// one or more non-empty /-separated segments.
var pointerPattern = regexp.MustCompile(`^#(/[^/]+)*$`)

// ResolvePointer returns the value addressed by a local JSON Pointer within
// doc. "#" addresses the whole document. Each segment is unescaped (~1 -> /,
// ~0 -> ~) and must name a key of the current mapping; array indexing is not
// part of the grammar.
func ResolvePointer(doc *document.Value, pointer string) (*document.Value, error) {
	if !pointerPattern.MatchString(pointer) {
		return nil, &Error{Kind: ErrMalformedPointer, Pointer: pointer}
	}
	current := doc
	if pointer == "#" {
		return current, nil
	}
	for _, segment := range strings.Split(strings.TrimPrefix(pointer, "#/"), "/") {
		key := unescapeSegment(segment)
		m, ok := current.AsMapping()
		if !ok {
			return nil, &Error{Kind: ErrInvalidPointerSegment, Pointer: pointer, Segment: key}
		}
		next, ok := m.Get(key)
		if !ok {
			return nil, &Error{Kind: ErrInvalidPointerSegment, Pointer: pointer, Segment: key}
		}
		current = next
	}
	return current, nil
}

// unescapeSegment applies RFC 6901 token unescaping. Order matters: ~1 must
// be rewritten before ~0 so "~01" decodes to "~1", not "/".
func unescapeSegment(segment string) string {
	segment = strings.ReplaceAll(segment, "~1", "/")
	return strings.ReplaceAll(segment, "~0", "~")
}
