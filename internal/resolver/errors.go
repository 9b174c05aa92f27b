// File: internal/resolver/errors.go
// Brief: Fatal resolution error type shared by pointer lookup and expansion.

package resolver

import "fmt"

// ErrorKind classifies the fatal, resolution-aborting failures. Constraint
// violations are deliberately not errors; they accumulate on Result.Issues so
// a best-effort resolved document is always returned alongside them.
type ErrorKind int

const (
	// ErrMalformedPointer means a $ref value did not match the local
	// pointer grammar "#" / "#/seg/...".
	ErrMalformedPointer ErrorKind = iota
	// ErrInvalidPointerSegment means pointer descent hit a segment that is
	// absent or whose parent is not a mapping.
	ErrInvalidPointerSegment
	// ErrTargetNotMapping means a $ref resolved to a scalar or list.
	ErrTargetNotMapping
	// ErrCyclicReference means a $ref chain revisited a pointer before
	// finishing its expansion.
	ErrCyclicReference
)

// Error is a fatal resolution failure. The document is structurally unusable
// and no resolved output is produced.
type Error struct {
	Kind    ErrorKind
	Pointer string
	Segment string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrMalformedPointer:
		return fmt.Sprintf("unsupported $ref; must be a local JSON pointer, got: %s", e.Pointer)
	case ErrInvalidPointerSegment:
		return fmt.Sprintf("invalid $ref path segment: %q in %s", e.Segment, e.Pointer)
	case ErrTargetNotMapping:
		return fmt.Sprintf("$ref must point to a mapping: %s", e.Pointer)
	case ErrCyclicReference:
		return fmt.Sprintf("cyclic $ref chain detected at %s", e.Pointer)
	default:
		return fmt.Sprintf("resolution error at %s", e.Pointer)
	}
}

// IsKind reports whether err is a resolver Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
