// File: internal/resolver/expand.go
// Brief: Reference expansion for object and action declarations.

package resolver

import "github.com/example/clispec/internal/document"

// Expand returns a copy of doc with every $ref entry under the objects
// mapping (including each object's nested actions) and the top-level actions
// mapping replaced by its referenced target merged with the entry's override
// fields. Pointers always resolve against the original input document, so
// results do not depend on expansion order. Expansion walks exactly one
// nesting level (object -> actions); $ref markers buried deeper inside
// options or positionals are passed through untouched.
//
// A chain of reference entries (an entry whose target is itself a reference
// marker) is followed to its end; a pointer that reappears while its own
// expansion is still in progress fails with ErrCyclicReference.
func Expand(doc *document.Value) (*document.Value, error) {
	root, ok := doc.AsMapping()
	if !ok {
		return doc.Clone(), nil
	}
	out := root.Clone()

	if objects, ok := mappingEntry(out, "objects"); ok {
		expanded, err := expandEntries(objects, doc)
		if err != nil {
			return nil, err
		}
		for _, objectID := range expanded.Keys() {
			object, _ := expanded.Get(objectID)
			objectMap, ok := object.AsMapping()
			if !ok {
				continue
			}
			actions, ok := mappingEntry(objectMap, "actions")
			if !ok {
				continue
			}
			expandedActions, err := expandEntries(actions, doc)
			if err != nil {
				return nil, err
			}
			objectMap.Set("actions", document.FromMapping(expandedActions))
			expanded.Set(objectID, document.FromMapping(objectMap))
		}
		out.Set("objects", document.FromMapping(expanded))
	}

	if actions, ok := mappingEntry(out, "actions"); ok {
		expanded, err := expandEntries(actions, doc)
		if err != nil {
			return nil, err
		}
		out.Set("actions", document.FromMapping(expanded))
	}

	return document.FromMapping(out), nil
}

// mappingEntry fetches m[key] as a mapping, ignoring entries of other kinds.
func mappingEntry(m *document.Mapping, key string) (*document.Mapping, bool) {
	val, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	return val.AsMapping()
}

// expandEntries processes one object/action mapping: reference entries are
// expanded, everything else is deep-copied unchanged.
func expandEntries(entries *document.Mapping, doc *document.Value) (*document.Mapping, error) {
	out := document.NewMapping()
	for _, key := range entries.Keys() {
		val, _ := entries.Get(key)
		if val.Kind() != document.KindReference {
			out.Set(key, val.Clone())
			continue
		}
		expanded, err := expandReference(val.Ref(), doc, map[string]bool{})
		if err != nil {
			return nil, err
		}
		out.Set(key, expanded)
	}
	return out, nil
}

func expandReference(ref *document.Reference, doc *document.Value, inFlight map[string]bool) (*document.Value, error) {
	if inFlight[ref.Pointer] {
		return nil, &Error{Kind: ErrCyclicReference, Pointer: ref.Pointer}
	}
	inFlight[ref.Pointer] = true
	defer delete(inFlight, ref.Pointer)

	target, err := ResolvePointer(doc, ref.Pointer)
	if err != nil {
		return nil, err
	}
	if target.Kind() == document.KindReference {
		expanded, err := expandReference(target.Ref(), doc, inFlight)
		if err != nil {
			return nil, err
		}
		target = expanded
	}
	targetMap, ok := target.AsMapping()
	if !ok {
		return nil, &Error{Kind: ErrTargetNotMapping, Pointer: ref.Pointer}
	}
	return document.FromMapping(Merge(targetMap, ref.Overrides)), nil
}
