// File: internal/resolver/expand_test.go
// Brief: Tests for $ref expansion, override merging, chains, and cycles.

package resolver

import (
	"strings"
	"testing"

	"github.com/example/clispec/internal/document"
)

func TestExpandObjectReferenceWithOverride(t *testing.T) {
	doc := mustParse(t, `
objects:
  base:
    options:
      region:
        flag: --region
  derived:
    $ref: "#/objects/base"
    names: [d]
`)
	expanded, err := Expand(doc)
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	root, _ := expanded.AsMapping()
	objects, _ := mappingEntry(root, "objects")
	derived, _ := objects.Get("derived")
	if derived.Kind() != document.KindMapping {
		t.Fatalf("expanded entry should be a plain mapping, got %s", derived.Kind())
	}
	m := derived.Map()
	options, ok := mappingEntry(m, "options")
	if !ok || !options.Has("region") {
		t.Fatalf("derived should inherit base options, got %v", derived.Interface())
	}
	names, _ := m.Get("names")
	if names.Kind() != document.KindList || len(names.Items()) != 1 || names.Items()[0].Str() != "d" {
		t.Fatalf("override names lost: %v", derived.Interface())
	}
	if m.Has(document.RefKey) {
		t.Fatalf("$ref must not survive expansion")
	}
}

func TestExpandResolvesAgainstOriginalDocument(t *testing.T) {
	// "first" references "second" which is itself a marker; pointer lookup
	// must see the original, unexpanded shape of "second".
	doc := mustParse(t, `
objects:
  first:
    $ref: "#/objects/second"
  second:
    $ref: "#/objects/third"
    extra: 1
  third:
    options:
      zone: {}
`)
	expanded, err := Expand(doc)
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	root, _ := expanded.AsMapping()
	objects, _ := mappingEntry(root, "objects")
	first, _ := objects.Get("first")
	m, _ := first.AsMapping()
	if m.Has(document.RefKey) {
		t.Fatalf("chained reference left a marker behind: %v", first.Interface())
	}
	if options, ok := mappingEntry(m, "options"); !ok || !options.Has("zone") {
		t.Fatalf("chain should bottom out at third's options: %v", first.Interface())
	}
	if extra, ok := m.Get("extra"); !ok || extra.Integer() != 1 {
		t.Fatalf("intermediate overrides should apply: %v", first.Interface())
	}
}

func TestExpandNestedObjectActions(t *testing.T) {
	doc := mustParse(t, `
shared_defs:
  common_action:
    description_short: shared
objects:
  svc:
    actions:
      start:
        $ref: "#/shared_defs/common_action"
        names: [start]
`)
	expanded, err := Expand(doc)
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	root, _ := expanded.AsMapping()
	objects, _ := mappingEntry(root, "objects")
	svc, _ := objects.Get("svc")
	svcMap, _ := svc.AsMapping()
	actions, _ := mappingEntry(svcMap, "actions")
	start, _ := actions.Get("start")
	startMap, _ := start.AsMapping()
	if short, ok := startMap.Get("description_short"); !ok || short.Str() != "shared" {
		t.Fatalf("nested action reference not expanded: %v", start.Interface())
	}
}

func TestExpandTopLevelActions(t *testing.T) {
	doc := mustParse(t, `
shared_defs:
  verbose_action:
    options:
      verbose: {}
actions:
  status:
    $ref: "#/shared_defs/verbose_action"
`)
	expanded, err := Expand(doc)
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	root, _ := expanded.AsMapping()
	actions, _ := mappingEntry(root, "actions")
	status, _ := actions.Get("status")
	statusMap, _ := status.AsMapping()
	if options, ok := mappingEntry(statusMap, "options"); !ok || !options.Has("verbose") {
		t.Fatalf("top-level action reference not expanded: %v", status.Interface())
	}
}

func TestExpandUnresolvableRefNamesSegment(t *testing.T) {
	doc := mustParse(t, "objects:\n  d:\n    $ref: \"#/objects/missing\"\n")
	_, err := Expand(doc)
	if !IsKind(err, ErrInvalidPointerSegment) {
		t.Fatalf("expected segment error, got %v", err)
	}
	if !strings.Contains(err.Error(), "missing") {
		t.Fatalf("error should name the missing segment: %v", err)
	}
}

func TestExpandRefTargetMustBeMapping(t *testing.T) {
	doc := mustParse(t, "shared_defs:\n  scalar: 5\nobjects:\n  d:\n    $ref: \"#/shared_defs/scalar\"\n")
	_, err := Expand(doc)
	if !IsKind(err, ErrTargetNotMapping) {
		t.Fatalf("expected target-not-mapping error, got %v", err)
	}
}

func TestExpandMutualReferenceCycleFails(t *testing.T) {
	doc := mustParse(t, `
objects:
  a:
    $ref: "#/objects/b"
  b:
    $ref: "#/objects/a"
`)
	_, err := Expand(doc)
	if !IsKind(err, ErrCyclicReference) {
		t.Fatalf("expected cyclic-reference error, got %v", err)
	}
}

func TestExpandSelfReferenceFails(t *testing.T) {
	doc := mustParse(t, "objects:\n  a:\n    $ref: \"#/objects/a\"\n")
	_, err := Expand(doc)
	if !IsKind(err, ErrCyclicReference) {
		t.Fatalf("expected cyclic-reference error, got %v", err)
	}
}

func TestExpandLeavesDeepMarkersAlone(t *testing.T) {
	// Expansion granularity is object/action entries; a marker nested inside
	// options passes through untouched.
	doc := mustParse(t, `
objects:
  svc:
    options:
      deep:
        $ref: "#/objects/svc"
`)
	expanded, err := Expand(doc)
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	root, _ := expanded.AsMapping()
	objects, _ := mappingEntry(root, "objects")
	svc, _ := objects.Get("svc")
	svcMap, _ := svc.AsMapping()
	options, _ := mappingEntry(svcMap, "options")
	deep, _ := options.Get("deep")
	if deep.Kind() != document.KindReference {
		t.Fatalf("deep marker should pass through unexpanded, got %s", deep.Kind())
	}
}

func TestExpandDoesNotMutateInput(t *testing.T) {
	doc := mustParse(t, "objects:\n  base:\n    names: [b]\n  d:\n    $ref: \"#/objects/base\"\n")
	if _, err := Expand(doc); err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	root, _ := doc.AsMapping()
	objects, _ := mappingEntry(root, "objects")
	d, _ := objects.Get("d")
	if d.Kind() != document.KindReference {
		t.Fatalf("input document was mutated during expansion")
	}
}
