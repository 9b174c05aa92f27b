// File: internal/resolver/resolver_test.go
// Brief: End-to-end resolution tests: pipeline, ordering, idempotence.

package resolver

import (
	"errors"
	"reflect"
	"testing"

	"github.com/example/clispec/internal/document"
	"github.com/example/clispec/internal/schema"
)

func TestResolveEndToEnd(t *testing.T) {
	doc := mustParse(t, `
shared_defs:
  vars:
    tool: acme
objects:
  deploy:
    description: "Deploy {{vars.tool}} service"
    options: {}
    constraints:
      at_least_one_of: [[region, zone]]
`)
	res, err := Resolve(doc)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	root, _ := res.Resolved.AsMapping()
	objects, _ := mappingEntry(root, "objects")
	deploy, _ := objects.Get("deploy")
	desc, _ := deploy.Map().Get("description")
	if desc.Str() != "Deploy acme service" {
		t.Fatalf("description not rendered: %q", desc.Str())
	}
	want := []string{"object deploy: at_least_one_of violation: ['region', 'zone']"}
	if !reflect.DeepEqual(res.Issues, want) {
		t.Fatalf("issue mismatch:\n got %v\nwant %v", res.Issues, want)
	}
}

func TestResolveExpandsAndRenders(t *testing.T) {
	doc := mustParse(t, `
shared_defs:
  vars:
    tool: acme
objects:
  base:
    description_short: "{{vars.tool}} base"
    options:
      region: {}
  derived:
    $ref: "#/objects/base"
    names: [d]
`)
	res, err := Resolve(doc)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	root, _ := res.Resolved.AsMapping()
	objects, _ := mappingEntry(root, "objects")
	derived, _ := objects.Get("derived")
	m, _ := derived.AsMapping()
	if m.Has(document.RefKey) {
		t.Fatalf("$ref survived resolution: %v", derived.Interface())
	}
	short, _ := m.Get("description_short")
	if short.Str() != "acme base" {
		t.Fatalf("inherited field not rendered: %q", short.Str())
	}
	if len(res.Issues) != 0 {
		t.Fatalf("unexpected issues: %v", res.Issues)
	}
}

func TestResolveIssueOrderIsDeterministic(t *testing.T) {
	doc := mustParse(t, `
objects:
  alpha:
    options: {}
    constraints:
      requires: [missing_a]
    actions:
      run:
        options: {}
        constraints:
          requires: [missing_run]
  beta:
    options: {}
    constraints:
      requires: [missing_b]
actions:
  top:
    options: {}
    constraints:
      requires: [missing_top]
`)
	res, err := Resolve(doc)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	want := []string{
		"object alpha: requires: missing missing_a",
		"object alpha action run: requires: missing missing_run",
		"object beta: requires: missing missing_b",
		"action top: requires: missing missing_top",
	}
	if !reflect.DeepEqual(res.Issues, want) {
		t.Fatalf("issue order mismatch:\n got %v\nwant %v", res.Issues, want)
	}
}

func TestResolveSchemaFailureIsFatal(t *testing.T) {
	doc := mustParse(t, "bogus_top_level_key: {}\n")
	_, err := Resolve(doc)
	if err == nil {
		t.Fatalf("expected schema validation failure")
	}
	var schemaErr *schema.Error
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected a schema error, got %T: %v", err, err)
	}
}

func TestResolveValidatorInjection(t *testing.T) {
	sentinel := errors.New("custom validator rejected")
	r := New(Options{Validator: func(*document.Value) error { return sentinel }})
	_, err := r.Resolve(mustParse(t, "objects: {}\n"))
	if !errors.Is(err, sentinel) {
		t.Fatalf("validator error must propagate unchanged, got %v", err)
	}
}

func TestResolveIdempotent(t *testing.T) {
	doc := mustParse(t, `
shared_defs:
  vars:
    tool: acme
objects:
  base:
    options:
      region: {}
  derived:
    $ref: "#/objects/base"
    description: "uses {{vars.tool}}"
    constraints:
      exactly_one_of: [[region, zone]]
`)
	first, err := Resolve(doc)
	if err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}
	second, err := Resolve(first.Resolved)
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	firstJSON, _ := first.Resolved.MarshalJSON()
	secondJSON, _ := second.Resolved.MarshalJSON()
	if string(firstJSON) != string(secondJSON) {
		t.Fatalf("resolution is not idempotent:\n first %s\nsecond %s", firstJSON, secondJSON)
	}
	if !reflect.DeepEqual(first.Issues, second.Issues) {
		t.Fatalf("issues differ across passes: %v vs %v", first.Issues, second.Issues)
	}
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	doc := mustParse(t, `
shared_defs:
  vars:
    tool: acme
objects:
  d:
    description: "{{vars.tool}}"
`)
	if _, err := Resolve(doc); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	root, _ := doc.AsMapping()
	objects, _ := mappingEntry(root, "objects")
	d, _ := objects.Get("d")
	desc, _ := d.Map().Get("description")
	if desc.Str() != "{{vars.tool}}" {
		t.Fatalf("input document was mutated: %q", desc.Str())
	}
}

func TestResolveRenderEntityIDsFeature(t *testing.T) {
	doc := mustParse(t, `
objects:
  deploy:
    description: "object {{id}}"
actions:
  status:
    description: "action {{id}}"
`)
	r := New(Options{RenderEntityIDs: true})
	res, err := r.Resolve(doc)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	root, _ := res.Resolved.AsMapping()
	objects, _ := mappingEntry(root, "objects")
	deploy, _ := objects.Get("deploy")
	desc, _ := deploy.Map().Get("description")
	if desc.Str() != "object deploy" {
		t.Fatalf("object id not substituted: %q", desc.Str())
	}
	actions, _ := mappingEntry(root, "actions")
	status, _ := actions.Get("status")
	desc, _ = status.Map().Get("description")
	if desc.Str() != "action status" {
		t.Fatalf("action id not substituted: %q", desc.Str())
	}
}

func TestResolveWithoutFeatureLeavesIDPlaceholder(t *testing.T) {
	doc := mustParse(t, "objects:\n  d:\n    description: \"{{id}}\"\n")
	res, err := Resolve(doc)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	root, _ := res.Resolved.AsMapping()
	objects, _ := mappingEntry(root, "objects")
	d, _ := objects.Get("d")
	desc, _ := d.Map().Get("description")
	if desc.Str() != "{{id}}" {
		t.Fatalf("default flow must not substitute {{id}}: %q", desc.Str())
	}
}
