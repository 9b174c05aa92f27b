// File: internal/resolver/render_test.go
// Brief: Tests for placeholder rendering semantics.

package resolver

import (
	"reflect"
	"testing"

	"github.com/example/clispec/internal/document"
)

func varsFixture(t *testing.T, src string) *document.Mapping {
	t.Helper()
	return mustMapping(t, src)
}

func TestRenderSubstitutesKnownVars(t *testing.T) {
	vars := varsFixture(t, "name: demo\n")
	got := Render(document.String("hello {{vars.name}}"), vars)
	if got.Str() != "hello demo" {
		t.Fatalf("expected substitution, got %q", got.Str())
	}
}

func TestRenderWhitespaceTolerant(t *testing.T) {
	vars := varsFixture(t, "tool: acme\n")
	got := Render(document.String("run {{ vars.tool }} now"), vars)
	if got.Str() != "run acme now" {
		t.Fatalf("whitespace inside the placeholder should be tolerated, got %q", got.Str())
	}
}

func TestRenderLeavesUnknownPlaceholders(t *testing.T) {
	got := Render(document.String("{{vars.nope}}"), document.NewMapping())
	if got.Str() != "{{vars.nope}}" {
		t.Fatalf("unknown placeholder must stay verbatim, got %q", got.Str())
	}
}

func TestRenderNilVarsIsSafe(t *testing.T) {
	got := Render(document.String("{{vars.x}}"), nil)
	if got.Str() != "{{vars.x}}" {
		t.Fatalf("nil vars must leave placeholders intact, got %q", got.Str())
	}
}

func TestRenderNullVarLeavesPlaceholder(t *testing.T) {
	vars := varsFixture(t, "ghost: null\n")
	got := Render(document.String("{{vars.ghost}}"), vars)
	if got.Str() != "{{vars.ghost}}" {
		t.Fatalf("null-valued var must leave the placeholder, got %q", got.Str())
	}
}

func TestRenderNumericVarUsesScalarForm(t *testing.T) {
	vars := varsFixture(t, "count: 3\nratio: 1.5\nflag: true\n")
	got := Render(document.String("{{vars.count}}/{{vars.ratio}}/{{vars.flag}}"), vars)
	if got.Str() != "3/1.5/true" {
		t.Fatalf("scalar rendering mismatch: %q", got.Str())
	}
}

func TestRenderRecursesThroughContainers(t *testing.T) {
	vars := varsFixture(t, "tool: acme\n")
	doc := mustParse(t, `
objects:
  deploy:
    description: "Deploy {{vars.tool}} service"
    tags: ["{{vars.tool}}", other]
    count: 7
`)
	got := Render(doc, vars)
	root, _ := got.AsMapping()
	objects, _ := mappingEntry(root, "objects")
	deploy, _ := objects.Get("deploy")
	m := deploy.Map()
	desc, _ := m.Get("description")
	if desc.Str() != "Deploy acme service" {
		t.Fatalf("description render mismatch: %q", desc.Str())
	}
	tags, _ := m.Get("tags")
	want := []any{"acme", "other"}
	if !reflect.DeepEqual(tags.Interface(), want) {
		t.Fatalf("list render mismatch: %v", tags.Interface())
	}
	count, _ := m.Get("count")
	if count.Kind() != document.KindInt || count.Integer() != 7 {
		t.Fatalf("non-string scalars must pass through unchanged: %v", count.Interface())
	}
}

func TestRenderWithID(t *testing.T) {
	vars := varsFixture(t, "tool: acme\n")
	got := RenderWithID(document.String("{{id}} uses {{vars.tool}}"), vars, "deploy")
	if got.Str() != "deploy uses acme" {
		t.Fatalf("id substitution mismatch: %q", got.Str())
	}
}

func TestRenderWithoutIDLeavesIDPlaceholder(t *testing.T) {
	got := Render(document.String("{{id}}"), document.NewMapping())
	if got.Str() != "{{id}}" {
		t.Fatalf("{{id}} must be untouched without an id, got %q", got.Str())
	}
}

func TestRenderPreservesKeyOrder(t *testing.T) {
	doc := mustParse(t, "zulu: a\nalpha: b\n")
	got := Render(doc, document.NewMapping())
	keys := got.Map().Keys()
	if keys[0] != "zulu" || keys[1] != "alpha" {
		t.Fatalf("render reordered mapping keys: %v", keys)
	}
}
