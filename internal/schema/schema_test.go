// File: internal/schema/schema_test.go
// Brief: Tests for embedded schema validation of config and style documents.

package schema

import (
	"strings"
	"testing"

	"github.com/example/clispec/internal/document"
)

func mustParse(t *testing.T, src string) *document.Value {
	t.Helper()
	doc, err := document.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return doc
}

func TestValidateConfigAcceptsMinimalDocument(t *testing.T) {
	doc := mustParse(t, "objects: {}\n")
	if err := ValidateConfig(doc); err != nil {
		t.Fatalf("minimal config should validate: %v", err)
	}
}

func TestValidateConfigAcceptsFullDocument(t *testing.T) {
	doc := mustParse(t, `
global:
  program: acme
behavior:
  strict: true
shared_defs:
  vars:
    tool: acme
    retries: 3
objects:
  deploy:
    names: [deploy, d]
    description_short: Deploy things
    options:
      region:
        flag: --region
    positionals:
      target: {}
    constraints:
      requires: [region]
      conflicts: [[json, yaml]]
      exactly_one_of: [[region, zone]]
      at_least_one_of: [[target]]
    actions:
      run:
        names: [run]
        options: {}
actions:
  status:
    $ref: "#/objects/deploy"
    names: [status]
`)
	if err := ValidateConfig(doc); err != nil {
		t.Fatalf("full config should validate: %v", err)
	}
}

func TestValidateConfigRejectsUnknownTopLevelKey(t *testing.T) {
	doc := mustParse(t, "surprise: {}\n")
	err := ValidateConfig(doc)
	if err == nil {
		t.Fatalf("unknown top-level key should be rejected")
	}
	schemaErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *schema.Error, got %T", err)
	}
	if len(schemaErr.Violations) == 0 {
		t.Fatalf("error should carry violations")
	}
}

func TestValidateConfigRejectsNonScalarVar(t *testing.T) {
	doc := mustParse(t, "shared_defs:\n  vars:\n    nested:\n      a: 1\n")
	if err := ValidateConfig(doc); err == nil {
		t.Fatalf("mapping-valued vars should be rejected")
	}
}

func TestValidateConfigRejectsBadConstraintShape(t *testing.T) {
	doc := mustParse(t, `
objects:
  d:
    constraints:
      conflicts: [[only_one]]
`)
	if err := ValidateConfig(doc); err == nil {
		t.Fatalf("conflict pairs need at least two keys")
	}
}

func TestValidateConfigErrorNamesLocation(t *testing.T) {
	doc := mustParse(t, "objects:\n  d:\n    names: nope\n")
	err := ValidateConfig(doc)
	if err == nil {
		t.Fatalf("string in place of names array should fail")
	}
	if !strings.Contains(err.Error(), "names") {
		t.Fatalf("error should mention the failing path: %v", err)
	}
}

func TestValidateStyleRequiresName(t *testing.T) {
	if err := ValidateStyle(mustParse(t, "layout: unix\n")); err == nil {
		t.Fatalf("style without a name should fail")
	}
	if err := ValidateStyle(mustParse(t, "name: terse\nlayout: unix\n")); err != nil {
		t.Fatalf("valid style rejected: %v", err)
	}
}

func TestValidateStyleRejectsUnknownLayout(t *testing.T) {
	if err := ValidateStyle(mustParse(t, "name: terse\nlayout: sideways\n")); err == nil {
		t.Fatalf("unknown layout should be rejected")
	}
}
