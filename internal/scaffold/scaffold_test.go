// File: internal/scaffold/scaffold_test.go
// Brief: Tests for scaffold planning, conflicts, and application.

package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/clispec/internal/document"
)

func resolvedFixture(t *testing.T) *document.Value {
	t.Helper()
	doc, err := document.Parse([]byte(`
objects:
  deploy:
    description_short: Deploy services
    actions:
      run:
        description_short: Run a deployment
actions:
  status:
    description_short: Show status
`))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestBuildPlanRendersAllFiles(t *testing.T) {
	plan, err := BuildPlan(resolvedFixture(t), Options{OutDir: t.TempDir(), BinaryName: "acme"})
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	if len(plan.Files) != 4 {
		t.Fatalf("expected 4 files, got %d", len(plan.Files))
	}
	byPath := map[string]File{}
	for _, f := range plan.Files {
		if f.Status != StatusCreate {
			t.Fatalf("fresh directory should plan creates only, got %s for %s", f.Status, f.Path)
		}
		byPath[f.Path] = f
	}
	mainFile := byPath["main.go"]
	for _, want := range []string{"deploy", "Deploy services", "run", "status"} {
		if !strings.Contains(mainFile.Content, want) {
			t.Fatalf("main.go missing %q:\n%s", want, mainFile.Content)
		}
	}
	if !strings.Contains(byPath["go.mod"].Content, "example.com/acme") {
		t.Fatalf("go.mod should default the module path:\n%s", byPath["go.mod"].Content)
	}
}

func TestApplyWritesFiles(t *testing.T) {
	dir := t.TempDir()
	plan, err := BuildPlan(resolvedFixture(t), Options{OutDir: dir, BinaryName: "acme"})
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	created, skipped, err := plan.Apply(false)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if len(created) != 4 || len(skipped) != 0 {
		t.Fatalf("unexpected apply result: created=%v skipped=%v", created, skipped)
	}
	if _, err := os.Stat(filepath.Join(dir, "main.go")); err != nil {
		t.Fatalf("main.go not written: %v", err)
	}
}

func TestReapplyIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	plan, err := BuildPlan(resolvedFixture(t), Options{OutDir: dir, BinaryName: "acme"})
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	if _, _, err := plan.Apply(false); err != nil {
		t.Fatalf("first apply failed: %v", err)
	}
	replan, err := BuildPlan(resolvedFixture(t), Options{OutDir: dir, BinaryName: "acme"})
	if err != nil {
		t.Fatalf("replan failed: %v", err)
	}
	created, skipped, err := replan.Apply(false)
	if err != nil {
		t.Fatalf("second apply failed: %v", err)
	}
	if len(created) != 0 || len(skipped) != 4 {
		t.Fatalf("reapply should skip everything: created=%v skipped=%v", created, skipped)
	}
}

func TestConflictBlocksWithoutForce(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main // hand-edited\n"), 0o644); err != nil {
		t.Fatalf("seed conflict: %v", err)
	}
	plan, err := BuildPlan(resolvedFixture(t), Options{OutDir: dir, BinaryName: "acme"})
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	conflicts := plan.Conflicts()
	if len(conflicts) != 1 || conflicts[0].Path != "main.go" {
		t.Fatalf("expected one conflict on main.go, got %v", conflicts)
	}
	if !strings.Contains(conflicts[0].Diff, "hand-edited") {
		t.Fatalf("conflict diff should show existing content:\n%s", conflicts[0].Diff)
	}
	if _, _, err := plan.Apply(false); err == nil {
		t.Fatalf("apply without force should refuse to overwrite")
	}
	if _, _, err := plan.Apply(true); err != nil {
		t.Fatalf("forced apply failed: %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "main.go"))
	if strings.Contains(string(data), "hand-edited") {
		t.Fatalf("forced apply should have overwritten the file")
	}
}

func TestBuildPlanRequiresOutDir(t *testing.T) {
	if _, err := BuildPlan(resolvedFixture(t), Options{}); err == nil {
		t.Fatalf("missing out dir should fail")
	}
}
