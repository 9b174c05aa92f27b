// File: internal/scaffold/scaffold.go
// Brief: Renders a runnable Go CLI scaffold from a resolved config document.

// Package scaffold turns a resolved clispec document into a minimal runnable
// Go command-line package: one subcommand per object, one nested subcommand
// per action, all forwarding to a registered handler. Generation is planned
// first (pure, in-memory) and applied second, so callers can show diffs and
// prompt before any file is written.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/example/clispec/internal/document"
)

// Options configures scaffold generation.
type Options struct {
	OutDir     string
	BinaryName string
	ModulePath string
	Force      bool
}

// FileStatus describes what applying the plan will do to one file.
type FileStatus string

const (
	StatusCreate    FileStatus = "create"
	StatusUnchanged FileStatus = "unchanged"
	StatusConflict  FileStatus = "conflict"
)

// File is one planned output file.
type File struct {
	Path    string // relative to OutDir
	Content string
	Status  FileStatus
	Diff    string // unified diff against the on-disk file, conflicts only
}

// Plan is the full set of files generation would write.
type Plan struct {
	OutDir string
	Files  []File
}

type objectData struct {
	ID      string
	Short   string
	Actions []actionData
}

type actionData struct {
	ID    string
	Short string
}

type templateData struct {
	BinaryName string
	ModulePath string
	Objects    []objectData
	Actions    []actionData
}

// BuildPlan renders every scaffold file in memory and compares it against
// the output directory. It never writes.
func BuildPlan(resolved *document.Value, opts Options) (*Plan, error) {
	if opts.OutDir == "" {
		return nil, fmt.Errorf("scaffold: output directory is required")
	}
	if opts.BinaryName == "" {
		opts.BinaryName = "generated-cli"
	}
	if opts.ModulePath == "" {
		opts.ModulePath = "example.com/" + opts.BinaryName
	}
	data, err := extract(resolved, opts)
	if err != nil {
		return nil, err
	}
	plan := &Plan{OutDir: opts.OutDir}
	for _, tpl := range scaffoldFiles {
		var sb strings.Builder
		if err := tpl.tmpl.Execute(&sb, data); err != nil {
			return nil, fmt.Errorf("scaffold: render %s: %w", tpl.path, err)
		}
		file := File{Path: tpl.path, Content: sb.String()}
		file.Status, file.Diff = classify(filepath.Join(opts.OutDir, tpl.path), file.Content)
		plan.Files = append(plan.Files, file)
	}
	return plan, nil
}

// Conflicts returns the planned files that would clobber differing on-disk
// content.
func (p *Plan) Conflicts() []File {
	var out []File
	for _, f := range p.Files {
		if f.Status == StatusConflict {
			out = append(out, f)
		}
	}
	return out
}

// Apply writes the planned files. Conflicting files are only overwritten
// with force; without it, any conflict aborts before a single write.
func (p *Plan) Apply(force bool) (created []string, skipped []string, err error) {
	if !force {
		if conflicts := p.Conflicts(); len(conflicts) > 0 {
			paths := make([]string, len(conflicts))
			for i, f := range conflicts {
				paths[i] = f.Path
			}
			return nil, nil, fmt.Errorf("scaffold: refusing to overwrite %s (rerun with --force)", strings.Join(paths, ", "))
		}
	}
	for _, f := range p.Files {
		if f.Status == StatusUnchanged {
			skipped = append(skipped, f.Path)
			continue
		}
		target := filepath.Join(p.OutDir, f.Path)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return created, skipped, fmt.Errorf("scaffold: %w", err)
		}
		if err := os.WriteFile(target, []byte(f.Content), 0o644); err != nil {
			return created, skipped, fmt.Errorf("scaffold: %w", err)
		}
		created = append(created, f.Path)
	}
	return created, skipped, nil
}

func classify(target, content string) (FileStatus, string) {
	existing, err := os.ReadFile(target)
	if err != nil {
		return StatusCreate, ""
	}
	if string(existing) == content {
		return StatusUnchanged, ""
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(existing)),
		B:        difflib.SplitLines(content),
		FromFile: "existing/" + filepath.Base(target),
		ToFile:   "generated/" + filepath.Base(target),
		Context:  3,
	}
	out, _ := difflib.GetUnifiedDiffString(diff)
	return StatusConflict, out
}

// extract walks the resolved document into template data. Objects and
// actions keep their declaration order.
func extract(resolved *document.Value, opts Options) (templateData, error) {
	data := templateData{BinaryName: opts.BinaryName, ModulePath: opts.ModulePath}
	root, ok := resolved.AsMapping()
	if !ok {
		return data, fmt.Errorf("scaffold: resolved document is not a mapping")
	}
	if objects, ok := mappingEntry(root, "objects"); ok {
		for _, objectID := range objects.Keys() {
			object, _ := objects.Get(objectID)
			objectMap, ok := object.AsMapping()
			if !ok {
				continue
			}
			od := objectData{ID: objectID, Short: shortDescription(objectMap)}
			if actions, ok := mappingEntry(objectMap, "actions"); ok {
				for _, actionID := range actions.Keys() {
					action, _ := actions.Get(actionID)
					actionMap, ok := action.AsMapping()
					if !ok {
						continue
					}
					od.Actions = append(od.Actions, actionData{ID: actionID, Short: shortDescription(actionMap)})
				}
			}
			data.Objects = append(data.Objects, od)
		}
	}
	if actions, ok := mappingEntry(root, "actions"); ok {
		for _, actionID := range actions.Keys() {
			action, _ := actions.Get(actionID)
			actionMap, ok := action.AsMapping()
			if !ok {
				continue
			}
			data.Actions = append(data.Actions, actionData{ID: actionID, Short: shortDescription(actionMap)})
		}
	}
	return data, nil
}

func mappingEntry(m *document.Mapping, key string) (*document.Mapping, bool) {
	val, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	return val.AsMapping()
}

func shortDescription(spec *document.Mapping) string {
	for _, key := range []string{"description_short", "description"} {
		if val, ok := spec.Get(key); ok && val.Kind() == document.KindString {
			return val.Str()
		}
	}
	return ""
}

type scaffoldFile struct {
	path string
	tmpl *template.Template
}

var scaffoldFiles = []scaffoldFile{
	{path: "go.mod", tmpl: template.Must(template.New("go.mod").Parse(goModTemplate))},
	{path: "doc.go", tmpl: template.Must(template.New("doc.go").Parse(docTemplate))},
	{path: "adapter.go", tmpl: template.Must(template.New("adapter.go").Parse(adapterTemplate))},
	{path: "main.go", tmpl: template.Must(template.New("main.go").Parse(mainTemplate))},
}
