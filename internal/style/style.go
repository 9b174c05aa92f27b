// File: internal/style/style.go
// Brief: Declarative style discovery and loading for scaffold generation.

// Package style discovers and loads declarative style files that shape the
// command layout of generated CLIs. A style file is JSON or YAML, validated
// against the embedded style schema.
package style

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/example/clispec/internal/configfile"
	"github.com/example/clispec/internal/document"
	"github.com/example/clispec/internal/schema"
)

// EnvStylePath is the environment variable naming an explicit style file.
const EnvStylePath = "CLISPEC_STYLE_FILE"

// Builtins are the style names shipped with clispec itself.
var Builtins = []string{"noun-verb", "verb-noun", "unix", "shell"}

// candidateNames are probed in the project root, in order.
var candidateNames = []string{
	".clispec_style.json",
	".clispec_style.yaml",
	".clispec_style.yml",
}

// Style is a loaded, schema-validated style definition.
type Style struct {
	Name   string
	Layout string
	Source string
	Config *document.Value
}

// DiscoverPath finds the style file to use, or "" when none exists.
// Order: the explicit path, then $CLISPEC_STYLE_FILE, then
// .clispec_style.{json,yaml,yml} in the project root (the nearest ancestor
// of cwd holding a .git directory, falling back to cwd itself).
func DiscoverPath(explicit, cwd string) (string, error) {
	if explicit != "" {
		path, err := homedir.Expand(explicit)
		if err != nil {
			return "", fmt.Errorf("expand style path: %w", err)
		}
		return path, nil
	}
	if envVal := os.Getenv(EnvStylePath); envVal != "" {
		path, err := homedir.Expand(envVal)
		if err == nil {
			if _, statErr := os.Stat(path); statErr == nil {
				return path, nil
			}
		}
	}
	if cwd == "" {
		var err error
		cwd, err = os.Getwd()
		if err != nil {
			return "", err
		}
	}
	root := projectRoot(cwd)
	for _, name := range candidateNames {
		cand := filepath.Join(root, name)
		if _, err := os.Stat(cand); err == nil {
			return cand, nil
		}
	}
	return "", nil
}

// Load discovers and loads a style. A missing style is an error; callers
// that treat styles as optional should call DiscoverPath first.
func Load(explicit, cwd string) (*Style, error) {
	path, err := DiscoverPath(explicit, cwd)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, fmt.Errorf("no style file found: pass --style-file, set %s, or create .clispec_style.(json|yaml|yml) in the project root", EnvStylePath)
	}
	return LoadFile(path)
}

// LoadFile reads and validates one style file.
func LoadFile(path string) (*Style, error) {
	doc, err := configfile.Load(path)
	if err != nil {
		return nil, err
	}
	if err := schema.ValidateStyle(doc); err != nil {
		return nil, fmt.Errorf("style %s: %w", path, err)
	}
	m, _ := doc.AsMapping()
	st := &Style{Source: path, Config: doc}
	if name, ok := m.Get("name"); ok && name.Kind() == document.KindString {
		st.Name = name.Str()
	}
	if layout, ok := m.Get("layout"); ok && layout.Kind() == document.KindString {
		st.Layout = layout.Str()
	}
	return st, nil
}

// projectRoot walks up from start looking for a .git directory.
func projectRoot(start string) string {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}
