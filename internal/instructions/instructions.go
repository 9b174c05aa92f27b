// File: internal/instructions/instructions.go
// Brief: Integration snippets for wiring a generated CLI into a host project.

// Package instructions inspects the host project's build setup and produces
// short snippets users paste into their build and CI configuration after
// generating a CLI scaffold.
package instructions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Project build styles clispec knows how to describe.
const (
	StyleModule = "module" // plain Go module
	StyleMake   = "make"   // Go module driven by a Makefile
	StylePlain  = "plain"  // no recognizable build setup
)

// Instructions holds the snippets for one detected project style.
type Instructions struct {
	ProjectStyle string
	Install      string
	Entrypoint   string
	CI           string
}

// Detect inspects root (default: current directory) and returns the build
// style identifier.
func Detect(root string) string {
	if root == "" {
		root = "."
	}
	hasGoMod := exists(filepath.Join(root, "go.mod"))
	hasMakefile := exists(filepath.Join(root, "Makefile")) || exists(filepath.Join(root, "makefile"))
	switch {
	case hasGoMod && hasMakefile:
		return StyleMake
	case hasGoMod:
		return StyleModule
	default:
		return StylePlain
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Generate builds the snippets for the given style and generated package
// directory. An empty style triggers detection in the current directory.
func Generate(projectStyle, outDir, binaryName string) Instructions {
	if projectStyle == "" {
		projectStyle = Detect("")
	}
	rel := outDir
	if rel == "" {
		rel = "./" + binaryName
	}
	switch projectStyle {
	case StyleMake:
		return Instructions{
			ProjectStyle: projectStyle,
			Install:      fmt.Sprintf("go build -o bin/%s %s", binaryName, rel),
			Entrypoint:   fmt.Sprintf("%s:\n\tgo build -o bin/%s %s", binaryName, binaryName, rel),
			CI:           fmt.Sprintf("go vet ./... && go test ./... && go build -o bin/%s %s", binaryName, rel),
		}
	case StyleModule:
		return Instructions{
			ProjectStyle: projectStyle,
			Install:      fmt.Sprintf("go install %s", rel),
			Entrypoint:   fmt.Sprintf("go run %s", rel),
			CI:           "go vet ./... && go test ./...",
		}
	default:
		return Instructions{
			ProjectStyle: StylePlain,
			Install:      fmt.Sprintf("cd %s && go mod tidy && go build -o %s .", rel, binaryName),
			Entrypoint:   fmt.Sprintf("%s/%s <object> <action>", rel, binaryName),
			CI:           fmt.Sprintf("cd %s && go test ./...", rel),
		}
	}
}

// Markdown renders the instructions as a short Markdown document, suitable
// for terminal rendering.
func (i Instructions) Markdown() string {
	var sb strings.Builder
	sb.WriteString("## Integration instructions\n\n")
	sb.WriteString(fmt.Sprintf("Detected project style: **%s**\n\n", i.ProjectStyle))
	sb.WriteString("Build the generated CLI:\n\n")
	sb.WriteString("```sh\n" + i.Install + "\n```\n\n")
	sb.WriteString("Entrypoint:\n\n")
	sb.WriteString("```\n" + i.Entrypoint + "\n```\n\n")
	sb.WriteString("Suggested CI step:\n\n")
	sb.WriteString("```sh\n" + i.CI + "\n```\n")
	return sb.String()
}
