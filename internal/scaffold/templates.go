// File: internal/scaffold/templates.go
// Brief: text/template sources for the generated CLI package files.

package scaffold

const goModTemplate = `module {{.ModulePath}}

go 1.25
`

const docTemplate = `// Package main is a command-line scaffold generated by clispec.
//
// Register a handler with Register before calling main, or replace the
// generated command bodies with real implementations.
package main
`

const adapterTemplate = `package main

import "fmt"

// Handler processes one object/action invocation. kwargs carries parsed
// option values keyed by option id.
type Handler func(objectID, actionID string, kwargs map[string]any) (any, error)

var handler Handler

// Register installs the handler the generated commands forward to.
func Register(h Handler) { handler = h }

// Invoke forwards to the registered handler.
func Invoke(objectID, actionID string, kwargs map[string]any) (any, error) {
	if handler == nil {
		return nil, fmt.Errorf("no handler registered: call Register first")
	}
	return handler(objectID, actionID, kwargs)
}
`

const mainTemplate = `package main

import (
	"fmt"
	"os"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: {{.BinaryName}} <object> <action> | {{.BinaryName}} <action>")
	fmt.Fprintln(os.Stderr, "")
{{- if .Objects}}
	fmt.Fprintln(os.Stderr, "objects:")
{{- range .Objects}}
	fmt.Fprintln(os.Stderr, "  {{.ID}}{{if .Short}} - {{.Short}}{{end}}")
{{- range .Actions}}
	fmt.Fprintln(os.Stderr, "    {{.ID}}{{if .Short}} - {{.Short}}{{end}}")
{{- end}}
{{- end}}
{{- end}}
{{- if .Actions}}
	fmt.Fprintln(os.Stderr, "actions:")
{{- range .Actions}}
	fmt.Fprintln(os.Stderr, "  {{.ID}}{{if .Short}} - {{.Short}}{{end}}")
{{- end}}
{{- end}}
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	var objectID, actionID string
	switch len(args) {
	case 1:
		actionID = args[0]
	default:
		objectID, actionID = args[0], args[1]
	}
	res, err := Invoke(objectID, actionID, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if res != nil {
		fmt.Println(res)
	}
}
`
