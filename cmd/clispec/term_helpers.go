// File: cmd/clispec/term_helpers.go
// Brief: TTY detection for confirmation prompts.

package main

import (
	"io"

	"golang.org/x/term"
)

type fdProvider interface {
	Fd() uintptr
}

func isTerminalReader(r io.Reader) bool {
	if v, ok := r.(fdProvider); ok {
		return term.IsTerminal(int(v.Fd()))
	}
	return false
}

func isTerminalWriter(w io.Writer) bool {
	if v, ok := w.(fdProvider); ok {
		return term.IsTerminal(int(v.Fd()))
	}
	return false
}
