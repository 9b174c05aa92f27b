// File: cmd/clispec/load.go
// Brief: Shared config document loading for the CLI commands.

package main

import (
	"github.com/spf13/cobra"

	"github.com/example/clispec/internal/configfile"
	"github.com/example/clispec/internal/document"
)

// loadDocument reads the config document for a command invocation. A path of
// "-" reads from stdin; otherwise the discovery order from the configfile
// package applies.
func loadDocument(cmd *cobra.Command, state *rootState) (*document.Value, string, error) {
	if state.configPath == "-" {
		doc, err := configfile.LoadReader(cmd.InOrStdin())
		return doc, "<stdin>", err
	}
	path, err := configfile.Discover(state.configPath)
	if err != nil {
		return nil, "", err
	}
	doc, err := configfile.Load(path)
	return doc, path, err
}
