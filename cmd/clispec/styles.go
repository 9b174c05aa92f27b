// File: cmd/clispec/styles.go
// Brief: CLI command wiring and implementation for 'styles'.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/clispec/internal/style"
)

func newStylesCommand() *cobra.Command {
	var styleFile string
	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List available CLI styles and the active style file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSOURCE")
			for _, name := range style.Builtins {
				fmt.Fprintf(tw, "%s\tbuilt-in\n", name)
			}
			path, err := style.DiscoverPath(styleFile, "")
			if err != nil {
				return err
			}
			if path != "" {
				st, err := style.LoadFile(path)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\n", st.Name, st.Source)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if path == "" {
				fmt.Fprintln(out, "\nno style file active (set CLISPEC_STYLE_FILE or create .clispec_style.json in the project root)")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&styleFile, "style-file", "", "Path to a style declaration file to inspect")
	decorateCommandHelp(cmd, "Styles Flags")
	return cmd
}
