// File: cmd/clispec/validate.go
// Brief: CLI command wiring and implementation for 'validate'.

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/clispec/internal/featureflags"
	"github.com/example/clispec/internal/resolver"
)

func newValidateCommand(state *rootState) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a config document and report constraint issues",
		Long: `Validate loads the config document, checks it against the config schema,
resolves every $ref, and evaluates the declared constraints. Schema and
reference failures abort; constraint violations are advisory and printed as
warnings unless --strict promotes them to errors.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, source, err := loadDocument(cmd, state)
			if err != nil {
				return err
			}
			flags := featureflags.FromContext(cmd.Context())
			res, err := resolver.New(resolver.Options{
				Logger:          state.logger,
				RenderEntityIDs: flags.Enabled(featureflags.FeatureRenderID),
			}).Resolve(doc)
			if err != nil {
				return fmt.Errorf("%s: %w", source, err)
			}
			out := cmd.OutOrStdout()
			if len(res.Issues) == 0 {
				fmt.Fprintf(out, "%s: valid, no issues\n", source)
				return nil
			}
			warn := color.New(color.FgYellow)
			for _, issue := range res.Issues {
				warn.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", issue)
			}
			fmt.Fprintf(out, "%s: valid, %d issue(s)\n", source, len(res.Issues))
			if strict {
				return fmt.Errorf("%d constraint issue(s) found with --strict", len(res.Issues))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when constraint issues are found")
	decorateCommandHelp(cmd, "Validate Flags")
	return cmd
}
