// File: cmd/clispec/generate.go
// Brief: CLI command wiring and implementation for 'generate'.

package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/clispec/internal/featureflags"
	"github.com/example/clispec/internal/instructions"
	"github.com/example/clispec/internal/resolver"
	"github.com/example/clispec/internal/scaffold"
	"github.com/example/clispec/internal/style"
)

func newGenerateCommand(state *rootState) *cobra.Command {
	var (
		outDir          string
		binaryName      string
		modulePath      string
		styleFile       string
		force           bool
		dryRun          bool
		yes             bool
		nonInteractive  bool
		skipInstruction bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a runnable CLI scaffold from the resolved config",
		Long: `Generate resolves the config document and renders a minimal runnable Go
package from it: one dispatch entry per object/action pair, forwarding to a
handler the host project registers. Existing files that differ from the
generated content are treated as conflicts and never overwritten without
--force.`,
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
			warn := color.New(color.FgYellow)
			for _, issue := range res.Issues {
				warn.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", issue)
			}

			if styleFile != "" {
				st, err := style.LoadFile(styleFile)
				if err != nil {
					return err
				}
				state.logger.Debug("style loaded")
				fmt.Fprintf(cmd.ErrOrStderr(), "using style %q (layout %s) from %s\n", st.Name, st.Layout, st.Source)
			}

			plan, err := scaffold.BuildPlan(res.Resolved, scaffold.Options{
				OutDir:     outDir,
				BinaryName: binaryName,
				ModulePath: modulePath,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, f := range plan.Files {
				fmt.Fprintf(out, "%-9s %s\n", f.Status, f.Path)
			}
			conflicts := plan.Conflicts()
			for _, f := range conflicts {
				fmt.Fprintf(cmd.ErrOrStderr(), "\nconflict in %s:\n%s", f.Path, f.Diff)
			}
			if dryRun {
				fmt.Fprintln(out, "dry run: no files written")
				return nil
			}
			if len(conflicts) > 0 {
				if !force {
					return fmt.Errorf("%d file(s) conflict with existing content (rerun with --force to overwrite)", len(conflicts))
				}
				dec, err := approvalMode(cmd, yes, nonInteractive)
				if err != nil {
					return err
				}
				prompt := fmt.Sprintf("Overwrite %d conflicting file(s)? Type 'yes' to continue:", len(conflicts))
				if err := confirmAction(cmd.Context(), cmd.InOrStdin(), cmd.ErrOrStderr(), dec, prompt, confirmModeYes, ""); err != nil {
					return err
				}
			}
			created, skipped, err := plan.Apply(force)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "wrote %d file(s), skipped %d unchanged\n", len(created), len(skipped))

			if !skipInstruction {
				md := instructions.Generate("", outDir, planBinaryName(binaryName)).Markdown()
				rendered, err := glamour.Render(md, "auto")
				if err != nil {
					rendered = md
				}
				fmt.Fprint(out, rendered)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory for the generated package (required)")
	cmd.Flags().StringVar(&binaryName, "binary-name", "", "Name of the generated binary (default: generated-cli)")
	cmd.Flags().StringVar(&modulePath, "module-path", "", "Module path for the generated go.mod (default: example.com/<binary-name>)")
	cmd.Flags().StringVar(&styleFile, "style-file", "", "Path to a style declaration file (default: $CLISPEC_STYLE_FILE, then project root)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite files that conflict with existing content")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the plan without writing any files")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Auto-approve the overwrite confirmation")
	cmd.Flags().BoolVar(&nonInteractive, "non-interactive", false, "Fail instead of prompting (requires --yes for overwrites)")
	cmd.Flags().BoolVar(&skipInstruction, "no-instructions", false, "Skip the post-generation integration instructions")
	_ = cmd.MarkFlagRequired("out")
	decorateCommandHelp(cmd, "Generate Flags")
	return cmd
}

func planBinaryName(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return "generated-cli"
}
