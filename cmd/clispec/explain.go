// File: cmd/clispec/explain.go
// Brief: CLI command wiring and implementation for 'explain'.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/example/clispec/internal/document"
	"github.com/example/clispec/internal/featureflags"
	"github.com/example/clispec/internal/resolver"
)

func newExplainCommand(state *rootState) *cobra.Command {
	var output string
	var showDiff bool
	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Print the fully resolved config document",
		Long: `Explain resolves the config document ($ref expansion plus variable
substitution) and prints the result. With --diff it instead shows a unified
diff between the raw and the resolved document, which makes the effect of
each $ref and placeholder visible.`,
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
			out := cmd.OutOrStdout()
			if showDiff {
				before, err := renderDocument(doc, output)
				if err != nil {
					return err
				}
				after, err := renderDocument(res.Resolved, output)
				if err != nil {
					return err
				}
				diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
					A:        difflib.SplitLines(before),
					B:        difflib.SplitLines(after),
					FromFile: "raw/" + source,
					ToFile:   "resolved/" + source,
					Context:  3,
				})
				if err != nil {
					return err
				}
				if diff == "" {
					fmt.Fprintln(out, "no differences: the document has no $ref or placeholder usage")
					return nil
				}
				fmt.Fprint(out, diff)
				return nil
			}
			text, err := renderDocument(res.Resolved, output)
			if err != nil {
				return err
			}
			fmt.Fprint(out, text)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format: yaml, json")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "Show a unified diff between the raw and resolved document")
	decorateCommandHelp(cmd, "Explain Flags")
	return cmd
}

// renderDocument serializes a document in the requested format with mapping
// keys in declaration order, always ending with a newline.
func renderDocument(doc *document.Value, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		raw, err := doc.MarshalJSON()
		if err != nil {
			return "", err
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return "", err
		}
		buf.WriteString("\n")
		return buf.String(), nil
	case "", "text", "yaml", "yml":
		b, err := yaml.Marshal(doc)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("unsupported --output %q (expected yaml or json)", format)
	}
}
