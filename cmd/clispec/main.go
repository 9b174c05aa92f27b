// main.go bootstraps clispec: it builds the root Cobra command and executes
// with a signal-aware context.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/example/clispec/internal/featureflags"
	"github.com/example/clispec/internal/logging"
	"github.com/example/clispec/internal/resolver"
	"github.com/example/clispec/internal/schema"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCommand()
	err := rootCmd.ExecuteContext(ctx)
	handleError(err)
	if err != nil {
		os.Exit(1)
	}
}

// rootState carries the flag values shared by every subcommand.
type rootState struct {
	configPath string
	logLevel   string
	logger     *zap.Logger
}

func newRootCommand() *cobra.Command {
	state := &rootState{logLevel: "info"}
	var featureFlagValues []string
	cmd := &cobra.Command{
		Use:           "clispec",
		Short:         "Resolve and scaffold declarative CLI specifications",
		Long:          "clispec validates declarative CLI configuration documents, resolves their $ref reuse and {{vars.*}} placeholders, and generates runnable command-line scaffolds from the result.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(state.logLevel)
			if err != nil {
				return err
			}
			state.logger = logger
			flags, err := featureflags.Resolve(featureFlagValues, featureflags.EnabledFromEnv(nil))
			if err != nil {
				return err
			}
			ctx := featureflags.ContextWithFlags(cmd.Context(), flags)
			cmd.Root().SetContext(ctx)
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&state.configPath, "config", "c", "", "Path to the clispec config document (default: $CLISPEC_CONFIG, then ./.clispec)")
	cmd.PersistentFlags().StringVar(&state.logLevel, "log-level", state.logLevel, "Log level for clispec output (debug, info, warn, error)")
	cmd.PersistentFlags().StringSliceVar(&featureFlagValues, "feature", nil, "Enable experimental clispec features (repeat or pass comma-separated names)")
	if err := cmd.PersistentFlags().MarkHidden("feature"); err != nil {
		cobra.CheckErr(err)
	}

	validateCmd := newValidateCommand(state)
	explainCmd := newExplainCommand(state)
	generateCmd := newGenerateCommand(state)
	stylesCmd := newStylesCommand()
	envCmd := newEnvCommand()
	versionCmd := newVersionCommand()
	cmd.AddCommand(
		validateCmd,
		explainCmd,
		generateCmd,
		stylesCmd,
		envCmd,
		versionCmd,
		newCompletionCommand(cmd),
	)
	cmd.Example = `  # Validate the local config and report constraint issues
  clispec validate

  # Print the fully resolved document as JSON
  clispec explain --output json

  # Generate a runnable Go scaffold from the resolved config
  clispec generate --out ./gen/mycli --binary-name mycli`
	decorateCommandHelp(cmd, "Global Flags")
	bindViper(cmd, validateCmd, explainCmd, generateCmd, stylesCmd, envCmd, versionCmd)
	return cmd
}

func bindViper(commands ...*cobra.Command) {
	if len(commands) == 0 {
		return
	}
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix("CLISPEC")
	v.AutomaticEnv()
	v.SetConfigName("settings")
	for _, dir := range settingsSearchDirs() {
		v.AddConfigPath(dir)
	}

	cobra.OnInitialize(func() {
		for _, cmd := range commands {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				cobra.CheckErr(err)
			}
			if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
				cobra.CheckErr(err)
			}
		}
		if err := readSettingsFile(v); err != nil {
			cobra.CheckErr(err)
		}
		for _, cmd := range commands {
			flagSets := []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()}
			for _, fs := range flagSets {
				fs.VisitAll(func(f *pflag.Flag) {
					if f.Changed {
						return
					}
					if !v.IsSet(f.Name) {
						return
					}
					val := fmt.Sprintf("%v", v.Get(f.Name))
					if val != "" {
						_ = f.Value.Set(val)
					}
				})
			}
		}
	})
}

func readSettingsFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if errors.As(err, &cfgErr) {
			return nil
		}
		return err
	}
	return nil
}

func settingsSearchDirs() []string {
	added := make(map[string]struct{})
	var dirs []string
	add := func(path string) {
		if path == "" {
			return
		}
		if _, ok := added[path]; ok {
			return
		}
		added[path] = struct{}{}
		dirs = append(dirs, path)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		add(filepath.Join(xdg, "clispec"))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		add(filepath.Join(home, ".config", "clispec"))
		add(filepath.Join(home, ".clispec.d"))
	}
	return dirs
}

func handleError(err error) {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return
	}
	message := err.Error()
	var schemaErr *schema.Error
	var resolveErr *resolver.Error
	switch {
	case errors.As(err, &schemaErr):
		message = fmt.Sprintf("%s\nHint: the document does not match the config schema. Fix the listed paths and rerun 'clispec validate'.", err)
	case errors.As(err, &resolveErr) && resolveErr.Kind == resolver.ErrCyclicReference:
		message = fmt.Sprintf("%s\nHint: two or more $ref entries form a loop. Break the chain so every reference reaches a concrete definition.", err)
	case errors.As(err, &resolveErr):
		message = fmt.Sprintf("%s\nHint: $ref values must be local JSON pointers like '#/shared_defs/common_options' targeting a mapping.", err)
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}
