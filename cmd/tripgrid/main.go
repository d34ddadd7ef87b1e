// main.go bootstraps tripgrid: it builds the root Cobra command, binds Viper configuration, and executes with a signal-aware context.
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

	"github.com/example/tripgrid/internal/config"
	"github.com/example/tripgrid/internal/dataset"
	"github.com/example/tripgrid/internal/featureflags"
	"github.com/example/tripgrid/internal/logging"
	"github.com/example/tripgrid/internal/prefstore"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
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

func newRootCommand() *cobra.Command {
	opts := config.NewOptions()
	logLevel := "warn"
	var featureFlagValues []string
	cmd := &cobra.Command{
		Use:   "tripgrid",
		Short: "Filter, sort and lay out trip tables in the terminal",
		Long: `tripgrid runs the SmartGrid pipeline over a JSON or YAML dataset: a global
search, per-column filters and a stable sort, followed by pixel width
allocation for the visible columns. Per-user column preferences are stored
in SQLite or a YAML file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			flags, err := featureflags.Resolve(featureFlagValues, featureflags.FromEnv(nil))
			if err != nil {
				return err
			}
			logger, err := logging.NewWithOptions(logging.Options{Level: logLevel, Output: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			ctx := featureflags.ContextWithFlags(cmd.Context(), flags)
			ctx = logging.IntoContext(ctx, logger)
			cmd.SetContext(ctx)
			logger.V(1).Info("configuration resolved", "features", flags.EnabledNames(), "output", opts.OutputFormat)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, opts)
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", logLevel, "Log level for tripgrid diagnostics (debug, info, warn, error)")
	cmd.PersistentFlags().StringSliceVar(&featureFlagValues, "feature", nil, "Enable (or with a leading '-' disable) feature flags; repeat or pass comma-separated names")
	opts.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newViewCommand(opts),
		newRowsCommand(opts),
		newWidthsCommand(opts),
		newPrefsCommand(opts),
		newFeaturesCommand(),
		newVersionCommand(opts),
		newCompletionCommand(cmd),
	)
	registerColumnCompletion(cmd, opts)
	cmd.Example = `  # Show confirmed trips to Turin, newest departures first
  tripgrid --rows trips.yaml --search turin -f status:equals:Confirmed --sort departure:desc

  # Inspect the width allocation for a 1280px container
  tripgrid widths --rows trips.yaml --container-width 1280

  # Remember a wider trip column for the current user
  tripgrid prefs set-width trip 240`
	bindViper(cmd)
	return cmd
}

func bindViper(commands ...*cobra.Command) {
	if len(commands) == 0 {
		return
	}
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix("TRIPGRID")
	v.AutomaticEnv()
	configFile := os.Getenv("TRIPGRID_CONFIG")
	configureConfigFile(v, configFile)

	cobra.OnInitialize(func() {
		for _, cmd := range commands {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				cobra.CheckErr(err)
			}
			if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
				cobra.CheckErr(err)
			}
		}
		if err := readConfigFile(v, configFile != ""); err != nil {
			cobra.CheckErr(err)
		}
		for _, cmd := range commands {
			for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()} {
				fs.VisitAll(func(f *pflag.Flag) {
					if f.Changed || !v.IsSet(f.Name) {
						return
					}
					if val := flagValueFromViper(v, f); val != "" {
						_ = f.Value.Set(val)
					}
				})
			}
		}
	})
}

// flagValueFromViper renders a config value in the form pflag's Set expects.
// List values from a config file are joined for slice flags; maps become
// key=value pairs.
func flagValueFromViper(v *viper.Viper, f *pflag.Flag) string {
	switch raw := v.Get(f.Name).(type) {
	case []interface{}:
		parts := make([]string, 0, len(raw))
		for _, item := range raw {
			parts = append(parts, fmt.Sprintf("%v", item))
		}
		return strings.Join(parts, ",")
	case map[string]interface{}:
		parts := make([]string, 0, len(raw))
		for k, item := range raw {
			parts = append(parts, fmt.Sprintf("%s=%v", k, item))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", raw)
	}
}

func configureConfigFile(v *viper.Viper, explicitPath string) {
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		return
	}
	v.SetConfigName("config")
	for _, dir := range configSearchDirs() {
		v.AddConfigPath(dir)
	}
}

func readConfigFile(v *viper.Viper, strict bool) error {
	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if errors.As(err, &cfgErr) && !strict {
			return nil
		}
		return err
	}
	return nil
}

func configSearchDirs() []string {
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
		add(filepath.Join(xdg, "tripgrid"))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		add(filepath.Join(home, ".config", "tripgrid"))
		add(filepath.Join(home, ".tripgrid"))
	}
	return dirs
}

func handleError(err error) {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return
	}
	message := err.Error()
	switch {
	case errors.Is(err, config.ErrInvalidFilter):
		message = fmt.Sprintf("%s\nHint: filters look like status:equals:Confirmed or city:lyon (contains).", err)
	case errors.Is(err, dataset.ErrUnsupportedFormat):
		message = fmt.Sprintf("%s\nHint: datasets must end in .json, .yaml or .yml; use --rows - to read stdin.", err)
	case errors.Is(err, prefstore.ErrNotFound):
		message = fmt.Sprintf("%s\nHint: nothing is stored for this user and grid yet.", err)
	case errors.Is(err, featureflags.ErrUnknownFeature):
		message = fmt.Sprintf("%s\nHint: run 'tripgrid features' to list known flags.", err)
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}
