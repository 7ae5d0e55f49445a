// Package commands implements the CLI commands for gertty.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/gertty/cmd"
	"github.com/thoreinstein/gertty/internal/config"
	"github.com/thoreinstein/gertty/internal/errors"
	"github.com/thoreinstein/gertty/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFile holds the path of the optional JSON debug log.
var logFile string

func init() {
	cobra.OnInitialize(config.Init)

	flags := rootCmd.PersistentFlags()
	flags.StringP(config.KeyConfig, "c", "", "configuration file (default ~/.gertty.yaml)")
	flags.StringP(config.KeyServer, "s", "", "server name (default: first server in the file)")
	flags.String(config.KeyPalette, "", "palette name, overriding the file")
	flags.String(config.KeyKeymap, "", "keymap name, overriding the file")
	flags.String(config.KeyLogFormat, "text", "log format: text, json")
	flags.CountVarP(&verbosity, "verbose", "v", "increase verbosity level (e.g., -v, -vv)")
	flags.BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	flags.StringVar(&logFile, "debug-log", "", "also write logs to this file in JSON format")

	for _, key := range []string{config.KeyConfig, config.KeyServer, config.KeyPalette, config.KeyKeymap, config.KeyLogFormat} {
		_ = viper.BindPFlag(key, flags.Lookup(key))
	}

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("gertty version {{.Version}}\n")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "gertty",
	Short: "Inspect and validate gertty configuration",
	Long: `gertty reads ~/.gertty.yaml, validates it against its schema and
resolves the settings of one Gerrit server: credentials, TLS policy, local
paths, palettes, keymaps, comment links, dashboards and review keys.

Every setting can also come from the environment with the GERTTY_ prefix,
for example GERTTY_CONFIG or GERTTY_SERVER.`,
	Example: `  # Show the resolved configuration of the first server
  gertty config show

  # Validate every server in a specific file
  gertty -c ~/work/gertty.yaml config validate

  # Check that the review server is reachable
  gertty -s review doctor --online

  See Also: gertty config, gertty servers, gertty doctor`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("conflicting flags"), "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity
		if v == 0 {
			if val, ok := os.LookupEnv("GERTTY_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2
				case "2":
					v = 3
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	primary := logging.New(logging.Config{
		Level:  level,
		Format: logging.Format(viper.GetString(config.KeyLogFormat)),
		Output: cmd.ErrOrStderr(),
	}).Handler()

	handler := primary
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open debug log")
		}
		file := logging.New(logging.Config{Level: level, Format: logging.FormatJSON, Output: f}).Handler()
		handler = logging.NewMultiHandler(primary, file)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// resolveOptions returns the resolver options for the current settings.
func resolveOptions(cmd *cobra.Command) config.Options {
	opts := config.SettingsOptions()
	opts.Logger = logging.FromContext(cmd.Context())
	return opts
}

// loadConfig resolves the selected server, prompting for its password
// when the file has none.
func loadConfig(cmd *cobra.Command, noPrompt bool) (*config.Config, error) {
	opts := resolveOptions(cmd)
	opts.NoPrompt = noPrompt
	cfg, err := config.Load(cmd.Context(), opts)
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	return cfg, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
