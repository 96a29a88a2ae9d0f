// Package commands implements the CLI commands for platdetect.
package commands

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/platdetect/cmd"
	"github.com/thoreinstein/platdetect/internal/catalog"
	"github.com/thoreinstein/platdetect/internal/config"
	"github.com/thoreinstein/platdetect/internal/errors"
	"github.com/thoreinstein/platdetect/internal/logging"
	"github.com/thoreinstein/platdetect/internal/paths"
	"github.com/thoreinstein/platdetect/internal/telemetry"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// colorFlag holds the value of the --color flag.
var colorFlag string

// colorMode is the parsed --color value used by log and command output.
var colorMode = logging.ColorAuto

// logFile holds the path to the log file.
var logFile string

// configPath holds the value of the --config flag.
var configPath string

// envFile holds the value of the --env-file flag.
var envFile string

// timeout bounds every blocking operation of a command.
var timeout time.Duration

// metricsFile holds the textfile collector output path.
var metricsFile string

// traceEnabled holds the value of the --trace flag.
var traceEnabled bool

// appConfig is the configuration loaded by PersistentPreRunE.
var appConfig *config.Config

// tracerProvider is set when --trace is given.
var tracerProvider *telemetry.TracerProvider

// cancelTimeout releases the --timeout context.
var cancelTimeout context.CancelFunc

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		"color output: auto, always, never (auto honours NO_COLOR and PLATDETECT_NO_COLOR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default: ./config.yaml or $XDG_CONFIG_HOME/platdetect/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "",
		"load PLATDETECT_* variables from a .env file before reading config")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0,
		"abort the command after this long (0 disables)")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "",
		"write prometheus metrics to this file on exit (bare flag: "+paths.MetricsFile()+")")
	rootCmd.PersistentFlags().Lookup("metrics-file").NoOptDefVal = paths.MetricsFile()
	rootCmd.PersistentFlags().BoolVar(&traceEnabled, "trace", false,
		"print trace spans to stderr")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("platdetect version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "platdetect",
	Short: "Detect the runtime platform and version of a source tree",
	Long: `platdetect inspects a source directory, decides which runtime platform
it targets (dotnet, php, python or nodejs) and resolves the exact runtime
version to use from the project's own constraints.

Supported versions come from the locally installed runtimes, from a remote
SDK storage listing when dynamic_install is enabled, or from an explicit
supported_versions list in the configuration.`,
	Example: `  # Detect the platform of the current directory
  platdetect detect

  # Detect every matching platform as JSON
  platdetect detect ./app --all --json

  # List the supported node versions
  platdetect versions nodejs

  See Also: platdetect resolve, platdetect config`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Initialize logging first
		if err := setupLogging(cmd); err != nil {
			return err
		}
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}
		if err := loadConfig(); err != nil {
			return err
		}
		if err := setupTracing(cmd); err != nil {
			return err
		}
		setupTimeout(cmd)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
		return finish(cmd.Context())
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	mode, err := logging.ParseColorMode(colorFlag)
	if err != nil {
		return errors.NewUserError(err, "Use --color auto, --color always or --color never")
	}
	colorMode = mode

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("PLATDETECT_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logging.RedactAttr,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts, logging.WithColor(colorMode))
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, opts))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
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

// loadConfig reads the env file, then the config file, into appConfig.
func loadConfig() error {
	if envFile != "" {
		if err := config.LoadEnvFile(envFile); err != nil {
			return errors.NewConfigError(err)
		}
	}

	config.Init()
	cfg, err := config.Load(configPath)
	if err != nil {
		return errors.NewConfigError(err)
	}
	appConfig = cfg

	if used := config.ConfigFileUsed(); used != "" {
		slog.Debug("loaded config", "path", used)
	}
	return nil
}

func setupTracing(cmd *cobra.Command) error {
	if !traceEnabled {
		return nil
	}
	tp, err := telemetry.NewTracerProvider(cmd.ErrOrStderr(), cmd.Root().Version)
	if err != nil {
		return errors.NewSystemError(err, "failed to start tracing")
	}
	tracerProvider = tp
	return nil
}

func setupTimeout(cmd *cobra.Command) {
	if timeout <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	cancelTimeout = cancel
	cmd.SetContext(ctx)
}

// finish flushes traces and metrics. It runs after a successful command.
func finish(ctx context.Context) error {
	if cancelTimeout != nil {
		cancelTimeout()
		cancelTimeout = nil
	}

	var errs []error
	if tracerProvider != nil {
		// The command context may already be cancelled
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, errors.Wrap(err, "flushing traces"))
		}
		tracerProvider = nil
	}
	if metricsFile != "" {
		if err := paths.EnsureDir(filepath.Dir(metricsFile), 0); err != nil {
			errs = append(errs, errors.Wrap(err, "creating metrics directory"))
		} else if err := telemetry.WriteTextfile(metricsFile); err != nil {
			errs = append(errs, errors.Wrapf(err, "writing metrics to %s", metricsFile))
		}
	}
	if len(errs) > 0 {
		return errors.NewSystemError(errors.Join(errs...), "")
	}
	return nil
}

// newVersionSet builds the per-platform version catalogs from appConfig.
func newVersionSet() catalog.Set {
	return catalog.NewSet(appConfig, catalog.Options{
		Client: &http.Client{},
		Logger: slog.Default(),
	})
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		// Post-run hooks are skipped when a command fails
		_ = finish(context.Background())
	}
	return errors.Wrap(err, "executing root command")
}
