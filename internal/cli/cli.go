package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/stackagg/internal/app"
	"github.com/spf13/pflag"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments on top of the STACKAGG_*
// environment. It returns a populated Config, a boolean indicating if the
// program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	env, err := app.LoadEnv()
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return ParseWithEnv(args, env, output)
}

// ParseWithEnv is Parse with the environment already read. A flag given on
// the command line wins over its environment variable; anything still unset
// is left for the config file and defaults.
func ParseWithEnv(args []string, env app.Env, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := pflag.NewFlagSet("stackagg", pflag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.SortFlags = false

	flagSet.Usage = func() {
		fmt.Fprint(output, `
stackagg - Merge crash report stack traces into their distinct failure paths.

Usage:
  stackagg [options] [INPUT...]

Arguments:
  INPUT
    A .json, .yaml or .yml report file, a directory to scan for them,
    or "-" to read a JSON document from standard input.

Environment:
  STACKAGG_FORMAT, STACKAGG_WORKERS, STACKAGG_LOG_LEVEL, STACKAGG_LOG_FORMAT
    Defaults for the matching options.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.StringP("config", "c", "", "Path to an .hcl run configuration file.")
	formatFlag := flagSet.StringP("format", "f", app.DefaultFormat, "Output format. Options: 'text' or 'json'.")
	outputFlag := flagSet.StringP("output", "o", "", "Write the result to this file instead of standard output.")
	metricsFlag := flagSet.String("metrics-file", "", "Write run metrics to this file in Prometheus text format.")
	workersFlag := flagSet.IntP("workers", "w", app.DefaultWorkers, "Number of goroutines used for aggregation.")
	logLevelFlag := flagSet.String("log-level", app.DefaultLogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormatFlag := flagSet.String("log-format", app.DefaultLogFormat, "Log output format. Options: 'text' or 'json'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	cfg := app.Config{
		ConfigPath:  *configFlag,
		OutputPath:  *outputFlag,
		MetricsPath: *metricsFlag,
		Format:      pick(flagSet, "format", strings.ToLower(*formatFlag), strings.ToLower(env.Format)),
		LogLevel:    pick(flagSet, "log-level", strings.ToLower(*logLevelFlag), strings.ToLower(env.LogLevel)),
		LogFormat:   pick(flagSet, "log-format", strings.ToLower(*logFormatFlag), strings.ToLower(env.LogFormat)),
		Workers:     env.Workers,
	}
	if flagSet.NArg() > 0 {
		cfg.Inputs = flagSet.Args()
	}
	if flagSet.Changed("workers") {
		if *workersFlag < 1 {
			return nil, false, &ExitError{Code: 2, Message: "invalid workers: must be at least 1"}
		}
		cfg.Workers = *workersFlag
	}

	if len(cfg.Inputs) == 0 && cfg.ConfigPath == "" {
		slog.Debug("No inputs provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// pick returns the flag's value when it was given explicitly, otherwise
// fallback.
func pick(flagSet *pflag.FlagSet, name, value, fallback string) string {
	if flagSet.Changed(name) {
		return value
	}
	return fallback
}
