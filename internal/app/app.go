package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/stackagg/internal/config"
	"github.com/specialistvlad/stackagg/internal/contentstore"
	"github.com/specialistvlad/stackagg/internal/ctxlog"
	"github.com/specialistvlad/stackagg/internal/loader"
	"github.com/specialistvlad/stackagg/internal/report"
)

// ReportLoader reads report batches from files and directories.
type ReportLoader interface {
	Load(ctx context.Context, paths ...string) ([]report.Report, error)
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	inR     io.Reader
	logger  *slog.Logger
	config  *Config
	reports ReportLoader
	store   contentstore.Store
}

// Option customizes an App.
type Option func(*App)

// WithInput sets the reader used for the "-" input. The default is os.Stdin.
func WithInput(r io.Reader) Option {
	return func(a *App) { a.inR = r }
}

// WithReportLoader replaces the filesystem report loader.
func WithReportLoader(l ReportLoader) Option {
	return func(a *App) { a.reports = l }
}

// WithStore sets the content store runs register records in. The default is
// a fresh in-memory store per run.
func WithStore(s contentstore.Store) Option {
	return func(a *App) { a.store = s }
}

// NewApp is the constructor for the main application. When cfg names a
// config file it is loaded with cfgLoader and merged under cfg. Results are
// written to outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config, cfgLoader config.Loader, opts ...Option) (*App, error) {
	var model *config.Model
	if cfg.ConfigPath != "" {
		// The real logger depends on the file, so loading logs to the default.
		var err error
		model, err = cfgLoader.Load(ctxlog.WithLogger(context.Background(), slog.Default()), cfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to load config file: %v", ErrInvalidConfig, err)
		}
	}

	resolved, err := cfg.resolve(model)
	if err != nil {
		return nil, err
	}

	logger := newLogger(resolved.LogLevel, resolved.LogFormat, logW)
	logger.Debug("Logger configured successfully.", "level", resolved.LogLevel, "format", resolved.LogFormat)

	a := &App{
		outW:    outW,
		inR:     os.Stdin,
		logger:  logger,
		config:  resolved,
		reports: loader.NewLoader(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Config returns the effective configuration after merging the config file
// and defaults.
func (a *App) Config() *Config {
	return a.config
}
