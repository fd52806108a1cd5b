package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/specialistvlad/stackagg/internal/ctxlog"
	"github.com/specialistvlad/stackagg/internal/loader"
	"github.com/specialistvlad/stackagg/internal/metrics"
	"github.com/specialistvlad/stackagg/internal/pipeline"
	"github.com/specialistvlad/stackagg/internal/render"
	"github.com/specialistvlad/stackagg/internal/report"
)

// stdinInput is the input path that reads a JSON document from the App's
// input reader.
const stdinInput = "-"

// Run loads every input, aggregates the reports and writes the rendered
// result, plus the run metrics when a metrics file is configured.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.With(ctxlog.WithLogger(ctx, a.logger), "run_id", uuid.NewString())
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.")

	renderFn, err := render.For(a.config.Format)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	m := metrics.NewRun()

	start := time.Now()
	reports, err := a.loadReports(ctx)
	if err != nil {
		return err
	}
	m.ObserveStage(metrics.StageLoad, time.Since(start))
	m.ObserveReports(reports)
	logger.Info("Reports loaded.", "count", len(reports), "inputs", len(a.config.Inputs))

	start = time.Now()
	res, err := pipeline.Run(ctx, reports, pipeline.Options{
		Workers: a.config.Workers,
		Store:   a.store,
	})
	if err != nil {
		return fmt.Errorf("aggregation failed: %w", err)
	}
	m.ObserveStage(metrics.StageAggregate, time.Since(start))
	m.ObserveResult(res)
	logger.Info("Aggregation finished.", "unique_roots", len(res.Roots), "edges", res.Graph().EdgeCount())

	start = time.Now()
	if err := a.writeResult(ctx, renderFn, res); err != nil {
		return err
	}
	m.ObserveStage(metrics.StageRender, time.Since(start))

	if a.config.MetricsPath != "" {
		if err := m.WriteTextfile(a.config.MetricsPath); err != nil {
			return err
		}
		logger.Debug("Run metrics written.", "path", a.config.MetricsPath)
	}

	logger.Debug("App.Run method finished.")
	return nil
}

// loadReports reads inputs in order. Consecutive filesystem inputs are
// loaded together; "-" decodes the input reader as JSON.
func (a *App) loadReports(ctx context.Context) ([]report.Report, error) {
	var all []report.Report
	var pending []string

	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		reports, err := a.reports.Load(ctx, pending...)
		if err != nil {
			return fmt.Errorf("failed to load reports: %w", err)
		}
		all = append(all, reports...)
		pending = nil
		return nil
	}

	for _, in := range a.config.Inputs {
		if in != stdinInput {
			pending = append(pending, in)
			continue
		}
		if err := flush(); err != nil {
			return nil, err
		}
		ctxlog.FromContext(ctx).Debug("Reading reports from standard input.")
		reports, err := loader.DecodeReader(a.inR, loader.FormatJSON)
		if err != nil {
			return nil, fmt.Errorf("failed to decode reports from standard input: %w", err)
		}
		all = append(all, reports...)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return all, nil
}

func (a *App) writeResult(ctx context.Context, renderFn render.Func, res *pipeline.Result) error {
	if a.config.OutputPath == "" {
		if err := renderFn(ctx, a.outW, res); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		return nil
	}

	ctxlog.FromContext(ctx).Debug("Writing result to file.", "path", a.config.OutputPath)
	f, err := os.Create(a.config.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := renderFn(ctx, f, res); err != nil {
		f.Close()
		return fmt.Errorf("failed to write result: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
