package pipeline

import (
	"context"
	"fmt"

	"github.com/specialistvlad/stackagg/internal/aggregate"
	"github.com/specialistvlad/stackagg/internal/contentstore"
	"github.com/specialistvlad/stackagg/internal/ctxlog"
	"github.com/specialistvlad/stackagg/internal/inmemorycontent"
	"github.com/specialistvlad/stackagg/internal/paths"
	"github.com/specialistvlad/stackagg/internal/recordid"
	"github.com/specialistvlad/stackagg/internal/report"
	"golang.org/x/sync/errgroup"
)

// Options tunes a run. The zero value runs synchronously on a fresh
// in-memory store.
type Options struct {
	// Workers bounds the goroutines used for report planning and per-root
	// enumeration. Values below 2 keep the run on the calling goroutine.
	Workers int
	// Store receives the canonical records. Nil means a new in-memory store.
	Store contentstore.Store
}

// RootResult is everything known about one unique starting frame.
type RootResult struct {
	Root recordid.ID
	// Contexts are the exception contexts that started at Root, ordered by
	// their identifiers.
	Contexts []report.ExceptionContext
	// Paths are the maximal paths from Root, longest first. A root without
	// outgoing edges has the single path [Root].
	Paths []paths.Path
}

// Result is the output of a run.
type Result struct {
	// Roots holds one entry per unique root, in first-seen order.
	Roots []RootResult

	graph *aggregate.Graph
}

// Graph returns the frozen aggregation graph the result was computed from.
func (r *Result) Graph() *aggregate.Graph {
	return r.graph
}

// Lookup resolves a frame or context identifier to its canonical record.
func (r *Result) Lookup(ctx context.Context, id recordid.ID) (report.Record, bool) {
	return r.graph.Lookup(ctx, id)
}

// Frame resolves id to its canonical frame.
func (r *Result) Frame(ctx context.Context, id recordid.ID) (report.Frame, bool) {
	rec, ok := r.graph.Lookup(ctx, id)
	if !ok {
		return report.Frame{}, false
	}
	f, ok := rec.(report.Frame)
	return f, ok
}

// Run aggregates reports into a Result. Errors only arise from context
// cancellation during a parallel run.
func Run(ctx context.Context, reports []report.Report, opts Options) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	store := opts.Store
	if store == nil {
		store = inmemorycontent.New()
	}

	var g *aggregate.Graph
	if opts.Workers > 1 {
		var err error
		g, err = aggregate.BuildParallel(ctx, store, reports, opts.Workers)
		if err != nil {
			return nil, fmt.Errorf("failed to build aggregation graph: %w", err)
		}
	} else {
		g = aggregate.Build(ctx, store, reports)
	}

	roots := paths.Roots(g)
	logger.Debug("Enumerating paths.", "unique_roots", len(roots), "workers", opts.Workers)

	results := make([]RootResult, len(roots))
	if opts.Workers > 1 {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(opts.Workers)
		for i, root := range roots {
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}
				results[i] = resolveRoot(egCtx, g, root)
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, fmt.Errorf("failed to enumerate paths: %w", err)
		}
	} else {
		for i, root := range roots {
			results[i] = resolveRoot(ctx, g, root)
		}
	}

	logger.Debug("Aggregation finished.", "roots", len(results))
	return &Result{Roots: results, graph: g}, nil
}

func resolveRoot(ctx context.Context, g *aggregate.Graph, root recordid.ID) RootResult {
	rr := RootResult{
		Root:  root,
		Paths: paths.Dedupe(paths.Enumerate(g, root)),
	}
	for _, id := range g.Contexts(root) {
		rec, ok := g.Lookup(ctx, id)
		if !ok {
			ctxlog.FromContext(ctx).Warn("Exception context missing from store.", "root", root, "context_id", id)
			continue
		}
		ec, ok := rec.(report.ExceptionContext)
		if !ok {
			ctxlog.FromContext(ctx).Warn("Record under context identifier is not an exception context.",
				"root", root, "context_id", id, "record_type", fmt.Sprintf("%T", rec))
			continue
		}
		rr.Contexts = append(rr.Contexts, ec)
	}
	return rr
}
