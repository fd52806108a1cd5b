package aggregate

import (
	"context"
	"fmt"

	"github.com/specialistvlad/stackagg/internal/contentstore"
	"github.com/specialistvlad/stackagg/internal/ctxlog"
	"github.com/specialistvlad/stackagg/internal/recordid"
	"github.com/specialistvlad/stackagg/internal/report"
	"golang.org/x/sync/errgroup"
)

// step is one cur -> prev adjacency taken from a single stack.
type step struct {
	fromID recordid.ID
	from   report.Frame
	toID   recordid.ID
	to     report.Frame
}

// plan is everything a report contributes to the graph, with identities
// already computed. Planning touches no shared state.
type plan struct {
	rootID recordid.ID
	root   report.Frame
	ctxID  recordid.ID
	ec     report.ExceptionContext
	steps  []step
}

func planReport(r report.Report) plan {
	ec := r.Context()
	p := plan{ctxID: recordid.IdentifyContext(ec), ec: ec}

	frames := r.Frames()
	switch len(frames) {
	case 0:
		// Every stackless report shares the empty frame's hash identity.
		p.root = report.Frame{}
	case 1:
		p.root = frames[0]
	default:
		p.root = frames[len(frames)-1]
		p.steps = make([]step, 0, len(frames)-1)
		for i := len(frames) - 1; i > 0; i-- {
			cur, prev := frames[i], frames[i-1]
			p.steps = append(p.steps, step{
				fromID: recordid.Identify(cur), from: cur,
				toID: recordid.Identify(prev), to: prev,
			})
		}
	}
	p.rootID = recordid.Identify(p.root)
	return p
}

func (g *Graph) apply(ctx context.Context, p plan) error {
	if err := g.start(ctx, p.rootID, p.root, p.ctxID, p.ec); err != nil {
		return err
	}
	for _, s := range p.steps {
		if err := g.connect(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// Build ingests reports in order into a new graph backed by store and
// freezes it. Reports are assumed well formed.
func Build(ctx context.Context, store contentstore.Store, reports []report.Report) *Graph {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building aggregation graph.", "reports", len(reports))

	g := NewGraph(store)
	for _, r := range reports {
		// A fresh graph is never frozen, so apply cannot fail here.
		_ = g.apply(ctx, planReport(r))
	}
	g.Freeze()

	logger.Debug("Aggregation graph built.", "roots", len(g.roots), "edges", g.EdgeCount(), "records", store.Len(ctx))
	return g
}

// BuildParallel produces the same graph as Build. Identities and edge lists
// are computed for each report on up to workers goroutines; the results are
// then merged on a single writer in input order, which keeps root order and
// first-write-wins canonical records identical to the sequential build.
func BuildParallel(ctx context.Context, store contentstore.Store, reports []report.Report, workers int) (*Graph, error) {
	if workers < 1 {
		return nil, fmt.Errorf("workers must be positive, got %d", workers)
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building aggregation graph in parallel.", "reports", len(reports), "workers", workers)

	plans := make([]plan, len(reports))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := range reports {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			plans[i] = planReport(reports[i])
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("failed to plan reports: %w", err)
	}

	g := NewGraph(store)
	for _, p := range plans {
		if err := g.apply(ctx, p); err != nil {
			return nil, err
		}
	}
	g.Freeze()

	logger.Debug("Aggregation graph built.", "roots", len(g.roots), "edges", g.EdgeCount(), "records", store.Len(ctx))
	return g, nil
}
