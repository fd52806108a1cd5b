package aggregate

import (
	"context"
	"slices"
	"sync"

	"github.com/specialistvlad/stackagg/internal/contentstore"
	"github.com/specialistvlad/stackagg/internal/recordid"
	"github.com/specialistvlad/stackagg/internal/report"
)

type idSet map[recordid.ID]struct{}

// Graph is the merged call structure of a batch of reports.
//
// Edges point from a frame toward the frame recorded before it in the same
// stack, i.e. from the innermost call outward. Roots are the starting frames
// of each report in ingestion order and may repeat; consumers dedup by
// identity. Contexts maps a root to the exception contexts that started there.
//
// A Graph has a single writer while it is built. After Freeze it is read-only
// and safe for concurrent readers.
type Graph struct {
	mu       sync.RWMutex
	edges    map[recordid.ID]idSet
	contexts map[recordid.ID]idSet
	roots    []recordid.ID
	store    contentstore.Store
	frozen   bool
}

// NewGraph creates an empty graph whose records are kept in store.
func NewGraph(store contentstore.Store) *Graph {
	return &Graph{
		edges:    make(map[recordid.ID]idSet),
		contexts: make(map[recordid.ID]idSet),
		store:    store,
	}
}

// Connect registers both frames and adds the edge cur -> prev. Frames that
// share an identity add no edge. Adding an existing edge is a no-op.
func (g *Graph) Connect(ctx context.Context, cur, prev report.Frame) error {
	return g.connect(ctx, step{
		fromID: recordid.Identify(cur), from: cur,
		toID: recordid.Identify(prev), to: prev,
	})
}

// Start registers frame as a root and attaches the exception context to it.
func (g *Graph) Start(ctx context.Context, frame report.Frame, ec report.ExceptionContext) error {
	return g.start(ctx, recordid.Identify(frame), frame, recordid.IdentifyContext(ec), ec)
}

func (g *Graph) connect(ctx context.Context, s step) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.frozen {
		return ErrGraphFrozen
	}

	g.store.Register(ctx, s.fromID, s.from)
	g.store.Register(ctx, s.toID, s.to)

	if s.fromID == s.toID {
		return nil
	}
	if g.edges[s.fromID] == nil {
		g.edges[s.fromID] = make(idSet)
	}
	g.edges[s.fromID][s.toID] = struct{}{}
	return nil
}

func (g *Graph) start(ctx context.Context, frameID recordid.ID, frame report.Frame, ctxID recordid.ID, ec report.ExceptionContext) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.frozen {
		return ErrGraphFrozen
	}

	g.store.Register(ctx, frameID, frame)
	g.store.Register(ctx, ctxID, ec)

	if g.contexts[frameID] == nil {
		g.contexts[frameID] = make(idSet)
	}
	g.contexts[frameID][ctxID] = struct{}{}
	g.roots = append(g.roots, frameID)
	return nil
}

// Freeze makes the graph read-only. Freezing twice is harmless.
func (g *Graph) Freeze() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.frozen = true
}

// Neighbors returns the targets of id's outgoing edges in sorted order.
// A leaf has none.
func (g *Graph) Neighbors(id recordid.ID) []recordid.ID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return sortedIDs(g.edges[id])
}

// Contexts returns the exception-context identifiers attached to id in
// sorted order. Non-root identifiers have none.
func (g *Graph) Contexts(id recordid.ID) []recordid.ID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return sortedIDs(g.contexts[id])
}

// Roots returns a copy of the starting frames in ingestion order, including
// repeats.
func (g *Graph) Roots() []recordid.ID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.roots)
}

// Edges returns a copy of the adjacency map with sorted target lists.
func (g *Graph) Edges() map[recordid.ID][]recordid.ID {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make(map[recordid.ID][]recordid.ID, len(g.edges))
	for from, targets := range g.edges {
		out[from] = sortedIDs(targets)
	}
	return out
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := 0
	for _, targets := range g.edges {
		n += len(targets)
	}
	return n
}

// Store returns the content store backing the graph.
func (g *Graph) Store() contentstore.Store {
	return g.store
}

// Lookup resolves id to its canonical record.
func (g *Graph) Lookup(ctx context.Context, id recordid.ID) (report.Record, bool) {
	return g.store.Lookup(ctx, id)
}

func sortedIDs(set idSet) []recordid.ID {
	out := make([]recordid.ID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
