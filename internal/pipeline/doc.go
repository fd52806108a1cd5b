// Package pipeline runs a full aggregation: it builds the graph from a batch
// of reports, enumerates the paths of every unique root and keeps the
// maximal ones.
//
// The Result it returns is what the presentation layer consumes. Identifiers
// in the result resolve back to canonical records through Result.Lookup,
// which delegates to the run's content store.
//
// # Concurrency
//
// With Options.Workers <= 1 the whole run is synchronous. Larger values fan
// out report planning (see aggregate.BuildParallel) and per-root enumeration
// over that many goroutines. The graph is frozen before enumeration starts,
// so the fan-out only reads shared state. Output is identical either way.
package pipeline
