// Package aggregate builds the aggregation graph: the merged call structure
// of a batch of exception reports.
//
// # Construction
//
// Each report contributes its starting frame (the last frame of its stack)
// as a root carrying the report's exception context, and one edge per pair
// of adjacent frames, walking the stack from its end toward its start:
//
//	frames:  [X, Y, Z]        (outermost call first)
//	root:    Z
//	edges:   Z -> Y, Y -> X
//
// Frames are merged by identity (see recordid), so common tails of different
// crashes collapse onto the same nodes and divergence shows up as branching.
// A report without a stacktrace starts at a synthetic empty frame, which all
// such reports share. A single-frame report contributes a root and no edges.
//
// # Lifecycle
//
//  1. Build (or BuildParallel) creates the graph with an injected
//     contentstore.Store and ingests every report.
//  2. The graph is frozen before it is returned; later writes fail with
//     ErrGraphFrozen.
//  3. Readers (path enumeration, rendering) query it concurrently.
package aggregate
