// Package paths turns an aggregation graph into the set of distinct failure
// paths: Enumerate lists every root-to-leaf path reachable from a root and
// Dedupe keeps only the maximal ones.
//
// Enumeration uses an explicit FIFO work-list rather than recursion, so deep
// graphs cannot exhaust the stack. A node already on the current path is
// never re-entered; when every neighbor of a node is blocked that way the
// path ends there. Cyclic graphs therefore yield a finite set of paths, none
// of which repeats a node.
package paths
