// Package contentstore defines the interface for the identity-keyed table
// that retains one canonical record per frame or exception-context identity.
//
// # Lifecycle
//
// A store is created for a single aggregation run and injected into the graph
// builder. It is populated while reports are ingested and only read once the
// graph is frozen, when the presentation layer resolves identifiers back to
// records. Independent runs use independent stores and never share state.
package contentstore

import (
	"context"

	"github.com/specialistvlad/stackagg/internal/recordid"
	"github.com/specialistvlad/stackagg/internal/report"
)

// Store retains the first record registered under each identifier.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// Register stores record under id if id is new and returns it. If id is
	// already present the previously stored record is returned unchanged and
	// existed is true; the new record is discarded.
	Register(ctx context.Context, id recordid.ID, record report.Record) (stored report.Record, existed bool)

	// Lookup returns the canonical record for id, or false if it was never
	// registered.
	Lookup(ctx context.Context, id recordid.ID) (report.Record, bool)

	// Len returns the number of identifiers held.
	Len(ctx context.Context) int
}
