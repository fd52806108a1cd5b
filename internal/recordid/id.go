package recordid

import (
	"fmt"
	"strings"
)

// ID identifies a frame or exception context within an aggregation run.
type ID string

// Identifier prefixes. Frames without a location and exception contexts
// are both content hashed; the prefixes keep the two namespaces apart in a
// shared store.
const (
	hashPrefix    = "h:"
	contextPrefix = "c:"
)

// String returns the identifier as a plain string.
func (id ID) String() string {
	return string(id)
}

// IsHash reports whether the identifier is a frame identity derived from a
// content hash rather than a source location.
func (id ID) IsHash() bool {
	return strings.HasPrefix(string(id), hashPrefix) && !strings.Contains(string(id), "#")
}

// IsContext reports whether the identifier belongs to an exception context.
func (id ID) IsContext() bool {
	return strings.HasPrefix(string(id), contextPrefix) && !strings.Contains(string(id), "#")
}

// Location builds the identifier for a source location.
func Location(filename string, lineno int) ID {
	return ID(fmt.Sprintf("%s#%d", filename, lineno))
}

// Unique returns ids with repeats removed, keeping first-seen order.
func Unique(ids []ID) []ID {
	seen := make(map[ID]struct{}, len(ids))
	out := make([]ID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
