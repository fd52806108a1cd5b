package paths

import (
	"slices"
	"strings"

	"github.com/specialistvlad/stackagg/internal/recordid"
)

// Path is an ordered sequence of frame identities, starting at a root.
type Path []recordid.ID

// Contains reports whether id occurs anywhere on the path.
func (p Path) Contains(id recordid.ID) bool {
	return slices.Contains(p, id)
}

// HasPrefix reports whether q equals the first len(q) elements of p.
func (p Path) HasPrefix(q Path) bool {
	return len(q) <= len(p) && slices.Equal(p[:len(q)], q)
}

// Last returns the final element of a non-empty path.
func (p Path) Last() recordid.ID {
	return p[len(p)-1]
}

// extend returns a new path with id appended. p is never aliased.
func (p Path) extend(id recordid.ID) Path {
	next := make(Path, len(p)+1)
	copy(next, p)
	next[len(p)] = id
	return next
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, id := range p {
		parts[i] = id.String()
	}
	return strings.Join(parts, " -> ")
}
