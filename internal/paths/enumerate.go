package paths

import (
	"github.com/specialistvlad/stackagg/internal/recordid"
)

// Adjacency is the read side of a graph that enumeration needs.
// *aggregate.Graph satisfies it.
type Adjacency interface {
	Neighbors(id recordid.ID) []recordid.ID
}

// Enumerate returns every complete path reachable from root, in breadth-first
// discovery order. A path is complete when its last node has no neighbor it
// may enter: either a leaf, or a node whose neighbors are all already on the
// path. A root with no outgoing edges yields the single path [root].
func Enumerate(g Adjacency, root recordid.ID) []Path {
	var complete []Path
	queue := []Path{{root}}

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		extended := false
		for _, next := range g.Neighbors(path.Last()) {
			if path.Contains(next) {
				continue
			}
			queue = append(queue, path.extend(next))
			extended = true
		}
		if !extended {
			complete = append(complete, path)
		}
	}
	return complete
}

// RootSource lists starting frames in ingestion order, repeats included.
type RootSource interface {
	Roots() []recordid.ID
}

// Roots returns the unique roots of g in first-seen order.
func Roots(g RootSource) []recordid.ID {
	return recordid.Unique(g.Roots())
}
