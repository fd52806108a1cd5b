package paths

import (
	"slices"

	"github.com/specialistvlad/stackagg/internal/recordid"
)

// trieNode indexes paths by prefix. A terminal node marks the end of an input
// path; a terminal node with children is a proper prefix of a longer path.
type trieNode struct {
	children map[recordid.ID]*trieNode
	terminal bool
	emitted  bool
}

func (n *trieNode) insert(p Path) *trieNode {
	cur := n
	for _, id := range p {
		child, ok := cur.children[id]
		if !ok {
			child = &trieNode{children: make(map[recordid.ID]*trieNode)}
			cur.children[id] = child
		}
		cur = child
	}
	cur.terminal = true
	return cur
}

// Dedupe returns the maximal paths of the input: a path is dropped when it is
// a proper prefix of another input path, and identical paths collapse to
// one. The result is ordered longest first; paths of equal length keep their
// input order. Empty paths are ignored.
func Dedupe(in []Path) []Path {
	root := &trieNode{children: make(map[recordid.ID]*trieNode)}
	ends := make([]*trieNode, len(in))
	for i, p := range in {
		if len(p) == 0 {
			continue
		}
		ends[i] = root.insert(p)
	}

	var out []Path
	for i, p := range in {
		end := ends[i]
		if end == nil || end.emitted || len(end.children) > 0 {
			continue
		}
		end.emitted = true
		out = append(out, slices.Clone(p))
	}

	slices.SortStableFunc(out, func(a, b Path) int {
		return len(b) - len(a)
	})
	return out
}
