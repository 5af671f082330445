package rvk

import (
	"fmt"

	"github.com/fachref/rvkc/core"
)

// Path reconstructs the full label path of a node, root first, ending with
// the node's own label. It walks parent links through the cache only and
// never fetches: nodes reached by traversal have cached ancestors, and
// Node pre-caches the chain for random access.
//
// Returns core.ErrBrokenAncestry when a parent link cannot be resolved and
// core.ErrMalformedHierarchy when the chain revisits a notation or exceeds
// the depth ceiling.
func (a *Accessor) Path(node core.NotationNode) ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	labels := []string{node.Label}
	seen := map[string]bool{node.Notation: true}

	current := node
	for current.Parent != "" {
		if len(labels) > maxAncestryDepth {
			return nil, fmt.Errorf("%w: ancestry of %s exceeds %d levels",
				core.ErrMalformedHierarchy, node.Notation, maxAncestryDepth)
		}

		parent, ok := a.nodes[current.Parent]
		if !ok {
			return nil, fmt.Errorf("%w: %s references unknown parent %s",
				core.ErrBrokenAncestry, current.Notation, current.Parent)
		}
		if seen[parent.Notation] {
			return nil, fmt.Errorf("%w: %s is its own ancestor",
				core.ErrMalformedHierarchy, parent.Notation)
		}
		seen[parent.Notation] = true

		labels = append([]string{parent.Label}, labels...)
		current = parent
	}

	return labels, nil
}
