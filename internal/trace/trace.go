// Package trace rebuilds ordered paths from parent links.
package trace

import (
	"errors"
	"fmt"
)

// ErrBrokenChain is returned when a parent chain loops or runs past its
// length ceiling.
var ErrBrokenChain = errors.New("broken parent chain")

// Path walks parent links from last back to the root (the node for which
// parent reports false) and returns the nodes in root-to-last order.
// The walk visits at most limit nodes; a revisited node or a longer walk
// fails with ErrBrokenChain.
func Path[NodeType comparable](
	last NodeType,
	parent func(NodeType) (NodeType, bool),
	limit int,
) ([]NodeType, error) {
	path := []NodeType{last}
	seen := map[NodeType]bool{last: true}
	current := last
	for {
		previous, ok := parent(current)
		if !ok {
			break
		}
		if seen[previous] {
			return nil, fmt.Errorf("%w: cycle after %d steps", ErrBrokenChain, len(path))
		}
		if len(path) >= limit {
			return nil, fmt.Errorf("%w: exceeded %d steps", ErrBrokenChain, limit)
		}
		seen[previous] = true
		path = append(path, previous)
		current = previous
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}
