package gridastar

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ReachableSet expands outward from start by accumulated cost alone
// (Dijkstra order, no goal) and returns the optimal path from start to
// every cell it finalized. The start maps to a one-cell path.
//
// WithMaxExpansions bounds the expansion; only cells finalized before
// the cap are reported.
func ReachableSet(grid *Grid, start Coord, options ...Option) (map[Coord][]Coord, error) {
	s, err := exploreFrom(grid, start, options)
	if err != nil {
		return nil, err
	}
	paths := make(map[Coord][]Coord, len(s.closed))
	for c, n := range s.closed {
		path, err := s.pathTo(n)
		if err != nil {
			return nil, err
		}
		paths[c] = path
	}
	return paths, nil
}

// Distances runs the same expansion as ReachableSet and returns the
// optimal cost from start to every finalized cell.
func Distances(grid *Grid, start Coord, options ...Option) (map[Coord]float64, error) {
	reach, err := Explore(grid, start, options...)
	if err != nil {
		return nil, err
	}
	return reach.Costs, nil
}

// Reach is the outcome of a reachability expansion.
type Reach struct {
	Costs    map[Coord]float64
	Expanded int
	// Truncated is set when the expansion cap stopped the run before the
	// frontier emptied. Costs then covers a subset of the reachable cells.
	Truncated bool
}

// Explore is Distances with the expansion count and truncation flag kept.
func Explore(grid *Grid, start Coord, options ...Option) (Reach, error) {
	s, err := exploreFrom(grid, start, options)
	if err != nil {
		return Reach{}, err
	}
	costs := make(map[Coord]float64, len(s.closed))
	for c, n := range s.closed {
		costs[c] = n.g
	}
	return Reach{Costs: costs, Expanded: s.expanded, Truncated: s.state == stateTruncated}, nil
}

func exploreFrom(grid *Grid, start Coord, options []Option) (*search, error) {
	searchOptions := applyOptions(options)
	if grid == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrInvalidEndpoint)
	}
	if err := grid.checkEndpoint("start", start); err != nil {
		return nil, err
	}
	s := newUniformSearch(grid, start, searchOptions.MaxExpansions)
	state := s.run()
	searchOptions.Logger.WithFields(logrus.Fields{
		"start":     start.String(),
		"reached":   len(s.closed),
		"truncated": state == stateTruncated,
	}).Debug("reachability expansion finished")
	return s, nil
}
