package gridastar

import (
	"container/heap"

	"github.com/pdrpinto/gridastar/internal/trace"
)

type searchState int

const (
	stateRunning searchState = iota
	stateFound
	stateExhausted
	stateTruncated
)

// search holds the frontier and closed set of a single run. FindPath,
// Stepper and ReachableSet all drive the same loop through step.
type search struct {
	grid          *Grid
	goal          Coord
	hasGoal       bool
	heuristic     func(Coord) float64
	maxExpansions int

	open     priorityQueue
	openSet  map[Coord]*node
	closed   map[Coord]*node
	seq      int
	expanded int
	state    searchState
	last     *node
}

// newGoalSearch orders the frontier by g plus the Euclidean distance to goal.
func newGoalSearch(grid *Grid, start, goal Coord, maxExpansions int) *search {
	s := newSearch(grid, start, func(c Coord) float64 { return Distance(c, goal) }, maxExpansions)
	s.goal, s.hasGoal = goal, true
	return s
}

// newUniformSearch expands by g alone and never stops early.
func newUniformSearch(grid *Grid, start Coord, maxExpansions int) *search {
	return newSearch(grid, start, func(Coord) float64 { return 0 }, maxExpansions)
}

func newSearch(grid *Grid, start Coord, heuristic func(Coord) float64, maxExpansions int) *search {
	s := &search{
		grid:          grid,
		heuristic:     heuristic,
		maxExpansions: maxExpansions,
		open:          make(priorityQueue, 0),
		openSet:       make(map[Coord]*node),
		closed:        make(map[Coord]*node),
	}
	heap.Init(&s.open)
	h := heuristic(start)
	s.push(&node{coord: start, g: 0, h: h, f: h})
	return s
}

func (s *search) push(n *node) {
	n.seq = s.seq
	s.seq++
	heap.Push(&s.open, n)
	s.openSet[n.coord] = n
}

// step pops and expands the lowest-cost open node. It returns the popped
// node (nil once the search has stopped) and the resulting state.
func (s *search) step() (*node, searchState) {
	if s.state != stateRunning {
		return nil, s.state
	}
	if s.open.Len() == 0 {
		s.state = stateExhausted
		return nil, s.state
	}
	if s.maxExpansions > 0 && s.expanded >= s.maxExpansions {
		s.state = stateTruncated
		return nil, s.state
	}

	current := heap.Pop(&s.open).(*node)
	delete(s.openSet, current.coord)
	s.expanded++

	if s.hasGoal && current.coord == s.goal {
		s.state = stateFound
		s.last = current
		return current, s.state
	}
	s.closed[current.coord] = current

	for _, neighbor := range s.grid.Neighbors(current.coord) {
		if _, done := s.closed[neighbor]; done {
			continue
		}
		tentativeG := current.g + Distance(current.coord, neighbor)
		existing, inOpen := s.openSet[neighbor]
		if !inOpen {
			h := s.heuristic(neighbor)
			s.push(&node{coord: neighbor, g: tentativeG, h: h, f: tentativeG + h, parent: current})
		} else if tentativeG < existing.g {
			existing.g = tentativeG
			existing.f = tentativeG + existing.h
			existing.parent = current
			heap.Fix(&s.open, existing.index)
		}
	}
	return current, stateRunning
}

// run steps until the search stops.
func (s *search) run() searchState {
	for {
		if _, state := s.step(); state != stateRunning {
			return state
		}
	}
}

// pathTo rebuilds the start-to-n path bounded by the grid size.
func (s *search) pathTo(n *node) ([]Coord, error) {
	nodes, err := trace.Path(n, func(n *node) (*node, bool) {
		return n.parent, n.parent != nil
	}, s.grid.Len())
	if err != nil {
		return nil, err
	}
	path := make([]Coord, len(nodes))
	for i, n := range nodes {
		path[i] = n.coord
	}
	return path, nil
}
