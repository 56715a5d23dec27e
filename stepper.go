package gridastar

import "fmt"

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot struct {
	Current   Coord          `json:"current"`
	Open      map[Coord]bool `json:"-"`
	Closed    map[Coord]bool `json:"-"`
	Done      bool           `json:"done"`
	Found     bool           `json:"found"`
	Truncated bool           `json:"truncated,omitempty"`
	Path      []Coord        `json:"path,omitempty"`
	Cost      float64        `json:"cost"`
	StepIndex int            `json:"step"`
}

// OpenCells returns the open frontier as a slice.
func (snapshot StepSnapshot) OpenCells() []Coord { return keys(snapshot.Open) }

// ClosedCells returns the closed set as a slice.
func (snapshot StepSnapshot) ClosedCells() []Coord { return keys(snapshot.Closed) }

// Stepper runs the FindPath loop one expansion per Step call. It is not
// safe for concurrent use.
type Stepper struct {
	search    *search
	stepCount int
	final     *StepSnapshot
	err       error
}

// NewStepper validates the endpoints and prepares a search from start to goal.
// Only WithMaxExpansions is honored among the options.
func NewStepper(grid *Grid, start, goal Coord, options ...Option) (*Stepper, error) {
	opts := applyOptions(options)
	if grid == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrInvalidEndpoint)
	}
	if err := grid.checkEndpoint("start", start); err != nil {
		return nil, err
	}
	if err := grid.checkEndpoint("goal", goal); err != nil {
		return nil, err
	}
	return &Stepper{search: newGoalSearch(grid, start, goal, opts.MaxExpansions)}, nil
}

// Step advances the search by one node expansion and returns a snapshot.
// Once the search is done every further call returns the final snapshot.
func (s *Stepper) Step() (StepSnapshot, error) {
	if s.final != nil {
		return *s.final, s.err
	}

	current, state := s.search.step()
	if current != nil {
		s.stepCount++
	}
	snapshot := StepSnapshot{
		Open:      s.openCopy(),
		Closed:    s.closedCopy(),
		StepIndex: s.stepCount,
	}
	if current != nil {
		snapshot.Current = current.coord
	}

	switch state {
	case stateRunning:
		return snapshot, nil
	case stateFound:
		result, err := s.search.result(state)
		if err != nil {
			s.err = err
		}
		snapshot.Found = result.Found
		snapshot.Path = result.Path
		snapshot.Cost = result.Cost
	case stateTruncated:
		snapshot.Truncated = true
	}
	snapshot.Done = true
	s.final = &snapshot
	return snapshot, s.err
}

// Done reports whether the search has terminated.
func (s *Stepper) Done() bool { return s.final != nil }

func (s *Stepper) openCopy() map[Coord]bool {
	m := make(map[Coord]bool, len(s.search.openSet))
	for k := range s.search.openSet {
		m[k] = true
	}
	return m
}

func (s *Stepper) closedCopy() map[Coord]bool {
	m := make(map[Coord]bool, len(s.search.closed))
	for k := range s.search.closed {
		m[k] = true
	}
	return m
}

func keys(m map[Coord]bool) []Coord {
	out := make([]Coord, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	return out
}
