package gridastar

import (
	"fmt"
	"io"
	"runtime"

	"github.com/sirupsen/logrus"
)

// Result contains the outcome of a search.
type Result struct {
	Path      []Coord `json:"path,omitempty"`
	Cost      float64 `json:"cost"`
	Expanded  int     `json:"expanded"`
	Found     bool    `json:"found"`
	Truncated bool    `json:"truncated,omitempty"`
}

// Options defines parameters for the search.
type Options struct {
	// MaxExpansions caps the number of expanded nodes; zero means no cap.
	MaxExpansions int
	// NumberOfWorkers is the pool size used by FindPaths.
	NumberOfWorkers int
	// Logger receives one debug entry per finished search. The default
	// discards everything.
	Logger logrus.FieldLogger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithMaxExpansions stops a search after n expansions. The search then
// reports a truncated, not-found Result.
func WithMaxExpansions(n int) Option {
	return func(options *Options) { options.MaxExpansions = n }
}

// WithWorkers specifies how many goroutines FindPaths runs searches on.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithLogger sets the logger that receives one debug entry per finished search.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(options *Options) { options.Logger = logger }
}

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

func applyOptions(options []Option) Options {
	searchOptions := Options{
		NumberOfWorkers: runtime.NumCPU(),
		Logger:          discardLogger,
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = discardLogger
	}
	if searchOptions.NumberOfWorkers < 1 {
		searchOptions.NumberOfWorkers = 1
	}
	return searchOptions
}

// FindPath returns a minimum-cost eight-directional path from start to goal.
// A missing route is reported through Result.Found, not as an error.
func FindPath(grid *Grid, start, goal Coord, options ...Option) (Result, error) {
	searchOptions := applyOptions(options)
	if grid == nil {
		return Result{}, fmt.Errorf("%w: nil grid", ErrInvalidEndpoint)
	}
	if err := grid.checkEndpoint("start", start); err != nil {
		return Result{}, err
	}
	if err := grid.checkEndpoint("goal", goal); err != nil {
		return Result{}, err
	}
	if start == goal {
		return Result{Path: []Coord{start}, Found: true}, nil
	}

	s := newGoalSearch(grid, start, goal, searchOptions.MaxExpansions)
	state := s.run()
	result, err := s.result(state)

	entry := searchOptions.Logger.WithFields(logrus.Fields{
		"start":    start.String(),
		"goal":     goal.String(),
		"expanded": result.Expanded,
		"found":    result.Found,
	})
	switch {
	case err != nil:
		entry.WithError(err).Error("path reconstruction failed")
	case result.Truncated:
		entry.Debug("search stopped at expansion limit")
	default:
		entry.WithField("cost", result.Cost).Debug("search finished")
	}
	return result, err
}

// result converts a stopped search into a Result.
func (s *search) result(state searchState) (Result, error) {
	result := Result{
		Expanded:  s.expanded,
		Truncated: state == stateTruncated,
	}
	if state != stateFound {
		return result, nil
	}
	path, err := s.pathTo(s.last)
	if err != nil {
		return Result{Expanded: s.expanded}, err
	}
	result.Path = path
	result.Cost = s.last.g
	result.Found = true
	return result, nil
}
