// Package gridastar provides an A* shortest-path engine over rectangular
// grids with eight-directional movement.
//
// It exposes these entry points:
//
//   - FindPath: run the search to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//   - ReachableSet and Distances: uniform-cost expansion from a start cell with no goal.
//   - FindPaths: run many independent searches on one shared Grid with a worker pool.
//
// A Grid is immutable once built and may be shared between goroutines.
// Every search call owns its frontier and closed set, so nothing leaks
// between calls.
package gridastar
