package gridastar

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReachableSet(t *testing.T) {
	// The right column is walled off from the rest.
	g := mustGrid(t, 4, 3, Coord{0, 2}, Coord{1, 2}, Coord{2, 2})

	paths, err := ReachableSet(g, Coord{0, 0})
	require.NoError(t, err)
	assert.Len(t, paths, 6)
	assert.Equal(t, []Coord{{0, 0}}, paths[Coord{0, 0}])
	assert.NotContains(t, paths, Coord{0, 3})

	for goal, path := range paths {
		cost := 0.0
		for i := 1; i < len(path); i++ {
			cost += Distance(path[i-1], path[i])
		}
		requireValidPath(t, g, Result{Path: path, Cost: cost, Found: true}, Coord{0, 0}, goal)
	}
}

func TestDistancesMatchBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 30; i++ {
		g := randomGrid(t, rng, 3+rng.Intn(5), 3+rng.Intn(5), 0.3)
		start, ok := randomFreeCell(rng, g)
		if !ok {
			continue
		}
		want := bruteForceCosts(g, start)
		got, err := Distances(g, start)
		require.NoError(t, err)
		require.Len(t, got, len(want))
		for c, cost := range want {
			assert.InDelta(t, cost, got[c], 1e-9, "grid:\n%sfrom %v to %v", g, start, c)
		}

		paths, err := ReachableSet(g, start)
		require.NoError(t, err)
		for c, path := range paths {
			total := 0.0
			for i := 1; i < len(path); i++ {
				total += Distance(path[i-1], path[i])
			}
			assert.InDelta(t, want[c], total, 1e-9)
		}
	}
}

func TestReachableSetMaxExpansions(t *testing.T) {
	g := mustGrid(t, 10, 10)
	paths, err := ReachableSet(g, Coord{5, 5}, WithMaxExpansions(9))
	require.NoError(t, err)
	assert.Len(t, paths, 9)
	// The first nine cells finalized are the start and its eight neighbors.
	for _, n := range g.Neighbors(Coord{5, 5}) {
		assert.Contains(t, paths, n)
	}
}

func TestExploreTruncation(t *testing.T) {
	g := mustGrid(t, 3, 3)
	tests := []struct {
		name          string
		maxExpansions int
		wantCells     int
		wantTruncated bool
	}{
		{"no cap", 0, 9, false},
		{"cap below cell count", 4, 4, true},
		{"cap equals cell count", 9, 9, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reach, err := Explore(g, Coord{0, 0}, WithMaxExpansions(tt.maxExpansions))
			require.NoError(t, err)
			assert.Len(t, reach.Costs, tt.wantCells)
			assert.Equal(t, tt.wantCells, reach.Expanded)
			assert.Equal(t, tt.wantTruncated, reach.Truncated)
		})
	}
}

func TestReachableSetInvalidStart(t *testing.T) {
	g := mustGrid(t, 3, 3, Coord{1, 1})
	_, err := ReachableSet(g, Coord{1, 1})
	assert.ErrorIs(t, err, ErrInvalidEndpoint)
	_, err = Distances(g, Coord{3, 0})
	assert.ErrorIs(t, err, ErrInvalidEndpoint)
	_, err = Explore(nil, Coord{0, 0})
	assert.ErrorIs(t, err, ErrInvalidEndpoint)
}
