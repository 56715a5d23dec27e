package gridastar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepperMatchesFindPath(t *testing.T) {
	g := mustGrid(t, 7, 6, Coord{2, 1}, Coord{2, 2}, Coord{2, 3}, Coord{2, 4}, Coord{3, 4})
	start, goal := Coord{0, 0}, Coord{5, 5}

	want, err := FindPath(g, start, goal)
	require.NoError(t, err)

	stepper, err := NewStepper(g, start, goal)
	require.NoError(t, err)

	var snapshot StepSnapshot
	for i := 0; i < g.Len()+1 && !stepper.Done(); i++ {
		snapshot, err = stepper.Step()
		require.NoError(t, err)
		if !snapshot.Done {
			assert.NotContains(t, snapshot.Open, snapshot.Current)
			assert.True(t, snapshot.Closed[snapshot.Current])
		}
	}
	require.True(t, snapshot.Done)
	assert.True(t, snapshot.Found)
	assert.Equal(t, want.Path, snapshot.Path)
	assert.InDelta(t, want.Cost, snapshot.Cost, 1e-12)
	assert.Equal(t, want.Expanded, snapshot.StepIndex)
	assert.Equal(t, goal, snapshot.Current)

	again, err := stepper.Step()
	require.NoError(t, err)
	assert.Equal(t, snapshot, again)
}

func TestStepperNoPath(t *testing.T) {
	g := mustGrid(t, 3, 3, Coord{0, 1}, Coord{1, 1}, Coord{1, 0})
	stepper, err := NewStepper(g, Coord{0, 0}, Coord{2, 2})
	require.NoError(t, err)

	first, err := stepper.Step()
	require.NoError(t, err)
	assert.False(t, first.Done)
	assert.Equal(t, Coord{0, 0}, first.Current)
	assert.Empty(t, first.OpenCells())
	assert.Equal(t, []Coord{{0, 0}}, first.ClosedCells())

	last, err := stepper.Step()
	require.NoError(t, err)
	assert.True(t, last.Done)
	assert.False(t, last.Found)
	assert.Equal(t, 1, last.StepIndex)
}

func TestStepperMaxExpansions(t *testing.T) {
	g := mustGrid(t, 10, 10)
	stepper, err := NewStepper(g, Coord{0, 0}, Coord{9, 9}, WithMaxExpansions(2))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		snapshot, err := stepper.Step()
		require.NoError(t, err)
		assert.False(t, snapshot.Done)
	}
	snapshot, err := stepper.Step()
	require.NoError(t, err)
	assert.True(t, snapshot.Done)
	assert.True(t, snapshot.Truncated)
	assert.False(t, snapshot.Found)
}

func TestNewStepperInvalidEndpoint(t *testing.T) {
	g := mustGrid(t, 3, 3, Coord{2, 2})
	_, err := NewStepper(g, Coord{0, 0}, Coord{2, 2})
	assert.ErrorIs(t, err, ErrInvalidEndpoint)
}
