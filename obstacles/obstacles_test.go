package obstacles

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/gridastar"
)

func square(minX, minY, maxX, maxY float64) orb.Ring {
	return orb.Ring{{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY}}
}

func TestIndexContains(t *testing.T) {
	idx := NewIndex([]orb.Polygon{
		{square(0, 0, 2, 2)},
		{square(10, 10, 12, 12)},
		{},
	})
	assert.Equal(t, 2, idx.Len())
	assert.True(t, idx.Contains(orb.Point{1, 1}))
	assert.True(t, idx.Contains(orb.Point{11, 10.5}))
	assert.False(t, idx.Contains(orb.Point{5, 5}))
	assert.False(t, idx.Contains(orb.Point{-1, 1}))
}

func TestRasterizerCells(t *testing.T) {
	r := Rasterizer{Origin: orb.Point{10, 20}, CellSize: 2}
	c := gridastar.Coord{Row: 1, Col: 3}
	assert.Equal(t, orb.Point{17, 23}, r.CellCenter(c))
	assert.Equal(t, c, r.CellOf(r.CellCenter(c)))
	assert.Equal(t, gridastar.Coord{Row: -1, Col: -1}, r.CellOf(orb.Point{9, 19}))

	var unit Rasterizer
	assert.Equal(t, orb.Point{0.5, 0.5}, unit.CellCenter(gridastar.Coord{}))
}

func TestRasterizerBlocked(t *testing.T) {
	tests := []struct {
		name     string
		polygons []orb.Polygon
		want     int
		blocked  []gridastar.Coord
		free     []gridastar.Coord
	}{
		{
			name:     "none",
			polygons: nil,
			want:     0,
		},
		{
			name:     "square",
			polygons: []orb.Polygon{{square(1, 1, 3, 3)}},
			want:     4,
			blocked:  []gridastar.Coord{{Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
			free:     []gridastar.Coord{{Row: 0, Col: 0}, {Row: 3, Col: 3}},
		},
		{
			name:     "square with hole",
			polygons: []orb.Polygon{{square(0, 0, 5, 5), square(1.8, 1.8, 3.2, 3.2)}},
			want:     24,
			free:     []gridastar.Coord{{Row: 2, Col: 2}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rasterizer{}.Blocked(5, 5, tt.polygons)
			assert.Len(t, got, tt.want)
			for _, c := range tt.blocked {
				assert.Contains(t, got, c)
			}
			for _, c := range tt.free {
				assert.NotContains(t, got, c)
			}
		})
	}
}

const wallsGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "wall"},
      "geometry": {"type": "Polygon", "coordinates": [[[2,0],[3,0],[3,4],[2,4],[2,0]]]}
    },
    {
      "type": "Feature",
      "properties": {},
      "geometry": {"type": "MultiPolygon", "coordinates": [
        [[[5,1],[6,1],[6,2],[5,2],[5,1]]],
        [[[5,3],[6,3],[6,4],[5,4],[5,3]]]
      ]}
    },
    {
      "type": "Feature",
      "properties": {},
      "geometry": {"type": "Point", "coordinates": [0, 0]}
    }
  ]
}`

func TestLoadGeoJSON(t *testing.T) {
	polygons, err := LoadGeoJSON(strings.NewReader(wallsGeoJSON))
	require.NoError(t, err)
	assert.Len(t, polygons, 3)

	_, err = LoadGeoJSON(strings.NewReader(`{"type":`))
	assert.Error(t, err)
}

func TestBuildGridAndSearch(t *testing.T) {
	polygons, err := LoadGeoJSON(strings.NewReader(wallsGeoJSON))
	require.NoError(t, err)

	// The wall covers column 2 for rows 0-3, leaving row 4 open.
	g, err := Rasterizer{}.BuildGrid(4, 5, polygons)
	require.NoError(t, err)
	for row := 0; row < 4; row++ {
		assert.True(t, g.IsBlocked(gridastar.Coord{Row: row, Col: 2}))
	}
	assert.False(t, g.IsBlocked(gridastar.Coord{Row: 4, Col: 2}))

	result, err := gridastar.FindPath(g, gridastar.Coord{Row: 0, Col: 0}, gridastar.Coord{Row: 0, Col: 3})
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Contains(t, result.Path, gridastar.Coord{Row: 4, Col: 2})
}

func TestBuildGridInvalidDimension(t *testing.T) {
	_, err := Rasterizer{}.BuildGrid(0, 3, nil)
	assert.ErrorIs(t, err, gridastar.ErrInvalidDimension)
}
