package obstacles

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/pdrpinto/gridastar"
)

// Rasterizer maps grid cells onto the plane. Cell (row, col) covers the
// square starting at Origin + (col, row)·CellSize, so rows grow along +Y.
type Rasterizer struct {
	Origin   orb.Point
	CellSize float64
}

func (r Rasterizer) cellSize() float64 {
	if r.CellSize <= 0 {
		return 1
	}
	return r.CellSize
}

// CellCenter returns the plane position of the center of c.
func (r Rasterizer) CellCenter(c gridastar.Coord) orb.Point {
	size := r.cellSize()
	return orb.Point{
		r.Origin[0] + (float64(c.Col)+0.5)*size,
		r.Origin[1] + (float64(c.Row)+0.5)*size,
	}
}

// CellOf returns the cell containing p. The result may be out of bounds.
func (r Rasterizer) CellOf(p orb.Point) gridastar.Coord {
	size := r.cellSize()
	return gridastar.Coord{
		Row: int(math.Floor((p[1] - r.Origin[1]) / size)),
		Col: int(math.Floor((p[0] - r.Origin[0]) / size)),
	}
}

// Blocked returns, in row-major order, every cell of a width×height grid
// whose center lies inside one of the polygons.
func (r Rasterizer) Blocked(width, height int, polygons []orb.Polygon) []gridastar.Coord {
	idx := NewIndex(polygons)
	if idx.Len() == 0 {
		return nil
	}
	var blocked []gridastar.Coord
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			c := gridastar.Coord{Row: row, Col: col}
			if idx.Contains(r.CellCenter(c)) {
				blocked = append(blocked, c)
			}
		}
	}
	return blocked
}

// BuildGrid rasterizes the polygons and builds the grid from the result.
func (r Rasterizer) BuildGrid(width, height int, polygons []orb.Polygon) (*gridastar.Grid, error) {
	return gridastar.NewGrid(width, height, r.Blocked(width, height, polygons))
}
