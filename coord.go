package gridastar

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Coord identifies a grid cell by row and column.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// Point maps the cell onto the plane with X as the column and Y as the row.
func (c Coord) Point() orb.Point {
	return orb.Point{float64(c.Col), float64(c.Row)}
}

// Add returns the coordinate shifted by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

// directions lists the eight neighbor offsets clockwise from north.
var directions = [8]Coord{
	{Row: -1, Col: 0},  // N
	{Row: -1, Col: 1},  // NE
	{Row: 0, Col: 1},   // E
	{Row: 1, Col: 1},   // SE
	{Row: 1, Col: 0},   // S
	{Row: 1, Col: -1},  // SW
	{Row: 0, Col: -1},  // W
	{Row: -1, Col: -1}, // NW
}

// Distance returns the Euclidean distance between two cells. For adjacent
// cells this is 1 for an orthogonal step and √2 for a diagonal one.
func Distance(a, b Coord) float64 {
	return planar.Distance(a.Point(), b.Point())
}

// Adjacent reports whether b is one of the eight cells around a.
func Adjacent(a, b Coord) bool {
	dr, dc := abs(a.Row-b.Row), abs(a.Col-b.Col)
	return dr <= 1 && dc <= 1 && (dr != 0 || dc != 0)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
