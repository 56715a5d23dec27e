package gridastar

import (
	"fmt"
	"math"
	"strings"
)

// Grid is a fixed-size rectangle of free and blocked cells. It is
// read-only after NewGrid returns and safe for concurrent use.
type Grid struct {
	width   int
	height  int
	blocked []bool
}

// NewGrid builds a width×height grid with the given cells blocked.
func NewGrid(width, height int, blocked []Coord) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	if height > math.MaxInt/width {
		return nil, fmt.Errorf("%w: %dx%d overflows", ErrInvalidDimension, width, height)
	}
	g := &Grid{
		width:   width,
		height:  height,
		blocked: make([]bool, width*height),
	}
	for _, c := range blocked {
		if !g.InBounds(c) {
			return nil, fmt.Errorf("%w: blocked cell %v in %dx%d grid", ErrOutOfBounds, c, width, height)
		}
		g.blocked[g.index(c)] = true
	}
	return g, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Len returns the number of cells in the grid.
func (g *Grid) Len() int { return g.width * g.height }

func (g *Grid) index(c Coord) int { return c.Row*g.width + c.Col }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.height && c.Col >= 0 && c.Col < g.width
}

// IsBlocked reports whether c is blocked. Out-of-bounds cells count as blocked.
func (g *Grid) IsBlocked(c Coord) bool {
	if !g.InBounds(c) {
		return true
	}
	return g.blocked[g.index(c)]
}

// Neighbors returns the free in-bounds cells around c, clockwise from north.
// Diagonal moves are allowed even when both orthogonal cells are blocked.
func (g *Grid) Neighbors(c Coord) []Coord {
	out := make([]Coord, 0, len(directions))
	for _, d := range directions {
		n := c.Add(d)
		if !g.IsBlocked(n) {
			out = append(out, n)
		}
	}
	return out
}

// BlockedCells returns the blocked cells in row-major order.
func (g *Grid) BlockedCells() []Coord {
	var out []Coord
	for i, b := range g.blocked {
		if b {
			out = append(out, Coord{Row: i / g.width, Col: i % g.width})
		}
	}
	return out
}

// String renders the grid one row per line, '#' for blocked and '.' for free.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			if g.blocked[r*g.width+c] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (g *Grid) checkEndpoint(name string, c Coord) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %s %v outside %dx%d grid", ErrInvalidEndpoint, name, c, g.width, g.height)
	}
	if g.IsBlocked(c) {
		return fmt.Errorf("%w: %s %v is blocked", ErrInvalidEndpoint, name, c)
	}
	return nil
}
