package gridastar

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Map is a grid read from an ASCII map together with the optional
// start and goal markers found in it.
type Map struct {
	Grid     *Grid
	Start    Coord
	Goal     Coord
	HasStart bool
	HasGoal  bool
}

// MaxMapLineBytes bounds the length of one ASCII map row.
const MaxMapLineBytes = 1 << 20

// ParseGrid reads an ASCII map, one row per line. '.' and ' ' are free,
// '#', 'X' and 'x' are blocked, 'S' marks the start and 'G' the goal.
// Empty lines are skipped; a line of spaces is a row of free cells.
func ParseGrid(r io.Reader) (*Map, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), MaxMapLineBytes)
	scanner.Split(bufio.ScanLines)

	m := &Map{}
	var blocked []Coord
	width, row := 0, 0
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		cols := []rune(line)
		if row == 0 {
			width = len(cols)
		} else if len(cols) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBadMap, row, len(cols), width)
		}
		for col, ch := range cols {
			c := Coord{Row: row, Col: col}
			switch ch {
			case '.', ' ':
			case '#', 'X', 'x':
				blocked = append(blocked, c)
			case 'S':
				if m.HasStart {
					return nil, fmt.Errorf("%w: second start at %v", ErrBadMap, c)
				}
				m.Start, m.HasStart = c, true
			case 'G':
				if m.HasGoal {
					return nil, fmt.Errorf("%w: second goal at %v", ErrBadMap, c)
				}
				m.Goal, m.HasGoal = c, true
			default:
				return nil, fmt.Errorf("%w: unexpected %q at %v", ErrBadMap, ch, c)
			}
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMap, err)
	}

	grid, err := NewGrid(width, row, blocked)
	if err != nil {
		return nil, err
	}
	m.Grid = grid
	return m, nil
}
