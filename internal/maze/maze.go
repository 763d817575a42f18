// Package maze finds the cheapest route through a walled grid when turning
// costs far more than stepping straight.
package maze

import (
	"errors"
	"fmt"
	"strings"

	"gridworks/internal/grid"
)

var (
	ErrInvalidCell     = errors.New("maze: invalid layout character")
	ErrMissingEndpoint = errors.New("maze: layout needs exactly one S and one E")
	ErrNoPath          = errors.New("maze: no path found")
)

type Maze struct {
	Grid  *grid.Grid
	Start grid.Point
	End   grid.Point
}

// Parse reads a layout of '#', '.', 'S' and 'E'. Trailing blank lines are
// ignored.
func Parse(lines []string) (*Maze, error) {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	m := &Maze{}
	var starts, ends int
	rows := make([][]grid.Cell, len(lines))
	for r, line := range lines {
		rows[r] = make([]grid.Cell, len(line))
		for c := 0; c < len(line); c++ {
			switch line[c] {
			case '#':
				rows[r][c] = grid.Wall
			case '.':
			case 'S':
				starts++
				m.Start = grid.Point{Row: r, Col: c}
			case 'E':
				ends++
				m.End = grid.Point{Row: r, Col: c}
			default:
				return nil, fmt.Errorf("row %d, column %d: %w: %q", r, c, ErrInvalidCell, line[c])
			}
		}
	}
	if starts != 1 || ends != 1 {
		return nil, fmt.Errorf("%w: found %d S and %d E", ErrMissingEndpoint, starts, ends)
	}

	g, err := grid.FromRows(rows)
	if err != nil {
		return nil, err
	}
	m.Grid = g
	return m, nil
}

// Render draws the maze with S and E in place. Cells on path, if given, are
// drawn as 'o'.
func (m *Maze) Render(path *Result) string {
	var onPath map[grid.Point]bool
	if path != nil {
		onPath = path.Mask()
	}
	return grid.Render(m.Grid, func(p grid.Point, _ grid.Cell) (byte, bool) {
		switch {
		case p == m.Start:
			return 'S', true
		case p == m.End:
			return 'E', true
		case onPath[p]:
			return 'o', true
		}
		return 0, false
	})
}
