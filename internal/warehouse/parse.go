package warehouse

import (
	"fmt"
	"strings"

	"gridworks/internal/grid"
)

// Parse reads a room layout followed by a move list. Layout rows are the
// leading lines that start with '#'; everything after them is arrows.
// Layout characters are '#', '.', 'O', '@' and the wide halves '[' and ']',
// so a rendered room of either kind parses back unchanged.
func Parse(lines []string) (*Warehouse, error) {
	return parse(lines, false)
}

// ParseWide reads the same input as Parse but doubles every column: '#'
// becomes two walls, 'O' a wide block and the robot lands on the left of its
// two cells.
func ParseWide(lines []string) (*Warehouse, error) {
	return parse(lines, true)
}

func parse(lines []string, widen bool) (*Warehouse, error) {
	n := 0
	for n < len(lines) && strings.HasPrefix(lines[n], "#") {
		n++
	}
	if n == 0 {
		return nil, ErrNoLayout
	}

	rows := make([][]grid.Cell, n)
	var robot grid.Point
	robots := 0
	hasWide := false
	for r, line := range lines[:n] {
		for c := 0; c < len(line); c++ {
			cells, err := decodeCell(line[c], widen)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %d: %w", r, c, err)
			}
			if line[c] == '@' {
				robots++
				robot = grid.Point{Row: r, Col: len(rows[r])}
			}
			if line[c] == '[' || line[c] == ']' || (widen && line[c] == 'O') {
				hasWide = true
			}
			rows[r] = append(rows[r], cells...)
		}
	}
	if robots != 1 {
		return nil, fmt.Errorf("%w, found %d", ErrRobotCount, robots)
	}

	g, err := grid.FromRows(rows)
	if err != nil {
		return nil, err
	}
	if err := Validate(g); err != nil {
		return nil, err
	}

	tokens, err := LexMoves(strings.Join(lines[n:], "\n"))
	if err != nil {
		return nil, err
	}
	moves := make([]grid.Direction, len(tokens))
	for i, tok := range tokens {
		moves[i] = tok.Dir
	}

	return &Warehouse{
		Grid:  g,
		Robot: robot,
		Moves: moves,
		wide:  widen || hasWide,
	}, nil
}

func decodeCell(ch byte, widen bool) ([]grid.Cell, error) {
	if widen {
		switch ch {
		case '#':
			return []grid.Cell{grid.Wall, grid.Wall}, nil
		case 'O':
			return []grid.Cell{grid.BlockLeft, grid.BlockRight}, nil
		case '.', '@':
			return []grid.Cell{grid.Empty, grid.Empty}, nil
		}
		return nil, fmt.Errorf("%w: %q", ErrInvalidCell, ch)
	}
	switch ch {
	case '#':
		return []grid.Cell{grid.Wall}, nil
	case 'O':
		return []grid.Cell{grid.BlockSingle}, nil
	case '[':
		return []grid.Cell{grid.BlockLeft}, nil
	case ']':
		return []grid.Cell{grid.BlockRight}, nil
	case '.', '@':
		return []grid.Cell{grid.Empty}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidCell, ch)
}
