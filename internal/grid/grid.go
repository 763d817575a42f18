// Package grid holds the rectangular cell model shared by the grid puzzles.
package grid

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRagged is returned when rows of a layout differ in length.
var ErrRagged = errors.New("grid: rows differ in length")

// Cell is the content label of one grid cell.
type Cell uint8

const (
	Empty Cell = iota
	Wall
	BlockSingle
	BlockLeft
	BlockRight
)

// IsBlock reports whether c is any pushable block half.
func (c Cell) IsBlock() bool {
	return c == BlockSingle || c == BlockLeft || c == BlockRight
}

// Symbol is the character a cell renders as.
func (c Cell) Symbol() byte {
	switch c {
	case Wall:
		return '#'
	case BlockSingle:
		return 'O'
	case BlockLeft:
		return '['
	case BlockRight:
		return ']'
	}
	return '.'
}

func (c Cell) String() string {
	return string(c.Symbol())
}

// Grid is a fixed-size array of cells. Dimensions never change after New.
type Grid struct {
	cells [][]Cell
	cols  int
}

func New(rows, cols int) *Grid {
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
	}
	return &Grid{cells: cells, cols: cols}
}

// FromRows wraps already-built rows. All rows must share one length.
func FromRows(rows [][]Cell) (*Grid, error) {
	g := &Grid{cells: rows}
	for r, row := range rows {
		if r == 0 {
			g.cols = len(row)
			continue
		}
		if len(row) != g.cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRagged, r, len(row), g.cols)
		}
	}
	return g, nil
}

func (g *Grid) Rows() int { return len(g.cells) }
func (g *Grid) Cols() int { return g.cols }

func (g *Grid) InBounds(p Point) bool {
	return p.Row >= 0 && p.Row < len(g.cells) && p.Col >= 0 && p.Col < g.cols
}

// At returns the cell at p. Points outside the grid read as Wall.
func (g *Grid) At(p Point) Cell {
	if !g.InBounds(p) {
		return Wall
	}
	return g.cells[p.Row][p.Col]
}

func (g *Grid) Set(p Point, c Cell) {
	g.cells[p.Row][p.Col] = c
}

// IsFree reports whether p is inside the grid and not a wall.
func (g *Grid) IsFree(p Point) bool {
	return g.InBounds(p) && g.cells[p.Row][p.Col] != Wall
}

// Neighbors returns the in-bounds non-wall points next to p, in Directions order.
func (g *Grid) Neighbors(p Point) []Point {
	out := make([]Point, 0, 4)
	for _, d := range Directions {
		n := p.Add(d.Delta())
		if g.IsFree(n) {
			out = append(out, n)
		}
	}
	return out
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(p Point, c Cell)) {
	for r, row := range g.cells {
		for c, cell := range row {
			fn(Point{Row: r, Col: c}, cell)
		}
	}
}

// Count returns how many cells hold c.
func (g *Grid) Count(c Cell) int {
	n := 0
	g.Each(func(_ Point, cell Cell) {
		if cell == c {
			n++
		}
	})
	return n
}

func (g *Grid) Clone() *Grid {
	cells := make([][]Cell, len(g.cells))
	for r, row := range g.cells {
		cells[r] = append([]Cell(nil), row...)
	}
	return &Grid{cells: cells, cols: g.cols}
}

func (g *Grid) Equal(o *Grid) bool {
	if len(g.cells) != len(o.cells) || g.cols != o.cols {
		return false
	}
	for r, row := range g.cells {
		for c, cell := range row {
			if o.cells[r][c] != cell {
				return false
			}
		}
	}
	return true
}

// Render draws the grid one line per row. overlay may replace the symbol of
// any cell; a nil overlay draws plain cell symbols.
func Render(g *Grid, overlay func(p Point, c Cell) (byte, bool)) string {
	var b strings.Builder
	b.Grow(len(g.cells) * (g.cols + 1))
	for r, row := range g.cells {
		for c, cell := range row {
			sym := cell.Symbol()
			if overlay != nil {
				if s, ok := overlay(Point{Row: r, Col: c}, cell); ok {
					sym = s
				}
			}
			b.WriteByte(sym)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
