// Package robots tracks robots drifting across a room whose edges wrap.
package robots

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"gridworks/internal/grid"
)

var ErrMalformedLine = errors.New("robots: malformed robot line")

// Robot has a starting position (X is the column, Y the row) and a velocity
// in cells per second.
type Robot struct {
	X  int `parser:"'p' '=' @Int ','"`
	Y  int `parser:"@Int"`
	VX int `parser:"'v' '=' @Int ','"`
	VY int `parser:"@Int"`
}

var robotParser = participle.MustBuild[Robot](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Int", Pattern: `-?\d+`},
		{Name: "Ident", Pattern: `[a-z]+`},
		{Name: "Punct", Pattern: `[=,]`},
		{Name: "Whitespace", Pattern: `[ \t]+`},
	})),
	participle.Elide("Whitespace"),
)

// Parse reads one robot per non-blank line.
func Parse(lines []string) ([]Robot, error) {
	var robots []Robot
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		r, err := robotParser.ParseString("", line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedLine, i+1, err)
		}
		robots = append(robots, *r)
	}
	return robots, nil
}

// After is the robot's position once seconds have passed in a width x height
// room.
func (r Robot) After(seconds, width, height int) grid.Point {
	return grid.Point{
		Row: wrap(r.Y+r.VY*seconds, height),
		Col: wrap(r.X+r.VX*seconds, width),
	}
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Occupancy counts robots per cell after seconds, indexed [row][col].
func Occupancy(robots []Robot, width, height, seconds int) [][]int {
	counts := make([][]int, height)
	for i := range counts {
		counts[i] = make([]int, width)
	}
	for _, r := range robots {
		p := r.After(seconds, width, height)
		counts[p.Row][p.Col]++
	}
	return counts
}

// SafetyFactor multiplies the robot counts of the four quadrants after
// seconds. Robots on the middle row or column belong to no quadrant.
func SafetyFactor(robots []Robot, width, height, seconds int) int {
	var quadrants [4]int
	midCol, midRow := width/2, height/2
	for _, r := range robots {
		p := r.After(seconds, width, height)
		if p.Col == midCol || p.Row == midRow {
			continue
		}
		q := 0
		if p.Col > midCol {
			q++
		}
		if p.Row > midRow {
			q += 2
		}
		quadrants[q]++
	}
	return quadrants[0] * quadrants[1] * quadrants[2] * quadrants[3]
}

// RenderOccupancy draws counts with '.' for empty cells and '+' above nine.
func RenderOccupancy(counts [][]int) string {
	var b strings.Builder
	for _, row := range counts {
		for _, n := range row {
			switch {
			case n == 0:
				b.WriteByte('.')
			case n > 9:
				b.WriteByte('+')
			default:
				b.WriteByte(byte('0' + n))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
