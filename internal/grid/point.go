package grid

import "fmt"

// Point is a (row, column) position. Rows grow downward.
type Point struct {
	Row, Col int
}

func (p Point) Add(q Point) Point {
	return Point{Row: p.Row + q.Row, Col: p.Col + q.Col}
}

func (p Point) Sub(q Point) Point {
	return Point{Row: p.Row - q.Row, Col: p.Col - q.Col}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Direction is one of the four unit moves.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists the unit moves in neighbor order.
var Directions = [4]Direction{Up, Down, Left, Right}

var dirVectors = map[Direction]Point{
	Up:    {Row: -1, Col: 0},
	Down:  {Row: 1, Col: 0},
	Left:  {Row: 0, Col: -1},
	Right: {Row: 0, Col: 1},
}

// Delta returns the unit offset of d.
func (d Direction) Delta() Point {
	return dirVectors[d]
}

// Horizontal reports whether d moves along a row.
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// DirectionOf maps a unit offset back to its direction.
func DirectionOf(delta Point) (Direction, bool) {
	for _, d := range Directions {
		if dirVectors[d] == delta {
			return d, true
		}
	}
	return 0, false
}
