package warehouse

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"gridworks/internal/grid"
)

func lines(s string) []string {
	return strings.Split(strings.TrimPrefix(s, "\n"), "\n")
}

func mustParse(t *testing.T, input string, wide bool) *Warehouse {
	t.Helper()
	var (
		w   *Warehouse
		err error
	)
	if wide {
		w, err = ParseWide(lines(input))
	} else {
		w, err = Parse(lines(input))
	}
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return w
}

func TestSmallWarehouse(t *testing.T) {
	w := mustParse(t, `
########
#..O.O.#
##@.O..#
#...O..#
#.#.O..#
#...O..#
#......#
########

<^^>>>vv<v>>v<<`, false)

	if w.Wide() {
		t.Fatalf("single-cell room reported as wide")
	}
	if len(w.Moves) != 15 {
		t.Fatalf("expected 15 moves, got %d", len(w.Moves))
	}
	w.Run()

	want := `########
#....OO#
##.....#
#.....O#
#.#O@..#
#...O..#
#...O..#
########
`
	if got := w.Render(); got != want {
		t.Errorf("final room:\n%s\nwant:\n%s", got, want)
	}
	if got := w.GPSSum(); got != 2028 {
		t.Errorf("GPSSum = %d, want 2028", got)
	}
	if w.Pending() != 0 {
		t.Errorf("expected no pending moves, got %d", w.Pending())
	}
}

func TestWideWarehouse(t *testing.T) {
	w := mustParse(t, `
#######
#...#.#
#.....#
#..OO@#
#..O..#
#.....#
#######

<vv<<^^<<^^`, true)

	if w.Robot != (grid.Point{Row: 3, Col: 10}) {
		t.Fatalf("robot at %v, want (3,10)", w.Robot)
	}
	w.Run()

	want := `##############
##...[].##..##
##...@.[]...##
##....[]....##
##..........##
##..........##
##############
`
	if got := w.Render(); got != want {
		t.Errorf("final room:\n%s\nwant:\n%s", got, want)
	}
	if got := w.GPSSum(); got != 618 {
		t.Errorf("GPSSum = %d, want 618", got)
	}
}

func TestPushUntilWall(t *testing.T) {
	w := mustParse(t, `
#####
#@O.#
#...#
#...#
#####

>>>`, false)

	if moved := w.Run(); moved != 1 {
		t.Fatalf("robot moved %d times, want 1", moved)
	}
	if w.Robot != (grid.Point{Row: 1, Col: 2}) {
		t.Errorf("robot at %v, want (1,2)", w.Robot)
	}
	if w.Grid.At(grid.Point{Row: 1, Col: 3}) != grid.BlockSingle {
		t.Errorf("block did not reach the wall")
	}
}

func TestWidePushHalfBlocked(t *testing.T) {
	tests := []struct {
		name   string
		layout string
	}{
		{"wall over left half", `
######
#.#..#
#.[].#
#..@.#
######`},
		{"wall over right half", `
######
#..#.#
#.[].#
#.@..#
######`},
		{"wall above a stacked block", `
#######
#..#..#
#..[].#
#.[]..#
#..@..#
#######`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := mustParse(t, tt.layout, false)
			if !w.Wide() {
				t.Fatalf("room with [] not detected as wide")
			}
			before := w.Grid.Clone()
			robot := w.Robot
			if w.Step(grid.Up) {
				t.Fatalf("push should have been blocked")
			}
			if !w.Grid.Equal(before) {
				t.Errorf("grid changed:\n%s", w.Render())
			}
			if w.Robot != robot {
				t.Errorf("robot moved to %v", w.Robot)
			}
		})
	}
}

func TestWidePushStack(t *testing.T) {
	w := mustParse(t, `
########
#......#
#......#
#.[][].#
#..[]..#
#...@..#
########`, false)

	if !w.Step(grid.Up) {
		t.Fatalf("push should succeed")
	}
	want := `########
#......#
#.[][].#
#..[]..#
#...@..#
#......#
########
`
	if got := w.Render(); got != want {
		t.Errorf("room:\n%s\nwant:\n%s", got, want)
	}
	if err := Validate(w.Grid); err != nil {
		t.Error(err)
	}
}

func TestLexMoves(t *testing.T) {
	toks, err := LexMoves("<^\n  >v\n")
	if err != nil {
		t.Fatal(err)
	}
	want := []grid.Direction{grid.Left, grid.Up, grid.Right, grid.Down}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tok := range toks {
		if tok.Dir != want[i] {
			t.Errorf("token %d: got %v, want %v", i, tok.Dir, want[i])
		}
	}
	if toks[2].Line <= toks[1].Line {
		t.Errorf("second line token reported on line %d", toks[2].Line)
	}

	if _, err := LexMoves("<<x>"); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("expected ErrInvalidMove, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		wide  bool
		want  error
	}{
		{"no layout", "<<>>", false, ErrNoLayout},
		{"bad cell", "####\n#@x#\n####", false, ErrInvalidCell},
		{"no robot", "####\n#..#\n####", false, ErrRobotCount},
		{"two robots", "####\n#@@#\n####", false, ErrRobotCount},
		{"ragged", "####\n#@#\n####", false, grid.ErrRagged},
		{"lone left half", "#####\n#[.@#\n#####", false, ErrCorruptBlock},
		{"halves reversed", "#####\n#][@#\n#####", false, ErrCorruptBlock},
		{"wide input already doubled", "#####\n#[]@#\n#####", true, ErrInvalidCell},
		{"bad move", "####\n#@.#\n####\n\n<x", false, ErrInvalidMove},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.wide {
				_, err = ParseWide(lines(tt.input))
			} else {
				_, err = Parse(lines(tt.input))
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestDumper(t *testing.T) {
	w := mustParse(t, "#####\n#@O.#\n#####\n\n>", false)
	path := filepath.Join(t.TempDir(), "dump.txt")
	d := &Dumper{Path: path}

	if err := d.Dump(w); err != nil {
		t.Fatal(err)
	}
	w.Run()
	if err := d.Dump(w); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "#####\n#@O.#\n#####\n" + "#####\n#.@O#\n#####\n"
	if string(data) != want {
		t.Errorf("dump:\n%s", data)
	}

	var none *Dumper
	if err := none.Dump(w); err != nil {
		t.Errorf("nil dumper: %v", err)
	}
}

// randomRoom builds a walled room from seed with some inner walls, blocks,
// one robot and a random move list.
func randomRoom(seed int64) []string {
	r := rand.New(rand.NewSource(seed))
	h, w := 4+r.Intn(5), 4+r.Intn(5)
	rows := make([][]byte, h)
	for i := range rows {
		rows[i] = make([]byte, w)
		for j := range rows[i] {
			switch {
			case i == 0 || j == 0 || i == h-1 || j == w-1:
				rows[i][j] = '#'
			case r.Intn(7) == 0:
				rows[i][j] = '#'
			case r.Intn(3) == 0:
				rows[i][j] = 'O'
			default:
				rows[i][j] = '.'
			}
		}
	}
	rows[1+r.Intn(h-2)][1+r.Intn(w-2)] = '@'

	out := make([]string, 0, h+2)
	for _, row := range rows {
		out = append(out, string(row))
	}
	arrows := []byte("^v<>")
	moves := make([]byte, 40)
	for i := range moves {
		moves[i] = arrows[r.Intn(len(arrows))]
	}
	return append(out, "", string(moves))
}

func TestWarehouseProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("wide blocks stay paired", prop.ForAll(
		func(seed int64) bool {
			w, err := ParseWide(randomRoom(seed))
			if err != nil {
				return false
			}
			left := w.Grid.Count(grid.BlockLeft)
			w.Run()
			return Validate(w.Grid) == nil &&
				w.Grid.Count(grid.BlockLeft) == left &&
				w.Grid.Count(grid.BlockRight) == left &&
				w.Grid.At(w.Robot) == grid.Empty
		},
		gen.Int64(),
	))

	properties.Property("single blocks are conserved", prop.ForAll(
		func(seed int64) bool {
			w, err := Parse(randomRoom(seed))
			if err != nil {
				return false
			}
			blocks := w.Grid.Count(grid.BlockSingle)
			walls := w.Grid.Count(grid.Wall)
			w.Run()
			return w.Grid.Count(grid.BlockSingle) == blocks &&
				w.Grid.Count(grid.Wall) == walls &&
				w.Grid.At(w.Robot) == grid.Empty
		},
		gen.Int64(),
	))

	properties.Property("failed push leaves the grid untouched", prop.ForAll(
		func(seed int64, wide bool) bool {
			var (
				w   *Warehouse
				err error
			)
			if wide {
				w, err = ParseWide(randomRoom(seed))
			} else {
				w, err = Parse(randomRoom(seed))
			}
			if err != nil {
				return false
			}
			for _, d := range w.Moves {
				target := w.Robot.Add(d.Delta())
				if !w.Grid.At(target).IsBlock() {
					w.Step(d)
					continue
				}
				before := w.Grid.Clone()
				if !w.TryPush(target, d) {
					if !w.Grid.Equal(before) {
						return false
					}
					continue
				}
				w.Robot = target
			}
			return true
		},
		gen.Int64(),
		gen.Bool(),
	))

	properties.Property("render parses back to the same room", prop.ForAll(
		func(seed int64, wide bool) bool {
			var (
				w   *Warehouse
				err error
			)
			if wide {
				w, err = ParseWide(randomRoom(seed))
			} else {
				w, err = Parse(randomRoom(seed))
			}
			if err != nil {
				return false
			}
			w.Run()
			back, err := Parse(strings.Split(strings.TrimSuffix(w.Render(), "\n"), "\n"))
			if err != nil {
				return false
			}
			return back.Grid.Equal(w.Grid) && back.Robot == w.Robot &&
				back.Wide() == (w.Grid.Count(grid.BlockLeft) > 0)
		},
		gen.Int64(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
