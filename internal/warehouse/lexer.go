package warehouse

import (
	"fmt"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"gridworks/internal/grid"
)

// MoveToken is one arrow of the move list with its source location.
type MoveToken struct {
	Dir    grid.Direction
	Line   int
	Column int
}

func newMoveLexer() (*lexmachine.Lexer, error) {
	lx := lexmachine.NewLexer()
	lx.Add([]byte(`[ \t\r\n]+`), skip)
	lx.Add([]byte(`\^`), moveAction(grid.Up))
	lx.Add([]byte(`v`), moveAction(grid.Down))
	lx.Add([]byte(`<`), moveAction(grid.Left))
	lx.Add([]byte(`>`), moveAction(grid.Right))
	if err := lx.Compile(); err != nil {
		return nil, err
	}
	return lx, nil
}

// LexMoves turns arrow text into directions. Whitespace between arrows is
// ignored; any other character is an error.
func LexMoves(text string) ([]MoveToken, error) {
	lx, err := newMoveLexer()
	if err != nil {
		return nil, err
	}
	scanner, err := lx.Scanner([]byte(text))
	if err != nil {
		return nil, err
	}

	var moves []MoveToken
	for tok, err, eof := scanner.Next(); !eof; tok, err, eof = scanner.Next() {
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMove, err)
		}
		moves = append(moves, tok.(MoveToken))
	}
	return moves, nil
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func moveAction(d grid.Direction) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return MoveToken{
			Dir:    d,
			Line:   m.StartLine,
			Column: m.StartColumn,
		}, nil
	}
}
