package computer

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Listing is a parsed program file:
//
//	Register A: 729
//	Register B: 0
//	Register C: 0
//
//	Program: 0,1,5,4,3,0
type Listing struct {
	Lines   []*RegisterLine `parser:"@@*"`
	Program []int           `parser:"'Program' ':' @Int (',' @Int)*"`
}

type RegisterLine struct {
	Name  string `parser:"'Register' @Ident ':'"`
	Value int64  `parser:"@Int"`
}

var listingLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `-?\d+`},
	{Name: "Ident", Pattern: `[A-Za-z_]\w*`},
	{Name: "Punct", Pattern: `[:,]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var listingParser = participle.MustBuild[Listing](
	participle.Lexer(listingLexer),
	participle.Elide("Whitespace"),
)

// ParseListing parses the register block and program. Every one of A, B and
// C must be given exactly once.
func ParseListing(lines []string) (*Listing, error) {
	l, err := listingParser.ParseString("listing", strings.Join(lines, "\n"))
	if err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}
	seen := make(map[string]bool)
	var regs Registers
	for _, line := range l.Lines {
		if !regs.Set(line.Name, line.Value) {
			return nil, fmt.Errorf("%w: unknown register %q", ErrMissingRegister, line.Name)
		}
		if seen[line.Name] {
			return nil, fmt.Errorf("%w: register %s given twice", ErrMissingRegister, line.Name)
		}
		seen[line.Name] = true
	}
	for _, name := range []string{"A", "B", "C"} {
		if !seen[name] {
			return nil, fmt.Errorf("%w: %s", ErrMissingRegister, name)
		}
	}
	return l, nil
}

// Registers returns the initial register values.
func (l *Listing) Registers() Registers {
	var regs Registers
	for _, line := range l.Lines {
		regs.Set(line.Name, line.Value)
	}
	return regs
}
