// Package computer runs programs for a three-register machine with eight
// opcodes. A program is a flat list of 3-bit values read in opcode/operand
// pairs.
package computer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidOpcode   = errors.New("computer: invalid opcode")
	ErrInvalidOperand  = errors.New("computer: invalid combo operand")
	ErrMissingRegister = errors.New("computer: missing register")
	ErrStepLimit       = errors.New("computer: step limit reached")
	ErrNoQuine         = errors.New("computer: no register value reproduces the program")
)

const (
	opADV = iota
	opBXL
	opBST
	opJNZ
	opBXC
	opOUT
	opBDV
	opCDV
)

var opNames = [...]string{"adv", "bxl", "bst", "jnz", "bxc", "out", "bdv", "cdv"}

type Machine struct {
	Registers
	IP      int
	Program []int
	Output  []int64

	// Limit caps the number of executed instructions; zero means no cap.
	Limit int
	steps int
}

// New builds a machine at IP 0 from a parsed listing.
func New(l *Listing) *Machine {
	return &Machine{
		Registers: l.Registers(),
		Program:   append([]int(nil), l.Program...),
	}
}

// Halted reports whether the instruction pointer ran past the program.
func (m *Machine) Halted() bool {
	return m.IP < 0 || m.IP >= len(m.Program)
}

// Run steps until the machine halts or an instruction fails.
func (m *Machine) Run() error {
	for !m.Halted() {
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step executes the instruction at IP. An opcode at the last program slot
// reads operand 0.
func (m *Machine) Step() error {
	if m.Halted() {
		return nil
	}
	if m.Limit > 0 && m.steps >= m.Limit {
		return fmt.Errorf("%w: %d", ErrStepLimit, m.Limit)
	}
	m.steps++

	op := m.Program[m.IP]
	operand := 0
	if m.IP+1 < len(m.Program) {
		operand = m.Program[m.IP+1]
	}
	if op < 0 || op >= len(opNames) {
		return fmt.Errorf("%w %d at ip %d", ErrInvalidOpcode, op, m.IP)
	}
	log.Trace().
		Int("ip", m.IP).
		Str("op", opNames[op]).
		Int("operand", operand).
		Int64("a", m.A).
		Int64("b", m.B).
		Int64("c", m.C).
		Msg("exec")

	switch op {
	case opADV, opBDV, opCDV:
		v, err := m.divide(operand)
		if err != nil {
			return err
		}
		switch op {
		case opADV:
			m.A = v
		case opBDV:
			m.B = v
		default:
			m.C = v
		}
	case opBXL:
		m.B ^= int64(operand)
	case opBST:
		v, err := m.combo(operand)
		if err != nil {
			return err
		}
		m.B = v & 7
	case opJNZ:
		if m.A != 0 {
			m.IP = operand
			return nil
		}
	case opBXC:
		m.B ^= m.C
	case opOUT:
		v, err := m.combo(operand)
		if err != nil {
			return err
		}
		m.Output = append(m.Output, v&7)
	}
	m.IP += 2
	return nil
}

// combo resolves 0-3 to themselves and 4-6 to A, B and C.
func (m *Machine) combo(operand int) (int64, error) {
	switch {
	case operand >= 0 && operand <= 3:
		return int64(operand), nil
	case operand == 4:
		return m.A, nil
	case operand == 5:
		return m.B, nil
	case operand == 6:
		return m.C, nil
	}
	return 0, fmt.Errorf("%w %d at ip %d", ErrInvalidOperand, operand, m.IP)
}

// divide computes A / 2^combo(operand), truncating toward zero.
func (m *Machine) divide(operand int) (int64, error) {
	exp, err := m.combo(operand)
	if err != nil {
		return 0, err
	}
	if exp < 0 {
		return 0, fmt.Errorf("%w: negative exponent %d at ip %d", ErrInvalidOperand, exp, m.IP)
	}
	if exp >= 63 {
		return 0, nil
	}
	return m.A / (int64(1) << exp), nil
}

// OutputString joins the output with commas.
func (m *Machine) OutputString() string {
	return joinInts(m.Output)
}

// String shows the registers, the program with a caret under the current
// instruction, and the output so far.
func (m *Machine) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\nIP: %d\n", m.Registers, m.IP)
	var prog strings.Builder
	caret := -1
	for i, v := range m.Program {
		if i > 0 {
			prog.WriteByte(',')
		}
		if i == m.IP {
			caret = prog.Len()
		}
		prog.WriteString(strconv.Itoa(v))
	}
	b.WriteString(prog.String())
	b.WriteByte('\n')
	if caret >= 0 {
		b.WriteString(strings.Repeat(" ", caret))
		b.WriteString("^\n")
	}
	fmt.Fprintf(&b, "output: %s\n", m.OutputString())
	return b.String()
}

func joinInts[T int | int64](vals []T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatInt(int64(v), 10)
	}
	return strings.Join(parts, ",")
}
