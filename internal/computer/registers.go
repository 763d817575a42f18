package computer

import "fmt"

// Registers holds the three machine registers.
type Registers struct {
	A, B, C int64
}

// Get reads a register by its listing name.
func (r *Registers) Get(name string) (int64, bool) {
	switch name {
	case "A":
		return r.A, true
	case "B":
		return r.B, true
	case "C":
		return r.C, true
	}
	return 0, false
}

// Set writes a register by its listing name and reports whether the name
// exists.
func (r *Registers) Set(name string, val int64) bool {
	switch name {
	case "A":
		r.A = val
	case "B":
		r.B = val
	case "C":
		r.C = val
	default:
		return false
	}
	return true
}

func (r Registers) String() string {
	return fmt.Sprintf("A: %d\nB: %d\nC: %d", r.A, r.B, r.C)
}
