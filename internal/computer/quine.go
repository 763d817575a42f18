package computer

// FindQuine returns the smallest initial A, keeping the listing's B and C,
// for which the program prints exactly itself.
//
// The search assumes the usual shape of such programs: each loop prints one
// value and shifts A right by three bits. A is built three bits at a time
// from the last program value backwards, keeping every candidate whose
// output matches the program suffix produced so far.
func FindQuine(l *Listing) (int64, error) {
	base := l.Registers()
	candidates := []int64{0}
	for i := len(l.Program) - 1; i >= 0; i-- {
		want := l.Program[i:]
		var next []int64
		for _, c := range candidates {
			for bits := int64(0); bits < 8; bits++ {
				a := c<<3 | bits
				out, err := runWith(l.Program, Registers{A: a, B: base.B, C: base.C}, 64*len(l.Program)+64)
				if err != nil {
					continue
				}
				if equalOutput(out, want) {
					next = append(next, a)
				}
			}
		}
		if len(next) == 0 {
			return 0, ErrNoQuine
		}
		candidates = next
	}
	return candidates[0], nil
}

func runWith(program []int, regs Registers, limit int) ([]int64, error) {
	m := &Machine{Registers: regs, Program: program, Limit: limit}
	if err := m.Run(); err != nil {
		return nil, err
	}
	return m.Output, nil
}

func equalOutput(out []int64, program []int) bool {
	if len(out) != len(program) {
		return false
	}
	for i := range out {
		if out[i] != int64(program[i]) {
			return false
		}
	}
	return true
}
