package simd

// countScalar counts terminators one byte at a time, four bytes per
// iteration with independent counters, then the 0-3 byte epilogue.
func countScalar(b []byte) int {
	var n0, n1, n2, n3 int
	i := 0
	for ; len(b)-i >= 4; i += 4 {
		p := b[i : i+4 : i+4]
		if p[0] == Terminator {
			n0++
		}
		if p[1] == Terminator {
			n1++
		}
		if p[2] == Terminator {
			n2++
		}
		if p[3] == Terminator {
			n3++
		}
	}
	n := n0 + n1 + n2 + n3
	for ; i < len(b); i++ {
		if b[i] == Terminator {
			n++
		}
	}
	return n
}
