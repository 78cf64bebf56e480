package simd

import "math/bits"

// countSWAR counts terminators eight bytes at a time in general purpose
// registers. eqTerm marks each terminator byte with its high bit, so the
// population count of a marked word is the number of terminators in it.
// Eight words are processed per iteration.
func countSWAR(b []byte) (count, advanced int) {
	n, i := prologue(b, swarLane)
	for ; len(b)-i >= swarChunk; i += swarChunk {
		p := b[i : i+swarChunk : i+swarChunk]
		for k := 0; k < swarChunk; k += swarLane {
			n += bits.OnesCount64(eqTerm(load64(p, k)))
		}
	}
	return n, i
}
