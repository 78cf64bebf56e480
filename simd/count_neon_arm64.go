//go:build arm64 && !noasm

package simd

func init() {
	register("neon", countNEON)
}

// countNEONChunks counts terminators in n bytes at p. n must be a positive
// multiple of neonChunk. Implemented in count_neon_arm64.s.
//
//go:noescape
func countNEONChunks(p *byte, n int) int

// countNEON handles the unaligned head in Go and hands whole 64-byte chunks
// to the assembly loop: four CMEQ compares, pairwise adds down to one
// vector and a horizontal UADDLV per chunk.
func countNEON(b []byte) (count, advanced int) {
	n, i := prologue(b, neonLane)
	bulk := (len(b) - i) / neonChunk * neonChunk
	if bulk > 0 {
		n += countNEONChunks(&b[i], bulk)
	}
	return n, i + bulk
}
