//go:build goexperiment.simd && amd64

package simd

import (
	"math/bits"
	"simd/archsimd"
	"unsafe"
)

func init() {
	if archsimd.X86.AVX512() {
		register("avx512", countAVX512)
	}
	if archsimd.X86.AVX2() {
		register("avx2", countAVX2)
	}
	// archsimd emits VEX-encoded 128-bit compares, which need AVX.
	if archsimd.X86.AVX() {
		register("sse2", countSSE2)
	}
}

// countAVX512 compares two 64-byte vectors per iteration (VPCMPEQB into a
// mask register) and adds the population count of each 64-bit mask.
// ToBits needs AVX-512BW.
func countAVX512(b []byte) (count, advanced int) {
	n, i := prologue(b, avx512Lane)
	nl := archsimd.BroadcastInt8x64(Terminator)
	for ; len(b)-i >= avx512Chunk; i += avx512Chunk {
		lo := archsimd.LoadInt8x64((*[avx512Lane]int8)(unsafe.Pointer(&b[i])))
		hi := archsimd.LoadInt8x64((*[avx512Lane]int8)(unsafe.Pointer(&b[i+avx512Lane])))
		n += bits.OnesCount64(lo.Equal(nl).ToBits())
		n += bits.OnesCount64(hi.Equal(nl).ToBits())
	}
	archsimd.ClearAVXUpperBits()
	return n, i
}

// countAVX2 compares two 32-byte vectors per iteration and counts the bits
// of their VPMOVMSKB masks.
func countAVX2(b []byte) (count, advanced int) {
	n, i := prologue(b, avx2Lane)
	nl := archsimd.BroadcastUint8x32(Terminator)
	for ; len(b)-i >= avx2Chunk; i += avx2Chunk {
		lo := archsimd.LoadUint8x32Slice(b[i:])
		hi := archsimd.LoadUint8x32Slice(b[i+avx2Lane:])
		n += bits.OnesCount32(lo.Equal(nl).ToBits())
		n += bits.OnesCount32(hi.Equal(nl).ToBits())
	}
	archsimd.ClearAVXUpperBits()
	return n, i
}

// countSSE2 compares four 16-byte vectors per iteration. The four 16-bit
// masks are packed into one word so a single POPCNT counts the chunk.
func countSSE2(b []byte) (count, advanced int) {
	n, i := prologue(b, sse2Lane)
	nl := archsimd.BroadcastUint8x16(Terminator)
	for ; len(b)-i >= sse2Chunk; i += sse2Chunk {
		m0 := uint64(archsimd.LoadUint8x16Slice(b[i:]).Equal(nl).ToBits())
		m1 := uint64(archsimd.LoadUint8x16Slice(b[i+16:]).Equal(nl).ToBits())
		m2 := uint64(archsimd.LoadUint8x16Slice(b[i+32:]).Equal(nl).ToBits())
		m3 := uint64(archsimd.LoadUint8x16Slice(b[i+48:]).Equal(nl).ToBits())
		n += bits.OnesCount64(m0 | m1<<16 | m2<<32 | m3<<48)
	}
	return n, i
}
