package simd

import "sync"

// MinBulk is the shortest range handed to a vector kernel. Shorter ranges
// are counted by the scalar loop alone.
const MinBulk = 256

// Lane widths and chunk sizes of the kernels, in bytes. A kernel aligns the
// start to its lane width and then consumes whole chunks.
const (
	avx512Lane, avx512Chunk = 64, 128
	avx2Lane, avx2Chunk     = 32, 64
	sse2Lane, sse2Chunk     = 16, 64
	neonLane, neonChunk     = 16, 64
	swarLane, swarChunk     = 8, 64
)

// kernel is one entry of the dispatch table. fn counts terminators in
// b[:advanced]; the caller counts the rest. fn is nil when the kernel is
// not compiled into this build.
type kernel struct {
	name    string
	feature Features
	lane    int
	chunk   int
	fn      func(b []byte) (count, advanced int)
}

// kernels lists every kernel, most capable first. Build-specific files
// fill in fn through register.
var kernels = []kernel{
	{name: "avx512", feature: FeatureAVX512BW, lane: avx512Lane, chunk: avx512Chunk},
	{name: "avx2", feature: FeatureAVX2, lane: avx2Lane, chunk: avx2Chunk},
	{name: "sse2", feature: FeatureSSE2, lane: sse2Lane, chunk: sse2Chunk},
	{name: "neon", feature: FeatureNEON, lane: neonLane, chunk: neonChunk},
	{name: "swar", feature: FeatureSWAR, lane: swarLane, chunk: swarChunk, fn: countSWAR},
}

// register installs the implementation of a kernel. It must only be called
// from init.
func register(name string, fn func(b []byte) (count, advanced int)) {
	for i := range kernels {
		if kernels[i].name == name {
			kernels[i].fn = fn
			return
		}
	}
	panic("simd: register of unknown kernel " + name)
}

// run calls the kernel. A kernel that is not compiled in processes nothing.
func (k kernel) run(b []byte) (count, advanced int) {
	if k.fn == nil {
		return 0, 0
	}
	return k.fn(b)
}

var (
	tableOnce sync.Once
	table     []kernel
)

// dispatchTable returns the compiled-in kernels usable on this CPU in
// priority order.
func dispatchTable() []kernel {
	tableOnce.Do(func() {
		f := Detected()
		for _, k := range kernels {
			if k.fn != nil && f.Has(k.feature) {
				table = append(table, k)
			}
		}
	})
	return table
}

// Kernels returns the names of the kernels usable on this CPU, most
// capable first. The list is empty when only scalar counting is available,
// for example with COREFLEX_SIMD=none.
func Kernels() []string {
	t := dispatchTable()
	names := make([]string, len(t))
	for i, k := range t {
		names[i] = k.name
	}
	return names
}

// Selected returns the name of the kernel Newlines dispatches to, or
// "scalar".
func Selected() string {
	if t := dispatchTable(); len(t) > 0 {
		return t[0].name
	}
	return "scalar"
}

// Newlines counts terminators in b[*start:end] with the best kernel for
// this CPU and advances *start past the bytes it processed. The bytes left
// in b[*start:end] have not been counted; the caller finishes them, for
// example with a plain loop. Ranges shorter than MinBulk, and processes
// with no usable kernel, return 0 and leave *start unchanged.
//
// At most one chunk minus one byte is left over: 127 bytes with AVX-512,
// 63 with the other kernels.
//
// Throughput depends on the kernel:
//   - avx512: two VPCMPEQB compares of 64 bytes each per iteration
//   - avx2: two 32-byte compares per iteration
//   - sse2, neon: four 16-byte compares per iteration
//   - swar: eight 64-bit words per iteration, about twice the scalar loop
//
// Newlines only reads b and is safe to call concurrently.
//
// Example:
//
//	start, end := 0, len(buf)
//	lines := simd.Newlines(buf, &start, end)
//	for _, c := range buf[start:end] {
//	    if c == '\n' {
//	        lines++
//	    }
//	}
func Newlines(b []byte, start *int, end int) int {
	s := b[*start:end]
	if len(s) < MinBulk {
		return 0
	}
	t := dispatchTable()
	if len(t) == 0 {
		return 0
	}
	n, adv := t[0].run(s)
	*start += adv
	return n
}

// Count returns the number of terminator bytes in b. It is Newlines
// followed by the scalar loop over the remainder, and equivalent to
// bytes.Count(b, []byte{'\n'}).
//
// Example:
//
//	n := simd.Count([]byte("a\nb\nc")) // 2
func Count(b []byte) int {
	i := 0
	n := Newlines(b, &i, len(b))
	return n + countScalar(b[i:])
}
