package simd

import (
	"encoding/binary"
	"unsafe"
)

// Terminator is the byte counted by the newline kernels.
const Terminator = '\n'

// Word-parallel constants: one uint64 holds eight byte lanes.
const (
	lo7      = 0x7f7f7f7f7f7f7f7f
	lo8      = 0x0101010101010101
	hi8      = 0x8080808080808080
	termMask = Terminator * lo8
)

// eqTerm returns a word with 0x80 in every byte position where w holds the
// terminator and 0x00 elsewhere. Unlike the borrow trick used by memchr it
// is exact for every byte, so the result can be counted.
func eqTerm(w uint64) uint64 {
	x := w ^ termMask
	nonzero := ((x & lo7) + lo7) | x
	return ^nonzero & hi8
}

// load64 reads 8 bytes at b[i:] as a little-endian word.
func load64(b []byte, i int) uint64 {
	return binary.LittleEndian.Uint64(b[i : i+8])
}

// prologue counts terminators in the bytes before the first lane-aligned
// address of b, returning the count and the aligned offset. lane must be a
// power of two.
func prologue(b []byte, lane int) (n, i int) {
	if len(b) == 0 {
		return 0, 0
	}
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	if mis := int(addr & uintptr(lane-1)); mis != 0 {
		i = lane - mis
		if i > len(b) {
			i = len(b)
		}
		for _, c := range b[:i] {
			if c == Terminator {
				n++
			}
		}
	}
	return n, i
}
