package simd

import (
	"encoding/binary"
	"math/bits"
)

// Memchr returns the index of the first instance of c in b, or -1 if c is
// not present. It is equivalent to bytes.IndexByte.
//
// It uses SWAR (SIMD Within A Register): 8 bytes are compared per step by
// XORing with c broadcast to every byte and detecting a zero byte. Inputs
// shorter than 8 bytes are scanned one byte at a time.
//
// Performance characteristics:
//   - Match near the start: one or two word loads, no setup cost
//   - Long inputs without c: 8 bytes per step
//
// The line matcher calls Memchr on the unscanned part of its buffer to find
// the next '\n', so its cost is paid once per byte of input.
//
// Example:
//
//	b := []byte("key=value\n")
//	if i := simd.Memchr(b, '='); i != -1 {
//	    fmt.Printf("key %q\n", b[:i]) // key "key"
//	}
func Memchr(b []byte, c byte) int {
	n := len(b)
	if n < 8 {
		for i := 0; i < n; i++ {
			if b[i] == c {
				return i
			}
		}
		return -1
	}

	mask := uint64(c) * lo8
	i := 0
	for ; i+8 <= n; i += 8 {
		x := binary.LittleEndian.Uint64(b[i:]) ^ mask

		// (v - 0x01..) & ^v & 0x80.. flags zero bytes. Borrows can only
		// produce false positives above a real zero byte, so the lowest
		// flagged byte is always exact.
		if z := (x - lo8) & ^x & hi8; z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < n; i++ {
		if b[i] == c {
			return i
		}
	}
	return -1
}
