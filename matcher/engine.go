// Package matcher implements the buffered matching engine shared by the
// coreflex matchers, and the matcher variants built on it.
//
// An Engine pulls bytes from an io.Reader into a growing buffer and keeps
// the cursor state of a scan: where pending text begins, the current scan
// position, the span of the last match and whether the input is exhausted.
// A matcher variant implements Match on top of that state for each Mode.
//
// Matchers are not safe for concurrent use. Give each goroutine its own
// matcher, for example with Clone followed by SetInput. A clone never shares
// the original's reader.
package matcher

import (
	"errors"
	"io"

	"github.com/coregx/coreflex/simd"
)

// Sentinel is the last-consumed byte of a fresh matcher, so that the very
// first line starts at a line boundary.
const Sentinel = '\n'

// maxEmptyReads bounds consecutive (0, nil) reads before the input is
// treated as broken.
const maxEmptyReads = 100

// Engine holds the input buffer and cursor state of a matcher.
//
// Offsets index buf. Text before cur may be discarded when the buffer is
// compacted; text at or after cur never is.
type Engine struct {
	in   io.Reader
	cfg  Config
	opt  Options
	opts string

	buf []byte
	end int // buf[:end] holds input

	cur int  // start of pending text
	pos int  // scan position
	txt int  // start of the last match
	len int  // length of the last match
	cap int  // accept index of the last match, 0 if none
	eof bool // no more input will be read
	got int  // last consumed byte
	inc int  // terminator byte to skip on the next call

	rec    int // Split: start of the record before the delimiter
	recLen int

	num int64 // stream offset of buf[0]
	lno int   // newlines in the stream before buf[lpb]
	lpb int

	err error
}

func (e *Engine) init(in io.Reader, opts string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	opt, err := ParseOptions(opts)
	if err != nil {
		return err
	}
	e.in = in
	e.cfg = cfg
	e.opt = opt
	e.opts = opts
	e.buf = make([]byte, cfg.BufferSize)
	e.reset()
	return nil
}

// reset clears cursor state and buffered text, keeping the buffer memory.
func (e *Engine) reset() {
	e.end = 0
	e.cur, e.pos, e.txt, e.len, e.cap = 0, 0, 0, 0, 0
	e.eof = e.in == nil
	e.got = Sentinel
	e.inc = 0
	e.rec, e.recLen = 0, 0
	e.num, e.lno, e.lpb = 0, 0, 0
	e.err = nil
}

// Reset sets new options and returns the matcher to its initial state,
// dropping any buffered input. Matching continues from wherever the input
// source is. On error the matcher is left unchanged.
func (e *Engine) Reset(opts string) error {
	opt, err := ParseOptions(opts)
	if err != nil {
		return err
	}
	e.opt = opt
	e.opts = opts
	e.reset()
	return nil
}

// SetInput attaches a new input source and resets the cursor state. The
// options are kept.
func (e *Engine) SetInput(in io.Reader) {
	e.in = in
	e.reset()
}

// assign copies src into e. The buffered bytes are copied, the input source
// is shared.
func (e *Engine) assign(src *Engine) {
	buf := e.buf[:0]
	*e = *src
	if cap(buf) < len(src.buf) {
		buf = make([]byte, len(src.buf))
	}
	e.buf = buf[:len(src.buf)]
	copy(e.buf, src.buf[:src.end])
}

// fresh returns an engine with the options and configuration of e, a fresh
// cursor and no input.
func (e *Engine) fresh() Engine {
	f := Engine{cfg: e.cfg, opt: e.opt, opts: e.opts}
	f.buf = make([]byte, e.cfg.BufferSize)
	f.reset()
	return f
}

func (e *Engine) engine() *Engine {
	return e
}

// fill reads more input into the buffer, making room first if the buffer
// is full. It reports whether any bytes were added; when it returns
// false, e.eof is set.
func (e *Engine) fill() bool {
	if e.eof {
		return false
	}
	if e.end == len(e.buf) && !e.makeRoom() {
		e.eof = true
		return false
	}
	for empty := 0; ; {
		n, err := e.in.Read(e.buf[e.end:])
		e.end += n
		if err != nil {
			if !errors.Is(err, io.EOF) {
				e.err = err
			}
			e.eof = true
			return n > 0
		}
		if n > 0 {
			return true
		}
		if empty++; empty == maxEmptyReads {
			e.err = io.ErrNoProgress
			e.eof = true
			return false
		}
	}
}

// makeRoom discards text before cur and, if that frees nothing, grows
// the buffer.
func (e *Engine) makeRoom() bool {
	if keep := e.cur; keep > 0 {
		if e.lpb < keep {
			e.lno += simd.Count(e.buf[e.lpb:keep])
			e.lpb = keep
		}
		copy(e.buf, e.buf[keep:e.end])
		e.end -= keep
		e.cur -= keep
		e.pos -= keep
		e.txt -= keep
		e.rec -= keep
		e.lpb -= keep
		e.num += int64(keep)
		return true
	}
	size := 2 * len(e.buf)
	if limit := e.cfg.MaxBufferSize; limit > 0 && size > limit {
		size = limit
	}
	if size <= len(e.buf) {
		e.err = ErrBufferFull
		return false
	}
	buf := make([]byte, size)
	copy(buf, e.buf[:e.end])
	e.buf = buf
	return true
}

// more makes sure at least one byte is available at pos.
func (e *Engine) more() bool {
	for e.pos >= e.end {
		if !e.fill() {
			return false
		}
	}
	return true
}

// begin starts a Match call: it clears the last match and applies the
// deferred terminator skip.
func (e *Engine) begin() {
	e.len = 0
	e.cap = 0
	e.recLen = 0
	if e.inc > 0 {
		e.pos += e.inc
		e.inc = 0
		e.got = Sentinel
	}
	e.cur = e.pos
	e.txt = e.pos
	e.rec = e.pos
}

// Bytes returns the text of the last match. The slice aliases the buffer
// and is only valid until the next call to Match.
func (e *Engine) Bytes() []byte {
	return e.buf[e.txt : e.txt+e.len : e.txt+e.len]
}

// Text returns the text of the last match as a string.
func (e *Engine) Text() string {
	return string(e.Bytes())
}

// Size returns the length of the last match.
func (e *Engine) Size() int {
	return e.len
}

// Accept returns the accept index of the last match: 0 when the last call
// to Match failed, otherwise a positive, variant-defined number.
func (e *Engine) Accept() int {
	return e.cap
}

// Record returns the text between the previous delimiter and the one
// reported by the last ModeSplit call. Like Bytes, it aliases the buffer.
//
// Example:
//
//	m, _ := matcher.NewLineMatcher(strings.NewReader("k=v\nx=y"), "")
//	for m.Match(matcher.ModeSplit) {
//	    fmt.Printf("%q ends with %q\n", m.Record(), m.Bytes())
//	}
//	// "k=v" ends with "\n"
//	// "x=y" ends with ""
func (e *Engine) Record() []byte {
	return e.buf[e.rec : e.rec+e.recLen : e.rec+e.recLen]
}

// Group returns the text of group n of the last match. Group 0 is the
// whole match; the line and literal matchers have no other groups.
func (e *Engine) Group(n int) []byte {
	if n != 0 || e.cap == 0 {
		return nil
	}
	return e.Bytes()
}

// GroupID returns the first capture group of the last match.
func (e *Engine) GroupID() GroupID {
	return NoGroup
}

// NextGroupID returns the next capture group of the last match.
func (e *Engine) NextGroupID() GroupID {
	return NoGroup
}

// Offset returns the stream offset of the last match.
func (e *Engine) Offset() int64 {
	return e.num + int64(e.txt)
}

// LineNo returns the 1-based line number of the start of the last match.
//
// Newlines are counted lazily with simd.Count, only over text not counted
// before, so calling LineNo after every match costs one pass over the input
// in total. Text discarded from the buffer is counted before it goes.
// Moving backwards (after Assign, for example) subtracts instead.
func (e *Engine) LineNo() int {
	switch {
	case e.lpb < e.txt:
		e.lno += simd.Count(e.buf[e.lpb:e.txt])
	case e.lpb > e.txt:
		e.lno -= simd.Count(e.buf[e.txt:e.lpb])
	}
	e.lpb = e.txt
	return e.lno + 1
}

// AtBOL reports whether the scan position is at the beginning of a line.
func (e *Engine) AtBOL() bool {
	return e.got == '\n'
}

// AtEnd reports whether all input has been consumed.
func (e *Engine) AtEnd() bool {
	return e.eof && e.pos+e.inc >= e.end
}

// Options returns the parsed options.
func (e *Engine) Options() Options {
	return e.opt
}

// Err returns the first error encountered reading the input, or
// ErrBufferFull. io.EOF is not an error.
func (e *Engine) Err() error {
	return e.err
}
