package matcher

import (
	"errors"
	"io"

	"github.com/coregx/coreflex/simd"
)

// LineMatcher matches input line by line. A line is the text up to and
// including the next '\n', or the unterminated rest of the input.
//
// Per mode:
//   - ModeScan consumes the next line, terminator included.
//   - ModeFind reports the next line without its terminator, or with it
//     when option A is set. Empty lines are skipped unless option N is
//     set; option X reports only empty lines.
//   - ModeSplit reports the terminator of the next line and makes the line
//     content available through Record.
//   - ModeMatch consumes the next line like ModeScan and succeeds only if
//     that line ends the input. Over successive calls it reports whether the
//     input, read line by line, was used up: it fails for every line but
//     the last.
//
// A LineMatcher has no capture groups; Accept is 1 after every successful
// match.
type LineMatcher struct {
	Engine
}

// NewLineMatcher returns a line matcher reading from in with the default
// configuration. opts is an option string for ParseOptions.
//
// Example:
//
//	m, err := matcher.NewLineMatcher(strings.NewReader("a\n\nb\n"), "N")
//	if err != nil {
//	    return err
//	}
//	for m.Match(matcher.ModeFind) {
//	    fmt.Printf("%d %q\n", m.LineNo(), m.Text()) // 1 "a", 2 "", 3 "b"
//	}
//	return m.Err()
func NewLineMatcher(in io.Reader, opts string) (*LineMatcher, error) {
	return NewLineMatcherWithConfig(in, opts, DefaultConfig())
}

// NewLineMatcherWithConfig returns a line matcher reading from in. cfg is
// validated first; a line longer than cfg.MaxBufferSize stops matching with
// ErrBufferFull.
func NewLineMatcherWithConfig(in io.Reader, opts string, cfg Config) (*LineMatcher, error) {
	m := &LineMatcher{}
	if err := m.init(in, opts, cfg); err != nil {
		return nil, err
	}
	return m, nil
}

// Clone returns a line matcher with the same options and configuration,
// positioned at the start and with no input. Attach one with SetInput; until
// then Match fails.
func (m *LineMatcher) Clone() Matcher {
	return &LineMatcher{Engine: m.fresh()}
}

// Assign makes m a copy of src, including buffered input and cursor
// state. The input source is shared.
func (m *LineMatcher) Assign(src *LineMatcher) {
	m.assign(&src.Engine)
}

// Match runs one step in the given mode.
func (m *LineMatcher) Match(mode Mode) bool {
	if mode < ModeScan || mode > ModeMatch {
		return false
	}
	e := &m.Engine
	for {
		e.begin()
		if !e.more() {
			return false
		}

		end := m.lineEnd()
		start := e.cur
		if end == start {
			return false
		}
		e.pos = end

		n := end - start
		term := e.buf[end-1] == '\n'
		if term {
			n--
		} else if errors.Is(e.err, ErrBufferFull) {
			// The line did not fit; do not report a fragment of it.
			e.pos = start
			return false
		}

		switch mode {
		case ModeScan:
			e.txt, e.len = start, end-start
			e.got = int(e.buf[end-1])

		case ModeFind:
			if n == 0 && !e.opt.N && !e.opt.X || n > 0 && e.opt.X {
				e.got = int(e.buf[end-1])
				continue
			}
			e.txt, e.len = start, n
			if n > 0 {
				e.got = int(e.buf[start+n-1])
			}
			if term {
				if e.opt.A {
					e.len++
					e.got = '\n'
				} else {
					e.pos--
					e.inc = 1
				}
			}

		case ModeMatch:
			// Succeeds only if this line ends the input. more may compact
			// the buffer, so read offsets from the engine after it.
			if e.pos < e.end || e.more() || e.err != nil {
				e.got = int(e.buf[e.pos-1])
				return false
			}
			e.txt, e.len = e.cur, e.pos-e.cur
			e.got = int(e.buf[e.pos-1])

		case ModeSplit:
			e.rec, e.recLen = start, n
			e.txt, e.len = start+n, end-start-n
			e.got = int(e.buf[end-1])
			if !term {
				e.cap = AcceptEnd
				return true
			}
		}

		e.cap = 1
		return true
	}
}

// lineEnd returns the offset just past the next '\n' at or after pos, or
// the end of input when the last line is unterminated. It may refill and
// compact the buffer.
func (m *LineMatcher) lineEnd() int {
	e := &m.Engine
	scanned := 0 // bytes after pos known to hold no terminator
	for {
		from := e.pos + scanned
		if i := simd.Memchr(e.buf[from:e.end], '\n'); i >= 0 {
			return from + i + 1
		}
		scanned = e.end - e.pos
		if !e.fill() {
			return e.end
		}
	}
}
