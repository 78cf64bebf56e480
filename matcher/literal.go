package matcher

import (
	"fmt"
	"io"

	"github.com/coregx/ahocorasick"
)

// LiteralMatcher matches a fixed set of literal tokens using an
// Aho-Corasick automaton. Accept reports the 1-based index of the literal
// that matched.
//
// Per mode:
//   - ModeScan matches a literal starting exactly at the current position.
//   - ModeFind reports the next occurrence of any literal. Text between
//     occurrences is discarded as it is scanned, so the buffer stays small
//     however far apart they are.
//   - ModeSplit reports the next literal as the delimiter and the text
//     before it through Record. After the last delimiter the rest of the
//     input is reported as a final record with an empty delimiter. A
//     record must fit in MaxBufferSize.
//   - ModeMatch succeeds when the remaining input equals one literal.
//
// When literals overlap at the same position, the automaton's match
// semantics decide which one is reported.
type LiteralMatcher struct {
	Engine
	literals []string
	index    map[string]int
	maxLen   int
	auto     *ahocorasick.Automaton
}

// NewLiteralMatcher returns a literal matcher reading from in with the
// default configuration.
func NewLiteralMatcher(in io.Reader, literals []string, opts string) (*LiteralMatcher, error) {
	return NewLiteralMatcherWithConfig(in, literals, opts, DefaultConfig())
}

// NewLiteralMatcherWithConfig returns a literal matcher reading from in.
func NewLiteralMatcherWithConfig(in io.Reader, literals []string, opts string, cfg Config) (*LiteralMatcher, error) {
	if len(literals) == 0 {
		return nil, ErrEmptyLiteral
	}
	m := &LiteralMatcher{
		literals: append([]string(nil), literals...),
		index:    make(map[string]int, len(literals)),
	}
	builder := ahocorasick.NewBuilder()
	for i, lit := range m.literals {
		if lit == "" {
			return nil, fmt.Errorf("literal %d: %w", i, ErrEmptyLiteral)
		}
		if _, dup := m.index[lit]; dup {
			continue
		}
		m.index[lit] = i
		if len(lit) > m.maxLen {
			m.maxLen = len(lit)
		}
		builder.AddPattern([]byte(lit))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("matcher: building literal automaton: %w", err)
	}
	m.auto = auto
	if err := m.init(in, opts, cfg); err != nil {
		return nil, err
	}
	return m, nil
}

// Literals returns the literals in accept order.
func (m *LiteralMatcher) Literals() []string {
	return append([]string(nil), m.literals...)
}

// Clone returns a literal matcher sharing the compiled automaton, with the
// same options and configuration and no input. Attach one with SetInput.
func (m *LiteralMatcher) Clone() Matcher {
	return &LiteralMatcher{
		Engine:   m.fresh(),
		literals: m.literals,
		index:    m.index,
		maxLen:   m.maxLen,
		auto:     m.auto,
	}
}

// Match runs one step in the given mode.
func (m *LiteralMatcher) Match(mode Mode) bool {
	if mode < ModeScan || mode > ModeMatch {
		return false
	}
	e := &m.Engine
	e.begin()
	if !e.more() {
		return false
	}

	if mode == ModeMatch {
		// Reading one byte past the longest literal is enough to tell.
		for !e.eof && e.end-e.cur <= m.maxLen {
			e.fill()
		}
		if e.err != nil {
			return false
		}
		id, ok := m.index[string(e.buf[e.cur:e.end])]
		if !ok {
			return false
		}
		return m.accept(e.cur, e.end, id)
	}

	switch mode {
	case ModeScan:
		start, end, id, ok := m.anchored()
		if !ok {
			return false
		}
		return m.accept(start, end, id)

	case ModeFind:
		start, end, id, ok := m.next(true)
		if !ok {
			e.pos = e.end
			return false
		}
		return m.accept(start, end, id)

	default: // ModeSplit
		start, end, id, ok := m.next(false)
		if !ok {
			e.rec, e.recLen = e.pos, e.end-e.pos
			e.txt = e.end
			e.pos = e.end
			e.got = int(e.buf[e.end-1])
			e.cap = AcceptEnd
			return true
		}
		e.rec, e.recLen = e.pos, start-e.pos
		return m.accept(start, end, id)
	}
}

// accept records buf[start:end] as a match of literal id.
func (m *LiteralMatcher) accept(start, end, id int) bool {
	e := &m.Engine
	e.txt, e.len = start, end-start
	e.pos = end
	e.got = int(e.buf[end-1])
	e.cap = id + 1
	return true
}

// next finds the leftmost literal at or after pos. It reads ahead until
// no literal that starts at or before the candidate could still extend past
// the buffered input.
//
// With skip set, text that can no longer start a match is consumed while
// reading ahead, so that the buffer only holds the last maxLen-1 bytes of a
// long stretch without literals. ModeSplit keeps it: it is the record.
func (m *LiteralMatcher) next(skip bool) (start, end, id int, ok bool) {
	e := &m.Engine
	for {
		found := m.auto.Find(e.buf[:e.end], e.pos)
		if found != nil && (e.eof || found.Start+m.maxLen <= e.end) {
			return found.Start, found.End, m.index[string(e.buf[found.Start:found.End])], true
		}
		if found == nil && e.eof {
			return 0, 0, 0, false
		}
		if skip {
			// An incomplete match starts at or after keep.
			keep := e.end - (m.maxLen - 1)
			if found != nil && found.Start < keep {
				keep = found.Start
			}
			if keep > e.pos {
				e.got = int(e.buf[keep-1])
				e.pos, e.cur, e.txt, e.rec = keep, keep, keep, keep
			}
		}
		// fill may compact the buffer, so search again either way.
		e.fill()
	}
}

// anchored finds a literal starting exactly at pos. It reads at most
// maxLen bytes ahead.
func (m *LiteralMatcher) anchored() (start, end, id int, ok bool) {
	e := &m.Engine
	for !e.eof && e.end-e.pos < m.maxLen {
		e.fill()
	}
	window := min(e.end, e.pos+m.maxLen)
	found := m.auto.Find(e.buf[:window], e.pos)
	if found == nil || found.Start != e.pos {
		return 0, 0, 0, false
	}
	return found.Start, found.End, m.index[string(e.buf[found.Start:found.End])], true
}
