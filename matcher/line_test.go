package matcher

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
)

func TestLineFind(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  string
		want  []string
	}{
		{"default_skips_empty", "a\n\nbb\n", "", []string{"a", "bb"}},
		{"N_keeps_empty", "a\n\nbb\n", "N", []string{"a", "", "bb"}},
		{"X_only_empty", "a\n\nbb\n", "X", []string{""}},
		{"A_keeps_terminator", "a\n\nbb\n", "A", []string{"a\n", "bb\n"}},
		{"AN", "a\n\nbb\n", "AN", []string{"a\n", "\n", "bb\n"}},
		{"AX", "a\n\nbb\n", "AX", []string{"\n"}},
		{"NX_is_X", "a\n\nbb\n", "N;X", []string{""}},
		{"unterminated_last", "a\nbc", "", []string{"a", "bc"}},
		{"unterminated_last_A", "a\nbc", "A", []string{"a\n", "bc"}},
		{"only_terminators", "\n\n\n", "", nil},
		{"only_terminators_N", "\n\n\n", "N", []string{"", "", ""}},
		{"empty_input", "", "N", nil},
		{"long_lines", strings.Repeat("x", 40) + "\n" + strings.Repeat("y", 70), "", []string{strings.Repeat("x", 40), strings.Repeat("y", 70)}},
		{"carriage_return_kept", "a\r\nb\n", "", []string{"a\r", "b"}},
	}

	for _, tt := range tests {
		for _, r := range readers {
			for _, c := range configs {
				t.Run(tt.name+"/"+r.name+"/"+c.name, func(t *testing.T) {
					m, err := NewLineMatcherWithConfig(r.wrap(tt.input), tt.opts, c.cfg)
					if err != nil {
						t.Fatal(err)
					}
					got := collect(t, m, ModeFind)
					if diff := cmp.Diff(tt.want, got); diff != "" {
						t.Errorf("find mismatch (-want +got):\n%s", diff)
					}
				})
			}
		}
	}
}

func TestLineScan(t *testing.T) {
	for _, r := range readers {
		for _, c := range configs {
			t.Run(r.name+"/"+c.name, func(t *testing.T) {
				m, err := NewLineMatcherWithConfig(r.wrap("a\n\nbb\nc"), "X", c.cfg)
				if err != nil {
					t.Fatal(err)
				}
				// Scan ignores the emptiness filters.
				want := []string{"a\n", "\n", "bb\n", "c"}
				if diff := cmp.Diff(want, collect(t, m, ModeScan)); diff != "" {
					t.Errorf("scan mismatch (-want +got):\n%s", diff)
				}
				if !m.AtEnd() {
					t.Error("AtEnd() = false after scanning everything")
				}
			})
		}
	}
}

func TestLineSplit(t *testing.T) {
	m, err := NewLineMatcherWithConfig(iotest.OneByteReader(strings.NewReader("a\n\nbb\nc")), "", Config{BufferSize: 16})
	if err != nil {
		t.Fatal(err)
	}
	var delims, records []string
	var accepts []int
	for m.Match(ModeSplit) {
		delims = append(delims, m.Text())
		records = append(records, string(m.Record()))
		accepts = append(accepts, m.Accept())
	}
	if diff := cmp.Diff([]string{"\n", "\n", "\n", ""}, delims); diff != "" {
		t.Errorf("delimiters (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "", "bb", "c"}, records); diff != "" {
		t.Errorf("records (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 1, 1, AcceptEnd}, accepts); diff != "" {
		t.Errorf("accepts (-want +got):\n%s", diff)
	}
}

func TestLineMatchWhole(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []bool
		last  string
	}{
		{"one_line", "abc\n", []bool{true}, "abc\n"},
		{"one_unterminated", "abc", []bool{true}, "abc"},
		{"single_terminator", "\n", []bool{true}, "\n"},
		{"two_lines", "a\nb\n", []bool{false, true}, "b\n"},
		{"two_lines_unterminated", "a\nb", []bool{false, true}, "b"},
		{"long_lines", strings.Repeat("x", 40) + "\n" + strings.Repeat("y", 30), []bool{false, true}, strings.Repeat("y", 30)},
		{"empty", "", []bool{false}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewLineMatcherWithConfig(iotest.HalfReader(strings.NewReader(tt.input)), "", Config{BufferSize: 16})
			if err != nil {
				t.Fatal(err)
			}
			var got []bool
			var last string
			for len(got) < 10 && (len(got) == 0 || !m.AtEnd()) {
				ok := m.Match(ModeMatch)
				got = append(got, ok)
				if ok {
					last = m.Text()
				} else if m.Accept() != 0 {
					t.Errorf("failed match has Accept() = %d", m.Accept())
				}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Match(ModeMatch) results (-want +got):\n%s", diff)
			}
			if last != tt.last {
				t.Errorf("last match = %q, want %q", last, tt.last)
			}
			if m.Match(ModeMatch) {
				t.Error("Match(ModeMatch) succeeded after end of input")
			}
		})
	}
}

func TestLineMatchWholeAfterFind(t *testing.T) {
	m, err := NewLineMatcher(strings.NewReader("a\nb\nc"), "")
	if err != nil {
		t.Fatal(err)
	}
	if !m.Match(ModeFind) || m.Text() != "a" {
		t.Fatalf("first find = %q", m.Text())
	}
	// "b\n" is not the end of the input.
	if m.Match(ModeMatch) {
		t.Fatalf("match on a middle line = %q", m.Text())
	}
	if !m.Match(ModeMatch) || m.Text() != "c" {
		t.Fatalf("match on the last line = %q, want %q", m.Text(), "c")
	}
}

func TestLineMatchWholeReadError(t *testing.T) {
	m, err := NewLineMatcher(iotest.TimeoutReader(strings.NewReader("abc")), "")
	if err != nil {
		t.Fatal(err)
	}
	if m.Match(ModeMatch) {
		t.Errorf("input cut short by a read error matched as %q", m.Text())
	}
	if !errors.Is(m.Err(), iotest.ErrTimeout) {
		t.Errorf("Err() = %v, want ErrTimeout", m.Err())
	}
}

func TestLineBufferLimit(t *testing.T) {
	input := "short\n" + strings.Repeat("x", 100) + "\nafter\n"
	m, err := NewLineMatcherWithConfig(strings.NewReader(input), "", Config{BufferSize: 16, MaxBufferSize: 32})
	if err != nil {
		t.Fatal(err)
	}
	if !m.Match(ModeFind) || m.Text() != "short" {
		t.Fatalf("first find = %q", m.Text())
	}
	if m.Match(ModeFind) {
		t.Fatalf("oversized line reported as %q", m.Text())
	}
	if !errors.Is(m.Err(), ErrBufferFull) {
		t.Errorf("Err() = %v, want ErrBufferFull", m.Err())
	}
	if m.Match(ModeFind) {
		t.Error("matching resumed after ErrBufferFull")
	}
}

func TestLineReadError(t *testing.T) {
	m, err := NewLineMatcher(iotest.TimeoutReader(strings.NewReader("a\nb\n")), "")
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for m.Match(ModeFind) {
		got = append(got, m.Text())
	}
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("lines before error (-want +got):\n%s", diff)
	}
	if !errors.Is(m.Err(), iotest.ErrTimeout) {
		t.Errorf("Err() = %v, want %v", m.Err(), iotest.ErrTimeout)
	}
}

func TestLineMatchAfterEndIsIdempotent(t *testing.T) {
	m, err := NewLineMatcher(strings.NewReader("a\n"), "")
	if err != nil {
		t.Fatal(err)
	}
	if !m.Match(ModeFind) {
		t.Fatal("no first line")
	}
	for i := 0; i < 3; i++ {
		for _, mode := range []Mode{ModeFind, ModeScan, ModeSplit, ModeMatch} {
			if m.Match(mode) {
				t.Fatalf("call %d: %v matched %q after end of input", i, mode, m.Text())
			}
			if m.Size() != 0 || m.Accept() != 0 || !m.AtEnd() {
				t.Fatalf("call %d: %v left size=%d accept=%d atEnd=%v", i, mode, m.Size(), m.Accept(), m.AtEnd())
			}
		}
	}
	if m.pos != 2 || m.inc != 0 {
		t.Errorf("cursor moved after end: pos=%d inc=%d", m.pos, m.inc)
	}
}

func TestLineRejectedLinesAdvanceOnce(t *testing.T) {
	// With X, every non-empty line is rejected inside a single call. Each
	// must be consumed exactly once, terminator included.
	m, err := NewLineMatcher(strings.NewReader("aa\nbb\n\ncc\n\n"), "X")
	if err != nil {
		t.Fatal(err)
	}
	var offsets []int64
	for m.Match(ModeFind) {
		offsets = append(offsets, m.Offset())
	}
	if diff := cmp.Diff([]int64{6, 10}, offsets); diff != "" {
		t.Errorf("empty line offsets (-want +got):\n%s", diff)
	}
}

func TestLineResetClearsCarry(t *testing.T) {
	in := &chunkReader{chunks: []string{"a\n", "b\n"}}
	m, err := NewLineMatcherWithConfig(in, "", Config{BufferSize: 16})
	if err != nil {
		t.Fatal(err)
	}
	if !m.Match(ModeFind) || m.Text() != "a" {
		t.Fatalf("first find = %q", m.Text())
	}
	if m.inc != 1 {
		t.Fatalf("inc = %d after terminator-excluding find", m.inc)
	}
	if err := m.Reset("N"); err != nil {
		t.Fatal(err)
	}
	if m.inc != 0 || m.got != Sentinel || !m.AtBOL() {
		t.Fatalf("after Reset: inc=%d got=%q", m.inc, m.got)
	}
	if !m.Options().N {
		t.Error("Reset did not apply option N")
	}
	// Had the carry survived, 'b' would be skipped.
	if !m.Match(ModeFind) || m.Text() != "b" {
		t.Errorf("find after reset = %q, want %q", m.Text(), "b")
	}
}

func TestLineResetBadOptions(t *testing.T) {
	m, err := NewLineMatcher(strings.NewReader("a\n"), "A")
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Reset("A!"); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("Reset(A!) = %v, want ErrInvalidOption", err)
	}
	if !m.Options().A {
		t.Error("failed Reset changed options")
	}
}

func TestLineSetInputMatchesFresh(t *testing.T) {
	const input = "one\n\ntwo\nthree"
	m, err := NewLineMatcher(strings.NewReader(input), "N")
	if err != nil {
		t.Fatal(err)
	}
	first := collect(t, m, ModeFind)
	m.SetInput(strings.NewReader(input))
	second := collect(t, m, ModeFind)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("after SetInput (-first +second):\n%s", diff)
	}
}

func TestLineClone(t *testing.T) {
	const input = "x\n\ny\n"
	m, err := NewLineMatcher(strings.NewReader(input), "N")
	if err != nil {
		t.Fatal(err)
	}
	clone := m.Clone()
	if clone.Match(ModeFind) {
		t.Fatalf("clone without input matched %q", clone.Text())
	}
	if diff := cmp.Diff([]string{"x", "", "y"}, collect(t, m, ModeFind)); diff != "" {
		t.Errorf("original after clone (-want +got):\n%s", diff)
	}

	clone.SetInput(strings.NewReader(input))
	if diff := cmp.Diff([]string{"x", "", "y"}, collect(t, clone, ModeFind)); diff != "" {
		t.Errorf("clone with its own input (-want +got):\n%s", diff)
	}
	if got := clone.(*LineMatcher).Options(); got != (Options{N: true}) {
		t.Errorf("clone options = %+v", got)
	}

	// A clone taken mid-stream leaves the original where it was.
	m2, _ := NewLineMatcher(strings.NewReader(input), "N")
	m2.Match(ModeFind)
	c2 := m2.Clone()
	c2.SetInput(strings.NewReader(input))
	if diff := cmp.Diff([]string{"x", "", "y"}, collect(t, c2, ModeFind)); diff != "" {
		t.Errorf("clone mid-stream (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"", "y"}, collect(t, m2, ModeFind)); diff != "" {
		t.Errorf("original disturbed by clone (-want +got):\n%s", diff)
	}
}

func TestLineCloneConcurrent(t *testing.T) {
	m, err := NewLineMatcher(strings.NewReader(""), "")
	if err != nil {
		t.Fatal(err)
	}
	input := strings.Repeat("line\n", 1000)
	done := make(chan int)
	for g := 0; g < 4; g++ {
		c := m.Clone()
		c.SetInput(strings.NewReader(input))
		go func() {
			n := 0
			for c.Match(ModeFind) {
				n++
			}
			done <- n
		}()
	}
	for g := 0; g < 4; g++ {
		if n := <-done; n != 1000 {
			t.Errorf("clone saw %d lines, want 1000", n)
		}
	}
}

func TestLineAssign(t *testing.T) {
	src, err := NewLineMatcher(strings.NewReader("a\nb\nc\n"), "")
	if err != nil {
		t.Fatal(err)
	}
	src.Match(ModeFind)

	var dst LineMatcher
	dst.Assign(src)
	want := []string{"b", "c"}
	if diff := cmp.Diff(want, collect(t, &dst, ModeFind)); diff != "" {
		t.Errorf("assigned (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, collect(t, src, ModeFind)); diff != "" {
		t.Errorf("source after assign (-want +got):\n%s", diff)
	}
}

func TestLineNo(t *testing.T) {
	input := "a\n\n" + strings.Repeat("z", 50) + "\nb\n\n\nc"
	for _, c := range configs {
		t.Run(c.name, func(t *testing.T) {
			m, err := NewLineMatcherWithConfig(iotest.OneByteReader(strings.NewReader(input)), "", c.cfg)
			if err != nil {
				t.Fatal(err)
			}
			var lines []int
			var offsets []int64
			for m.Match(ModeFind) {
				lines = append(lines, m.LineNo())
				offsets = append(offsets, m.Offset())
			}
			if diff := cmp.Diff([]int{1, 3, 4, 7}, lines); diff != "" {
				t.Errorf("line numbers (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]int64{0, 3, 54, 58}, offsets); diff != "" {
				t.Errorf("offsets (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLineGroups(t *testing.T) {
	m, err := NewLineMatcher(strings.NewReader("abc\n"), "")
	if err != nil {
		t.Fatal(err)
	}
	if m.Group(0) != nil {
		t.Error("Group(0) before a match is not nil")
	}
	if !m.Match(ModeFind) {
		t.Fatal("no match")
	}
	if string(m.Group(0)) != "abc" {
		t.Errorf("Group(0) = %q", m.Group(0))
	}
	if m.Group(1) != nil {
		t.Errorf("Group(1) = %q, want nil", m.Group(1))
	}
	if !m.GroupID().IsNone() || !m.NextGroupID().IsNone() {
		t.Error("line matcher reported a capture group")
	}
	if m.Accept() != 1 {
		t.Errorf("Accept() = %d, want 1", m.Accept())
	}
}

func TestLineBOL(t *testing.T) {
	m, err := NewLineMatcher(strings.NewReader("ab\ncd"), "")
	if err != nil {
		t.Fatal(err)
	}
	if !m.AtBOL() {
		t.Error("fresh matcher not at beginning of line")
	}
	m.Match(ModeFind)
	if m.AtBOL() {
		t.Error("AtBOL after line content with deferred terminator")
	}
	m.Match(ModeFind)
	if m.AtBOL() {
		t.Error("AtBOL at end of unterminated line")
	}
}

func TestLineUnknownMode(t *testing.T) {
	m, err := NewLineMatcher(strings.NewReader("a\n"), "")
	if err != nil {
		t.Fatal(err)
	}
	if m.Match(Mode(42)) {
		t.Error("unknown mode matched")
	}
	if !m.Match(ModeFind) || m.Text() != "a" {
		t.Error("unknown mode consumed input")
	}
}

func TestEach(t *testing.T) {
	m, err := NewLineMatcher(strings.NewReader("1\n2\n3\n4\n"), "")
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	err = Each(m, ModeFind, func(m Matcher) bool {
		got = append(got, m.Text())
		return len(got) < 3
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"1", "2", "3"}, got); diff != "" {
		t.Errorf("Each (-want +got):\n%s", diff)
	}
}

func TestNewLineMatcherErrors(t *testing.T) {
	if _, err := NewLineMatcher(nil, "?"); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("bad options: %v", err)
	}
	if _, err := NewLineMatcherWithConfig(nil, "", Config{BufferSize: 1}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("bad config: %v", err)
	}
	m, err := NewLineMatcher(nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if m.Match(ModeFind) || m.Match(ModeMatch) {
		t.Error("matcher without input matched")
	}
}

func BenchmarkLineFind(b *testing.B) {
	input := strings.Repeat("the quick brown fox jumps over the lazy dog\n", 10000)
	b.SetBytes(int64(len(input)))
	m, _ := NewLineMatcher(nil, "")
	for i := 0; i < b.N; i++ {
		m.SetInput(strings.NewReader(input))
		for m.Match(ModeFind) {
		}
	}
}
