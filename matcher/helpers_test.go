package matcher

import (
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

// readers wraps test input in readers that deliver it in different pieces.
var readers = []struct {
	name string
	wrap func(s string) io.Reader
}{
	{"whole", func(s string) io.Reader { return strings.NewReader(s) }},
	{"one_byte", func(s string) io.Reader { return iotest.OneByteReader(strings.NewReader(s)) }},
	{"half", func(s string) io.Reader { return iotest.HalfReader(strings.NewReader(s)) }},
	{"data_err", func(s string) io.Reader { return iotest.DataErrReader(strings.NewReader(s)) }},
}

// configs covers the default buffer and one small enough to force
// compaction and growth.
var configs = []struct {
	name string
	cfg  Config
}{
	{"default", DefaultConfig()},
	{"small", Config{BufferSize: 16}},
}

// collect runs m in mode until it stops and returns the match texts.
func collect(t *testing.T, m Matcher, mode Mode) []string {
	t.Helper()
	var got []string
	for i := 0; m.Match(mode); i++ {
		if i > 10000 {
			t.Fatalf("%v: no end of matches", mode)
		}
		got = append(got, m.Text())
	}
	if err := m.Err(); err != nil {
		t.Fatalf("%v: unexpected error: %v", mode, err)
	}
	return got
}

// chunkReader returns one chunk per Read call.
type chunkReader struct {
	chunks []string
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	r.chunks[0] = r.chunks[0][n:]
	if r.chunks[0] == "" {
		r.chunks = r.chunks[1:]
	}
	return n, nil
}
