// Package coreflex provides the buffered scanning engine of a lexical
// analysis toolkit: matchers that pull input from an io.Reader into a
// growing buffer and report one token per call, and fast newline counting
// for line-number bookkeeping.
//
// coreflex is built from:
//   - matcher: the buffered matching engine and its line and literal
//     matcher variants, driven in scan, find, split or whole-match mode
//   - simd: newline counting kernels selected by runtime CPU feature
//     detection (AVX-512, AVX2, SSE2, NEON, scalar)
//   - charclass: POSIX and Unicode character class range tables
//
// Basic usage:
//
//	m, err := coreflex.NewLineMatcher(os.Stdin, "N")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for m.Match(matcher.ModeFind) {
//	    fmt.Printf("%d: %s\n", m.LineNo(), m.Bytes())
//	}
//	if err := m.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// Options for the line matcher:
//   - A: report lines with their terminator
//   - N: also report empty lines
//   - X: report only empty lines
package coreflex

import (
	"io"

	"github.com/coregx/coreflex/matcher"
	"github.com/coregx/coreflex/simd"
)

// NewLineMatcher returns a line matcher reading from r with the default
// buffer configuration.
//
// Example:
//
//	m, _ := coreflex.NewLineMatcher(strings.NewReader("a\n\nb\n"), "N")
//	for m.Match(matcher.ModeFind) {
//	    fmt.Printf("%q\n", m.Text()) // "a", "", "b"
//	}
func NewLineMatcher(r io.Reader, opts string) (*matcher.LineMatcher, error) {
	return matcher.NewLineMatcher(r, opts)
}

// NewLiteralMatcher returns a matcher for a fixed set of literal tokens
// reading from r. Accept reports the 1-based index of the literal matched.
func NewLiteralMatcher(r io.Reader, literals []string, opts string) (*matcher.LiteralMatcher, error) {
	return matcher.NewLiteralMatcher(r, literals, opts)
}

// CountNewlines returns the number of '\n' bytes in b using the fastest
// kernel available on this CPU.
func CountNewlines(b []byte) int {
	return simd.Count(b)
}

// Lines reads r to the end and returns its lines as reported by a line
// matcher in find mode with the given options.
func Lines(r io.Reader, opts string) ([]string, error) {
	m, err := matcher.NewLineMatcher(r, opts)
	if err != nil {
		return nil, err
	}
	var lines []string
	err = matcher.Each(m, matcher.ModeFind, func(m matcher.Matcher) bool {
		lines = append(lines, m.Text())
		return true
	})
	return lines, err
}
