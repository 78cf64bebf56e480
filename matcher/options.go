package matcher

import "strings"

// Options are the flags a line matcher understands. Other variants ignore
// them.
type Options struct {
	// A includes the line terminator in lines reported by ModeFind.
	A bool

	// N also reports empty lines in ModeFind.
	N bool

	// X reports only empty lines in ModeFind.
	X bool
}

// ParseOptions parses an option string such as "A", "N;X" or "A,T=4".
//
// Each letter is a flag. Flags may be separated by ';', ',' or spaces. A
// flag may carry a value after '='; the value runs to the next separator
// and belongs to the matcher variant that defines the flag. Flags other than
// A, N and X are accepted and ignored; IgnoredFlags lists them. Any other
// byte is an *OptionError.
func ParseOptions(s string) (Options, error) {
	o, _, err := parseOptions(s)
	return o, err
}

// IgnoredFlags returns the flag letters of s that ParseOptions accepts but
// no matcher in this package acts on, in order of appearance. It returns ""
// when s is invalid.
//
//	matcher.IgnoredFlags("A;fals")  // "fals"
//	matcher.IgnoredFlags("T=8;N")   // "T"
func IgnoredFlags(s string) string {
	_, ignored, err := parseOptions(s)
	if err != nil {
		return ""
	}
	return ignored
}

func parseOptions(s string) (o Options, ignored string, err error) {
	var other []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ';' || c == ',' || c == ' ' || c == '\t':
		case c == '=':
			if i == 0 || !isFlag(s[i-1]) {
				return Options{}, "", &OptionError{Options: s, Pos: i, Err: ErrInvalidOption}
			}
			for i+1 < len(s) && !strings.ContainsRune(";, \t", rune(s[i+1])) {
				i++
			}
		case c == 'A':
			o.A = true
		case c == 'N':
			o.N = true
		case c == 'X':
			o.X = true
		case isFlag(c):
			other = append(other, c)
		default:
			return Options{}, "", &OptionError{Options: s, Pos: i, Err: ErrInvalidOption}
		}
	}
	return o, string(other), nil
}

func isFlag(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// String returns the canonical option string, for example "AN".
func (o Options) String() string {
	var b strings.Builder
	if o.A {
		b.WriteByte('A')
	}
	if o.N {
		b.WriteByte('N')
	}
	if o.X {
		b.WriteByte('X')
	}
	return b.String()
}
