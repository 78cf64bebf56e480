package matcher

// Mode selects what a call to Matcher.Match does.
type Mode int

const (
	// ModeScan consumes the next token at the current position.
	ModeScan Mode = iota

	// ModeFind searches forward for the next token.
	ModeFind

	// ModeSplit reports the next delimiter; the text before it is the
	// record returned by Record.
	ModeSplit

	// ModeMatch succeeds when the remaining input as a whole is a match.
	ModeMatch
)

var modeNames = [...]string{"scan", "find", "split", "match"}

// String returns the lower-case mode name.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, bool) {
	for i, name := range modeNames {
		if s == name {
			return Mode(i), true
		}
	}
	return 0, false
}
