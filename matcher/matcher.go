package matcher

import "io"

// Matcher is implemented by the matcher variants of this package. The set
// of variants is closed: every implementation embeds Engine.
type Matcher interface {
	// Match runs one step in the given mode and reports whether it
	// produced a match. false means there are no further matches.
	Match(mode Mode) bool

	// Reset sets new options and returns to the initial state.
	Reset(opts string) error

	// SetInput attaches a new input source and resets the cursor state.
	SetInput(in io.Reader)

	// Clone returns an independent matcher with the same options and a
	// fresh position. The clone has no input until SetInput is called.
	Clone() Matcher

	Bytes() []byte
	Text() string
	Size() int
	Accept() int
	Record() []byte
	Group(n int) []byte
	GroupID() GroupID
	NextGroupID() GroupID
	Offset() int64
	LineNo() int
	AtEnd() bool
	Err() error

	engine() *Engine
}

// AcceptEnd is the accept index of a ModeSplit match whose delimiter is
// the end of input: the final record has no delimiter after it.
const AcceptEnd = 0xffff

// GroupID identifies a capture group by index and optional name.
type GroupID struct {
	Index int
	Name  string
}

// NoGroup is the GroupID reported when a match has no capture groups.
var NoGroup = GroupID{}

// IsNone reports whether g identifies no group.
func (g GroupID) IsNone() bool {
	return g == NoGroup
}

// Each calls fn for every match of m in the given mode until m reports no
// further matches or fn returns false. It returns m.Err().
//
// Example:
//
//	err := matcher.Each(m, matcher.ModeFind, func(m matcher.Matcher) bool {
//	    fmt.Println(m.Offset(), m.Text())
//	    return true
//	})
func Each(m Matcher, mode Mode, fn func(m Matcher) bool) error {
	for m.Match(mode) {
		if !fn(m) {
			break
		}
	}
	return m.Err()
}
