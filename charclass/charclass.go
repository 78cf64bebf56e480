// Package charclass provides read-only character class range tables for
// pattern compilers built on top of the matchers: POSIX bracket classes
// over ASCII and the Unicode general categories, scripts and properties.
//
// Tables are built on first use and never change afterwards, so lookups
// need no locking and may run from any number of goroutines.
package charclass

import (
	"sort"
	"sync"
	"unicode"
)

// Range is an inclusive code point range.
type Range struct {
	Lo, Hi rune
}

// Ranges is a sorted list of non-overlapping, non-adjacent ranges.
type Ranges []Range

// Contains reports whether r is inside one of the ranges.
func (rs Ranges) Contains(r rune) bool {
	i := sort.Search(len(rs), func(i int) bool { return rs[i].Hi >= r })
	return i < len(rs) && rs[i].Lo <= r
}

var (
	tablesOnce sync.Once
	tables     map[string]Ranges
)

// Lookup returns the ranges of the class called name. POSIX classes use
// their bracket names ("alpha", "digit", ...); Unicode classes use the names
// of the unicode package ("L", "Lu", "Greek", "White_Space", ...).
//
// The returned slice is shared and must not be modified.
func Lookup(name string) (Ranges, bool) {
	tablesOnce.Do(build)
	rs, ok := tables[name]
	return rs, ok
}

// Names returns the names of every known class in sorted order.
func Names() []string {
	tablesOnce.Do(build)
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var posix = map[string]Ranges{
	"alnum":  {{'0', '9'}, {'A', 'Z'}, {'a', 'z'}},
	"alpha":  {{'A', 'Z'}, {'a', 'z'}},
	"ASCII":  {{0x00, 0x7f}},
	"blank":  {{'\t', '\t'}, {' ', ' '}},
	"cntrl":  {{0x00, 0x1f}, {0x7f, 0x7f}},
	"digit":  {{'0', '9'}},
	"graph":  {{'!', '~'}},
	"lower":  {{'a', 'z'}},
	"print":  {{' ', '~'}},
	"punct":  {{'!', '/'}, {':', '@'}, {'[', '`'}, {'{', '~'}},
	"space":  {{'\t', '\r'}, {' ', ' '}},
	"upper":  {{'A', 'Z'}},
	"word":   {{'0', '9'}, {'A', 'Z'}, {'_', '_'}, {'a', 'z'}},
	"xdigit": {{'0', '9'}, {'A', 'F'}, {'a', 'f'}},
}

func build() {
	tables = make(map[string]Ranges, len(posix)+len(unicode.Categories)+len(unicode.Scripts)+len(unicode.Properties))
	for _, m := range []map[string]*unicode.RangeTable{unicode.Categories, unicode.Scripts, unicode.Properties} {
		for name, rt := range m {
			tables[name] = fromTable(rt)
		}
	}
	for name, rs := range posix {
		tables[name] = rs
	}
}

// fromTable flattens a strided unicode.RangeTable into merged ranges.
func fromTable(rt *unicode.RangeTable) Ranges {
	var rs Ranges
	add := func(lo, hi, stride rune) {
		if stride == 1 {
			rs = append(rs, Range{lo, hi})
			return
		}
		for r := lo; r <= hi; r += stride {
			rs = append(rs, Range{r, r})
		}
	}
	for _, r := range rt.R16 {
		add(rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	for _, r := range rt.R32 {
		add(rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	return merge(rs)
}

// merge sorts rs and joins overlapping or adjacent ranges.
func merge(rs Ranges) Ranges {
	if len(rs) == 0 {
		return rs
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].Lo < rs[j].Lo })
	out := rs[:1]
	for _, r := range rs[1:] {
		last := &out[len(out)-1]
		if r.Lo <= last.Hi+1 {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		out = append(out, r)
	}
	return out
}
