package rx

import "github.com/coregx/rx/charindex"

// Match is one match of a pattern. Ranges are measured in logical
// characters of Original.
type Match struct {
	// Original is the text the match was found in.
	Original string
	// Value is the matched text; empty for an empty match.
	Value string
	// Range is the character range of the whole match.
	Range charindex.CharRange
	// Groups holds one entry per group, in pattern order. Groups[0] is the
	// whole match.
	Groups []Group
}

// Group is the part of a match captured by one group.
type Group struct {
	// Value is the captured text; empty when the group did not participate
	// or captured nothing.
	Value string
	// Range is the character range of the capture, nil when the group did
	// not participate in the match.
	Range *charindex.CharRange
}

// HasValue reports whether the match is non-empty.
func (m Match) HasValue() bool { return m.Range.Length > 0 }

// Group returns group i, or the zero Group if i is out of range.
func (m Match) Group(i int) Group {
	if i < 0 || i >= len(m.Groups) {
		return Group{}
	}
	return m.Groups[i]
}

// Participated reports whether the group took part in the match.
func (g Group) Participated() bool { return g.Range != nil }

// HasValue reports whether the group captured a non-empty string.
func (g Group) HasValue() bool { return g.Range != nil && g.Range.Length > 0 }

// project builds a Match from one engine result. loc holds byte offsets
// pairs for every group, with -1 for groups that did not participate.
func (r *Regex) project(table *charindex.Table, loc []int) Match {
	text := table.Text()
	groups := make([]Group, len(loc)/2)
	for i := range groups {
		start, end := loc[2*i], loc[2*i+1]
		if start < 0 {
			continue
		}
		cr := r.charRange(table, start, end)
		groups[i].Range = &cr
		if end > start {
			groups[i].Value = text[start:end]
		}
	}

	return Match{
		Original: text,
		Value:    groups[0].Value,
		Range:    *groups[0].Range,
		Groups:   groups,
	}
}
