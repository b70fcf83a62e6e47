// Package charindex converts between code-unit offsets, as reported by regex
// engines, and logical character positions.
//
// A logical character is an extended grapheme cluster (UAX #29) by default,
// so "👨‍👩‍👧" or "é" count as one character even though they span
// several runes, several UTF-16 code units and many UTF-8 bytes.
//
// Conversions go through a Table, a cumulative offset table built once per
// text. Building it is O(n); every lookup afterwards is O(log n). Callers
// converting many ranges over the same text should build one Table and reuse
// it rather than calling the package-level shortcuts in a loop.
//
// Example:
//
//	t := charindex.NewTable("a😀b", charindex.UTF16, charindex.Graphemes)
//	r, _ := t.ToCharRange(charindex.UnitRange{Start: 1, Length: 2})
//	fmt.Println(r) // [1, 2)
package charindex

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Unit is the code unit a UnitRange is measured in.
type Unit int

const (
	// UTF8 measures offsets in bytes, the native unit of Go strings.
	UTF8 Unit = iota
	// UTF16 measures offsets in 16-bit code units; characters outside the
	// BMP take two.
	UTF16
	// UTF32 measures offsets in runes.
	UTF32
)

// String returns the unit name.
func (u Unit) String() string {
	switch u {
	case UTF8:
		return "utf-8"
	case UTF16:
		return "utf-16"
	case UTF32:
		return "utf-32"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// Granularity selects what counts as one logical character.
type Granularity int

const (
	// Graphemes treats each extended grapheme cluster as one character.
	Graphemes Granularity = iota
	// Runes treats each code point as one character.
	Runes
)

// String returns the granularity name.
func (g Granularity) String() string {
	switch g {
	case Graphemes:
		return "graphemes"
	case Runes:
		return "runes"
	default:
		return fmt.Sprintf("Granularity(%d)", int(g))
	}
}

// ParseGranularity parses a granularity name. The empty string selects
// Graphemes.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "graphemes":
		return Graphemes, nil
	case "runes":
		return Runes, nil
	default:
		return 0, fmt.Errorf("unknown granularity %q", s)
	}
}

// UnitRange is a half-open range of code units starting at Start.
type UnitRange struct {
	Start  int
	Length int
}

// End returns the offset one past the last unit of the range.
func (r UnitRange) End() int { return r.Start + r.Length }

func (r UnitRange) String() string { return fmt.Sprintf("[%d, %d)", r.Start, r.End()) }

// CharRange is a half-open range of logical characters starting at Start.
type CharRange struct {
	Start  int
	Length int
}

// End returns the index one past the last character of the range.
func (r CharRange) End() int { return r.Start + r.Length }

func (r CharRange) String() string { return fmt.Sprintf("[%d, %d)", r.Start, r.End()) }

// Table maps the character boundaries of one text to code-unit and byte
// offsets. A Table is immutable and safe for concurrent use.
type Table struct {
	text string
	unit Unit

	// units[i] and bytes[i] are the offsets of the boundary before
	// character i; the last entry is the end of the text.
	units []int
	bytes []int
}

// NewTable segments text into logical characters of granularity g and
// records their offsets measured in unit.
func NewTable(text string, unit Unit, g Granularity) *Table {
	t := &Table{
		text:  text,
		unit:  unit,
		units: make([]int, 1, len(text)+1),
		bytes: make([]int, 1, len(text)+1),
	}

	off, pos := 0, 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var char string
		if g == Runes {
			_, size := utf8.DecodeRuneInString(rest)
			char = rest[:size]
		} else {
			char, _, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		}
		rest = rest[len(char):]

		off += unitLen(char, unit)
		pos += len(char)
		t.units = append(t.units, off)
		t.bytes = append(t.bytes, pos)
	}
	return t
}

// unitLen counts the code units of s. Invalid UTF-8 bytes count as one unit.
func unitLen(s string, unit Unit) int {
	switch unit {
	case UTF16:
		n := 0
		for len(s) > 0 {
			r, size := utf8.DecodeRuneInString(s)
			s = s[size:]
			if r >= 0x10000 {
				n += 2
			} else {
				n++
			}
		}
		return n
	case UTF32:
		return utf8.RuneCountInString(s)
	default:
		return len(s)
	}
}

// Text returns the text the table was built for.
func (t *Table) Text() string { return t.text }

// Unit returns the unit UnitRanges are measured in.
func (t *Table) Unit() Unit { return t.unit }

// Len returns the number of logical characters in the text.
func (t *Table) Len() int { return len(t.units) - 1 }

// UnitLen returns the length of the text in code units.
func (t *Table) UnitLen() int { return t.units[len(t.units)-1] }

// boundary returns the index of the character boundary at code-unit offset off.
func (t *Table) boundary(op string, r UnitRange, off int) (int, error) {
	if off < 0 || off > t.UnitLen() {
		return 0, &RangeError{Op: op, Start: r.Start, Length: r.Length, Unit: t.unit, Err: ErrOutOfBounds}
	}
	i, found := slices.BinarySearch(t.units, off)
	if !found {
		return 0, &RangeError{Op: op, Start: r.Start, Length: r.Length, Unit: t.unit, Err: ErrMisaligned}
	}
	return i, nil
}

func (t *Table) boundaries(op string, r UnitRange) (int, int, error) {
	if r.Length < 0 {
		return 0, 0, &RangeError{Op: op, Start: r.Start, Length: r.Length, Unit: t.unit, Err: ErrOutOfBounds}
	}
	start, err := t.boundary(op, r, r.Start)
	if err != nil {
		return 0, 0, err
	}
	end, err := t.boundary(op, r, r.End())
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// ToCharRange converts a code-unit range into a logical-character range.
// It fails with ErrOutOfBounds when the range leaves the text and with
// ErrMisaligned when either end falls inside a character.
func (t *Table) ToCharRange(r UnitRange) (CharRange, error) {
	start, end, err := t.boundaries("ToCharRange", r)
	if err != nil {
		return CharRange{}, err
	}
	return CharRange{Start: start, Length: end - start}, nil
}

// ToUnitRange converts a logical-character range back into code units.
func (t *Table) ToUnitRange(r CharRange) (UnitRange, error) {
	if r.Start < 0 || r.Length < 0 || r.End() > t.Len() {
		return UnitRange{}, &RangeError{Op: "ToUnitRange", Start: r.Start, Length: r.Length, Chars: true, Err: ErrOutOfBounds}
	}
	start := t.units[r.Start]
	return UnitRange{Start: start, Length: t.units[r.End()] - start}, nil
}

// CharIndex returns the index of the character containing code-unit offset
// off. An offset inside a character maps to that character; the end of the
// text maps to Len().
func (t *Table) CharIndex(off int) (int, error) {
	if off < 0 || off > t.UnitLen() {
		return 0, &RangeError{Op: "CharIndex", Start: off, Unit: t.unit, Err: ErrOutOfBounds}
	}
	i, found := slices.BinarySearch(t.units, off)
	if !found {
		i--
	}
	return i, nil
}

// ByteSpan returns the byte offsets [start, end) of a code-unit range.
func (t *Table) ByteSpan(r UnitRange) (int, int, error) {
	start, end, err := t.boundaries("ByteSpan", r)
	if err != nil {
		return 0, 0, err
	}
	return t.bytes[start], t.bytes[end], nil
}

// Substring returns the text covered by a code-unit range.
func (t *Table) Substring(r UnitRange) (string, error) {
	start, end, err := t.ByteSpan(r)
	if err != nil {
		return "", err
	}
	return t.text[start:end], nil
}

// ReplaceRange returns a copy of the text with the code-unit range replaced
// by with. The range must start and end on character boundaries.
func (t *Table) ReplaceRange(r UnitRange, with string) (string, error) {
	start, end, err := t.ByteSpan(r)
	if err != nil {
		return "", err
	}
	return t.text[:start] + with + t.text[end:], nil
}

// ToCharRange converts a byte range of text into a grapheme range.
func ToCharRange(text string, r UnitRange) (CharRange, error) {
	return NewTable(text, UTF8, Graphemes).ToCharRange(r)
}

// ToUnitRange converts a grapheme range of text into a byte range.
func ToUnitRange(text string, r CharRange) (UnitRange, error) {
	return NewTable(text, UTF8, Graphemes).ToUnitRange(r)
}

// Substring returns the part of text covered by the byte range r, which
// must not split a grapheme cluster.
func Substring(text string, r UnitRange) (string, error) {
	return NewTable(text, UTF8, Graphemes).Substring(r)
}

// ReplaceRange replaces the byte range r of text, which must not split a
// grapheme cluster.
func ReplaceRange(text string, r UnitRange, with string) (string, error) {
	return NewTable(text, UTF8, Graphemes).ReplaceRange(r, with)
}

// UTF16Len returns the length of s in UTF-16 code units.
func UTF16Len(s string) int {
	return unitLen(s, UTF16)
}
