// Package conv provides offset conversion helpers for engines that do not
// report byte offsets.
//
// regexp2 indexes its input as a []rune, so every position it reports has to
// be translated back to a byte offset into the original Go string before the
// rest of the module can use it.
package conv

import "unicode/utf8"

// RuneOffsets returns the byte offset of every rune boundary in s.
// offsets[i] is the byte offset of rune i and the final entry is len(s),
// so the slice has utf8.RuneCountInString(s)+1 elements.
func RuneOffsets(s string) []int {
	offsets := make([]int, 0, utf8.RuneCountInString(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}

// RuneSpanToBytes converts a rune span into byte offsets using a table
// built by RuneOffsets. A negative start or length yields (-1, -1), the
// sentinel the RE2-family engines use for groups that did not participate.
// Panics if the span is outside the table since this indicates an engine
// reporting positions for a different input.
func RuneSpanToBytes(offsets []int, start, length int) (int, int) {
	if start < 0 || length < 0 {
		return -1, -1
	}
	end := start + length
	if end >= len(offsets) {
		panic("rune span out of range: engine reported an offset past the end of the input")
	}
	return offsets[start], offsets[end]
}
