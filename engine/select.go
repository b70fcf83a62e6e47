package engine

import "golang.org/x/sys/cpu"

// accelerated reports whether the host has the vector extensions coregex
// dispatches its memchr/teddy prefilters to.
var accelerated = cpu.X86.HasAVX2 || cpu.X86.HasSSSE3 || cpu.ARM64.HasASIMD

// Select returns the engine Auto uses for pattern. Patterns relying on
// backtracking-only syntax go to Regexp2; everything else goes to Coregex
// on hosts it accelerates and to Stdlib elsewhere.
func Select(pattern string, flags Flags) Kind {
	if flags&Quote == 0 && NeedsBacktracking(pattern) {
		return Regexp2
	}
	if accelerated {
		return Coregex
	}
	return Stdlib
}

// NeedsBacktracking reports whether pattern uses syntax that RE2-family
// engines reject: lookaround, atomic groups, backreferences or possessive
// quantifiers.
func NeedsBacktracking(pattern string) bool {
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\':
			if i+1 < len(pattern) {
				next := pattern[i+1]
				if !inClass && '1' <= next && next <= '9' {
					return true
				}
				if next == 'k' && i+2 < len(pattern) && (pattern[i+2] == '<' || pattern[i+2] == '\'' || pattern[i+2] == '{') {
					return true
				}
			}
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
			// A ']' right after '[' or '[^' is a literal member.
			if i+1 < len(pattern) && pattern[i+1] == '^' {
				i++
			}
			if i+1 < len(pattern) && pattern[i+1] == ']' {
				i++
			}
		case c == '(':
			rest := pattern[i+1:]
			for _, prefix := range []string{"?=", "?!", "?<=", "?<!", "?>"} {
				if len(rest) >= len(prefix) && rest[:len(prefix)] == prefix {
					return true
				}
			}
		case c == '*' || c == '+' || c == '?' || c == '}':
			if i+1 < len(pattern) && pattern[i+1] == '+' {
				return true
			}
		}
	}
	return false
}
