package engine

import (
	"strings"

	"github.com/coregx/ahocorasick"
)

// literalProgram matches a fixed set of strings with an Aho-Corasick
// automaton. It has no capture groups and inserts replacement templates
// verbatim.
type literalProgram struct {
	auto *ahocorasick.Automaton
	fold bool
}

// CompileLiterals builds a program matching any of words. With IgnoreCase,
// ASCII letters match case-insensitively; other characters always match
// exactly. The remaining flags have no meaning for literals and are ignored.
func CompileLiterals(words []string, flags Flags) (Program, error) {
	fold := flags&IgnoreCase != 0

	builder := ahocorasick.NewBuilder()
	for _, w := range words {
		if w == "" {
			return nil, ErrEmptyLiteral
		}
		if fold {
			builder.AddPattern(foldASCII(w))
		} else {
			builder.AddPattern([]byte(w))
		}
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &literalProgram{auto: auto, fold: fold}, nil
}

// foldASCII lowercases ASCII letters in a copy of s. Every other byte,
// including invalid UTF-8, is kept as is, so offsets into the result are
// offsets into s.
func foldASCII(s string) []byte {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c | 0x20
		}
	}
	return b
}

func (p *literalProgram) haystack(s string) []byte {
	if p.fold {
		return foldASCII(s)
	}
	return []byte(s)
}

func (p *literalProgram) NumGroups() int { return 1 }

func (p *literalProgram) MatchString(s string) bool {
	return p.auto.IsMatch(p.haystack(s))
}

func (p *literalProgram) FindAllStringSubmatchIndex(s string, n int) [][]int {
	if n == 0 {
		return nil
	}
	h := p.haystack(s)

	var out [][]int
	for at := 0; at < len(h); {
		if n > 0 && len(out) >= n {
			break
		}
		m := p.auto.Find(h, at)
		if m == nil {
			break
		}
		out = append(out, []int{m.Start, m.End})
		at = m.End
	}
	return out
}

func (p *literalProgram) ReplaceAllString(src, template string) string {
	matches := p.FindAllStringSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src
	}

	var b strings.Builder
	last := 0
	for _, loc := range matches {
		b.WriteString(src[last:loc[0]])
		b.WriteString(template)
		last = loc[1]
	}
	b.WriteString(src[last:])
	return b.String()
}
