package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dlclark/regexp2"
	log "github.com/sirupsen/logrus"

	"github.com/coregx/rx/internal/conv"
)

// regexp2Program adapts regexp2, which reports rune offsets, models a
// non-participating group as one without captures and numbers named groups
// after unnamed ones.
type regexp2Program struct {
	re     *regexp2.Regexp
	groups int
	// order[i] is the regexp2 group number of the i-th group in source order.
	order  []int
	logger *log.Entry
}

func compileRegexp2(pattern string, flags Flags, logger *log.Entry) (Program, error) {
	if flags&Ungreedy != 0 {
		return nil, fmt.Errorf("%w: %s does not support %s", ErrUnsupportedFlag, Regexp2, Ungreedy)
	}
	if flags&Quote != 0 {
		pattern = regexp2.Escape(pattern)
	}

	opt := regexp2.RegexOptions(regexp2.RE2)
	if flags&IgnoreCase != 0 {
		opt |= regexp2.IgnoreCase
	}
	if flags&Multiline != 0 {
		opt |= regexp2.Multiline
	}
	if flags&DotAll != 0 {
		opt |= regexp2.Singleline
	}

	re, err := regexp2.Compile(pattern, opt)
	if err != nil {
		return nil, err
	}
	groups := len(re.GetGroupNumbers())
	return &regexp2Program{
		re:     re,
		groups: groups,
		order:  sourceOrder(re, captureNames(pattern), groups),
		logger: logger,
	}, nil
}

// captureNames returns the name of every capturing group of pattern in the
// order of their opening parens, "" for unnamed groups.
func captureNames(pattern string) []string {
	var names []string
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
			if i+1 < len(pattern) && pattern[i+1] == '^' {
				i++
			}
			if i+1 < len(pattern) && pattern[i+1] == ']' {
				i++
			}
		case c == '(':
			rest := pattern[i+1:]
			if !strings.HasPrefix(rest, "?") {
				names = append(names, "")
				continue
			}
			var open, closer string
			switch {
			case strings.HasPrefix(rest, "?P<"):
				open, closer = "?P<", ">"
			case strings.HasPrefix(rest, "?<") && !strings.HasPrefix(rest, "?<=") && !strings.HasPrefix(rest, "?<!"):
				open, closer = "?<", ">"
			case strings.HasPrefix(rest, "?'"):
				open, closer = "?'", "'"
			default:
				continue
			}
			if name, _, ok := strings.Cut(rest[len(open):], closer); ok {
				names = append(names, name)
			}
		}
	}
	return names
}

// sourceOrder maps source positions to regexp2 group numbers. Named groups
// are looked up by name; the remaining numbers go to the unnamed groups in
// ascending order, which is also their source order. A pattern the scan
// does not account for exactly keeps regexp2's own numbering.
func sourceOrder(re *regexp2.Regexp, names []string, groups int) []int {
	if len(names)+1 != groups {
		return nil
	}

	named := make(map[int]bool)
	for _, name := range names {
		if name == "" {
			continue
		}
		n := re.GroupNumberFromName(name)
		if n <= 0 || named[n] {
			return nil
		}
		named[n] = true
	}

	var unnamed []int
	for _, n := range re.GetGroupNumbers() {
		if n != 0 && !named[n] {
			unnamed = append(unnamed, n)
		}
	}
	slices.Sort(unnamed)

	order := make([]int, 0, groups)
	order = append(order, 0)
	for _, name := range names {
		if name != "" {
			order = append(order, re.GroupNumberFromName(name))
			continue
		}
		if len(unnamed) == 0 {
			return nil
		}
		order = append(order, unnamed[0])
		unnamed = unnamed[1:]
	}
	return order
}

func (p *regexp2Program) NumGroups() int { return p.groups }

func (p *regexp2Program) MatchString(s string) bool {
	matched, err := p.re.MatchString(s)
	if err != nil {
		p.logger.Warnf("regexp2: match %q: %s", p.re.String(), err)
	}
	return err == nil && matched
}

func (p *regexp2Program) FindAllStringSubmatchIndex(s string, n int) [][]int {
	if n == 0 {
		return nil
	}

	var offsets []int
	var out [][]int
	m, err := p.re.FindStringMatch(s)
	for err == nil && m != nil {
		if n > 0 && len(out) >= n {
			break
		}
		if offsets == nil {
			offsets = conv.RuneOffsets(s)
		}

		loc := make([]int, 2*p.groups)
		for i := range loc {
			loc[i] = -1
		}
		for i := 0; i < p.groups; i++ {
			num := i
			if p.order != nil {
				num = p.order[i]
			}
			g := m.GroupByNumber(num)
			if g == nil || len(g.Captures) == 0 {
				continue
			}
			loc[2*i], loc[2*i+1] = conv.RuneSpanToBytes(offsets, g.Index, g.Length)
		}
		out = append(out, loc)

		m, err = p.re.FindNextMatch(m)
	}
	if err != nil {
		p.logger.Warnf("regexp2: find %q: %s", p.re.String(), err)
	}
	return out
}

func (p *regexp2Program) ReplaceAllString(src, template string) string {
	replaced, err := p.re.Replace(src, template, -1, -1)
	if err != nil {
		p.logger.Warnf("regexp2: replace %q: %s", p.re.String(), err)
		return src
	}
	return replaced
}
