package engine

import (
	"regexp"
	"regexp/syntax"

	"github.com/coregx/coregex"
	re2 "github.com/wasilibs/go-re2"
)

// re2Like is the stdlib-compatible method set shared by regexp, coregex and
// go-re2.
type re2Like interface {
	MatchString(s string) bool
	FindAllStringSubmatchIndex(s string, n int) [][]int
	ReplaceAllString(src, repl string) string
}

type re2Program struct {
	re2Like
	groups int
}

func (p re2Program) NumGroups() int { return p.groups }

// inlineFlags prefixes pattern with the RE2 inline flag group for flags.
func inlineFlags(pattern string, flags Flags) string {
	if flags&Quote != 0 {
		pattern = regexp.QuoteMeta(pattern)
	}
	var group []byte
	if flags&IgnoreCase != 0 {
		group = append(group, 'i')
	}
	if flags&Multiline != 0 {
		group = append(group, 'm')
	}
	if flags&DotAll != 0 {
		group = append(group, 's')
	}
	if flags&Ungreedy != 0 {
		group = append(group, 'U')
	}
	if len(group) == 0 {
		return pattern
	}
	return "(?" + string(group) + ")" + pattern
}

// countGroups parses expr with RE2 syntax and returns 1 + its capture count.
func countGroups(expr string) (int, error) {
	re, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		return 0, err
	}
	return re.MaxCap() + 1, nil
}

func compileStdlib(pattern string, flags Flags) (Program, error) {
	re, err := regexp.Compile(inlineFlags(pattern, flags))
	if err != nil {
		return nil, err
	}
	return re2Program{re, re.NumSubexp() + 1}, nil
}

func compileCoregex(pattern string, flags Flags) (Program, error) {
	expr := inlineFlags(pattern, flags)
	re, err := coregex.Compile(expr)
	if err != nil {
		return nil, err
	}
	// coregex counts group 0 in NumSubexp; take the count from the parse
	// tree so every RE2-family engine agrees.
	groups, err := countGroups(expr)
	if err != nil {
		return nil, err
	}
	return re2Program{re, groups}, nil
}

func compileRE2(pattern string, flags Flags) (Program, error) {
	re, err := re2.Compile(inlineFlags(pattern, flags))
	if err != nil {
		return nil, err
	}
	return re2Program{re, re.NumSubexp() + 1}, nil
}
