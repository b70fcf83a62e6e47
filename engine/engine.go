// Package engine defines the contract rx needs from a regular-expression
// engine and adapts the engines available to Go programs to it.
//
// A Program exposes exactly four primitives: compile (Compile), test
// (MatchString), enumerate (FindAllStringSubmatchIndex) and whole-text
// template replacement (ReplaceAllString). Offsets are always byte offsets
// into the searched string, and a group that did not participate in a match
// is reported as the pair (-1, -1), following the stdlib regexp convention.
// Engines that index text differently convert inside their adapter.
//
// Supported engines:
//   - Coregex: github.com/coregx/coregex, SIMD-accelerated RE2 syntax
//   - Stdlib: Go's regexp package
//   - RE2: github.com/wasilibs/go-re2, the C++ RE2 library compiled to wasm
//   - Regexp2: github.com/dlclark/regexp2, backtracking with lookaround and
//     backreferences
//   - Literal: github.com/coregx/ahocorasick over a fixed set of strings
//
// Auto picks one of them from the pattern and the host CPU.
package engine

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Program is a compiled pattern. Implementations are immutable and safe for
// concurrent use by multiple goroutines.
type Program interface {
	// NumGroups returns the number of groups reported per match, including
	// group 0 for the whole match.
	NumGroups() int

	// MatchString reports whether s contains any match.
	MatchString(s string) bool

	// FindAllStringSubmatchIndex returns successive non-overlapping matches
	// as 2*NumGroups() byte offsets each. If n >= 0 at most n matches are
	// returned.
	FindAllStringSubmatchIndex(s string, n int) [][]int

	// ReplaceAllString replaces every match in src with template, expanding
	// group references the way the engine natively does.
	ReplaceAllString(src, template string) string
}

// Kind names an engine.
type Kind string

const (
	Auto    Kind = "auto"
	Coregex Kind = "coregex"
	Stdlib  Kind = "stdlib"
	RE2     Kind = "re2"
	Regexp2 Kind = "regexp2"
	Literal Kind = "literal"
)

// Kinds lists every concrete engine.
var Kinds = []Kind{Coregex, Stdlib, RE2, Regexp2, Literal}

// ParseKind parses an engine name. The empty string selects Auto.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return Auto, nil
	case Auto, Coregex, Stdlib, RE2, Regexp2, Literal:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEngine, s)
	}
}

// Flags are compile options shared by every engine.
type Flags uint8

const (
	// IgnoreCase matches letters case-insensitively.
	IgnoreCase Flags = 1 << iota
	// Multiline makes ^ and $ match at line boundaries.
	Multiline
	// DotAll lets . match \n.
	DotAll
	// Ungreedy swaps the meaning of x* and x*?.
	Ungreedy
	// Quote treats the pattern as literal text.
	Quote
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{IgnoreCase, "ignore_case"},
	{Multiline, "multiline"},
	{DotAll, "dot_all"},
	{Ungreedy, "ungreedy"},
	{Quote, "quote"},
}

// String returns the flag names joined by "|".
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}

// ParseFlags parses flag names as returned by Flags.String.
func ParseFlags(names []string) (Flags, error) {
	var f Flags
next:
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		for _, fn := range flagNames {
			if fn.name == name {
				f |= fn.flag
				continue next
			}
		}
		return 0, fmt.Errorf("unknown flag %q", name)
	}
	return f, nil
}

var (
	// ErrUnknownEngine indicates an engine name that is not registered.
	ErrUnknownEngine = errors.New("unknown regex engine")

	// ErrUnsupportedFlag indicates a flag the selected engine cannot honor.
	ErrUnsupportedFlag = errors.New("flag not supported by engine")

	// ErrEmptyLiteral indicates an empty string in a literal set.
	ErrEmptyLiteral = errors.New("empty literal")
)

// Compile compiles pattern with the engine of the given kind and returns the
// program together with the kind that compiled it, which differs from kind
// only for Auto. Syntax errors are returned exactly as the engine reports them.
// Runtime diagnostics go to the logrus standard logger.
func Compile(kind Kind, pattern string, flags Flags) (Program, Kind, error) {
	return CompileWithLogger(kind, pattern, flags, nil)
}

// CompileWithLogger is like Compile but sends runtime diagnostics, such as
// regexp2 match timeouts, to logger. A nil logger selects the standard one.
func CompileWithLogger(kind Kind, pattern string, flags Flags, logger *log.Entry) (Program, Kind, error) {
	if kind == "" || kind == Auto {
		kind = Select(pattern, flags)
	}
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}

	var (
		prog Program
		err  error
	)
	switch kind {
	case Coregex:
		prog, err = compileCoregex(pattern, flags)
	case Stdlib:
		prog, err = compileStdlib(pattern, flags)
	case RE2:
		prog, err = compileRE2(pattern, flags)
	case Regexp2:
		prog, err = compileRegexp2(pattern, flags, logger)
	case Literal:
		prog, err = CompileLiterals([]string{pattern}, flags)
	default:
		return nil, kind, fmt.Errorf("%w: %q", ErrUnknownEngine, string(kind))
	}
	if err != nil {
		return nil, kind, err
	}
	return prog, kind, nil
}
