// Package rx provides ergonomic helpers around regular-expression engines.
//
// rx does not match anything itself. It compiles patterns with one of the
// engines in the engine package and turns their byte-offset results into a
// friendlier model: plain strings for the common cases and Match/Group values
// whose ranges are measured in logical characters (grapheme clusters), so
// "a😀b" has three characters regardless of how many bytes or UTF-16 code
// units it takes.
//
// Basic usage:
//
//	re, err := rx.Compile(`(\d+)-(\d+)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	re.IsMatch("call 555-1234")          // true
//	re.Matches("1-2 and 3-4")            // ["1-2", "3-4"]
//	re.Split("a1-2b")                    // ["a", "b"]
//	re.Replace("1-2", "$2-$1")           // "2-1"
//
// Detailed matches:
//
//	m, ok := re.FirstMatchDetails("é 12-34")
//	// m.Range = [2, 7), m.Groups[1].Value = "12"
//
// Patterns compile case-insensitively unless WithCaseSensitive(true) is
// given. Every method also has a free-function form (IsMatch, Split, ...)
// which compiles through a shared cache of patterns.
//
// A Regex is immutable and safe to use concurrently from multiple goroutines.
package rx

import (
	"strings"

	"github.com/coregx/rx/charindex"
	"github.com/coregx/rx/engine"
)

// Regex is a compiled pattern bound to the engine that compiled it.
//
// Example:
//
//	re := rx.MustCompile(`hello`)
//	if re.IsMatch("Hello world") {
//	    println("matched!")
//	}
type Regex struct {
	prog    engine.Program
	pattern string
	kind    engine.Kind
	config  Config
}

// Compile compiles a regular expression pattern.
//
// The syntax is the one accepted by the selected engine (RE2 syntax for the
// default engines). An invalid pattern yields a *CompileError, which matches
// ErrInvalidPattern under errors.Is.
//
// Example:
//
//	re, err := rx.Compile(`\d{3}-\d{4}`, rx.WithCaseSensitive(true))
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string, opts ...Option) (*Regex, error) {
	return compile(pattern, newConfig(opts))
}

func compile(pattern string, cfg Config) (*Regex, error) {
	prog, kind, err := engine.CompileWithLogger(cfg.Engine, pattern, cfg.Flags, cfg.Logger)
	if err != nil {
		cfg.Logger.Debugf("compiling %q with %s failed: %s", pattern, kind, err)
		return nil, &CompileError{Pattern: pattern, Engine: kind, Err: err}
	}
	PatternCompiles.WithLabelValues(string(kind)).Inc()
	cfg.Logger.Debugf("compiled %q with %s (flags %s)", pattern, kind, cfg.Flags)

	return &Regex{
		prog:    prog,
		pattern: pattern,
		kind:    kind,
		config:  cfg,
	}, nil
}

// MustCompile compiles a regular expression pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
//
// Example:
//
//	var emailRegex = rx.MustCompile(`[a-z]+@[a-z]+\.[a-z]+`)
func MustCompile(pattern string, opts ...Option) *Regex {
	re, err := Compile(pattern, opts...)
	if err != nil {
		panic("rx: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileLiterals compiles a matcher for a fixed set of strings using the
// Aho-Corasick engine. It has no capture groups, and replacement templates
// are inserted verbatim. Case-insensitive matching folds ASCII letters only.
//
// Example:
//
//	re, _ := rx.CompileLiterals([]string{"cat", "dog"})
//	re.Matches("Cat and dog") // ["Cat", "dog"]
func CompileLiterals(words []string, opts ...Option) (*Regex, error) {
	cfg := newConfig(opts)
	pattern := strings.Join(words, "|")

	prog, err := engine.CompileLiterals(words, cfg.Flags)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Engine: engine.Literal, Err: err}
	}
	PatternCompiles.WithLabelValues(string(engine.Literal)).Inc()
	cfg.Logger.Debugf("compiled %d literals (flags %s)", len(words), cfg.Flags)

	return &Regex{
		prog:    prog,
		pattern: pattern,
		kind:    engine.Literal,
		config:  cfg,
	}, nil
}

// String returns the source text used to compile the regular expression.
// For literal sets it is the words joined by "|".
func (r *Regex) String() string {
	return r.pattern
}

// Engine returns the engine that compiled the pattern. It is never Auto.
func (r *Regex) Engine() engine.Kind {
	return r.kind
}

// Flags returns the flags the pattern was compiled with.
func (r *Regex) Flags() engine.Flags {
	return r.config.Flags
}

// CaseSensitive reports whether letters are matched case-sensitively.
func (r *Regex) CaseSensitive() bool {
	return r.config.CaseSensitive()
}

// NumGroups returns the number of groups in every Match, including group 0
// for the whole match.
//
// Example:
//
//	re := rx.MustCompile(`(\w+)@(\w+)\.(\w+)`)
//	println(re.NumGroups()) // 4 (entire match + 3 groups)
func (r *Regex) NumGroups() int {
	return r.prog.NumGroups()
}

// IsMatch reports whether text contains any match of the pattern.
//
// Example:
//
//	re := rx.MustCompile(`\d+`)
//	re.IsMatch("hello 123") // true
func (r *Regex) IsMatch(text string) bool {
	return r.prog.MatchString(text)
}

// IndexOf returns the character index at which the first match starts.
// A match starting inside a character reports the index of that character.
// The boolean is false if there is no match.
//
// Example:
//
//	re := rx.MustCompile(`\d+`)
//	i, _ := re.IndexOf("añ 42") // 3
func (r *Regex) IndexOf(text string) (int, bool) {
	locs, table := r.find(text, 1, false)
	if len(locs) == 0 {
		return -1, false
	}
	if table == nil {
		table = r.table(text)
	}
	i, err := table.CharIndex(locs[0][0])
	if err != nil {
		panic(err)
	}
	return i, true
}

// FirstMatch returns the text of the first match. An empty match yields
// ("", true); no match yields ("", false).
//
// Example:
//
//	re := rx.MustCompile(`\d+`)
//	s, _ := re.FirstMatch("age: 42") // "42"
func (r *Regex) FirstMatch(text string) (string, bool) {
	locs, _ := r.find(text, 1, false)
	if len(locs) == 0 {
		return "", false
	}
	return text[locs[0][0]:locs[0][1]], true
}

// FirstMatchDetails returns the first match with its groups and ranges.
//
// Details need character ranges, so the match and every participating
// group must start and end on character boundaries of the configured
// granularity. Otherwise FirstMatchDetails panics with a
// *charindex.RangeError; use charindex.Runes to match inside grapheme
// clusters.
func (r *Regex) FirstMatchDetails(text string) (Match, bool) {
	locs, table := r.find(text, 1, true)
	if len(locs) == 0 {
		return Match{}, false
	}
	return r.project(table, locs[0]), true
}

// Matches returns the text of every successive non-overlapping match.
//
// Example:
//
//	re := rx.MustCompile(`\d`)
//	re.Matches("a1b2c3") // ["1", "2", "3"]
func (r *Regex) Matches(text string) []string {
	locs, _ := r.find(text, -1, false)
	if len(locs) == 0 {
		return nil
	}
	out := make([]string, len(locs))
	for i, loc := range locs {
		out[i] = text[loc[0]:loc[1]]
	}
	return out
}

// MatchesDetails returns every successive non-overlapping match with its
// groups and ranges. All matches share the same Original text. It panics
// on matches that split a character, as FirstMatchDetails does.
func (r *Regex) MatchesDetails(text string) []Match {
	locs, table := r.find(text, -1, true)
	if len(locs) == 0 {
		return nil
	}
	out := make([]Match, len(locs))
	for i, loc := range locs {
		out[i] = r.project(table, loc)
	}
	return out
}

// Split slices text into the pieces between matches. The result always has
// one more element than there are matches; leading and trailing pieces are
// kept even when empty, and a text without matches yields []string{text}.
//
// Example:
//
//	re := rx.MustCompile(`a+`)
//	re.Split("baaab") // ["b", "b"]
func (r *Regex) Split(text string) []string {
	locs, _ := r.find(text, -1, false)
	pieces := make([]string, 0, len(locs)+1)
	last := 0
	for _, loc := range locs {
		pieces = append(pieces, text[last:loc[0]])
		last = loc[1]
	}
	return append(pieces, text[last:])
}

// Replace replaces every match with template using the engine's native
// template expansion ($1, ${name} for the RE2-family engines and regexp2).
//
// Example:
//
//	re := rx.MustCompile(`(\w+)@(\w+)`)
//	re.Replace("user@example", "$2 at $1") // "example at user"
func (r *Regex) Replace(text, template string) string {
	return r.prog.ReplaceAllString(text, template)
}

// ReplaceFunc replaces matches with the string returned by fn. Matches for
// which fn returns false are left untouched. fn is called for the last match
// first.
//
// Example:
//
//	re := rx.MustCompile(`\d+`)
//	re.ReplaceFunc("1 22", func(s string) (string, bool) {
//	    return strconv.Itoa(len(s)), true
//	}) // "1 2"
func (r *Regex) ReplaceFunc(text string, fn func(string) (string, bool)) string {
	locs, _ := r.find(text, -1, false)
	return splice(text, locs, func(loc []int) (string, bool) {
		return fn(text[loc[0]:loc[1]])
	})
}

// ReplaceMatchFunc replaces matches with the string returned by fn, which
// receives the full match details. Matches for which fn returns false are
// left untouched. Like MatchesDetails it panics on matches that split a
// character.
//
// fn is called in reverse order, last match first, and every match is
// computed against the original text before any replacement is applied, so
// replacements of any length never disturb the ranges of other matches.
//
// Example:
//
//	re := rx.MustCompile(`(\d)-(\d)`)
//	re.ReplaceMatchFunc("1-2 3-4", func(m rx.Match) (string, bool) {
//	    return m.Groups[2].Value + "-" + m.Groups[1].Value, true
//	}) // "2-1 4-3"
func (r *Regex) ReplaceMatchFunc(text string, fn func(Match) (string, bool)) string {
	locs, table := r.find(text, -1, true)
	return splice(text, locs, func(loc []int) (string, bool) {
		return fn(r.project(table, loc))
	})
}

// splice asks with for the replacement of every match, last match first,
// and assembles the result front to back.
func splice(text string, locs [][]int, with func(loc []int) (string, bool)) string {
	if len(locs) == 0 {
		return text
	}

	type edit struct {
		start, end int
		with       string
	}
	// Collected last match first.
	edits := make([]edit, 0, len(locs))
	for i := len(locs) - 1; i >= 0; i-- {
		if s, ok := with(locs[i]); ok {
			edits = append(edits, edit{locs[i][0], locs[i][1], s})
		}
	}
	if len(edits) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for i := len(edits) - 1; i >= 0; i-- {
		e := edits[i]
		b.WriteString(text[last:e.start])
		b.WriteString(e.with)
		last = e.end
	}
	b.WriteString(text[last:])
	return b.String()
}

func (r *Regex) table(text string) *charindex.Table {
	return charindex.NewTable(text, charindex.UTF8, r.config.Granularity)
}

// find returns up to n engine matches (all if n < 0), plus the character
// table of text when one was needed. Empty matches that fall inside a
// logical character are dropped, so empty matches are only ever reported on
// character boundaries. With project set, non-empty matches must be aligned
// too and the table is always built.
func (r *Regex) find(text string, n int, project bool) ([][]int, *charindex.Table) {
	locs := r.prog.FindAllStringSubmatchIndex(text, n)
	if len(locs) == 0 {
		return nil, nil
	}
	if !project && !hasEmpty(locs) {
		return locs, nil
	}
	table := r.table(text)

	kept := r.aligned(table, locs, project)
	if n > 0 && len(kept) < len(locs) {
		// Some of the first n were dropped; later matches may take their place.
		kept = r.aligned(table, r.prog.FindAllStringSubmatchIndex(text, -1), project)
		if len(kept) > n {
			kept = kept[:n]
		}
	}
	return kept, table
}

func hasEmpty(locs [][]int) bool {
	for _, loc := range locs {
		if loc[0] == loc[1] {
			return true
		}
	}
	return false
}

func (r *Regex) aligned(table *charindex.Table, locs [][]int, project bool) [][]int {
	kept := make([][]int, 0, len(locs))
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if start == end {
			if _, err := table.ToCharRange(charindex.UnitRange{Start: start}); err != nil {
				continue
			}
		} else if project {
			r.charRange(table, start, end)
		}
		kept = append(kept, loc)
	}
	return kept
}

// charRange converts an engine byte span. A span that does not line up with
// character boundaries means the engine and the granularity disagree about
// the text; that is not recoverable, so it panics with the *RangeError.
func (r *Regex) charRange(table *charindex.Table, start, end int) charindex.CharRange {
	cr, err := table.ToCharRange(charindex.UnitRange{Start: start, Length: end - start})
	if err != nil {
		r.config.Logger.WithError(err).Errorf(
			"%s reported span [%d, %d) for %q that does not fall on %s boundaries",
			r.kind, start, end, r.pattern, r.config.Granularity)
		panic(err)
	}
	return cr
}
