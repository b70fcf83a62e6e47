package engine

import (
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

var patternEngines = []Kind{Coregex, Stdlib, RE2, Regexp2}

func mustCompile(t *testing.T, kind Kind, pattern string, flags Flags) Program {
	t.Helper()
	prog, got, err := Compile(kind, pattern, flags)
	require.NoError(t, err)
	require.Equal(t, kind, got)
	return prog
}

func TestParseKind(t *testing.T) {
	for _, k := range append([]Kind{Auto}, Kinds...) {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		require.Equal(t, k, got)
	}

	got, err := ParseKind(" RE2 ")
	require.NoError(t, err)
	require.Equal(t, RE2, got)

	got, err = ParseKind("")
	require.NoError(t, err)
	require.Equal(t, Auto, got)

	_, err = ParseKind("pcre")
	require.ErrorIs(t, err, ErrUnknownEngine)
}

func TestFlags(t *testing.T) {
	require.Equal(t, "none", Flags(0).String())
	require.Equal(t, "ignore_case|dot_all", (IgnoreCase | DotAll).String())

	f, err := ParseFlags([]string{"multiline", " Ungreedy", "quote"})
	require.NoError(t, err)
	require.Equal(t, Multiline|Ungreedy|Quote, f)

	_, err = ParseFlags([]string{"extended"})
	require.Error(t, err)
}

func TestCompile_Groups(t *testing.T) {
	for _, kind := range patternEngines {
		t.Run(string(kind), func(t *testing.T) {
			prog := mustCompile(t, kind, `(a)(b)?`, 0)
			require.Equal(t, 3, prog.NumGroups())
			require.True(t, prog.MatchString("a"))
			require.Equal(t, [][]int{{0, 1, 0, 1, -1, -1}}, prog.FindAllStringSubmatchIndex("a", -1))

			prog = mustCompile(t, kind, `abc`, 0)
			require.Equal(t, 1, prog.NumGroups())
		})
	}
}

func TestCompile_MultibyteOffsets(t *testing.T) {
	for _, kind := range patternEngines {
		t.Run(string(kind), func(t *testing.T) {
			prog := mustCompile(t, kind, `é+`, 0)
			require.Equal(t, [][]int{{1, 5}}, prog.FindAllStringSubmatchIndex("xééy", -1))

			prog = mustCompile(t, kind, `(\d)(😀)?`, 0)
			require.Equal(t,
				[][]int{{2, 7, 2, 3, 3, 7}, {8, 9, 8, 9, -1, -1}},
				prog.FindAllStringSubmatchIndex("é1😀 2", -1))
		})
	}
}

func TestCompile_Limit(t *testing.T) {
	for _, kind := range patternEngines {
		t.Run(string(kind), func(t *testing.T) {
			prog := mustCompile(t, kind, `\d`, 0)
			require.Len(t, prog.FindAllStringSubmatchIndex("1 2 3", -1), 3)
			require.Len(t, prog.FindAllStringSubmatchIndex("1 2 3", 2), 2)
			require.Empty(t, prog.FindAllStringSubmatchIndex("1 2 3", 0))
			require.Empty(t, prog.FindAllStringSubmatchIndex("abc", -1))
		})
	}
}

func TestCompile_EmptyMatches(t *testing.T) {
	for _, kind := range patternEngines {
		t.Run(string(kind), func(t *testing.T) {
			prog := mustCompile(t, kind, `x*`, 0)
			require.Equal(t,
				[][]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}},
				prog.FindAllStringSubmatchIndex("abc", -1))
		})
	}
}

func TestCompile_Replace(t *testing.T) {
	for _, kind := range patternEngines {
		t.Run(string(kind), func(t *testing.T) {
			prog := mustCompile(t, kind, `(\d)-(\d)`, 0)
			require.Equal(t, "2-1 4-3", prog.ReplaceAllString("1-2 3-4", "$2-$1"))
			require.Equal(t, "none", prog.ReplaceAllString("none", "$2-$1"))
		})
	}
}

func TestCompile_Flags(t *testing.T) {
	for _, kind := range patternEngines {
		t.Run(string(kind), func(t *testing.T) {
			require.False(t, mustCompile(t, kind, `abc`, 0).MatchString("xABCx"))
			require.True(t, mustCompile(t, kind, `abc`, IgnoreCase).MatchString("xABCx"))

			require.False(t, mustCompile(t, kind, `^b$`, 0).MatchString("a\nb\nc"))
			require.True(t, mustCompile(t, kind, `^b$`, Multiline).MatchString("a\nb\nc"))

			require.False(t, mustCompile(t, kind, `a.b`, 0).MatchString("a\nb"))
			require.True(t, mustCompile(t, kind, `a.b`, DotAll).MatchString("a\nb"))

			quoted := mustCompile(t, kind, `a.b`, Quote)
			require.True(t, quoted.MatchString("a.b"))
			require.False(t, quoted.MatchString("axb"))
		})
	}
}

func TestCompile_Ungreedy(t *testing.T) {
	for _, kind := range []Kind{Coregex, Stdlib, RE2} {
		t.Run(string(kind), func(t *testing.T) {
			prog := mustCompile(t, kind, `a+`, Ungreedy)
			require.Equal(t, [][]int{{0, 1}, {1, 2}}, prog.FindAllStringSubmatchIndex("aa", -1))
		})
	}

	_, _, err := Compile(Regexp2, `a+`, Ungreedy)
	require.ErrorIs(t, err, ErrUnsupportedFlag)
}

func TestCompile_Errors(t *testing.T) {
	for _, kind := range patternEngines {
		t.Run(string(kind), func(t *testing.T) {
			_, got, err := Compile(kind, `(`, 0)
			require.Error(t, err)
			require.Equal(t, kind, got)
		})
	}

	_, _, err := Compile("pcre", `a`, 0)
	require.ErrorIs(t, err, ErrUnknownEngine)
}

func TestRegexp2_Lookaround(t *testing.T) {
	prog := mustCompile(t, Regexp2, `foo(?=bar)`, 0)
	require.Equal(t, [][]int{{0, 3}}, prog.FindAllStringSubmatchIndex("foobar foobaz", -1))

	prog = mustCompile(t, Regexp2, `(\w)\1`, 0)
	require.Equal(t, [][]int{{3, 5, 3, 4}}, prog.FindAllStringSubmatchIndex("abcdde", -1))
}

func TestCompile_NamedGroupsInSourceOrder(t *testing.T) {
	for _, kind := range patternEngines {
		t.Run(string(kind), func(t *testing.T) {
			prog := mustCompile(t, kind, `(?P<y>\d)-(\d)`, 0)
			require.Equal(t, 3, prog.NumGroups())
			require.Equal(t, [][]int{{0, 3, 0, 1, 2, 3}}, prog.FindAllStringSubmatchIndex("1-2", -1))

			prog = mustCompile(t, kind, `(a)(?P<n>b)(c)?(?:d)(e)`, 0)
			require.Equal(t, 5, prog.NumGroups())
			require.Equal(t,
				[][]int{{0, 4, 0, 1, 1, 2, -1, -1, 3, 4}},
				prog.FindAllStringSubmatchIndex("abde", -1))
		})
	}
}

func TestRegexp2_NamedGroupSyntax(t *testing.T) {
	prog := mustCompile(t, Regexp2, `(?P<w>\w)\1`, 0)
	require.Equal(t, [][]int{{3, 5, 3, 4}}, prog.FindAllStringSubmatchIndex("abcdde", -1))

	prog = mustCompile(t, Regexp2, `(?<q>['"])(\w+)\k<q>`, 0)
	require.Equal(t, [][]int{{2, 7, 2, 3, 3, 6}}, prog.FindAllStringSubmatchIndex("x 'abc' y", -1))

	_, got, err := Compile(Auto, `(?P<w>\w)\1`, 0)
	require.NoError(t, err)
	require.Equal(t, Regexp2, got)
}

func TestCaptureNames(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		{`abc`, nil},
		{`(a)(b)`, []string{"", ""}},
		{`(?P<x>a)(b)(?<y>c)(?'z'd)`, []string{"x", "", "y", "z"}},
		{`(?:a)(?=b)(?!c)(?<=d)(?<!e)(?>f)(?i)`, nil},
		{`\((a)[(](b)`, []string{"", ""}},
		{`[\](](c)`, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			require.Equal(t, tt.want, captureNames(tt.pattern))
		})
	}
}

func TestRegexp2_WarningsUseLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	prog, _, err := CompileWithLogger(Regexp2, `(a+)+$`, 0, log.NewEntry(logger))
	require.NoError(t, err)

	prog.(*regexp2Program).re.MatchTimeout = time.Millisecond
	require.False(t, prog.MatchString(strings.Repeat("a", 40)+"!"))

	require.NotEmpty(t, hook.AllEntries())
	require.Equal(t, log.WarnLevel, hook.LastEntry().Level)
	require.Contains(t, hook.LastEntry().Message, "regexp2: match")
}

func TestLiterals_InvalidUTF8(t *testing.T) {
	for _, flags := range []Flags{0, IgnoreCase} {
		t.Run(flags.String(), func(t *testing.T) {
			prog, err := CompileLiterals([]string{"b"}, flags)
			require.NoError(t, err)

			require.Equal(t, [][]int{{2, 3}}, prog.FindAllStringSubmatchIndex("\xffab", -1))
			require.Equal(t, [][]int{{1, 2}, {4, 5}}, prog.FindAllStringSubmatchIndex("\xc3b\xe2\x82b", -1))
			require.Equal(t, "\xffaX", prog.ReplaceAllString("\xffab", "X"))
		})
	}

	prog, err := CompileLiterals([]string{"\xffA"}, IgnoreCase)
	require.NoError(t, err)
	require.Equal(t, [][]int{{1, 3}}, prog.FindAllStringSubmatchIndex("z\xffaz", -1))
}

func TestLiterals(t *testing.T) {
	prog, err := CompileLiterals([]string{"cat", "dog"}, 0)
	require.NoError(t, err)
	require.Equal(t, 1, prog.NumGroups())
	require.True(t, prog.MatchString("hotdog"))
	require.False(t, prog.MatchString("CAT"))
	require.Equal(t, [][]int{{0, 3}, {8, 11}}, prog.FindAllStringSubmatchIndex("cat and dog", -1))
	require.Equal(t, [][]int{{0, 3}}, prog.FindAllStringSubmatchIndex("cat and dog", 1))
	require.Equal(t, "a pet and a pet", prog.ReplaceAllString("a cat and a dog", "pet"))
	require.Equal(t, "a $1", prog.ReplaceAllString("a cat", "$1"))

	prog, err = CompileLiterals([]string{"cat", "Dög"}, IgnoreCase)
	require.NoError(t, err)
	require.Equal(t, [][]int{{0, 3}, {8, 12}}, prog.FindAllStringSubmatchIndex("CAT and DöG", -1))

	_, err = CompileLiterals([]string{"a", ""}, 0)
	require.ErrorIs(t, err, ErrEmptyLiteral)

	prog, got, err := Compile(Literal, "a.b", 0)
	require.NoError(t, err)
	require.Equal(t, Literal, got)
	require.True(t, prog.MatchString("xa.bx"))
	require.False(t, prog.MatchString("axb"))
}

func TestNeedsBacktracking(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{`\d+`, false},
		{`(?P<year>\d{4})`, false},
		{`(?<year>\d{4})`, false},
		{`(?i)abc`, false},
		{`a\+\+`, false},
		{`[?=]`, false},
		{`[]*+]`, false},
		{`[\1]`, false},
		{`foo(?=bar)`, true},
		{`foo(?!bar)`, true},
		{`(?<=\$)\d+`, true},
		{`(?<!x)y`, true},
		{`(?>a+)b`, true},
		{`(\w)\1`, true},
		{`(?<q>')\k<q>`, true},
		{`a++`, true},
		{`a{2}+`, true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			require.Equal(t, tt.want, NeedsBacktracking(tt.pattern))
		})
	}
}

func TestSelect(t *testing.T) {
	fast := Stdlib
	if accelerated {
		fast = Coregex
	}
	require.Equal(t, fast, Select(`\d+`, 0))
	require.Equal(t, Regexp2, Select(`foo(?=bar)`, 0))
	require.Equal(t, fast, Select(`foo(?=bar)`, Quote))

	_, got, err := Compile(Auto, `(\w)\1`, 0)
	require.NoError(t, err)
	require.Equal(t, Regexp2, got)

	_, got, err = Compile("", `\w`, 0)
	require.NoError(t, err)
	require.Equal(t, fast, got)
}
