package vregex

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, pattern string) *Engine {
	t.Helper()
	engine, err := Compile(pattern)
	require.NoError(t, err)
	return engine
}

func TestSingleLiterals(t *testing.T) {
	for c := byte('a'); c <= 'z'; c++ {
		engine := mustCompile(t, string(c))

		require.True(t, engine.Matches(string(c)))
		require.False(t, engine.Matches(""))

		other := c + 1
		if other > 'z' {
			other = 'a'
		}
		require.False(t, engine.Matches(string(other)))
	}
}

func TestAlternation(t *testing.T) {
	// '+' is either-or, not one-or-more.
	engine := mustCompile(t, "a+b")
	require.True(t, engine.Matches("a"))
	require.True(t, engine.Matches("b"))
	require.False(t, engine.Matches("c"))
	require.False(t, engine.Matches("ab"))
	require.False(t, engine.Matches("aa"))
	require.False(t, engine.Matches(""))
}

func TestConcatenation(t *testing.T) {
	engine := mustCompile(t, "ab")
	require.True(t, engine.Matches("ab"))
	require.False(t, engine.Matches("a"))
	require.False(t, engine.Matches("b"))
	require.False(t, engine.Matches(""))
	require.False(t, engine.Matches("ba"))
}

func TestStar(t *testing.T) {
	engine := mustCompile(t, "a*")
	require.True(t, engine.Matches(""))
	require.True(t, engine.Matches("a"))
	require.True(t, engine.Matches("aaaaaaaaaaa"))
	require.False(t, engine.Matches("b"))
}

func TestComposite(t *testing.T) {
	engine := mustCompile(t, "((ab)+c)*(z+x)*")

	accepted := []string{
		"c", "ab", "abzzzzzxxxxx", "ccccccczzzzzxxxxx", "ccccccc",
		"ababababzxzxzxzxzxzx", "zzxx", "",
	}
	for _, s := range accepted {
		require.True(t, engine.Matches(s), "expected match for %q", s)
	}

	rejected := []string{"a", "b", "r"}
	for _, s := range rejected {
		require.False(t, engine.Matches(s), "expected no match for %q", s)
	}
}

func TestQueriesAreIndependent(t *testing.T) {
	engine := mustCompile(t, "a+b")

	// Interleave matching and non-matching queries; no state may leak from
	// one call into the next.
	for i := 0; i < 3; i++ {
		require.True(t, engine.Matches("a"))
		require.False(t, engine.Matches("ab"))
		require.True(t, engine.Matches("b"))
		require.False(t, engine.Matches(""))
		require.True(t, engine.Matches("a"))
	}
}

func TestMalformedPatterns(t *testing.T) {
	for _, pattern := range []string{"(", ")", "1", "a+", "a)", ""} {
		t.Run(pattern, func(t *testing.T) {
			engine, err := Compile(pattern)
			require.Nil(t, engine)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
		})
	}
}

func TestMalformedPatternsRejectedInBestEffortMode(t *testing.T) {
	// Best-effort covers construction failures only; bad syntax is always a
	// hard error.
	engine, err := CompileWithOptions(Options{Pattern: "a+", Mode: BestEffort})
	require.Nil(t, engine)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestBestEffortCompilesValidPatterns(t *testing.T) {
	engine, err := CompileWithOptions(Options{Pattern: "a*", Mode: BestEffort})
	require.NoError(t, err)
	require.True(t, engine.Matches("aa"))
}

func TestOptionsValidate(t *testing.T) {
	require.NoError(t, Options{Pattern: "a", Mode: Strict}.Validate())
	require.NoError(t, Options{Pattern: "a", Mode: BestEffort}.Validate())
	require.Error(t, Options{Pattern: "a", Mode: FailureMode(42)}.Validate())
}

func TestEpsilonCycleSafety(t *testing.T) {
	// Star wrappers carry a mutual epsilon loop; closure computation and
	// both simulation paths must terminate on it.
	engine := mustCompile(t, "(a*b*)*")
	require.True(t, engine.Matches(""))
	require.True(t, engine.Matches("abab"))
	require.True(t, engine.Matches("bbaa"))
	require.False(t, engine.Matches("abc"))
}

func TestVerboseLogging(t *testing.T) {
	var buf bytes.Buffer
	engine, err := CompileWithOptions(Options{
		Pattern:   "a+b",
		Verbose:   true,
		LogOutput: &buf,
	})
	require.NoError(t, err)
	require.True(t, engine.Matches("a"))
	require.Contains(t, buf.String(), "[vregex]")
}

func TestPattern(t *testing.T) {
	require.Equal(t, "a+b", mustCompile(t, "a+b").Pattern())
}

func TestGenerate(t *testing.T) {
	engine := mustCompile(t, "a+b")
	outputFile := filepath.Join(t.TempDir(), "matcher.go")

	require.NoError(t, engine.Generate(GenerateOptions{
		Name:       "AOrB",
		Package:    "demo",
		OutputFile: outputFile,
	}))

	src, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	require.Contains(t, string(src), "func (AOrB) MatchString(input string) bool")
}
