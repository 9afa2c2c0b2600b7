package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestMatchCommand(t *testing.T) {
	out, err := runCommand(t, "match", "a+b", "a", "b", "ab")
	require.NoError(t, err)
	require.Contains(t, out, "\"a\"\ttrue")
	require.Contains(t, out, "\"b\"\ttrue")
	require.Contains(t, out, "\"ab\"\tfalse")
}

func TestMatchCommandMalformedPattern(t *testing.T) {
	_, err := runCommand(t, "match", "a+", "a")
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse error")
}

func TestGenCommand(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "matcher.go")
	out, err := runCommand(t, "gen", "ab", "--name", "Ab", "--package", "demo", "--output", outputFile)
	require.NoError(t, err)
	require.Contains(t, out, "wrote "+outputFile)

	src, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	require.Contains(t, string(src), "package demo")
	require.Contains(t, string(src), "func (Ab) MatchString(input string) bool")
}

func TestGenCommandMalformedPattern(t *testing.T) {
	_, err := runCommand(t, "gen", "(", "--output", filepath.Join(t.TempDir(), "x.go"))
	require.Error(t, err)
}
