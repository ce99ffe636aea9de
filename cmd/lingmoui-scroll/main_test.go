package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdRejectsInvalidLogLevel(t *testing.T) {
	cmd := newRootCmd("test")
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--log-level", "loud"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestRootCmdRejectsNegativeStep(t *testing.T) {
	cmd := newRootCmd("test")
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--step", "-5"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step must be >= 0")
}

func TestRootCmdRejectsExtraArgs(t *testing.T) {
	cmd := newRootCmd("test")
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"a.txt", "b.txt"})

	require.Error(t, cmd.Execute())
}

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "text.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0o600))

	lines, err := readLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, lines)

	_, err = readLines(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)

	lines, err = readLines("")
	require.NoError(t, err)
	assert.Len(t, lines, 200)
}
