package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainHelpFlagDoesNotExit(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"pagelist", "--help"}
	defer func() { os.Args = oldArgs }()

	// main() should return normally for help (no os.Exit).
	main()
}

func TestRootRegistersSubcommandsAndFlags(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"dump", "config"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
	for _, flag := range []string{"config", "data", "url", "page-size", "server-search", "search-type", "single", "sort-on", "sort-dir", "log-file", "log-level"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestRootDumpRunsWithoutTerminal(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	data := filepath.Join(t.TempDir(), "items.yaml")
	require.NoError(t, os.WriteFile(data, []byte("items:\n  - key: a\n    caption: Alpha\n"), 0600))

	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetArgs([]string{"dump", "--data", data})
	require.NoError(t, root.Execute())
	assert.Equal(t, "a\tAlpha\n", out.String())
}

func TestIsInteractiveTerminalRejectsFiles(t *testing.T) {
	assert.False(t, isInteractiveTerminal(nil))

	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isInteractiveTerminal(f))
}
