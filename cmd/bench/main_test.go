package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestLineCommand(t *testing.T) {
	out := execute(t, "line", "--iterations", "200000", "--time-limit", "0", "--seed", "7", "--silent")
	assert.Contains(t, out, "best x=42 score=0.000")
	assert.Contains(t, out, "stop=done")
}

func TestBenchCommand_ConfigWithOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bench.yaml")
	outPath := filepath.Join(dir, "out", "results.csv")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
pairs: [6x2]
algos: [swap, insert]
runs: 2
solver:
  max_iterations: 300
`), 0o644))

	out := execute(t, "--config", cfgPath, "--out", outPath, "--runs", "3")
	assert.Contains(t, out, "SA-swap")
	assert.Contains(t, out, "SA-insert")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "SA-swap,6,2,3,"), lines[1])
}
