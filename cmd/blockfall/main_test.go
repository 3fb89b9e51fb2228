package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/blockfall/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestLayoutDefaults(t *testing.T) {
	out, logs, err := execute(t, "layout")
	require.NoError(t, err)

	assert.Equal(t, `window  "Tetris" 600x800 resizable=false
board   20 rows x 10 cols, spacing 2
cell    38 px (step 40)
grid    400 x 800 px
spawn   (19, 781)
tiles   200
pieces  1 (4 cells)
`, out)
	assert.Contains(t, logs, "world ready")
}

func TestLayoutFromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
board {
  rows    = 10
  cols    = 5
  spacing = 0
}
`), 0o644))

	out, _, err := execute(t, "layout", "--config", path, "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "board   10 rows x 5 cols, spacing 0\n")
	assert.Contains(t, out, "cell    80 px (step 80)\n")
	assert.Contains(t, out, "spawn   (40, 760)\n")
	assert.Contains(t, out, "tiles   50\n")
}

func TestLogLevelFiltersStartupLogs(t *testing.T) {
	_, logs, err := execute(t, "layout", "--log-level", "error")
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestInvalidConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.hcl")
	require.NoError(t, os.WriteFile(path, []byte("window {\n  height = 0\n}\n"), 0o644))

	_, _, err := execute(t, "layout", "--config", path)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestMissingConfigFails(t *testing.T) {
	_, _, err := execute(t, "layout", "--config", filepath.Join(t.TempDir(), "missing.hcl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRejectsExtraArgs(t *testing.T) {
	_, _, err := execute(t, "layout", "extra")
	assert.Error(t, err)
}

func TestDebugFlagIsRootOnly(t *testing.T) {
	_, _, err := execute(t, "layout", "--debug")
	assert.Error(t, err)
}
