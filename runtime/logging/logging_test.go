package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevels(t *testing.T) {
	var quiet, loud bytes.Buffer

	New(Options{Stderr: &quiet}).Debug("hidden")
	New(Options{Stderr: &quiet}).Warn("shown", "rung", 3)
	New(Options{Stderr: &loud, Debug: true}).Debug("visible")

	assert.NotContains(t, quiet.String(), "hidden")
	assert.Contains(t, quiet.String(), "msg=shown rung=3")
	assert.NotContains(t, quiet.String(), "time=")
	assert.Contains(t, loud.String(), "visible")
}

func TestFanoutToFile(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := New(Options{Stderr: &stderr, File: &file})

	logger.Debug("indexed rung", "location", "Main/0")
	logger.Warn("unknown key", "key", "XIX")

	assert.NotContains(t, stderr.String(), "indexed rung")
	assert.Contains(t, stderr.String(), "unknown key")

	lines := strings.Split(strings.TrimSpace(file.String()), "\n")
	require.Len(t, lines, 2)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "indexed rung", record["msg"])
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "Main/0", record["location"])
}

func TestDebugFromEnv(t *testing.T) {
	t.Setenv(DebugEnv, "")
	assert.False(t, DebugFromEnv())
	t.Setenv(DebugEnv, "1")
	assert.True(t, DebugFromEnv())
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logix.log")

	for range 2 {
		f, err := OpenFile(path)
		require.NoError(t, err)
		New(Options{Stderr: &bytes.Buffer{}, File: f}).Info("run")
		require.NoError(t, f.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), `"msg":"run"`))
}
