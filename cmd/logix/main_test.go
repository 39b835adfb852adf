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

func execute(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"--no-color"}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func csvLines(out string) []string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) == 0 {
		return nil
	}
	return lines[1:] // drop header
}

func TestInstructionsCommand(t *testing.T) {
	code, out, stderr := execute(t, "", "-o", "csv", "instructions", "[XIC(SomeBit),XIO(AnotherBit)]OTE(OutputBit);")
	require.Equal(t, 0, code, stderr)

	lines := csvLines(out)
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "args/0,XIC(SomeBit)"))
	assert.True(t, strings.HasPrefix(lines[1], "args/0,XIO(AnotherBit)"))
	assert.True(t, strings.HasPrefix(lines[2], "args/0,OTE(OutputBit)"))
}

func TestInstructionsFilters(t *testing.T) {
	rung := "XIC(a)XIC(b)XIO(a)OTE(c);"

	code, out, _ := execute(t, "", "-o", "csv", "instructions", "--key", "xic", rung)
	require.Equal(t, 0, code)
	assert.Len(t, csvLines(out), 2)

	code, out, _ = execute(t, "", "-o", "csv", "instructions", "--like", "XIC(A)", rung)
	require.Equal(t, 0, code)
	lines := csvLines(out)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "XIC(a)")

	code, _, stderr := execute(t, "", "instructions", "--like", "XIC(", rung)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error:")
}

func TestTagsCommand(t *testing.T) {
	rung := "[XIC(SomeBit),XIO(AnotherBit)]OTE(OutputBit);"

	code, out, _ := execute(t, "", "-o", "csv", "tags", "--in", "OTE", rung)
	require.Equal(t, 0, code)
	lines := csvLines(out)
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "args/0,OutputBit"))

	code, out, _ = execute(t, "", "-o", "csv", "tags", rung)
	require.Equal(t, 0, code)
	assert.Len(t, csvLines(out), 3)
}

func TestCheckCommand(t *testing.T) {
	code, out, _ := execute(t, "", "-o", "csv", "check", "XIC(a)OTE(b);")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "ok")

	code, out, _ = execute(t, "", "-o", "csv", "check", "XIC(a)OTE(b);", "XIC(a;")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "args/1,unbalanced")
}

func TestParseCommand(t *testing.T) {
	code, out, _ := execute(t, "", "-o", "csv", "parse", "TON(SomeTimer,5000,0);")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "args/0,TON,tag:SomeTimer | immediate INT:5000 | immediate SINT:0")

	code, _, stderr := execute(t, "", "parse", "XIC(a b);")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "cannot parse rung args/0")
}

func TestKeywordsCommand(t *testing.T) {
	code, out, _ := execute(t, "", "-o", "csv", "keywords", "IF Run THEN Out := 1; END_IF;")
	require.Equal(t, 0, code)
	assert.Len(t, csvLines(out), 3)
	assert.Contains(t, out, "args/0,END_IF")

	code, out, _ = execute(t, "", "-o", "csv", "keywords", "--all")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "WHILE")
}

func TestKeysCommand(t *testing.T) {
	code, out, _ := execute(t, "", "-o", "csv", "keys", "--task")
	require.Equal(t, 0, code)
	lines := csvLines(out)
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "EVENT,"))

	code, _, _ = execute(t, "", "keys", "--task", "--routine")
	assert.Equal(t, 1, code)
}

func TestLookupCommand(t *testing.T) {
	code, out, _ := execute(t, "", "-o", "csv", "lookup", "ton")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "TON,")

	code, _, stderr := execute(t, "", "lookup", "XIX")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "did you mean XIC?")
}

func TestLintCommand(t *testing.T) {
	code, out, _ := execute(t, "", "-o", "csv", "lint", "XIX(a)OTE(b);")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "warning,unknown-key")
	assert.Contains(t, out, "XIC")

	code, _, _ = execute(t, "", "lint", "--unknown-keys", "error", "XIX(a)OTE(b);")
	assert.Equal(t, 1, code)

	code, _, _ = execute(t, "", "lint", "--unknown-keys", "ignore", "XIX(a)OTE(b);")
	assert.Equal(t, 0, code)

	code, _, _ = execute(t, "", "lint", "XIC(a;")
	assert.Equal(t, 1, code)
}

func TestConfigRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logix.yaml")
	cfg := "version: 1.0.0\ninstructions:\n  - key: Valve_Ctl\nlint:\n  unknownKeys: error\n"
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))

	code, out, stderr := execute(t, "", "--config", path, "-o", "csv", "lint", "Valve_Ctl(V1)OTE(b);")
	assert.Equal(t, 0, code, stderr)
	assert.Empty(t, csvLines(out))

	code, _, _ = execute(t, "", "--config", path, "lint", "Other_Aoi(V1);")
	assert.Equal(t, 1, code, "config policy makes unknown keys errors")

	code, _, stderr = execute(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "keys")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error:")
}

func TestFileAndStdinInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rungs.txt")
	require.NoError(t, os.WriteFile(path, []byte("XIC(a)OTE(b);\n\n  XIO(c)OTE(d);\n"), 0o644))

	code, out, _ := execute(t, "", "-o", "csv", "-f", path, "instructions")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "rungs.txt/0,XIC(a)")
	assert.Contains(t, out, "rungs.txt/1,XIO(c)")

	code, out, _ = execute(t, "XIC(a)OTE(b);\n", "-o", "csv", "-f", "-", "instructions")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "stdin/0,OTE(b)")

	code, out, _ = execute(t, "XIC(piped);\n", "-o", "csv", "tags")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "stdin/0,piped")

	code, _, stderr := execute(t, "", "-f", filepath.Join(t.TempDir(), "nope.txt"), "tags")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "error opening file")
}

func TestNoInput(t *testing.T) {
	_, _, _, err := getInputReader("", nil)
	var cliErr *CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, "usage", cliErr.Type)
}

func TestXrefCommand(t *testing.T) {
	rungs := []string{"XIC(Start)OTE(Motor.Run);", "XIC(Motor.Run)TON(T1,100,0);"}

	code, out, _ := execute(t, "", append([]string{"-o", "csv", "xref", "--tag", "Motor", "--match", "root"}, rungs...)...)
	require.Equal(t, 0, code)
	assert.Len(t, csvLines(out), 2)

	code, out, _ = execute(t, "", append([]string{"-o", "csv", "xref", "--key", "TON"}, rungs...)...)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "args/1,\"TON(T1,100,0)\"")

	code, first, _ := execute(t, "", append([]string{"xref", "--digest"}, rungs...)...)
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(first, "blake2b:"))

	code, _, stderr := execute(t, "", "xref", "--match", "fuzzy", rungs[0])
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown match mode")
}

func TestOutputFormats(t *testing.T) {
	code, out, _ := execute(t, "", "-o", "markdown", "keys", "--task")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "| EVENT |")

	code, out, _ = execute(t, "", "keys", "--task")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "EVENT")

	code, _, stderr := execute(t, "", "-o", "yaml", "keys")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown output format")
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logix.log")
	code, _, _ := execute(t, "", "--log-file", path, "tags", "XIC(a);")
	require.Equal(t, 0, code)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"read rungs"`)
}
