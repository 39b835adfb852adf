package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/opal-lang/logix/core/logic"
	"github.com/opal-lang/logix/runtime/xref"
)

// rung is one input rung and where it came from.
type rung struct {
	loc  xref.Location
	text logic.NeutralText
}

// getInputReader handles the 3 modes of input:
// 1. Explicit stdin with -f -
// 2. File input with -f path
// 3. Piped input (auto-detected when no file is given)
func getInputReader(file string, stdin io.Reader) (io.Reader, string, func() error, error) {
	noop := func() error { return nil }

	// Mode 1: Explicit stdin
	if file == "-" {
		return stdin, "stdin", noop, nil
	}

	// Mode 2: File input
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, "", nil, &CLIError{
				Type:    "input",
				Message: fmt.Sprintf("error opening file %s", file),
				Details: err.Error(),
			}
		}
		return f, filepath.Base(file), f.Close, nil
	}

	// Mode 3: Piped input
	if hasPipedInput(stdin) {
		return stdin, "stdin", noop, nil
	}

	return nil, "", nil, &CLIError{
		Type:    "usage",
		Message: "no rungs given",
		Hint:    "pass rungs as arguments, use -f <file>, or pipe text on stdin",
	}
}

// hasPipedInput detects if there's data piped to stdin
func hasPipedInput(stdin io.Reader) bool {
	f, ok := stdin.(*os.File)
	if !ok {
		return stdin != nil
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}

	// Check if stdin is not a character device (i.e., it's piped)
	// Note: We don't check Size() > 0 because pipes may not report size correctly
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readRungs returns the rungs given as arguments, or one rung per non-blank
// line of the input.
func readRungs(args []string, file string, stdin io.Reader) ([]rung, error) {
	if len(args) > 0 {
		out := make([]rung, len(args))
		for i, arg := range args {
			out[i] = rung{loc: xref.Location{Routine: "args", Number: i}, text: logic.NewNeutralText(arg)}
		}
		return out, nil
	}

	reader, name, closeFunc, err := getInputReader(file, stdin)
	if err != nil {
		return nil, err
	}
	defer func() { _ = closeFunc() }()

	var out []rung
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		out = append(out, rung{
			loc:  xref.Location{Routine: name, Number: len(out)},
			text: logic.NewNeutralText(line),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, &CLIError{Type: "input", Message: "error reading " + name, Details: err.Error()}
	}
	return out, nil
}
