package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	logixerrors "github.com/opal-lang/logix/core/errors"
)

// CLIError represents a formatted CLI error with context
type CLIError struct {
	Type    string // "input", "config", "usage"
	Message string
	Details string // Additional context
	Hint    string // How to fix it
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Details != "" {
		b.WriteString("\n")
		b.WriteString(e.Details)
	}
	if e.Hint != "" {
		b.WriteString("\n")
		b.WriteString(e.Hint)
	}
	return b.String()
}

// exitError carries an exit status for a failure that was already reported.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// FormatError formats an error for CLI output with colors
func FormatError(w io.Writer, err error, useColor bool) {
	if err == nil {
		return
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		formatCLIError(w, cliErr, useColor)
		return
	}
	var logixErr *logixerrors.LogixError
	if errors.As(err, &logixErr) {
		formatLogixError(w, logixErr, useColor)
		return
	}

	// Generic error
	_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), err.Error())
}

// formatLogixError prints the message, the rejected input and any suggestion
func formatLogixError(w io.Writer, err *logixerrors.LogixError, useColor bool) {
	_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), err.Message)

	if err.Input != "" {
		_, _ = fmt.Fprintf(w, "  %s%s\n", Colorize("Input: ", ColorGray, useColor), err.Input)
	}

	if detail, ok := err.GetContext("detail"); ok {
		_, _ = fmt.Fprintf(w, "  %s%v\n", Colorize("Detail: ", ColorGray, useColor), detail)
	}

	if err.Cause != nil {
		_, _ = fmt.Fprintf(w, "  %s%v\n", Colorize("Cause: ", ColorGray, useColor), err.Cause)
	}

	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Hint: ", ColorYellow, useColor), fmt.Sprintf("did you mean %s?", err.Suggestion))
	}
}

// formatCLIError formats CLI errors
func formatCLIError(w io.Writer, err *CLIError, useColor bool) {
	_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), err.Message)

	if err.Details != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", err.Details)
	}

	if err.Hint != "" {
		_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Hint: ", ColorYellow, useColor), err.Hint)
	}
}
