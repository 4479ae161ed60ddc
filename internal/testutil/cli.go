// Package testutil holds helpers shared by command tests.
package testutil

import (
	"bytes"
	"io"
	"testing"
)

// ExecResult holds the result of a CLI command execution.
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunFunc runs a command line and returns its exit code.
type RunFunc func(args []string, stdout, stderr io.Writer) int

// RunCLI runs the command in-process with captured output.
func RunCLI(tb testing.TB, run RunFunc, args ...string) ExecResult {
	tb.Helper()

	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)

	return ExecResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: code,
	}
}
