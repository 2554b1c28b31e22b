// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// Exit codes.
const (
	// ExitFailure is a handled failure: the input was understood but
	// could not be resolved (malformed name, missing sector, ambiguous
	// name). The command has already printed diagnostics.
	ExitFailure = 1

	// ExitUsage is a usage or configuration error.
	ExitUsage = 2
)

// ExitError signals a non-zero exit code without printing an extra
// error message. The command is expected to have already written its
// own output.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. The binary's main function checks for
// this interface on returned errors to distinguish "handled non-zero
// exit" from "unexpected error to display".
func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExitCodeFor maps an error returned from [Command.Execute] to a process
// exit code and reports whether the error still needs to be printed.
func ExitCodeFor(err error) (code int, printError bool) {
	if err == nil {
		return 0, false
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode(), false
	}
	var toolError *ToolError
	if errors.As(err, &toolError) && toolError.Category == CategoryValidation {
		return ExitUsage, true
	}
	return ExitFailure, true
}
