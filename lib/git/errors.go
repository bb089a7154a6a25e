// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package git

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CommandError reports a git invocation that failed.
type CommandError struct {
	// Args are the git arguments, without the injected -C and
	// --git-dir.
	Args []string

	// Dir is the repository directory the command ran in.
	Dir string

	// Stderr is git's trimmed error output.
	Stderr string

	// Err is the error from running the process.
	Err error
}

func (err *CommandError) Error() string {
	return fmt.Sprintf("git %s in %s: %v (stderr: %s)",
		strings.Join(err.Args, " "), err.Dir, err.Err, err.Stderr)
}

func (err *CommandError) Unwrap() error { return err.Err }

// ExitCode returns git's exit status, or -1 when git did not run to
// completion.
func (err *CommandError) ExitCode() int {
	var exitError *exec.ExitError
	if errors.As(err.Err, &exitError) {
		return exitError.ExitCode()
	}
	return -1
}

// IsCommandError reports whether err came from a failed git command.
func IsCommandError(err error) bool {
	var commandError *CommandError
	return errors.As(err, &commandError)
}
