// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/git-vanity/cmd/git-vanity/cli"
	"github.com/bureau-foundation/git-vanity/lib/process"
)

func main() {
	if err := run(); err != nil {
		// verify prints its own verdict and only needs the exit code.
		var exitError *cli.ExitError
		if errors.As(err, &exitError) {
			os.Exit(exitError.ExitCode())
		}
		process.Fatal(err)
	}
}

func run() error {
	// An interrupt cancels the search; workers stop at their next poll.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := rootCommand(streams{stdout: os.Stdout, stderr: os.Stderr})
	return root.Execute(ctx, os.Args[1:])
}
