// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/bureau-foundation/git-vanity/cmd/git-vanity/cli"
	"github.com/bureau-foundation/git-vanity/lib/version"
)

// streams are the command outputs. Diagnostics and logs go to stderr;
// results go to stdout.
type streams struct {
	stdout io.Writer
	stderr io.Writer
}

// rootCommand builds the complete git-vanity command tree.
func rootCommand(out streams) *cli.Command {
	return &cli.Command{
		Name: "git-vanity",
		Description: `git-vanity: commits with chosen object ids.

Search for a commit whose SHA-1 ends (or, with --prefix, starts) with a
hex string, by varying the commit time and whitespace appended to the
message. The tree, parent, identities, and message are exactly those
"git commit" would record.`,
		Subcommands: []*cli.Command{
			commitCommand(out),
			searchCommand(out),
			verifyCommand(out),
			reportCommand(out),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(ctx context.Context, args []string) error {
					if len(args) > 0 {
						return fmt.Errorf("unexpected argument: %s", args[0])
					}
					fmt.Fprintf(out.stdout, "git-vanity %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Commit the index with an id ending in c0ffee",
				Command:     "git-vanity commit c0ffee -m \"Add coffee support\"",
			},
			{
				Description: "Stage everything first, accept a matching prefix too",
				Command:     "git-vanity commit -a --prefix 1337 -m \"Release 1.3.37\"",
			},
			{
				Description: "See how long a pattern takes without creating anything",
				Command:     "git-vanity search abcdef -m test --report /tmp/search.cbor",
			},
			{
				Description: "Check that HEAD still carries its vanity id",
				Command:     "git-vanity verify --pattern c0ffee",
			},
		},
	}
}
