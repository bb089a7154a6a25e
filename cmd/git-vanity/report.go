// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/git-vanity/cmd/git-vanity/cli"
	"github.com/bureau-foundation/git-vanity/lib/codec"
	"github.com/bureau-foundation/git-vanity/lib/objectid"
	"github.com/bureau-foundation/git-vanity/lib/report"
)

type reportParams struct {
	cli.JSONOutput
	Raw    bool `json:"raw"    flag:"raw"    desc:"print the report in CBOR diagnostic notation"`
	Object bool `json:"object" flag:"object" desc:"print the stored commit content"`
}

func reportCommand(out streams) *cli.Command {
	var params reportParams

	return &cli.Command{
		Name:    "report",
		Summary: "Inspect a saved search report",
		Description: `Read a report written by --report, re-verify the commit it records, and
print its summary. Verification needs only the report: the commit
object is stored in it, so its id and pattern are checked offline.`,
		Usage: "git-vanity report <path> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("report", &params)
		},
		Examples: []cli.Example{
			{
				Description: "Summarize a report",
				Command:     "git-vanity report /tmp/search.cbor",
			},
			{
				Description: "Show the raw CBOR",
				Command:     "git-vanity report /tmp/search.cbor --raw",
			},
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("report path required")
			}
			path := args[0]

			if params.Raw {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				diagnostic, err := codec.Diagnose(data)
				if err != nil {
					return fmt.Errorf("decoding %s: %w", path, err)
				}
				_, err = fmt.Fprintln(out.stdout, diagnostic)
				return err
			}

			searchReport, err := report.Read(path)
			if err != nil {
				return err
			}
			if err := searchReport.Verify(); err != nil {
				return fmt.Errorf("report %s: %w", path, err)
			}

			if params.Object {
				_, content, err := objectid.SplitFrame(searchReport.Object)
				if err != nil {
					return err
				}
				_, err = out.stdout.Write(content)
				return err
			}

			summary, err := summaryFromReport(searchReport)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(out.stdout, summary); done {
				return err
			}
			return cli.RenderSummary(out.stdout, summary)
		},
	}
}
