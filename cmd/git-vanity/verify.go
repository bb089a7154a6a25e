// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/git-vanity/cmd/git-vanity/cli"
	"github.com/bureau-foundation/git-vanity/lib/commit"
	"github.com/bureau-foundation/git-vanity/lib/git"
	"github.com/bureau-foundation/git-vanity/lib/objectid"
	"github.com/bureau-foundation/git-vanity/lib/search"
)

type verifyParams struct {
	repositoryParams
	Pattern     string `json:"pattern"      flag:"pattern,p" desc:"hex pattern the commit id must match (required)"`
	AllowPrefix bool   `json:"allow_prefix" flag:"prefix"    desc:"also accept ids that start with the pattern"`
	cli.JSONOutput
}

// verifyResult is the --json output of verify.
type verifyResult struct {
	Revision string `json:"revision"`
	Commit   string `json:"commit"`
	Pattern  string `json:"pattern"`
	Match    bool   `json:"match"`
}

func verifyCommand(out streams) *cli.Command {
	var params verifyParams

	return &cli.Command{
		Name:    "verify",
		Summary: "Check that a commit id matches a hex pattern",
		Description: `Read a commit from the repository, recompute its id from the stored
bytes, and check it against --pattern. Exits 0 on a match and 1
otherwise, so it can guard a hook or CI step. The revision defaults to
HEAD.`,
		Usage: "git-vanity verify [<revision>] --pattern <hex> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("verify", &params)
		},
		Examples: []cli.Example{
			{
				Description: "Check HEAD",
				Command:     "git-vanity verify --pattern c0ffee",
			},
			{
				Description: "Check a tag, accepting a prefix match",
				Command:     "git-vanity verify v1.3.37 --pattern 1337 --prefix",
			},
		},
		Run: func(ctx context.Context, args []string) error {
			revision := "HEAD"
			switch len(args) {
			case 0:
			case 1:
				revision = args[0]
			default:
				return fmt.Errorf("unexpected argument: %s", args[1])
			}
			if params.Pattern == "" {
				return fmt.Errorf("--pattern is required")
			}
			pattern, err := search.ParsePattern(params.Pattern, params.AllowPrefix)
			if err != nil {
				return err
			}
			s, err := openSession(&params.repositoryParams, out.stderr, nil)
			if err != nil {
				return err
			}

			id, err := verifyCommit(ctx, s, revision)
			if err != nil {
				return err
			}
			result := verifyResult{
				Revision: revision,
				Commit:   id.String(),
				Pattern:  pattern.String(),
				Match:    pattern.Match(id),
			}
			if done, err := params.EmitJSON(out.stdout, result); done {
				if err == nil && !result.Match {
					return &cli.ExitError{Code: 1}
				}
				return err
			}

			if !result.Match {
				fmt.Fprintf(out.stdout, "%s %s does not match %s\n", revision, id, pattern)
				return &cli.ExitError{Code: 1}
			}
			fmt.Fprintf(out.stdout, "%s %s matches %s\n", revision, id, pattern)
			return nil
		},
	}
}

// verifyCommit resolves revision and recomputes the id of the stored
// commit from its content.
func verifyCommit(ctx context.Context, s *session, revision string) (objectid.ID, error) {
	id, ok, err := s.repository.ResolveCommit(ctx, revision)
	if err != nil {
		return objectid.ID{}, fmt.Errorf("resolving %s: %w", revision, err)
	}
	if !ok {
		return objectid.ID{}, fmt.Errorf("%s does not name a commit", revision)
	}
	content, err := readCommit(ctx, s, id)
	if err != nil {
		return objectid.ID{}, err
	}
	recomputed := objectid.Hash(commit.ObjectKind, content)
	if recomputed != id {
		return objectid.ID{}, &search.IntegrityError{
			Reported:   id,
			Recomputed: recomputed,
			Reason:     "stored commit content does not hash to its id",
		}
	}
	s.logger.Debug("commit verified", "revision", revision, "commit", id.String())
	return id, nil
}

// readCommit loads the content of commit id. A loose object is read
// straight from the object database, which also checks its digest;
// packed objects go through git cat-file.
func readCommit(ctx context.Context, s *session, id objectid.ID) ([]byte, error) {
	objectsDir, err := s.repository.ObjectsDir(ctx)
	if err != nil {
		return nil, err
	}
	loose, err := git.HasLooseObject(objectsDir, id)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", id, err)
	}
	if !loose {
		content, err := s.repository.CatFile(ctx, commit.ObjectKind, id.String())
		if err != nil {
			return nil, fmt.Errorf("reading commit %s: %w", id, err)
		}
		return content, nil
	}

	kind, content, err := git.ReadLooseObject(objectsDir, id)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", id, err)
	}
	if kind != commit.ObjectKind {
		return nil, fmt.Errorf("%s is a %s, not a %s", id, kind, commit.ObjectKind)
	}
	s.logger.Debug("read loose commit", "commit", id.String(), "objects", objectsDir)
	return content, nil
}
