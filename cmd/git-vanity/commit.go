// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/git-vanity/cmd/git-vanity/cli"
	"github.com/bureau-foundation/git-vanity/lib/commit"
	"github.com/bureau-foundation/git-vanity/lib/config"
	"github.com/bureau-foundation/git-vanity/lib/git"
	"github.com/bureau-foundation/git-vanity/lib/objectid"
	"github.com/bureau-foundation/git-vanity/lib/report"
	"github.com/bureau-foundation/git-vanity/lib/search"
)

// searchParams are shared by commit and search. Pointer fields are
// nil unless given on the command line; set ones override the
// configuration file.
type searchParams struct {
	repositoryParams
	Message     string         `json:"message"      flag:"message,m" desc:"commit message (required)"`
	Add         bool           `json:"add"          flag:"add,a"     desc:"stage all changes in the working tree before snapshotting the index"`
	Root        bool           `json:"root"         flag:"root"      desc:"create a commit without a parent"`
	Author      string         `json:"author"       flag:"author"    desc:"author identity as \"Name <email>\" (default: from git)"`
	Timestamp   *int64         `json:"timestamp"    flag:"timestamp" desc:"first commit time tried, in seconds since the epoch (default: now)"`
	Timezone    *string        `json:"timezone"     flag:"timezone"  desc:"offset recorded for author and committer, as +HHMM (default: from config, then git)"`
	Workers     *int           `json:"workers"      flag:"workers,j" desc:"search goroutines, 0 for one per CPU (default: from config)"`
	AllowPrefix *bool          `json:"allow_prefix" flag:"prefix"    desc:"also accept ids that start with the pattern"`
	Timeout     *time.Duration `json:"timeout"      flag:"timeout"   desc:"give up after this long, 0 for no limit (default: from config)"`
	Nice        *int           `json:"nice"         flag:"nice"      desc:"scheduling priority while searching, -20 to 19 (default: from config)"`
	ReportPath  *string        `json:"report"       flag:"report"    desc:"write a CBOR search report to this path (default: from config)"`
	cli.JSONOutput
}

func (p *searchParams) apply(cfg *config.Config) {
	override(&cfg.Search.Workers, p.Workers)
	override(&cfg.Search.AllowPrefix, p.AllowPrefix)
	override(&cfg.Search.Nice, p.Nice)
	override(&cfg.Commit.Timezone, p.Timezone)
	override(&cfg.Report.Path, p.ReportPath)
	if p.Timeout != nil {
		cfg.Search.Timeout = p.Timeout.String()
	}
}

type commitParams struct {
	searchParams
	Ref     *string `json:"ref"   flag:"ref"   desc:"reference to move to the new commit (default: from config, HEAD)"`
	Backend *string `json:"store" flag:"store" desc:"object storage backend: git or loose (default: from config, git)"`
}

func (p *commitParams) apply(cfg *config.Config) {
	p.searchParams.apply(cfg)
	override(&cfg.Store.Ref, p.Ref)
	override(&cfg.Store.Backend, p.Backend)
}

// override sets *field to *flag when the flag was given.
func override[T any](field *T, flag *T) {
	if flag != nil {
		*field = *flag
	}
}

func commitCommand(out streams) *cli.Command {
	var params commitParams

	return &cli.Command{
		Name:    "commit",
		Summary: "Create a commit whose id matches a hex pattern",
		Description: `Snapshot the index, search for a commit whose id ends with <hex>,
store it, and move HEAD (or --ref) to it.

The tree, parent, author, committer, and message are those "git commit"
would record. Only the commit time and a block of trailing whitespace in
the message vary. If every padding for one second is exhausted, the
commit time moves forward a second; the summary reports the drift.

Each hex digit multiplies the expected work by 16. Six digits take
about 16 million tries, a few seconds on a laptop.`,
		Usage: "git-vanity commit <hex> -m <message> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("commit", &params)
		},
		Examples: []cli.Example{
			{
				Description: "Commit the index with an id ending in c0ffee",
				Command:     "git-vanity commit c0ffee -m \"Add coffee support\"",
			},
			{
				Description: "Stage everything, search on 4 goroutines at low priority",
				Command:     "git-vanity commit -a -j 4 --nice 19 badc0de -m wip",
			},
			{
				Description: "Point a branch at the result instead of HEAD",
				Command:     "git-vanity commit 00000 -m release --ref refs/heads/vanity",
			},
		},
		Run: func(ctx context.Context, args []string) error {
			patternText, err := patternArgument(args)
			if err != nil {
				return err
			}
			s, err := openSession(&params.repositoryParams, out.stderr, params.apply)
			if err != nil {
				return err
			}
			outcome, err := runSearch(ctx, s, &params.searchParams, patternText)
			if err != nil {
				return err
			}
			id, err := storeCommit(ctx, s, outcome.result)
			if err != nil {
				return err
			}
			ref := s.config.Store.Ref
			if err := s.repository.UpdateRef(ctx, ref, id, reflogMessage(params.Message)); err != nil {
				return fmt.Errorf("moving %s to %s: %w", ref, id, err)
			}
			s.logger.Info("commit stored", "commit", id.String(), "ref", ref,
				"backend", s.config.Store.Backend)

			outcome.report.Ref = ref
			return finishSearch(out, s, &params.searchParams, outcome.report)
		},
	}
}

func searchCommand(out streams) *cli.Command {
	var params searchParams

	return &cli.Command{
		Name:    "search",
		Summary: "Search for a matching commit without storing it",
		Description: `Run the same search as "commit" and print the result, but write
nothing to the repository. With --report, the winning object is saved
to the report file, where "git-vanity report" can inspect it.`,
		Usage: "git-vanity search <hex> -m <message> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("search", &params)
		},
		Examples: []cli.Example{
			{
				Description: "Measure the search for a 5-digit suffix",
				Command:     "git-vanity search fffff -m test",
			},
			{
				Description: "Machine-readable result",
				Command:     "git-vanity search abc -m test --json",
			},
		},
		Run: func(ctx context.Context, args []string) error {
			patternText, err := patternArgument(args)
			if err != nil {
				return err
			}
			s, err := openSession(&params.repositoryParams, out.stderr, params.apply)
			if err != nil {
				return err
			}
			outcome, err := runSearch(ctx, s, &params, patternText)
			if err != nil {
				return err
			}
			return finishSearch(out, s, &params, outcome.report)
		},
	}
}

func patternArgument(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", fmt.Errorf("hex pattern required")
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("unexpected argument: %s", args[1])
	}
}

// searchOutcome is a finished search and the report describing it.
type searchOutcome struct {
	result *search.Result
	report *report.Report
}

// runSearch builds the commit template from the repository and
// searches for a commit matching patternText.
func runSearch(ctx context.Context, s *session, params *searchParams, patternText string) (*searchOutcome, error) {
	searchConfig := s.config.Search
	pattern, err := search.ParsePattern(patternText, searchConfig.AllowPrefix)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.Message) == "" {
		return nil, fmt.Errorf("commit message required (use -m)")
	}

	template, start, err := buildTemplate(ctx, s, params)
	if err != nil {
		return nil, err
	}

	workers := searchConfig.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	options := search.Options{
		Workers:      workers,
		Start:        start,
		Space:        searchConfig.Padding,
		PollInterval: searchConfig.PollInterval,
	}

	if searchConfig.Nice != 0 {
		if err := setPriority(searchConfig.Nice); err != nil {
			return nil, fmt.Errorf("setting scheduling priority %d: %w", searchConfig.Nice, err)
		}
	}
	timeout, err := searchConfig.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	coordinator := search.NewCoordinator(search.CoordinatorConfig{
		Logger: s.logger.With("pattern", pattern.String()),
	})
	result, err := coordinator.Search(ctx, template, pattern, options)
	if err != nil {
		if timeout > 0 && errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("no match for %q within %s: %w", pattern.String(), timeout, err)
		}
		return nil, err
	}

	return &searchOutcome{
		result: result,
		report: report.New(result, template, pattern, searchConfig.Padding),
	}, nil
}

// buildTemplate gathers the commit fields the way "git commit" would
// and returns the template and the first timestamp to try.
func buildTemplate(ctx context.Context, s *session, params *searchParams) (*commit.Template, int64, error) {
	repository := s.repository
	if params.Add {
		if err := repository.Add(ctx, "."); err != nil {
			return nil, 0, fmt.Errorf("staging changes: %w", err)
		}
	}

	tree, err := repository.WriteTree(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("writing tree: %w", err)
	}

	var parent string
	if !params.Root {
		head, ok, err := repository.ResolveCommit(ctx, "HEAD")
		if err != nil {
			return nil, 0, fmt.Errorf("resolving HEAD: %w", err)
		}
		if ok {
			parent = head.String()
		} else {
			s.logger.Info("HEAD has no commits; creating a root commit")
		}
	}

	committer, err := repository.Identity(ctx, git.Committer)
	if err != nil {
		return nil, 0, fmt.Errorf("reading committer identity: %w", err)
	}
	var author commit.Signature
	if params.Author != "" {
		author, err = commit.ParseSignature(params.Author)
		if err != nil {
			return nil, 0, fmt.Errorf("--author: %w", err)
		}
	} else {
		authorIdent, err := repository.Identity(ctx, git.Author)
		if err != nil {
			return nil, 0, fmt.Errorf("reading author identity: %w", err)
		}
		author = authorIdent.Signature
	}

	timezone := s.config.Commit.Timezone
	if timezone == "" {
		timezone = committer.Timezone
	}
	start := committer.Timestamp
	if params.Timestamp != nil {
		start = *params.Timestamp
	}

	template, err := commit.NewTemplate(commit.Fields{
		Tree:      tree.String(),
		Parent:    parent,
		Author:    author,
		Committer: committer.Signature,
		Timezone:  timezone,
		Message:   params.Message,
	})
	if err != nil {
		return nil, 0, err
	}
	s.logger.Debug("commit template ready",
		"tree", tree.String(),
		"parent", parent,
		"author", author.String(),
		"committer", committer.Signature.String(),
		"timezone", timezone,
		"start", start,
	)
	return template, start, nil
}

// storeCommit writes the winning commit to the configured backend and
// checks that storage assigned the id the search computed.
func storeCommit(ctx context.Context, s *session, result *search.Result) (objectid.ID, error) {
	var stored objectid.ID
	var err error
	switch s.config.Store.Backend {
	case config.BackendLoose:
		var objectsDir string
		objectsDir, err = s.repository.ObjectsDir(ctx)
		if err != nil {
			return objectid.ID{}, fmt.Errorf("locating object database: %w", err)
		}
		stored, err = git.WriteLooseObject(objectsDir, commit.ObjectKind, result.Content())
	default:
		stored, err = s.repository.HashObject(ctx, commit.ObjectKind, result.Content(), true)
	}
	if err != nil {
		return objectid.ID{}, fmt.Errorf("storing commit: %w", err)
	}
	if stored != result.ID {
		return objectid.ID{}, &search.IntegrityError{
			Reported:   result.ID,
			Recomputed: stored,
			Reason:     "object storage assigned a different id",
		}
	}
	return stored, nil
}

// finishSearch writes the optional report file and prints the summary.
func finishSearch(out streams, s *session, params *searchParams, searchReport *report.Report) error {
	if path := s.config.Report.Path; path != "" {
		if err := report.Write(path, searchReport); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		s.logger.Info("report written", "path", path)
	}

	summary, err := summaryFromReport(searchReport)
	if err != nil {
		return err
	}
	if done, err := params.EmitJSON(out.stdout, summary); done {
		return err
	}
	return cli.RenderSummary(out.stdout, summary)
}

// summaryFromReport is the common view of a search for commit, search,
// and report.
func summaryFromReport(searchReport *report.Report) (cli.Summary, error) {
	pattern, err := search.ParsePattern(searchReport.Pattern, searchReport.AllowPrefix)
	if err != nil {
		return cli.Summary{}, err
	}
	summary := cli.Summary{
		Commit:        searchReport.Commit.String(),
		Pattern:       pattern.String(),
		AllowPrefix:   pattern.AllowPrefix(),
		Ref:           searchReport.Ref,
		Workers:       len(searchReport.Workers),
		Winner:        searchReport.Winner,
		TotalTries:    searchReport.TotalTries,
		ExpectedTries: pattern.ExpectedTries(),
		Elapsed:       searchReport.Elapsed,
		Drift:         searchReport.Drift(),
		Timestamp:     searchReport.Timestamp,
		Padding:       searchReport.Padding,
		Fingerprint:   searchReport.Fingerprint.Short(),
	}
	if searchReport.Elapsed > 0 {
		summary.Throughput = float64(searchReport.TotalTries) / searchReport.Elapsed.Seconds()
	}
	if summary.Padding == nil {
		summary.Padding = []int{}
	}
	return summary, nil
}

// reflogMessage mirrors "git commit": the subject line after a prefix.
func reflogMessage(message string) string {
	subject, _, _ := strings.Cut(strings.TrimSpace(message), "\n")
	return "git-vanity: " + subject
}
