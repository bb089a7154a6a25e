// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/bureau-foundation/git-vanity/lib/clock"
	"github.com/bureau-foundation/git-vanity/lib/commit"
	"github.com/bureau-foundation/git-vanity/lib/objectid"
	"github.com/bureau-foundation/git-vanity/lib/padding"
)

// DefaultPollInterval is how many trials a worker makes between
// cancellation checks.
const DefaultPollInterval = 10_000

// DefaultStragglerWarning is how long the coordinator waits for a
// cancelled worker before logging that it is still running.
const DefaultStragglerWarning = 5 * time.Second

// Options parameterize a single search.
type Options struct {
	// Workers is the number of parallel workers. Must be at least 1.
	Workers int

	// Start is the first timestamp tried, in seconds since the epoch.
	Start int64

	// Space bounds the padding enumerated per timestamp. The zero
	// value selects padding.DefaultSpace.
	Space padding.Space

	// PollInterval is the number of trials between cancellation
	// checks. Zero selects DefaultPollInterval.
	PollInterval int
}

// CoordinatorConfig holds the dependencies of a Coordinator.
type CoordinatorConfig struct {
	// Clock measures elapsed time. Nil selects clock.Real().
	Clock clock.Clock

	// Logger receives search lifecycle events. Nil discards them.
	Logger *slog.Logger

	// StragglerWarning is the interval between warnings while waiting
	// for cancelled workers to stop. Zero selects
	// DefaultStragglerWarning.
	StragglerWarning time.Duration
}

// Coordinator partitions a search across workers and collects the
// first result.
type Coordinator struct {
	clock            clock.Clock
	logger           *slog.Logger
	stragglerWarning time.Duration
}

// NewCoordinator returns a Coordinator with config's dependencies.
func NewCoordinator(config CoordinatorConfig) *Coordinator {
	coordinator := &Coordinator{
		clock:            config.Clock,
		logger:           config.Logger,
		stragglerWarning: config.StragglerWarning,
	}
	if coordinator.clock == nil {
		coordinator.clock = clock.Real()
	}
	if coordinator.logger == nil {
		coordinator.logger = slog.New(slog.DiscardHandler)
	}
	if coordinator.stragglerWarning <= 0 {
		coordinator.stragglerWarning = DefaultStragglerWarning
	}
	return coordinator
}

// Search runs workers over template until one finds a commit matching
// pattern, then stops them all and returns the verified result.
//
// Cancelling ctx stops the search at the workers' next poll; Search
// then returns ctx's error, or the result if a worker matched first.
// Every worker has stopped by the time Search returns.
func (c *Coordinator) Search(ctx context.Context, template *commit.Template, pattern Pattern, options Options) (*Result, error) {
	options, err := c.validate(template, pattern, options)
	if err != nil {
		return nil, err
	}

	c.logger.Info("search started",
		"pattern", pattern.String(),
		"allow_prefix", pattern.AllowPrefix(),
		"workers", options.Workers,
		"start", options.Start,
		"tries_per_timestamp", options.Space.Size(),
		"expected_tries", pattern.ExpectedTries(),
	)

	started := c.clock.Now()
	var match *Match
	var stats []WorkerStats
	if options.Workers == 1 {
		match, stats, err = c.runInline(ctx, c.newWorker(0, template, pattern, options))
	} else {
		workers := make([]*worker, options.Workers)
		for id := range workers {
			workers[id] = c.newWorker(id, template, pattern, options)
		}
		match, stats, err = c.runParallel(ctx, workers)
	}
	elapsed := clock.Since(c.clock, started)

	var totalTries uint64
	for _, workerStats := range stats {
		totalTries += workerStats.Tries
	}
	if err != nil {
		c.logger.Warn("search stopped without a result",
			"error", err, "tries", totalTries, "elapsed", elapsed)
		return nil, err
	}

	if err := verify(match, pattern); err != nil {
		return nil, err
	}

	result := &Result{
		Match:      *match,
		Start:      options.Start,
		Elapsed:    elapsed,
		TotalTries: totalTries,
		Workers:    stats,
	}
	c.logger.Info("search finished",
		"id", result.ID.String(),
		"worker", result.WorkerID,
		"tries", result.TotalTries,
		"elapsed", result.Elapsed,
		"drift_seconds", result.Drift(),
	)
	return result, nil
}

func (c *Coordinator) validate(template *commit.Template, pattern Pattern, options Options) (Options, error) {
	if template == nil {
		return options, &ConfigurationError{Field: "template", Value: "<nil>", Reason: "is required"}
	}
	if pattern.Len() == 0 {
		return options, &ConfigurationError{Field: "pattern", Value: pattern.String(), Reason: "must not be empty"}
	}
	if options.Workers < 1 {
		return options, &ConfigurationError{Field: "workers", Value: strconv.Itoa(options.Workers),
			Reason: "must be at least 1"}
	}
	if options.Start < 0 {
		return options, &ConfigurationError{Field: "start timestamp", Value: strconv.FormatInt(options.Start, 10),
			Reason: "must not be negative"}
	}
	if options.Space == (padding.Space{}) {
		options.Space = padding.DefaultSpace
	}
	if err := options.Space.Validate(); err != nil {
		return options, &ConfigurationError{Field: "padding space", Value: fmt.Sprintf("%+v", options.Space),
			Reason: err.Error()}
	}
	if options.PollInterval < 0 {
		return options, &ConfigurationError{Field: "poll interval", Value: strconv.Itoa(options.PollInterval),
			Reason: "must not be negative"}
	}
	if options.PollInterval == 0 {
		options.PollInterval = DefaultPollInterval
	}
	return options, nil
}

func (c *Coordinator) newWorker(id int, template *commit.Template, pattern Pattern, options Options) *worker {
	return &worker{
		id:           id,
		template:     template,
		pattern:      pattern,
		start:        options.Start + int64(id),
		stride:       int64(options.Workers),
		space:        options.Space,
		pollInterval: uint64(options.PollInterval),
		clock:        c.clock,
	}
}

// runInline runs a single worker on the calling goroutine. ctx is
// still polled so a caller deadline stops it.
func (c *Coordinator) runInline(ctx context.Context, searchWorker *worker) (*Match, []WorkerStats, error) {
	match, stats := searchWorker.run(ctx)
	c.logWorkerStopped(stats)
	switch stats.State {
	case StateFound:
		return match, []WorkerStats{stats}, nil
	case StateFailed:
		return nil, []WorkerStats{stats}, stats.Err
	default:
		return nil, []WorkerStats{stats}, stoppedError(ctx)
	}
}

// runParallel starts every worker on its own goroutine and returns
// the first match. It returns only after all workers have reported.
func (c *Coordinator) runParallel(ctx context.Context, workers []*worker) (*Match, []WorkerStats, error) {
	workerContext, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	// claimed is set once by the winning worker. The slot holds its
	// match; every later match is dropped.
	var claimed atomic.Bool
	results := make(chan *Match, 1)
	statsChannel := make(chan WorkerStats, len(workers))

	for _, searchWorker := range workers {
		go func() {
			match, stats := searchWorker.run(workerContext)
			if match != nil {
				if claimed.CompareAndSwap(false, true) {
					results <- match
				} else {
					stats.State = StateCancelled
				}
			}
			statsChannel <- stats
		}()
	}

	collected := make([]WorkerStats, 0, len(workers))
	var winner *Match
	var failure error
	for winner == nil && failure == nil {
		select {
		case winner = <-results:
		case stats := <-statsChannel:
			c.logWorkerStopped(stats)
			collected = append(collected, stats)
			if stats.State == StateFailed {
				failure = stats.Err
			} else if len(collected) == len(workers) {
				select {
				case winner = <-results:
				default:
					failure = stoppedError(ctx)
				}
			}
		case <-ctx.Done():
			failure = ctx.Err()
		}
	}

	cancelWorkers()
	for len(collected) < len(workers) {
		select {
		case stats := <-statsChannel:
			c.logWorkerStopped(stats)
			collected = append(collected, stats)
		case <-c.clock.After(c.stragglerWarning):
			c.logger.Warn("waiting for workers to stop",
				"stopped", len(collected), "workers", len(workers))
		}
	}

	// A caller deadline that races a match still yields the match.
	if winner == nil && ctx.Err() != nil && errors.Is(failure, ctx.Err()) {
		select {
		case winner = <-results:
			failure = nil
		default:
		}
	}

	slices.SortFunc(collected, func(a, b WorkerStats) int { return a.WorkerID - b.WorkerID })
	if failure != nil {
		return nil, collected, failure
	}
	return winner, collected, nil
}

func (c *Coordinator) logWorkerStopped(stats WorkerStats) {
	c.logger.Debug("worker stopped",
		"worker", stats.WorkerID,
		"state", stats.State.String(),
		"tries", stats.Tries,
	)
}

// stoppedError explains why workers stopped without a result.
func stoppedError(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.New("all workers stopped without a match")
}

// verify re-parses the winning object and recomputes its digest
// outside the search loop.
func verify(match *Match, pattern Pattern) error {
	kind, content, err := objectid.SplitFrame(match.Object)
	if err != nil {
		var lengthError *objectid.LengthError
		if errors.As(err, &lengthError) {
			return &ConstructionError{Stage: "object header",
				Declared: lengthError.Declared, Actual: lengthError.Actual}
		}
		return &ConstructionError{Stage: "object header", Err: err}
	}
	if kind != commit.ObjectKind {
		return &ConstructionError{Stage: "object header",
			Err: fmt.Errorf("object type %q, want %q", kind, commit.ObjectKind)}
	}
	recomputed := objectid.Hash(kind, content)
	if recomputed != match.ID {
		return &IntegrityError{Reported: match.ID, Recomputed: recomputed,
			Reason: "recomputed digest differs from reported digest"}
	}
	if !pattern.Match(recomputed) {
		return &IntegrityError{Reported: match.ID, Recomputed: recomputed,
			Reason: fmt.Sprintf("digest does not match pattern %q", pattern.String())}
	}
	return nil
}
