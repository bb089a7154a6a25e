// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"context"
	"fmt"
	"math"

	"github.com/bureau-foundation/git-vanity/lib/clock"
	"github.com/bureau-foundation/git-vanity/lib/commit"
	"github.com/bureau-foundation/git-vanity/lib/objectid"
	"github.com/bureau-foundation/git-vanity/lib/padding"
)

// worker owns one timestamp stream and one padding cursor.
type worker struct {
	id           int
	template     *commit.Template
	pattern      Pattern
	start        int64
	stride       int64
	space        padding.Space
	pollInterval uint64
	clock        clock.Clock
}

// run searches until it matches, observes cancellation of ctx, or
// fails. It returns a non-nil Match only with StateFound. Panics are
// recovered into StateFailed so a defect in one worker cannot take
// down the coordinator's wait.
func (w *worker) run(ctx context.Context) (match *Match, stats WorkerStats) {
	var tries uint64
	defer func() {
		if recovered := recover(); recovered != nil {
			match = nil
			stats = w.stats(tries, StateFailed, fmt.Errorf("worker %d panicked: %v", w.id, recovered))
		}
	}()

	started := w.clock.Now()
	enumerator := padding.NewEnumerator(w.space)
	base := make([]byte, 0, 512)
	candidate := make([]byte, 0, 1024)
	untilPoll := w.pollInterval
	done := ctx.Done()

	for timestamp := w.start; ; timestamp += w.stride {
		base = w.template.AppendContent(base[:0], timestamp)
		if want := w.template.RenderedLen(timestamp); len(base) != want {
			return nil, w.stats(tries, StateFailed, &ConstructionError{
				Stage: "template", Declared: want, Actual: len(base),
			})
		}

		enumerator.Reset()
		for {
			token, ok := enumerator.Next()
			if !ok {
				break
			}
			candidate = commit.AppendCandidate(candidate[:0], base, token)
			tries++

			if id := objectid.Sum(candidate); w.pattern.Match(id) {
				object := make([]byte, len(candidate))
				copy(object, candidate)
				return &Match{
					WorkerID:  w.id,
					ID:        id,
					Object:    object,
					Timestamp: timestamp,
					Padding:   token,
					Tries:     tries,
					Elapsed:   clock.Since(w.clock, started),
					headerLen: len(candidate) - len(base) - token.RenderedLen(),
				}, w.stats(tries, StateFound, nil)
			}

			untilPoll--
			if untilPoll == 0 {
				untilPoll = w.pollInterval
				select {
				case <-done:
					return nil, w.stats(tries, StateCancelled, nil)
				default:
				}
			}
		}

		if timestamp > math.MaxInt64-w.stride {
			return nil, w.stats(tries, StateFailed,
				fmt.Errorf("worker %d exhausted the timestamp range at %d", w.id, timestamp))
		}
	}
}

func (w *worker) stats(tries uint64, state WorkerState, err error) WorkerStats {
	return WorkerStats{WorkerID: w.id, Tries: tries, State: state, Err: err}
}
