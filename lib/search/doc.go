// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package search finds a commit whose object id ends with (or
// optionally starts with) a chosen hex pattern.
//
// A [Coordinator] splits the timestamp space across workers. Worker i
// of N starts at Start+i and steps by N, so together the workers try
// every timestamp from Start upward exactly once. For each timestamp a
// worker renders the commit template and walks every padding token of
// the configured [padding.Space], hashing the framed candidate and
// testing it against the [Pattern]. Only after the whole space is
// exhausted does it move to its next timestamp.
//
// Workers share no mutable state. Coordination is by message passing
// alone:
//
//   - a result channel with a single slot, claimed with a non-blocking
//     send by the first worker to match. A worker that finds the slot
//     taken reports itself cancelled.
//   - a context, cancelled by the coordinator once it has a result.
//     Workers poll it between every PollInterval trials.
//   - a statistics channel carrying exactly one [WorkerStats] from each
//     worker when it stops, whether it won, was cancelled, or failed.
//
// With a single worker the search runs inline in the caller's
// goroutine with no channels.
//
// Before returning, the coordinator re-parses the winning object's
// header and recomputes its digest outside the search loop. A header
// whose declared length disagrees with its content is a
// [ConstructionError]; a digest that differs from the one the worker
// reported, or that no longer satisfies the pattern, is an
// [IntegrityError]. Invalid inputs are rejected with a
// [ConfigurationError] before any worker starts.
package search
