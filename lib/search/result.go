// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"time"

	"github.com/bureau-foundation/git-vanity/lib/objectid"
	"github.com/bureau-foundation/git-vanity/lib/padding"
)

// Match is the candidate a worker found. It is created once, by the
// winning worker, and never modified afterwards.
type Match struct {
	WorkerID int

	// ID is the digest the worker computed for Object.
	ID objectid.ID

	// Object is the framed candidate: header then content.
	Object []byte

	// Timestamp is the author and committer time of the candidate.
	Timestamp int64

	// Padding is the token appended to the message.
	Padding padding.Token

	// Tries is the number of candidates the worker hashed, including
	// this one.
	Tries uint64

	// Elapsed is measured from the worker's start.
	Elapsed time.Duration

	headerLen int
}

// Content returns the commit content without its header, the bytes
// handed to object storage.
func (m *Match) Content() []byte {
	return m.Object[m.headerLen:]
}

// WorkerState is how a worker stopped.
type WorkerState int

const (
	// StateFound means the worker produced the search result.
	StateFound WorkerState = iota

	// StateCancelled means the worker observed cancellation, or
	// matched after another worker had already claimed the result.
	StateCancelled

	// StateFailed means the worker stopped on an error or panic.
	StateFailed
)

func (s WorkerState) String() string {
	switch s {
	case StateFound:
		return "found"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// WorkerStats is reported by every worker exactly once, when it
// stops.
type WorkerStats struct {
	WorkerID int
	Tries    uint64
	State    WorkerState

	// Err is set when State is StateFailed.
	Err error
}

// Result is the outcome of a successful search.
type Result struct {
	Match

	// Start is the timestamp the search was asked to begin at.
	Start int64

	// Elapsed is the wall time of the whole search, from partitioning
	// to the last worker stopping.
	Elapsed time.Duration

	// TotalTries sums the try counts of every worker.
	TotalTries uint64

	// Workers holds each worker's final statistics, ordered by
	// worker id.
	Workers []WorkerStats
}

// Drift returns how many seconds the winning timestamp lies past the
// requested start.
func (r *Result) Drift() int64 {
	return r.Timestamp - r.Start
}

// Throughput returns candidates hashed per second across all workers.
// Zero if no time elapsed.
func (r *Result) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.TotalTries) / r.Elapsed.Seconds()
}
