// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// The search engine measures elapsed time and waits for slow workers
// through a [Clock] rather than calling the time package directly.
// Production code passes [Real]; tests pass a [FakeClock] whose time
// moves only when the test calls Advance, so elapsed durations and
// straggler warnings are deterministic.
//
//	c := clock.Fake(time.Unix(1700000000, 0))
//	coordinator := search.NewCoordinator(search.CoordinatorConfig{Clock: c})
//	// ...
//	c.BlockUntil(1)
//	c.Advance(5 * time.Second)
package clock
