// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package report records the outcome of a search in a small CBOR file
// so it can be inspected, compared, and re-verified later without
// repeating the search.
//
// A [Report] carries the winning object bytes, so [Report.Verify] can
// recompute the digest and re-check the pattern offline. It also
// carries a [Fingerprint] of the search input: because the search
// order is deterministic, two searches with the same fingerprint and
// worker count find the same commit.
//
// Files are written atomically: to a temporary file in the same
// directory, fsynced, then renamed into place. Readers never see a
// partial report.
package report
