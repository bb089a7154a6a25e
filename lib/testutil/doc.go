// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for git-vanity
// packages.
//
// [GitRepository] creates a throwaway working tree with a pinned
// identity and one initial commit; [EmptyGitRepository] has no commits.
// Both skip the test when no git binary is installed.
//
// [RequireReceive] bounds a wait on a channel, for tests that run a
// search in another goroutine. It is the only wall-clock timeout in the
// suite; search timing goes through lib/clock.
package testutil
