// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports which build of git-vanity is running.
//
// Release builds set [Version], [GitCommit], [GitDirty], and
// [BuildTime] with -ldflags -X. A plain "go install" leaves them at
// their defaults, and the commit and build time are then read from the
// VCS stamp the toolchain records in the binary.
//
// "git-vanity version" prints [Full], for example
//
//	0.1.0-dev (abc1234-dirty, 2026-10-19T08:00:00Z) go1.25.6 linux/amd64
//
// [Info] drops the toolchain and platform, [Short] is the version
// alone, and [Commit] the abbreviated commit id.
package version
