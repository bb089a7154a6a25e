// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

// These variables are set via -ldflags at build time, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/git-vanity/lib/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// shortCommitLength matches "git rev-parse --short".
const shortCommitLength = 7

type buildStamp struct {
	commit string
	dirty  bool
	time   string
}

var readBuildStamp = sync.OnceValue(func() buildStamp {
	stamp := buildStamp{commit: GitCommit, dirty: GitDirty == "true", time: BuildTime}
	if stamp.commit != "unknown" {
		return stamp
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return stamp
	}
	return stampFromSettings(stamp, info.Settings)
})

// stampFromSettings fills the fields of stamp that are still unknown
// from the toolchain's vcs.* build settings.
func stampFromSettings(stamp buildStamp, settings []debug.BuildSetting) buildStamp {
	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			stamp.commit = setting.Value
			if len(stamp.commit) > shortCommitLength {
				stamp.commit = stamp.commit[:shortCommitLength]
			}
		case "vcs.modified":
			stamp.dirty = setting.Value == "true"
		case "vcs.time":
			if stamp.time == "unknown" {
				stamp.time = setting.Value
			}
		}
	}
	return stamp
}

// Info returns a formatted version string suitable for --version output.
func Info() string {
	stamp := readBuildStamp()
	return formatInfo(Version, stamp)
}

func formatInfo(version string, stamp buildStamp) string {
	dirty := ""
	if stamp.dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", version, stamp.commit, dirty, stamp.time)
}

// Full returns Info followed by the Go toolchain and platform.
func Full() string {
	return fmt.Sprintf("%s %s %s/%s", Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	return Version
}

// Commit returns the git commit SHA.
func Commit() string {
	return readBuildStamp().commit
}
