// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func TestFormatInfo(t *testing.T) {
	tests := []struct {
		name  string
		stamp buildStamp
		want  string
	}{
		{
			name:  "clean",
			stamp: buildStamp{commit: "abc1234", time: "2026-02-10T12:00:00Z"},
			want:  "1.2.3 (abc1234, 2026-02-10T12:00:00Z)",
		},
		{
			name:  "dirty",
			stamp: buildStamp{commit: "abc1234", dirty: true, time: "unknown"},
			want:  "1.2.3 (abc1234-dirty, unknown)",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := formatInfo("1.2.3", test.stamp); got != test.want {
				t.Errorf("formatInfo() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestStampFromSettings(t *testing.T) {
	stamp := stampFromSettings(
		buildStamp{commit: "unknown", time: "unknown"},
		[]debug.BuildSetting{
			{Key: "GOOS", Value: "linux"},
			{Key: "vcs.revision", Value: "0123456789abcdef0123456789abcdef01234567"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "vcs.time", Value: "2026-03-01T00:00:00Z"},
		},
	)
	want := buildStamp{commit: "0123456", dirty: true, time: "2026-03-01T00:00:00Z"}
	if stamp != want {
		t.Errorf("stampFromSettings() = %+v, want %+v", stamp, want)
	}
}

func TestStampFromSettingsKeepsInjectedTime(t *testing.T) {
	stamp := stampFromSettings(
		buildStamp{commit: "unknown", time: "injected"},
		[]debug.BuildSetting{{Key: "vcs.time", Value: "2026-03-01T00:00:00Z"}},
	)
	if stamp.time != "injected" {
		t.Errorf("time = %q, want the injected value", stamp.time)
	}
}

func TestFull(t *testing.T) {
	full := Full()
	for _, want := range []string{Version, runtime.Version(), runtime.GOOS + "/" + runtime.GOARCH} {
		if !strings.Contains(full, want) {
			t.Errorf("Full() = %q, missing %q", full, want)
		}
	}
	if Short() != Version {
		t.Errorf("Short() = %q, want %q", Short(), Version)
	}
	if Commit() == "" {
		t.Error("Commit() is empty")
	}
}
