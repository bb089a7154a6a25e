// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func sampleSummary() Summary {
	return Summary{
		Commit:        "c24e77cca83d3997e5dbcb50df74f7df084b3abc",
		Pattern:       "abc",
		Ref:           "HEAD",
		Workers:       4,
		Winner:        2,
		TotalTries:    18186,
		ExpectedTries: 4096,
		Elapsed:       1500 * time.Millisecond,
		Throughput:    12000,
		Drift:         2,
		Padding:       []int{3, 8},
	}
}

func TestRenderSummary(t *testing.T) {
	var buffer bytes.Buffer
	if err := RenderSummary(&buffer, sampleSummary()); err != nil {
		t.Fatalf("RenderSummary: %v", err)
	}
	output := buffer.String()

	for _, want := range []string{
		"c24e77cca83d3997e5dbcb50df74f7df084b3abc\n",
		"18,186 (expected 4,096)",
		"1.5s (12 kH/s)",
		"4 (winner 2)",
		"2 lines, 11 spaces",
		"+2s (commit time moved forward by 2 seconds)",
		"HEAD",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("summary missing %q\n\nFull output:\n%s", want, output)
		}
	}
	// A buffer is not a terminal: no escape sequences.
	if strings.Contains(output, "\x1b[") {
		t.Errorf("summary for a non-terminal contains escape sequences: %q", output)
	}
}

func TestRenderSummary_NotStoredNoDrift(t *testing.T) {
	summary := sampleSummary()
	summary.Ref = ""
	summary.Drift = 0
	summary.Padding = nil
	summary.Throughput = 0
	summary.Fingerprint = "0123456789ab"

	var buffer bytes.Buffer
	if err := RenderSummary(&buffer, summary); err != nil {
		t.Fatalf("RenderSummary: %v", err)
	}
	output := buffer.String()
	for _, want := range []string{"not stored", "+0s\n", "none", "0123456789ab"} {
		if !strings.Contains(output, want) {
			t.Errorf("summary missing %q\n\nFull output:\n%s", want, output)
		}
	}
	if strings.Contains(output, "moved forward") || strings.Contains(output, "H/s") {
		t.Errorf("unexpected drift or throughput note:\n%s", output)
	}
}

func TestHighlight(t *testing.T) {
	// Upper-casing makes the highlighted span visible without
	// depending on terminal color detection.
	marker := lipgloss.NewStyle().Transform(strings.ToUpper)

	tests := []struct {
		summary Summary
		want    string
	}{
		{Summary{Commit: "00ffab", Pattern: "ab"}, "00ffAB"},
		{Summary{Commit: "abff00", Pattern: "ab", AllowPrefix: true}, "ABff00"},
		{Summary{Commit: "abff00", Pattern: "ab"}, "abff00"},
		{Summary{Commit: "00ffab", Pattern: ""}, "00ffab"},
	}
	for _, test := range tests {
		if got := highlight(test.summary, marker); got != test.want {
			t.Errorf("highlight(%+v) = %q, want %q", test.summary, got, test.want)
		}
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		count int64
		want  string
	}{
		{0, "0 seconds"},
		{1, "1 second"},
		{1234, "1,234 seconds"},
	}
	for _, test := range tests {
		if got := plural(test.count, "second"); got != test.want {
			t.Errorf("plural(%d) = %q, want %q", test.count, got, test.want)
		}
	}
}
