// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Summary is what a command reports about a finished search. It is
// also the --json output of commit, search, and report.
type Summary struct {
	Commit      string `json:"commit"`
	Pattern     string `json:"pattern"`
	AllowPrefix bool   `json:"allow_prefix"`

	// Ref is the reference moved to the commit, empty when nothing
	// was stored.
	Ref string `json:"ref,omitempty"`

	Workers       int           `json:"workers"`
	Winner        int           `json:"winner"`
	TotalTries    uint64        `json:"total_tries"`
	ExpectedTries float64       `json:"expected_tries"`
	Elapsed       time.Duration `json:"elapsed_ns"`
	Throughput    float64       `json:"hashes_per_second"`
	Drift         int64         `json:"drift_seconds"`
	Timestamp     int64         `json:"timestamp"`
	Padding       []int         `json:"padding"`
	Fingerprint   string        `json:"fingerprint,omitempty"`
}

// RenderSummary writes a human-readable summary to w. Colors are used
// only when w is a terminal that supports them.
func RenderSummary(w io.Writer, summary Summary) error {
	renderer := lipgloss.NewRenderer(w)
	label := renderer.NewStyle().Width(12).Faint(true)
	match := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	note := renderer.NewStyle().Italic(true)

	var builder strings.Builder
	builder.WriteString(highlight(summary, match) + "\n")

	row := func(name, value string) {
		builder.WriteString("  " + label.Render(name) + value + "\n")
	}
	row("tries", fmt.Sprintf("%s (expected %s)",
		humanize.Comma(int64(summary.TotalTries)), humanize.Comma(int64(summary.ExpectedTries))))
	elapsed := summary.Elapsed.Round(time.Millisecond).String()
	if summary.Throughput > 0 {
		elapsed += " (" + humanize.SIWithDigits(summary.Throughput, 2, "H/s") + ")"
	}
	row("elapsed", elapsed)
	row("workers", fmt.Sprintf("%d (winner %d)", summary.Workers, summary.Winner))
	row("padding", formatPadding(summary.Padding))
	drift := fmt.Sprintf("+%ds", summary.Drift)
	if summary.Drift > 0 {
		drift += " " + note.Render(fmt.Sprintf("(commit time moved forward by %s)", plural(summary.Drift, "second")))
	}
	row("drift", drift)
	if summary.Fingerprint != "" {
		row("fingerprint", summary.Fingerprint)
	}
	if summary.Ref != "" {
		row("stored", summary.Ref)
	} else {
		row("stored", note.Render("not stored"))
	}

	_, err := io.WriteString(w, builder.String())
	return err
}

// highlight renders the commit id with the matched pattern emphasized.
func highlight(summary Summary, style lipgloss.Style) string {
	commit, pattern := summary.Commit, summary.Pattern
	switch {
	case pattern == "" || len(pattern) > len(commit):
		return commit
	case strings.HasSuffix(commit, pattern):
		cut := len(commit) - len(pattern)
		return commit[:cut] + style.Render(commit[cut:])
	case summary.AllowPrefix && strings.HasPrefix(commit, pattern):
		return style.Render(commit[:len(pattern)]) + commit[len(pattern):]
	default:
		return commit
	}
}

func formatPadding(lines []int) string {
	if len(lines) == 0 {
		return "none"
	}
	total := 0
	for _, width := range lines {
		total += width
	}
	return fmt.Sprintf("%s, %s", plural(int64(len(lines)), "line"), plural(int64(total), "space"))
}

func plural(count int64, noun string) string {
	if count == 1 {
		return "1 " + noun
	}
	return humanize.Comma(count) + " " + noun + "s"
}
