// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bureau-foundation/git-vanity/lib/codec"
	"github.com/bureau-foundation/git-vanity/lib/commit"
	"github.com/bureau-foundation/git-vanity/lib/objectid"
	"github.com/bureau-foundation/git-vanity/lib/padding"
	"github.com/bureau-foundation/git-vanity/lib/search"
)

// Version is the report format version written by this package.
const Version = 1

// Report is the persisted outcome of one search.
type Report struct {
	Version int `cbor:"version"`

	// Fingerprint identifies the search input.
	Fingerprint Hash `cbor:"fingerprint"`

	Pattern     string `cbor:"pattern"`
	AllowPrefix bool   `cbor:"allow_prefix,omitempty"`

	// Width and MaxLines are the padding space searched per timestamp.
	Width    int `cbor:"width"`
	MaxLines int `cbor:"max_lines"`

	// Commit is the winning digest and Object its framed bytes.
	Commit objectid.ID `cbor:"commit"`
	Object []byte      `cbor:"object"`

	Start     int64 `cbor:"start"`
	Timestamp int64 `cbor:"timestamp"`
	Padding   []int `cbor:"padding"`

	Winner     int           `cbor:"winner"`
	TotalTries uint64        `cbor:"total_tries"`
	Elapsed    time.Duration `cbor:"elapsed_ns"`
	Workers    []Worker      `cbor:"workers"`

	// Ref is the reference moved to the commit. Empty when the commit
	// was not stored.
	Ref string `cbor:"ref,omitempty"`
}

// Worker is one worker's final statistics.
type Worker struct {
	ID    int    `cbor:"id"`
	Tries uint64 `cbor:"tries"`
	State string `cbor:"state"`
	Error string `cbor:"error,omitempty"`
}

// New builds a report from a search result.
func New(result *search.Result, template *commit.Template, pattern search.Pattern, space padding.Space) *Report {
	workers := make([]Worker, len(result.Workers))
	for i, stats := range result.Workers {
		workers[i] = Worker{ID: stats.WorkerID, Tries: stats.Tries, State: stats.State.String()}
		if stats.Err != nil {
			workers[i].Error = stats.Err.Error()
		}
	}
	return &Report{
		Version:     Version,
		Fingerprint: Fingerprint(template, pattern, space),
		Pattern:     pattern.String(),
		AllowPrefix: pattern.AllowPrefix(),
		Width:       space.Width,
		MaxLines:    space.MaxLines,
		Commit:      result.ID,
		Object:      result.Object,
		Start:       result.Start,
		Timestamp:   result.Timestamp,
		Padding:     result.Padding.Lines(),
		Winner:      result.WorkerID,
		TotalTries:  result.TotalTries,
		Elapsed:     result.Elapsed,
		Workers:     workers,
	}
}

// Space returns the padding space searched per timestamp.
func (r *Report) Space() padding.Space {
	return padding.Space{Width: r.Width, MaxLines: r.MaxLines}
}

// Drift returns how many seconds the commit time lies past the
// requested start.
func (r *Report) Drift() int64 {
	return r.Timestamp - r.Start
}

// Verify re-checks the stored object offline: its digest must equal
// Commit and match Pattern, and it must be a commit.
func (r *Report) Verify() error {
	if r.Version != Version {
		return fmt.Errorf("report version %d, want %d", r.Version, Version)
	}
	if r.Commit.IsZero() {
		return errors.New("report has no commit")
	}
	pattern, err := search.ParsePattern(r.Pattern, r.AllowPrefix)
	if err != nil {
		return err
	}
	if token, ok := r.paddingToken(); !ok || !r.Space().Contains(token) {
		return fmt.Errorf("report padding %v lies outside width %d, %d lines", r.Padding, r.Width, r.MaxLines)
	}
	kind, _, err := objectid.SplitFrame(r.Object)
	if err != nil {
		return fmt.Errorf("report object: %w", err)
	}
	if kind != commit.ObjectKind {
		return fmt.Errorf("report object is a %s, want %s", kind, commit.ObjectKind)
	}
	recomputed := objectid.Sum(r.Object)
	if recomputed != r.Commit {
		return &search.IntegrityError{Reported: r.Commit, Recomputed: recomputed,
			Reason: "report object does not hash to the recorded commit"}
	}
	if !pattern.Match(recomputed) {
		return &search.IntegrityError{Reported: r.Commit, Recomputed: recomputed,
			Reason: fmt.Sprintf("commit does not match pattern %q", r.Pattern)}
	}
	return nil
}

func (r *Report) paddingToken() (padding.Token, bool) {
	if len(r.Padding) > padding.MaxLinesLimit {
		return padding.Token{}, false
	}
	for _, width := range r.Padding {
		if width < 0 || width >= padding.MaxWidthLimit {
			return padding.Token{}, false
		}
	}
	return padding.TokenOf(r.Padding...), true
}

// Write stores report at path, creating the directory as needed. The
// encoded report goes to a sibling temporary file that is renamed over
// path once it is on disk, so path holds either the old report or the
// new one.
func Write(path string, report *Report) error {
	data, err := codec.Marshal(report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	file, err := os.CreateTemp(directory, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	if err := writeAndClose(file, data); err != nil {
		os.Remove(file.Name())
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	if err := os.Rename(file.Name(), path); err != nil {
		os.Remove(file.Name())
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	syncDirectory(directory)
	return nil
}

func writeAndClose(file *os.File, data []byte) error {
	_, err := file.Write(data)
	if err == nil {
		err = file.Sync()
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(file.Name(), 0644)
	}
	return err
}

// syncDirectory flushes the rename. Failure is ignored: the report is
// already in place.
func syncDirectory(directory string) {
	handle, err := os.Open(directory)
	if err != nil {
		return
	}
	handle.Sync()
	handle.Close()
}

// Read reads and parses a report file. When the file does not exist,
// the returned error wraps os.ErrNotExist (testable with errors.Is).
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Decode parses report bytes.
func Decode(data []byte) (*Report, error) {
	var report Report
	if err := codec.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	if report.Version == 0 {
		return nil, errors.New("parsing report: missing version")
	}
	return &report, nil
}
