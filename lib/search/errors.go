// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/git-vanity/lib/objectid"
)

// ConfigurationError rejects a search input before any work starts.
type ConfigurationError struct {
	// Field names the rejected input ("pattern", "workers", ...).
	Field string

	// Value is the rejected input as given.
	Value string

	// Reason explains the rejection.
	Reason string
}

func (err *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", err.Field, err.Value, err.Reason)
}

// ConstructionError reports a candidate whose framing is internally
// inconsistent: a header length that disagrees with the content, or a
// rendered template whose length differs from its computed length.
// It indicates a defect, never a search outcome, and aborts the
// search.
type ConstructionError struct {
	// Stage is where the defect was detected.
	Stage string

	Declared int
	Actual   int

	// Err is the underlying parse error, if any.
	Err error
}

func (err *ConstructionError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("candidate construction defect (%s): %v", err.Stage, err.Err)
	}
	return fmt.Sprintf("candidate construction defect (%s): declared %d bytes, actual %d",
		err.Stage, err.Declared, err.Actual)
}

func (err *ConstructionError) Unwrap() error { return err.Err }

// IntegrityError reports a winning candidate that failed the
// re-check performed outside the search loop. The candidate must not
// be written to storage.
type IntegrityError struct {
	Reported   objectid.ID
	Recomputed objectid.ID
	Reason     string
}

func (err *IntegrityError) Error() string {
	return fmt.Sprintf("integrity check failed: %s (reported %s, recomputed %s)",
		err.Reason, err.Reported, err.Recomputed)
}

// IsConfiguration reports whether err is or wraps a ConfigurationError.
func IsConfiguration(err error) bool {
	var configurationError *ConfigurationError
	return errors.As(err, &configurationError)
}

// IsConstruction reports whether err is or wraps a ConstructionError.
func IsConstruction(err error) bool {
	var constructionError *ConstructionError
	return errors.As(err, &constructionError)
}

// IsIntegrity reports whether err is or wraps an IntegrityError.
func IsIntegrity(err error) bool {
	var integrityError *IntegrityError
	return errors.As(err, &integrityError)
}
