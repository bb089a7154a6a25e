// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func TestReport(t *testing.T) {
	var buffer bytes.Buffer
	Report(&buffer, fmt.Errorf("writing tree: %w", errors.New("index locked")))
	if got, want := buffer.String(), "error: writing tree: index locked\n"; got != want {
		t.Errorf("Report() wrote %q, want %q", got, want)
	}
}
