// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func TestEmitJSON(t *testing.T) {
	type result struct {
		Commit string `json:"commit"`
		Match  bool   `json:"match"`
	}

	tests := []struct {
		name    string
		enabled bool
		value   any
		want    string
	}{
		{"disabled", false, result{Commit: "abc"}, ""},
		{"struct", true, result{Commit: "abc", Match: true}, "{\n  \"commit\": \"abc\",\n  \"match\": true\n}\n"},
		{"nil slice", true, []int(nil), "[]\n"},
		{"empty map", true, map[string]int{}, "{}\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buffer bytes.Buffer
			output := JSONOutput{OutputJSON: test.enabled}
			done, err := output.EmitJSON(&buffer, test.value)
			if err != nil {
				t.Fatal(err)
			}
			if done != test.enabled {
				t.Errorf("done = %v, want %v", done, test.enabled)
			}
			if buffer.String() != test.want {
				t.Errorf("output = %q, want %q", buffer.String(), test.want)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	err := fmt.Errorf("verify: %w", &ExitError{Code: 1})
	var exitError *ExitError
	if !errors.As(err, &exitError) || exitError.ExitCode() != 1 {
		t.Fatalf("errors.As(%v) did not find code 1", err)
	}
	if got := exitError.Error(); got != "exit status 1" {
		t.Errorf("Error() = %q", got)
	}
}
