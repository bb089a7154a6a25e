// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

// fatalRecorder turns Fatalf into a panic carrying the message, so a
// test can observe a failure without failing itself.
type fatalRecorder struct{}

type fatalMessage string

func (fatalRecorder) Helper() {}

func (fatalRecorder) Fatalf(format string, args ...any) {
	panic(fatalMessage(fmt.Sprintf(format, args...)))
}

func failure(body func(t Fataler)) (message string) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}
		text, ok := recovered.(fatalMessage)
		if !ok {
			panic(recovered)
		}
		message = string(text)
	}()
	body(fatalRecorder{})
	return ""
}

func TestRequireReceive(t *testing.T) {
	t.Parallel()

	results := make(chan string, 1)
	results <- "c0ffee"
	if got := RequireReceive(t, results, time.Second, "result"); got != "c0ffee" {
		t.Errorf("RequireReceive = %q, want c0ffee", got)
	}
}

func TestRequireReceiveFailures(t *testing.T) {
	t.Parallel()

	closed := make(chan int)
	close(closed)

	tests := []struct {
		name string
		body func(t Fataler)
		want []string
	}{
		{
			name: "timeout",
			body: func(t Fataler) {
				RequireReceive(t, make(chan int), time.Millisecond, "waiting for %s", "abc")
			},
			want: []string{"waiting for abc", "nothing received after 1ms"},
		},
		{
			name: "closed",
			body: func(t Fataler) { RequireReceive(t, closed, time.Second) },
			want: []string{"receive: channel closed"},
		},
		{
			name: "non-string description",
			body: func(t Fataler) { RequireReceive(t, closed, time.Second, 42) },
			want: []string{"42: channel closed"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			message := failure(test.body)
			for _, want := range test.want {
				if !strings.Contains(message, want) {
					t.Errorf("failure = %q, want it to contain %q", message, want)
				}
			}
		})
	}
}
