// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"time"
)

// Fataler is the part of testing.TB that RequireReceive uses.
type Fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

// RequireReceive returns the next value on ch, failing the test if ch
// is closed or nothing arrives within timeout. Search tests use it to
// bound the wait for a coordinator running in another goroutine.
//
//	result := testutil.RequireReceive(t, done, 30*time.Second, "waiting for %s", pattern)
func RequireReceive[T any](t Fataler, ch <-chan T, timeout time.Duration, what ...any) T {
	t.Helper()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case value, ok := <-ch:
		if !ok {
			t.Fatalf("%s: channel closed before a value arrived", describe(what))
		}
		return value
	case <-timer.C:
		t.Fatalf("%s: nothing received after %v", describe(what), timeout)
	}
	panic("unreachable")
}

// describe renders the optional format and arguments that name what a
// test was waiting for.
func describe(what []any) string {
	if len(what) == 0 {
		return "receive"
	}
	format, ok := what[0].(string)
	if !ok {
		return fmt.Sprint(what...)
	}
	return fmt.Sprintf(format, what[1:]...)
}
