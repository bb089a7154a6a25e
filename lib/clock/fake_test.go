// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var searchStart = time.Unix(1700000000, 0)

func TestFakeNow(t *testing.T) {
	t.Parallel()

	c := Fake(searchStart)
	if got := Since(c, searchStart); got != 0 {
		t.Fatalf("Since = %v before Advance, want 0", got)
	}
	c.Advance(1500 * time.Millisecond)
	c.Advance(1500 * time.Millisecond)
	if got := Since(c, searchStart); got != 3*time.Second {
		t.Errorf("Since = %v, want 3s", got)
	}
}

func TestFakeAfter(t *testing.T) {
	t.Parallel()

	c := Fake(searchStart)
	late := c.After(10 * time.Second)
	early := c.After(5 * time.Second)
	if got := c.Waiters(); got != 2 {
		t.Fatalf("Waiters = %d, want 2", got)
	}

	c.Advance(7 * time.Second)
	select {
	case at := <-early:
		if want := searchStart.Add(7 * time.Second); !at.Equal(want) {
			t.Errorf("early fired with %v, want %v", at, want)
		}
	default:
		t.Fatal("5s timer did not fire after 7s")
	}
	select {
	case <-late:
		t.Fatal("10s timer fired after 7s")
	default:
	}

	c.Advance(3 * time.Second)
	select {
	case <-late:
	default:
		t.Fatal("10s timer did not fire at its deadline")
	}
	if got := c.Waiters(); got != 0 {
		t.Errorf("Waiters = %d after both fired, want 0", got)
	}
}

func TestFakeAfterNonPositiveFiresAtOnce(t *testing.T) {
	t.Parallel()

	c := Fake(searchStart)
	for _, d := range []time.Duration{0, -time.Second} {
		select {
		case <-c.After(d):
		default:
			t.Errorf("After(%v) did not fire immediately", d)
		}
	}
	if c.Waiters() != 0 {
		t.Errorf("Waiters = %d, want 0", c.Waiters())
	}
}

func TestFakeBlockUntil(t *testing.T) {
	t.Parallel()

	c := Fake(searchStart)
	woke := make(chan time.Time)
	go func() {
		woke <- <-c.After(time.Minute)
	}()

	c.BlockUntil(1)
	c.Advance(time.Minute)
	if at := <-woke; !at.Equal(searchStart.Add(time.Minute)) {
		t.Errorf("woke at %v, want %v", at, searchStart.Add(time.Minute))
	}
}
