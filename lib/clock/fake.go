// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"container/heap"
	"sync"
	"time"
)

// FakeClock is a Clock whose time moves only when Advance is called.
// It is safe for concurrent use.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	timers  timerHeap
	changed *sync.Cond
}

// Fake returns a FakeClock reading start.
func Fake(start time.Time) *FakeClock {
	c := &FakeClock{now: start}
	c.changed = sync.NewCond(&c.mu)
	return c
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// After returns a channel that receives the fake time once Advance has
// moved the clock d past the current time. A non-positive d fires at
// once.
func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	fired := make(chan time.Time, 1)
	if d <= 0 {
		fired <- c.now
		return fired
	}
	heap.Push(&c.timers, fakeTimer{deadline: c.now.Add(d), fired: fired})
	c.changed.Broadcast()
	return fired
}

// Advance moves the clock forward by d, firing due timers in deadline
// order.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
	for len(c.timers) > 0 && !c.timers[0].deadline.After(c.now) {
		timer := heap.Pop(&c.timers).(fakeTimer)
		timer.fired <- c.now
	}
	c.changed.Broadcast()
}

// BlockUntil waits until at least n timers are pending, so a test can
// advance past a timer another goroutine is about to wait on.
func (c *FakeClock) BlockUntil(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.timers) < n {
		c.changed.Wait()
	}
}

// Waiters returns the number of pending timers.
func (c *FakeClock) Waiters() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

type fakeTimer struct {
	deadline time.Time
	fired    chan time.Time
}

// timerHeap is a min-heap of timers by deadline.
type timerHeap []fakeTimer

func (h timerHeap) Len() int           { return len(h) }
func (h timerHeap) Less(i, j int) bool { return h[i].deadline.Before(h[j].deadline) }
func (h timerHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *timerHeap) Push(x any)        { *h = append(*h, x.(fakeTimer)) }

func (h *timerHeap) Pop() any {
	old := *h
	last := old[len(old)-1]
	*h = old[:len(old)-1]
	return last
}
