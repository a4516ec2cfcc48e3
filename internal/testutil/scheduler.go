// Package testutil provides deterministic test doubles for the event loop's
// timing primitives.
package testutil

import (
	"sort"
	"sync"
	"time"

	"github.com/nate-a11y/AED-Empire/internal/loop"
)

// ManualScheduler is a loop.Scheduler driven by explicit time advancement.
//
// Nothing fires until Advance is called; tests control exactly which timers
// have elapsed. Fired tasks are posted to the loop, so a test advances time
// and then drains the loop:
//
//	sched.Advance(1000 * time.Millisecond)
//	lp.Drain()
//
// Thread-safety: all methods are safe for concurrent use, though tests are
// typically single-threaded.
type ManualScheduler struct {
	mu      sync.Mutex
	loop    *loop.Loop
	now     time.Duration
	nextID  int
	pending map[int]*manualTimer
}

type manualTimer struct {
	id       int
	deadline time.Duration
	task     loop.Task
}

// NewManualScheduler creates a scheduler at time zero posting to l.
func NewManualScheduler(l *loop.Loop) *ManualScheduler {
	return &ManualScheduler{
		loop:    l,
		pending: make(map[int]*manualTimer),
	}
}

// After registers t to fire once the scheduler's clock has advanced by d.
func (s *ManualScheduler) After(d time.Duration, t loop.Task) loop.CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.pending[id] = &manualTimer{id: id, deadline: s.now + d, task: t}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.pending, id)
	}
}

// Advance moves the clock forward by d and posts every timer whose deadline
// has been reached, in deadline order (registration order breaks ties).
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d

	var due []*manualTimer
	for _, tm := range s.pending {
		if tm.deadline <= s.now {
			due = append(due, tm)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline != due[j].deadline {
			return due[i].deadline < due[j].deadline
		}
		return due[i].id < due[j].id
	})
	for _, tm := range due {
		delete(s.pending, tm.id)
	}
	s.mu.Unlock()

	for _, tm := range due {
		s.loop.Post(tm.task)
	}
}

// PendingCount returns the number of timers that have not fired or been
// cancelled. Used by tests to verify cancellation.
func (s *ManualScheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
