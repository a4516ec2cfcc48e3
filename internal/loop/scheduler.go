package loop

import "time"

// CancelFunc cancels a scheduled task. Calling it after the task has run is
// a no-op. Safe to call more than once.
type CancelFunc func()

// Scheduler schedules a task to run on the loop after a delay.
//
// Controllers take a Scheduler instead of using time.AfterFunc directly so
// tests can substitute a manually advanced implementation (see
// internal/testutil) and keep every timing-dependent behavior deterministic.
type Scheduler interface {
	After(d time.Duration, t Task) CancelFunc
}

// TimerScheduler is the production Scheduler, backed by runtime timers.
// Fired tasks are posted onto the loop, never run on the timer goroutine.
type TimerScheduler struct {
	loop *Loop
}

// NewTimerScheduler creates a Scheduler that posts fired tasks to l.
func NewTimerScheduler(l *Loop) *TimerScheduler {
	return &TimerScheduler{loop: l}
}

// After schedules t to be posted to the loop after d.
func (s *TimerScheduler) After(d time.Duration, t Task) CancelFunc {
	timer := time.AfterFunc(d, func() {
		s.loop.Post(t)
	})
	return func() { timer.Stop() }
}
