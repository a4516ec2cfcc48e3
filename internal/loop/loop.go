package loop

import (
	"context"
	"log/slog"
)

// Loop is the single-writer event loop.
//
// All controller state lives behind this loop: handlers, network completion
// callbacks, and scheduled timers are posted as tasks and executed one at a
// time on the Run goroutine (or synchronously via Drain in tests and the
// simulator).
//
// Thread-safety model:
//   - Post(): safe from any goroutine
//   - Run(): must be called from exactly one goroutine
//   - Drain(): alternative to Run for synchronous callers; never mix the two
type Loop struct {
	queue *taskQueue
	clock *Clock
}

// New creates an empty loop.
func New() *Loop {
	return &Loop{
		queue: newTaskQueue(),
		clock: NewClock(),
	}
}

// Post submits a task for execution on the loop.
// Safe from any goroutine. Returns false if the loop has been stopped.
func (l *Loop) Post(t Task) bool {
	return l.queue.Enqueue(t)
}

// Clock returns the loop's logical clock.
func (l *Loop) Clock() *Clock {
	return l.clock
}

// Len returns the number of pending tasks. Useful for tests and monitoring.
func (l *Loop) Len() int {
	return l.queue.Len()
}

// Run executes tasks until the context is cancelled or Stop is called.
//
// Must be called from exactly one goroutine. A panicking task would take the
// whole loop down, matching the page-level blast radius of an unhandled
// exception; controllers are expected to convert failures into error values
// before they reach the loop.
func (l *Loop) Run(ctx context.Context) error {
	slog.Info("event loop starting")

	for {
		task, ok := l.queue.TryDequeue()
		if ok {
			task()
			continue
		}

		select {
		case <-ctx.Done():
			slog.Info("event loop stopping: context cancelled")
			l.queue.Close()
			return ctx.Err()

		case <-l.queue.Wait():
			// Signal fires on enqueue and on close. Closed-and-empty
			// means no more work will ever arrive.
			if l.queue.Len() == 0 {
				slog.Info("event loop stopping: queue closed")
				return nil
			}
		}
	}
}

// Drain synchronously executes queued tasks until the queue is empty,
// including tasks posted by the tasks it runs. Returns the number executed.
//
// Drain is the synchronous driving mode used by tests and the scenario
// simulator; production code uses Run.
func (l *Loop) Drain() int {
	n := 0
	for {
		task, ok := l.queue.TryDequeue()
		if !ok {
			return n
		}
		task()
		n++
	}
}

// Stop closes the task queue, causing Run to return once drained.
func (l *Loop) Stop() {
	l.queue.Close()
}
