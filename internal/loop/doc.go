// Package loop implements the cooperative event loop the storefront
// controllers run on.
//
// ARCHITECTURE:
//
// Single-Writer Task Loop:
// All controller state mutation happens on one goroutine draining a FIFO
// task queue. This mirrors the browser's event-loop model: handlers never
// preempt each other, and "concurrency" exists only because network
// completions are posted back onto the queue while other tasks run between
// issue and completion.
//
// Guarantees:
//   - Tasks execute in post order, one at a time
//   - No locking is needed inside controllers; they only run on the loop
//   - Delayed work goes through a Scheduler so tests can drive time manually
//
// The logical Clock stamps cart mutations with monotonically increasing
// sequence numbers. Response application order is decided by issue sequence,
// never by wall-clock arrival.
package loop
