// Package dom is the runtime's retained-mode document model: the boundary
// type standing in for the browser environment.
//
// It provides exactly what the controllers need and nothing more:
//   - element creation, query by simple selector, attribute/class mutation
//   - delegated event dispatch through a root-level dispatch table, so
//     drawer content can be replaced wholesale without re-binding handlers
//   - focus tracking (which element currently holds focus)
//   - visibility/disabled semantics for focusability checks
//   - deterministic HTML serialization for golden tests
//
// Documents are not thread-safe. All mutation happens on the event loop.
package dom
