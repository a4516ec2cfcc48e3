// Package cart implements the cart drawer controller: optimistic quantity
// updates reconciled against the remote cart resource.
//
// STATE MODEL:
//
// Per line key the controller runs Idle -> Pending -> Idle. A quantity
// intent immediately shows the requested value (optimistic), stamps the
// request with a sequence number from the loop's logical clock, and issues
// the network call. Responses apply in issue order per key: a response whose
// seq is no longer the highest issued for its key is discarded, so a slow
// early response can never clobber a faster later one. Requests are never
// cancelled at the network level; superseding is purely a matter of ignoring
// the stale completion.
//
// The in-memory snapshot is server truth. Every successful mutation replaces
// it wholesale and triggers a full re-render of the line items, badges, and
// subtotal - never an incremental patch. Failures revert the controls to the
// last confirmed snapshot and raise an assertive announcement.
//
// All methods must be called on the event loop goroutine.
package cart
