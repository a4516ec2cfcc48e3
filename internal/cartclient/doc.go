// Package cartclient is the typed request/response wrapper around the
// remote cart resource.
//
// The client performs no retries, no deduplication, and no rollback; each
// call maps one user intent to one HTTP exchange and classifies failures
// into NetworkError (transport or non-success status) or ValidationError
// (structured rejection from the add endpoint). Policy - superseding,
// reverting, re-rendering - lives in the cart controller.
package cartclient
