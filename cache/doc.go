// Package cache is the gateway between the repository and the entity store.
//
// Gateway keeps no copy of the notes it returns and every call reaches the
// store. It builds the store queries and normalizes store failures into the
// gateway error kinds.
//
// # Ordering
//
// FetchNotes always asks the store for due date descending with id ascending
// as tie breaker, then re-sorts the decoded result with Compare. Notes that
// share a due date therefore come back in the same order on every call, even
// when the engine keeps timestamps at a coarser precision than Go.
//
// # Errors
//
// Every failure is returned as *Error carrying one of three kinds:
//
//   - KindNotFound: the target id has no record (store.ErrNotFound)
//   - KindConflict: the store refused the write (store.ErrConstraint)
//   - KindUnavailable: anything else, including query and connectivity failures
//
// The store error stays reachable through Unwrap:
//
//	_, err := gateway.UpdateNote(ctx, id, n).Await(ctx)
//	switch {
//	case errors.Is(err, cache.ErrNotFound):
//		// gone
//	case errors.Is(err, cache.ErrConflict):
//		var writeErr *store.WriteError
//		errors.As(err, &writeErr)
//	}
package cache
