// Package store is the entity store adapter for notes.
//
// An Adapter turns note.Note values into rows of the notes table through a
// go-repository-bun repository and back again. It is the only layer that
// knows about bun, SQL drivers or the persisted Record shape.
//
// Every operation returns an *async.Task and is executed on a serial queue
// owned by the adapter:
//
//	db, err := storeinfra.Open(ctx, storeinfra.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	if err := store.EnsureSchema(ctx, db); err != nil {
//		return err
//	}
//
//	adapter := store.New(db, store.WithLogger(logger))
//	defer adapter.Close()
//
//	notes, err := adapter.FetchAll(ctx).Await(ctx)
//
// Failures are reported with QueryError, WriteError and NotFoundError.
// errors.Is matches ErrNotFound, ErrConstraint and ErrUnavailable through them.
package store
