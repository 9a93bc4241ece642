package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/goliatone/go-notes/internal/async"
	"github.com/goliatone/go-notes/internal/storeinfra"
	"github.com/goliatone/go-notes/note"
)

// Adapter performs note CRUD against a bun handle. Every operation is queued
// on a single serial store context, so the handle never sees two concurrent jobs
// from the same adapter.
type Adapter struct {
	db     *bun.DB
	base   repository.Repository[*Record]
	queue  *async.Queue
	logger *zap.Logger
	now    func() time.Time
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used for defects and failures.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithRepository replaces the bun backed repository.
func WithRepository(base repository.Repository[*Record]) Option {
	return func(a *Adapter) {
		if base != nil {
			a.base = base
		}
	}
}

// WithClock sets the clock used when a stored record has no due date.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) {
		if now != nil {
			a.now = now
		}
	}
}

// New builds an Adapter over db. The caller keeps ownership of db.
func New(db *bun.DB, opts ...Option) *Adapter {
	a := &Adapter{
		db:     db,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.base == nil {
		a.base = NewRecordRepository(db)
	}
	a.queue = async.NewQueue()
	return a
}

// Close waits for queued jobs and rejects later ones with ErrUnavailable.
func (a *Adapter) Close() {
	a.queue.Close()
}

// FetchAll reads every note. Without options results are ordered by due date,
// newest first.
func (a *Adapter) FetchAll(ctx context.Context, opts ...FetchOption) *async.Task[[]note.Note] {
	const op = "fetch all"
	return submit(a, ctx, op, func(ctx context.Context) ([]note.Note, error) {
		criteria, err := buildQuery(opts).criteria()
		if err != nil {
			return nil, &QueryError{Op: op, Err: err}
		}

		records, _, err := a.base.List(ctx, criteria...)
		if err != nil {
			return nil, a.readFailure(op, err)
		}

		notes := make([]note.Note, 0, len(records))
		for _, rec := range records {
			if n, ok := a.decode(op, rec); ok {
				notes = append(notes, n)
			}
		}
		return notes, nil
	})
}

// FetchByID reads a single note.
func (a *Adapter) FetchByID(ctx context.Context, id uuid.UUID) *async.Task[note.Note] {
	const op = "fetch"
	return submit(a, ctx, op, func(ctx context.Context) (note.Note, error) {
		records, _, err := a.base.List(ctx, selectByID(id))
		if err != nil {
			return note.Note{}, a.readFailure(op, err)
		}
		return a.first(op, id, records)
	})
}

// Insert stores a new note as a single statement.
func (a *Adapter) Insert(ctx context.Context, n note.Note) *async.Task[note.Note] {
	const op = "insert"
	return submit(a, ctx, op, func(ctx context.Context) (note.Note, error) {
		if err := n.Validate(); err != nil {
			return note.Note{}, &WriteError{Op: op, ID: n.ID, Err: fmt.Errorf("%w: %w", ErrConstraint, err)}
		}

		rec := toRecord(n)
		created, err := a.base.Create(ctx, rec)
		if err != nil {
			return note.Note{}, a.writeFailure(op, n.ID, err)
		}
		if created == nil {
			created = rec
		}

		saved, ok := a.decode(op, created)
		if !ok {
			return note.Note{}, &WriteError{Op: op, ID: n.ID, Err: errors.New("store returned a record without id")}
		}
		return saved, nil
	})
}

// DeleteByID removes the note with id. Deleting a missing id succeeds.
func (a *Adapter) DeleteByID(ctx context.Context, id uuid.UUID) *async.Task[struct{}] {
	const op = "delete"
	return submit(a, ctx, op, func(ctx context.Context) (struct{}, error) {
		if err := a.base.DeleteWhere(ctx, deleteByID(id)); err != nil {
			return struct{}{}, a.writeFailure(op, id, err)
		}
		return struct{}{}, nil
	})
}

// UpdateByID overwrites the fields of an existing note and returns the stored
// result. The lookup, write and re-read share one transaction. A missing id
// yields a NotFoundError and nothing is written.
func (a *Adapter) UpdateByID(ctx context.Context, id uuid.UUID, n note.Note) *async.Task[note.Note] {
	const op = "update"
	return submit(a, ctx, op, func(ctx context.Context) (note.Note, error) {
		n.ID = id
		if err := n.Validate(); err != nil {
			return note.Note{}, &WriteError{Op: op, ID: id, Err: fmt.Errorf("%w: %w", ErrConstraint, err)}
		}

		var updated note.Note
		err := a.inTx(ctx, func(ctx context.Context, idb bun.IDB) error {
			existing, err := a.lookupTx(ctx, idb, op, id)
			if err != nil {
				return err
			}

			apply(existing, n)
			if err := a.overwrite(ctx, idb, op, existing); err != nil {
				return err
			}

			fresh, err := a.lookupTx(ctx, idb, op, id)
			if err != nil {
				return err
			}
			updated, _ = a.decode(op, fresh)
			return nil
		})
		if err != nil {
			return note.Note{}, a.txFailure(op, id, err)
		}
		return updated, nil
	})
}

func (a *Adapter) inTx(ctx context.Context, fn func(context.Context, bun.IDB) error) error {
	if a.db == nil {
		return fn(ctx, nil)
	}
	return a.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}

// overwrite writes every mutable column of rec, NULLs included. The base
// repository update omits zero fields, so it cannot clear an optional body.
func (a *Adapter) overwrite(ctx context.Context, idb bun.IDB, op string, rec *Record) error {
	if idb == nil {
		if _, err := a.base.UpdateTx(ctx, idb, rec); err != nil {
			return a.writeFailure(op, rec.ID, err)
		}
		return nil
	}

	res, err := idb.NewUpdate().
		Model(rec).
		Column(ColumnTitle, ColumnIsComplete, ColumnDueDate, ColumnNote).
		WherePK().
		Exec(ctx)
	if err != nil {
		return a.writeFailure(op, rec.ID, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected != 1 {
		return &NotFoundError{Op: op, ID: rec.ID}
	}
	return nil
}

func (a *Adapter) lookupTx(ctx context.Context, idb bun.IDB, op string, id uuid.UUID) (*Record, error) {
	records, _, err := a.base.ListTx(ctx, idb, selectByID(id))
	if err != nil {
		return nil, a.readFailure(op, err)
	}
	for _, rec := range records {
		if rec != nil && rec.ID == id {
			return rec, nil
		}
	}
	return nil, &NotFoundError{Op: op, ID: id}
}

func (a *Adapter) first(op string, id uuid.UUID, records []*Record) (note.Note, error) {
	for _, rec := range records {
		if n, ok := a.decode(op, rec); ok && n.ID == id {
			return n, nil
		}
	}
	return note.Note{}, &NotFoundError{Op: op, ID: id}
}

// decode converts rec, skipping records that cannot represent a note.
func (a *Adapter) decode(op string, rec *Record) (note.Note, bool) {
	if rec == nil || rec.ID == uuid.Nil {
		a.logger.Warn("skipping defective note record",
			zap.String("op", op),
			zap.String("reason", "missing id"),
		)
		return note.Note{}, false
	}

	n, defaulted := rec.toNote(a.now)
	if len(defaulted) > 0 {
		a.logger.Debug("decoded note with defaults",
			zap.String("op", op),
			zap.Stringer("id", rec.ID),
			zap.Strings("columns", defaulted),
		)
	}
	return n, true
}

func (a *Adapter) readFailure(op string, err error) error {
	if storeinfra.IsTransient(err) {
		err = fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	a.logger.Debug("note query failed", zap.String("op", op), zap.Error(err))
	return &QueryError{Op: op, Err: err}
}

func (a *Adapter) writeFailure(op string, id uuid.UUID, err error) error {
	switch {
	case storeinfra.IsConstraintViolation(err):
		err = fmt.Errorf("%w: %w", ErrConstraint, err)
	case storeinfra.IsTransient(err):
		err = fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	a.logger.Debug("note write failed", zap.String("op", op), zap.Stringer("id", id), zap.Error(err))
	return &WriteError{Op: op, ID: id, Err: err}
}

// txFailure keeps typed errors raised inside a transaction and wraps the rest,
// typically begin, commit or rollback failures.
func (a *Adapter) txFailure(op string, id uuid.UUID, err error) error {
	var (
		notFound *NotFoundError
		query    *QueryError
		write    *WriteError
	)
	if errors.As(err, &notFound) || errors.As(err, &query) || errors.As(err, &write) {
		return err
	}
	return a.writeFailure(op, id, err)
}

// submit queues fn on the adapter's store context. Jobs rejected by a closed
// queue or skipped because ctx ended first fail with ErrUnavailable.
func submit[T any](a *Adapter, ctx context.Context, op string, fn async.Func[T]) *async.Task[T] {
	task := async.Submit(a.queue, ctx, fn)
	return async.Map(task, func(v T, err error) (T, error) {
		if errors.Is(err, async.ErrQueueClosed) {
			var zero T
			return zero, fmt.Errorf("store: %s: %w: %w", op, ErrUnavailable, err)
		}
		return v, err
	})
}
