package cache

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-notes/internal/async"
	"github.com/goliatone/go-notes/note"
	"github.com/goliatone/go-notes/store"
)

// Store is the adapter surface used by the Gateway. *store.Adapter satisfies it.
type Store interface {
	FetchAll(ctx context.Context, opts ...store.FetchOption) *async.Task[[]note.Note]
	FetchByID(ctx context.Context, id uuid.UUID) *async.Task[note.Note]
	Insert(ctx context.Context, n note.Note) *async.Task[note.Note]
	DeleteByID(ctx context.Context, id uuid.UUID) *async.Task[struct{}]
	UpdateByID(ctx context.Context, id uuid.UUID, n note.Note) *async.Task[note.Note]
}

// Gateway builds note queries and normalizes store failures into *Error.
// It keeps no copy of the data it returns.
type Gateway struct {
	store  Store
	logger *zap.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the gateway logger.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGateway wraps s.
func NewGateway(s Store, opts ...Option) *Gateway {
	g := &Gateway{store: s, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// FetchNotes returns every note ordered by due date descending, ties broken
// by id ascending.
func (g *Gateway) FetchNotes(ctx context.Context) *async.Task[[]note.Note] {
	task := g.store.FetchAll(ctx,
		store.OrderBy(store.ColumnDueDate, true),
		store.OrderBy(store.ColumnID, false),
	)
	return async.Map(task, func(notes []note.Note, err error) ([]note.Note, error) {
		if err != nil {
			return nil, g.fail("fetch notes", err)
		}
		Sort(notes)
		return notes, nil
	})
}

// GetNote returns the note with id.
func (g *Gateway) GetNote(ctx context.Context, id uuid.UUID) *async.Task[note.Note] {
	return wrap(g, "get note", g.store.FetchByID(ctx, id))
}

// SaveNote inserts n and returns the stored note.
func (g *Gateway) SaveNote(ctx context.Context, n note.Note) *async.Task[note.Note] {
	return wrap(g, "save note", g.store.Insert(ctx, n))
}

// DeleteNote removes the note with id. A missing id is not an error.
func (g *Gateway) DeleteNote(ctx context.Context, id uuid.UUID) *async.Task[struct{}] {
	return wrap(g, "delete note", g.store.DeleteByID(ctx, id))
}

// UpdateNote overwrites the note with id and returns the record as stored.
// The id must already exist.
func (g *Gateway) UpdateNote(ctx context.Context, id uuid.UUID, n note.Note) *async.Task[note.Note] {
	return wrap(g, "update note", g.store.UpdateByID(ctx, id, n))
}

func (g *Gateway) fail(op string, err error) error {
	err = normalize(op, err)
	if kind, ok := KindOf(err); ok {
		g.logger.Debug("note operation failed",
			zap.String("op", op),
			zap.Stringer("kind", kind),
			zap.Error(err),
		)
	}
	return err
}

func wrap[T any](g *Gateway, op string, task *async.Task[T]) *async.Task[T] {
	return async.Map(task, func(v T, err error) (T, error) {
		if err != nil {
			var zero T
			return zero, g.fail(op, err)
		}
		return v, nil
	})
}
