package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/goliatone/go-notes/internal/async"
	"github.com/goliatone/go-notes/note"
)

// Repository is the data access surface used by presenters.
type Repository interface {
	FetchNotes(ctx context.Context) *async.Task[[]note.Note]
	SaveNote(ctx context.Context, n note.Note) *async.Task[note.Note]
	DeleteNote(ctx context.Context, id uuid.UUID) *async.Task[struct{}]
	UpdateNote(ctx context.Context, id uuid.UUID, n note.Note) *async.Task[note.Note]
}

// Cache is the gateway a DataRepository forwards to. *cache.Gateway satisfies it.
type Cache interface {
	FetchNotes(ctx context.Context) *async.Task[[]note.Note]
	GetNote(ctx context.Context, id uuid.UUID) *async.Task[note.Note]
	SaveNote(ctx context.Context, n note.Note) *async.Task[note.Note]
	DeleteNote(ctx context.Context, id uuid.UUID) *async.Task[struct{}]
	UpdateNote(ctx context.Context, id uuid.UUID, n note.Note) *async.Task[note.Note]
}

// DataRepository forwards every call to its Cache. Tasks and errors are
// returned as received.
type DataRepository struct {
	cache Cache
}

var _ Repository = (*DataRepository)(nil)

// New returns a DataRepository over c.
func New(c Cache) *DataRepository {
	return &DataRepository{cache: c}
}

func (r *DataRepository) FetchNotes(ctx context.Context) *async.Task[[]note.Note] {
	return r.cache.FetchNotes(ctx)
}

// GetNote is not part of Repository; it backs single note views.
func (r *DataRepository) GetNote(ctx context.Context, id uuid.UUID) *async.Task[note.Note] {
	return r.cache.GetNote(ctx, id)
}

func (r *DataRepository) SaveNote(ctx context.Context, n note.Note) *async.Task[note.Note] {
	return r.cache.SaveNote(ctx, n)
}

func (r *DataRepository) DeleteNote(ctx context.Context, id uuid.UUID) *async.Task[struct{}] {
	return r.cache.DeleteNote(ctx, id)
}

func (r *DataRepository) UpdateNote(ctx context.Context, id uuid.UUID, n note.Note) *async.Task[note.Note] {
	return r.cache.UpdateNote(ctx, id, n)
}
