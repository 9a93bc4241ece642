package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-notes/internal/async"
	"github.com/goliatone/go-notes/note"
)

type call struct {
	method string
	id     uuid.UUID
	note   note.Note
}

// mockCache records calls and hands back preset tasks.
type mockCache struct {
	calls   []call
	notes   *async.Task[[]note.Note]
	single  *async.Task[note.Note]
	deleted *async.Task[struct{}]
}

func (m *mockCache) FetchNotes(ctx context.Context) *async.Task[[]note.Note] {
	m.calls = append(m.calls, call{method: "FetchNotes"})
	return m.notes
}

func (m *mockCache) GetNote(ctx context.Context, id uuid.UUID) *async.Task[note.Note] {
	m.calls = append(m.calls, call{method: "GetNote", id: id})
	return m.single
}

func (m *mockCache) SaveNote(ctx context.Context, n note.Note) *async.Task[note.Note] {
	m.calls = append(m.calls, call{method: "SaveNote", note: n})
	return m.single
}

func (m *mockCache) DeleteNote(ctx context.Context, id uuid.UUID) *async.Task[struct{}] {
	m.calls = append(m.calls, call{method: "DeleteNote", id: id})
	return m.deleted
}

func (m *mockCache) UpdateNote(ctx context.Context, id uuid.UUID, n note.Note) *async.Task[note.Note] {
	m.calls = append(m.calls, call{method: "UpdateNote", id: id, note: n})
	return m.single
}

func TestDataRepository_ForwardsCallsAndTasks(t *testing.T) {
	ctx := context.Background()
	n, err := note.New("forward", "", time.Now())
	require.NoError(t, err)

	mock := &mockCache{
		notes:   async.Completed([]note.Note{n}, nil),
		single:  async.Completed(n, nil),
		deleted: async.Completed(struct{}{}, nil),
	}
	repo := New(mock)

	assert.Same(t, mock.notes, repo.FetchNotes(ctx))
	assert.Same(t, mock.single, repo.SaveNote(ctx, n))
	assert.Same(t, mock.single, repo.UpdateNote(ctx, n.ID, n))
	assert.Same(t, mock.deleted, repo.DeleteNote(ctx, n.ID))
	assert.Same(t, mock.single, repo.GetNote(ctx, n.ID))

	require.Len(t, mock.calls, 5)
	assert.Equal(t, "FetchNotes", mock.calls[0].method)
	assert.Equal(t, call{method: "SaveNote", note: n}, mock.calls[1])
	assert.Equal(t, call{method: "UpdateNote", id: n.ID, note: n}, mock.calls[2])
	assert.Equal(t, call{method: "DeleteNote", id: n.ID}, mock.calls[3])
	assert.Equal(t, call{method: "GetNote", id: n.ID}, mock.calls[4])
}

func TestDataRepository_PassesErrorsThrough(t *testing.T) {
	ctx := context.Background()
	sentinel := errors.New("gateway failure")
	mock := &mockCache{notes: async.Failed[[]note.Note](sentinel)}

	_, err := New(mock).FetchNotes(ctx).Await(ctx)
	assert.Same(t, sentinel, err)
}
