package presenter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-notes/cache"
	"github.com/goliatone/go-notes/internal/storeinfra"
	"github.com/goliatone/go-notes/note"
	"github.com/goliatone/go-notes/repository"
	"github.com/goliatone/go-notes/store"
)

func newSQLiteRepository(t *testing.T) *repository.DataRepository {
	t.Helper()
	ctx := context.Background()

	db, err := storeinfra.Open(ctx, storeinfra.MemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.EnsureSchema(ctx, db))

	adapter := store.New(db)
	t.Cleanup(adapter.Close)

	return repository.New(cache.NewGateway(adapter))
}

func TestIntegration_CreateToggleDelete(t *testing.T) {
	repo := newSQLiteRepository(t)
	view := &recordingView{}
	p := New(repo, view)
	t.Cleanup(p.Close)

	p.Load()
	p.Wait()
	require.Empty(t, p.Notes())

	p.CreateNote("Buy milk", "", time.Now().Add(time.Hour))
	p.Wait()
	notes := p.Notes()
	require.Len(t, notes, 1)
	id := notes[0].ID

	p.ToggleComplete(id)
	p.Wait()
	require.True(t, p.Notes()[0].IsComplete)

	stored, err := repo.GetNote(context.Background(), id).Await(context.Background())
	require.NoError(t, err)
	assert.True(t, stored.IsComplete)

	p.Delete(id)
	p.Wait()
	assert.Empty(t, p.Notes())

	assert.Equal(t, []string{
		"ShowLoading",
		"SetNotes ",
		"HideLoading",
		"InsertRow 0 Buy milk",
		"ReloadRows 0=Buy milk [x]",
		"RemoveRow 0",
	}, view.Lines())
}

func TestIntegration_LoadOrdersByDueDate(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()
	base := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)

	t1, err := note.New("T1", "", base)
	require.NoError(t, err)
	t2, err := note.New("T2", "", base.Add(time.Hour))
	require.NoError(t, err)

	_, err = repo.SaveNote(ctx, t1).Await(ctx)
	require.NoError(t, err)
	_, err = repo.SaveNote(ctx, t2).Await(ctx)
	require.NoError(t, err)

	view := &recordingView{}
	p := New(repo, view)
	t.Cleanup(p.Close)

	p.Load()
	p.Wait()

	assert.Equal(t, []string{"T2", "T1"}, titlesOf(p.Notes()))
}

func TestIntegration_UpdateOfDeletedNoteShowsError(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()

	n, err := note.New("Fleeting", "", time.Now())
	require.NoError(t, err)
	_, err = repo.SaveNote(ctx, n).Await(ctx)
	require.NoError(t, err)

	view := &recordingView{}
	p := New(repo, view)
	t.Cleanup(p.Close)
	p.Load()
	p.Wait()

	_, err = repo.DeleteNote(ctx, n.ID).Await(ctx)
	require.NoError(t, err)
	view.Reset()

	p.ToggleComplete(n.ID)
	p.Wait()

	lines := view.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "ShowError Could not update note: ")
	assert.Contains(t, lines[0], "the note no longer exists")
	assert.Contains(t, lines[0], "not found")
	assert.Len(t, p.Notes(), 1)
}
