package di

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-notes/internal/config"
	"github.com/goliatone/go-notes/internal/storeinfra"
	"github.com/goliatone/go-notes/note"
	"github.com/goliatone/go-notes/presenter"
)

func memoryConfig() config.Config {
	cfg := config.Default()
	cfg.Store = storeinfra.MemoryConfig()
	return cfg
}

func newTestContainer(t *testing.T) *Container {
	t.Helper()
	container, err := NewContainer(context.Background(), memoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })
	return container
}

func TestNewContainer(t *testing.T) {
	container := newTestContainer(t)

	assert.NotNil(t, container.DB())
	assert.NotNil(t, container.Store())
	assert.NotNil(t, container.Gateway())
	assert.NotNil(t, container.Repository())
	assert.NotNil(t, container.Logger())
	assert.Equal(t, ":memory:", container.Config().Store.DSN)
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	cfg := memoryConfig()
	cfg.Store.Driver = "oracle"

	_, err := NewContainer(context.Background(), cfg)
	var cfgErr *storeinfra.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "Driver", cfgErr.Field)
}

func TestContainer_RepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	container := newTestContainer(t)
	repo := container.Repository()

	n, err := note.New("Pay rent", "", time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	_, err = repo.SaveNote(ctx, n).Await(ctx)
	require.NoError(t, err)

	notes, err := repo.FetchNotes(ctx).Await(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, n.ID, notes[0].ID)
}

func TestContainer_ConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	container := newTestContainer(t)
	repo := container.Repository()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			n, err := note.New("note", "", base.Add(time.Duration(i)*time.Minute))
			if err != nil {
				errs <- err
				return
			}
			_, err = repo.SaveNote(ctx, n).Await(ctx)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	notes, err := repo.FetchNotes(ctx).Await(ctx)
	require.NoError(t, err)
	require.Len(t, notes, workers)
	for i := 1; i < len(notes); i++ {
		assert.True(t, notes[i-1].DueDate.After(notes[i].DueDate))
	}
}

type countingView struct {
	mu   sync.Mutex
	rows int
}

func (v *countingView) ShowLoading()                {}
func (v *countingView) HideLoading()                {}
func (v *countingView) ShowError(string, string)    {}
func (v *countingView) ReloadRows(...presenter.Row) {}
func (v *countingView) RemoveRow(int)               { v.add(-1) }
func (v *countingView) InsertRow(int, note.Note)    { v.add(1) }
func (v *countingView) SetNotes(notes []note.Note)  { v.mu.Lock(); v.rows = len(notes); v.mu.Unlock() }
func (v *countingView) add(delta int)               { v.mu.Lock(); v.rows += delta; v.mu.Unlock() }

func TestContainer_NewPresenter(t *testing.T) {
	container := newTestContainer(t)
	view := &countingView{}

	p := container.NewPresenter(view)
	defer p.Close()

	p.Load()
	p.Wait()
	p.CreateNote("Wire presenter", "", time.Now())
	p.Wait()

	assert.Len(t, p.Notes(), 1)
	view.mu.Lock()
	defer view.mu.Unlock()
	assert.Equal(t, 1, view.rows)
}
