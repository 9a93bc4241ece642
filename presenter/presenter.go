package presenter

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"

	"github.com/goliatone/go-notes/note"
	"github.com/goliatone/go-notes/repository"
)

// Titles used in ShowError directives.
const (
	TitleLoad   = "Could not load notes"
	TitleCreate = "Could not add note"
	TitleUpdate = "Could not update note"
	TitleDelete = "Could not delete note"
)

// Presenter keeps the ordered list of notes shown by a View in step with the
// repository. The list only changes after the repository confirms a
// mutation, and every change is followed by the matching row directive.
type Presenter struct {
	repo     repository.Repository
	view     View
	dispatch Dispatcher
	loop     *Loop
	logger   *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	closed atomic.Bool

	seq      atomic.Uint64
	inflight *xsync.MapOf[uint64, context.CancelFunc]
	pending  sync.WaitGroup

	mu       sync.Mutex
	notes    []note.Note
	expanded uuid.UUID
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithDispatcher runs directives on d instead of a private Loop.
func WithDispatcher(d Dispatcher) Option {
	return func(p *Presenter) {
		if d != nil {
			p.dispatch = d
		}
	}
}

// WithLogger sets the presenter logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Presenter) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Presenter with an empty list. Call Load to populate it.
func New(repo repository.Repository, view View, opts ...Option) *Presenter {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Presenter{
		repo:     repo,
		view:     view,
		logger:   zap.NewNop(),
		ctx:      ctx,
		cancel:   cancel,
		inflight: xsync.NewMapOf[uint64, context.CancelFunc](),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.dispatch == nil {
		p.loop = NewLoop()
		p.dispatch = p.loop
	}
	return p
}

// operation is one tracked request. It ends when its terminal directive has
// been delivered or dropped.
type operation struct {
	id     uint64
	name   string
	ctx    context.Context
	cancel context.CancelFunc
}

func (p *Presenter) begin(name string) (*operation, bool) {
	if p.closed.Load() {
		p.logger.Debug("presenter closed, ignoring request", zap.String("op", name))
		return nil, false
	}

	ctx, cancel := context.WithCancel(p.ctx)
	op := &operation{id: p.seq.Add(1), name: name, ctx: ctx, cancel: cancel}
	p.pending.Add(1)
	p.inflight.Store(op.id, cancel)
	return op, true
}

func (p *Presenter) finish(op *operation) {
	p.inflight.Delete(op.id)
	op.cancel()
	p.pending.Done()
}

// deliver runs fn on the dispatcher unless op was cancelled in the meantime.
func (p *Presenter) deliver(op *operation, fn func()) {
	posted := p.dispatch.Post(func() {
		defer p.finish(op)
		if op.ctx.Err() != nil || p.closed.Load() {
			p.logger.Debug("dropping directives for cancelled operation", zap.String("op", op.name))
			return
		}
		fn()
	})
	if !posted {
		p.logger.Debug("dispatcher stopped, dropping directives", zap.String("op", op.name))
		p.finish(op)
	}
}

// post runs fn on the dispatcher as an intermediate step of op.
func (p *Presenter) post(op *operation, fn func()) {
	p.dispatch.Post(func() {
		if op.ctx.Err() != nil || p.closed.Load() {
			return
		}
		fn()
	})
}

func (p *Presenter) showError(op *operation, title string, err error) {
	p.logger.Debug("note operation failed", errorFields(op.name, err)...)
	p.view.ShowError(title, Message(err))
}

// Load replaces the list with the notes held by the repository.
func (p *Presenter) Load() {
	op, ok := p.begin("load")
	if !ok {
		return
	}

	p.post(op, p.view.ShowLoading)

	p.repo.FetchNotes(op.ctx).Then(func(notes []note.Note, err error) {
		p.deliver(op, func() {
			if err != nil {
				p.showError(op, TitleLoad, err)
				p.view.HideLoading()
				return
			}

			p.mu.Lock()
			p.notes = cloneNotes(notes)
			if p.indexOf(p.expanded) < 0 {
				p.expanded = uuid.Nil
			}
			snapshot := cloneNotes(p.notes)
			p.mu.Unlock()

			p.view.SetNotes(snapshot)
			p.view.HideLoading()
		})
	})
}

// CreateNote builds a note from user input and saves it.
func (p *Presenter) CreateNote(title, body string, due time.Time) {
	n, err := note.New(title, body, due)
	if err != nil {
		p.reject("create", TitleCreate, err)
		return
	}
	p.Create(n)
}

// Create saves n. On success it becomes the first row.
func (p *Presenter) Create(n note.Note) {
	if err := n.Validate(); err != nil {
		p.reject("create", TitleCreate, err)
		return
	}

	op, ok := p.begin("create")
	if !ok {
		return
	}

	p.repo.SaveNote(op.ctx, n).Then(func(saved note.Note, err error) {
		p.deliver(op, func() {
			if err != nil {
				p.showError(op, TitleCreate, err)
				return
			}

			p.mu.Lock()
			p.notes = slices.Insert(p.notes, 0, saved.Clone())
			p.mu.Unlock()

			p.view.InsertRow(0, saved)
		})
	})
}

// Update stores n under id and refreshes its row with the stored result.
func (p *Presenter) Update(id uuid.UUID, n note.Note) {
	op, ok := p.begin("update")
	if !ok {
		return
	}

	p.repo.UpdateNote(op.ctx, id, n).Then(func(updated note.Note, err error) {
		p.deliver(op, func() {
			if err != nil {
				p.showError(op, TitleUpdate, err)
				return
			}

			p.mu.Lock()
			i := p.indexOf(id)
			if i < 0 {
				p.mu.Unlock()
				p.logger.Debug("updated note no longer listed", zap.Stringer("id", id))
				return
			}
			p.notes[i] = updated.Clone()
			p.mu.Unlock()

			p.view.ReloadRows(Row{Index: i, Note: updated})
		})
	})
}

// ToggleComplete flips the completion flag of the listed note with id.
func (p *Presenter) ToggleComplete(id uuid.UUID) {
	op, ok := p.begin("toggle")
	if !ok {
		return
	}

	p.deliver(op, func() {
		p.mu.Lock()
		i := p.indexOf(id)
		var current note.Note
		if i >= 0 {
			current = p.notes[i].Clone()
		}
		p.mu.Unlock()

		if i < 0 {
			p.logger.Debug("toggle for unlisted note", zap.Stringer("id", id))
			return
		}
		p.Update(id, current.WithComplete(!current.IsComplete))
	})
}

// Delete removes the note with id from the repository and then from the list.
func (p *Presenter) Delete(id uuid.UUID) {
	op, ok := p.begin("delete")
	if !ok {
		return
	}

	p.repo.DeleteNote(op.ctx, id).Then(func(_ struct{}, err error) {
		p.deliver(op, func() {
			if err != nil {
				p.showError(op, TitleDelete, err)
				return
			}

			p.mu.Lock()
			i := p.indexOf(id)
			if i < 0 {
				p.mu.Unlock()
				return
			}
			p.notes = slices.Delete(p.notes, i, i+1)
			if p.expanded == id {
				p.expanded = uuid.Nil
			}
			p.mu.Unlock()

			p.view.RemoveRow(i)
		})
	})
}

// Select toggles the expanded row. Selecting the expanded row collapses it;
// selecting another row moves the expansion there. Both affected rows are
// reloaded in a single directive. Out of range indexes are ignored.
func (p *Presenter) Select(index int) {
	op, ok := p.begin("select")
	if !ok {
		return
	}

	p.deliver(op, func() {
		p.mu.Lock()
		if index < 0 || index >= len(p.notes) {
			p.mu.Unlock()
			return
		}

		target := p.notes[index]
		var rows []Row
		if p.expanded == target.ID {
			p.expanded = uuid.Nil
		} else {
			if prev := p.indexOf(p.expanded); prev >= 0 {
				rows = append(rows, Row{Index: prev, Note: p.notes[prev].Clone()})
			}
			p.expanded = target.ID
		}
		rows = append(rows, Row{Index: index, Note: target.Clone()})
		p.mu.Unlock()

		p.view.ReloadRows(rows...)
	})
}

// Notes returns a copy of the listed notes.
func (p *Presenter) Notes() []note.Note {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneNotes(p.notes)
}

// Expanded returns the id of the expanded note, if any.
func (p *Presenter) Expanded() (uuid.UUID, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.expanded, p.expanded != uuid.Nil
}

// IsExpanded reports whether the row at index is expanded.
func (p *Presenter) IsExpanded(index int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return index >= 0 && index < len(p.notes) && p.notes[index].ID == p.expanded && p.expanded != uuid.Nil
}

// Pending returns the number of operations still in flight.
func (p *Presenter) Pending() int {
	return p.inflight.Size()
}

// Wait blocks until every operation started so far has delivered or dropped
// its directives.
func (p *Presenter) Wait() {
	p.pending.Wait()
}

// Close cancels in-flight operations and stops directive delivery. Writes
// the store already started still complete there. Close must not be called
// from a View method.
func (p *Presenter) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}

	p.cancel()
	p.inflight.Range(func(_ uint64, cancel context.CancelFunc) bool {
		cancel()
		return true
	})

	if p.loop != nil {
		p.loop.Close()
	}
}

// reject reports invalid input without touching the repository.
func (p *Presenter) reject(name, title string, err error) {
	op, ok := p.begin(name)
	if !ok {
		return
	}
	p.deliver(op, func() {
		p.showError(op, title, err)
	})
}

// indexOf must be called with mu held.
func (p *Presenter) indexOf(id uuid.UUID) int {
	if id == uuid.Nil {
		return -1
	}
	return slices.IndexFunc(p.notes, func(n note.Note) bool {
		return n.ID == id
	})
}

func cloneNotes(notes []note.Note) []note.Note {
	out := make([]note.Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}
