package presenter

import (
	"github.com/goliatone/go-notes/internal/async"
	"github.com/goliatone/go-notes/note"
)

// Row pairs a list position with the note shown there.
type Row struct {
	Index int
	Note  note.Note
}

// View receives display directives. Methods are always called from the
// presenter's Dispatcher, one at a time.
type View interface {
	ShowLoading()
	HideLoading()
	SetNotes(notes []note.Note)
	InsertRow(index int, n note.Note)
	ReloadRows(rows ...Row)
	RemoveRow(index int)
	ShowError(title, message string)
}

// Dispatcher runs posted functions in order on the display context.
// Post returns false when the function will never run.
type Dispatcher interface {
	Post(fn func()) bool
}

// Loop is the default Dispatcher: a single goroutine draining a FIFO.
type Loop struct {
	queue *async.Queue
}

// NewLoop starts a Loop.
func NewLoop() *Loop {
	return &Loop{queue: async.NewQueue()}
}

func (l *Loop) Post(fn func()) bool {
	return l.queue.Post(fn)
}

// Close runs what is already posted and stops the loop. It must not be
// called from a function running on the loop.
func (l *Loop) Close() {
	l.queue.Close()
}

// IconName returns the symbol used for a note's completion marker.
func IconName(isComplete bool) string {
	if isComplete {
		return "checkmark.circle.fill"
	}
	return "circle"
}
