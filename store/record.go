package store

import (
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-notes/note"
)

// Record is the persisted form of a note. Every column except the key is
// nullable; decoding fills in defaults instead of leaking nils into note.Note.
type Record struct {
	bun.BaseModel `bun:"table:notes,alias:n"`

	ID         uuid.UUID  `bun:"id,pk,type:varchar(36)"`
	Title      *string    `bun:"title"`
	IsComplete *bool      `bun:"is_complete"`
	DueDate    *time.Time `bun:"due_date"`
	Note       *string    `bun:"note"`
}

// Column names a Query may filter or sort on.
const (
	ColumnID         = "id"
	ColumnTitle      = "title"
	ColumnIsComplete = "is_complete"
	ColumnDueDate    = "due_date"
	ColumnNote       = "note"
)

var knownColumns = map[string]struct{}{
	ColumnID:         {},
	ColumnTitle:      {},
	ColumnIsComplete: {},
	ColumnDueDate:    {},
	ColumnNote:       {},
}

// NewRecordRepository builds the go-repository-bun repository used by Adapter.
func NewRecordRepository(db *bun.DB) repository.Repository[*Record] {
	return repository.NewRepository[*Record](db, recordHandlers())
}

func recordHandlers() repository.ModelHandlers[*Record] {
	return repository.ModelHandlers[*Record]{
		NewRecord: func() *Record {
			return &Record{}
		},
		GetID: func(r *Record) uuid.UUID {
			if r == nil {
				return uuid.Nil
			}
			return r.ID
		},
		SetID: func(r *Record, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return ColumnID
		},
	}
}

// toRecord converts n to its persisted form. Due dates are stored in UTC at
// microsecond precision, the finest the SQL dialects keep.
func toRecord(n note.Note) *Record {
	r := &Record{ID: n.ID}
	apply(r, n)
	return r
}

// apply overwrites every mutable column of r with the values of n.
func apply(r *Record, n note.Note) {
	title := n.Title
	complete := n.IsComplete
	due := normalizeTime(n.DueDate)

	r.Title = &title
	r.IsComplete = &complete
	r.DueDate = &due
	r.Note = nil
	if n.Note != nil {
		body := *n.Note
		r.Note = &body
	}
}

// toNote decodes r, substituting defaults for missing columns.
// It reports which columns were defaulted.
func (r *Record) toNote(now func() time.Time) (note.Note, []string) {
	var defaulted []string
	n := note.Note{ID: r.ID}

	if r.Title != nil {
		n.Title = *r.Title
	} else {
		defaulted = append(defaulted, ColumnTitle)
	}

	if r.IsComplete != nil {
		n.IsComplete = *r.IsComplete
	} else {
		defaulted = append(defaulted, ColumnIsComplete)
	}

	if r.DueDate != nil {
		n.DueDate = normalizeTime(*r.DueDate)
	} else {
		n.DueDate = normalizeTime(now())
		defaulted = append(defaulted, ColumnDueDate)
	}

	if r.Note != nil {
		body := *r.Note
		n.Note = &body
	}

	return n, defaulted
}

func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
