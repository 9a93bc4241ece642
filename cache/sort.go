package cache

import (
	"bytes"
	"slices"

	"github.com/goliatone/go-notes/note"
)

// Compare orders notes by due date, latest first, then by id ascending.
func Compare(a, b note.Note) int {
	switch {
	case a.DueDate.After(b.DueDate):
		return -1
	case a.DueDate.Before(b.DueDate):
		return 1
	}
	return bytes.Compare(a.ID[:], b.ID[:])
}

// Sort orders notes in place with Compare.
func Sort(notes []note.Note) {
	slices.SortStableFunc(notes, Compare)
}
