package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"pgregory.net/rapid"

	"github.com/goliatone/go-notes/internal/storeinfra"
	"github.com/goliatone/go-notes/note"
)

func noteGenerator() *rapid.Generator[note.Note] {
	return rapid.Custom(func(t *rapid.T) note.Note {
		n := note.Note{
			ID:         uuid.New(),
			Title:      rapid.StringMatching(`[A-Za-z0-9][A-Za-z0-9 .,!?]{0,60}`).Draw(t, "title"),
			IsComplete: rapid.Bool().Draw(t, "complete"),
			DueDate: time.Unix(rapid.Int64Range(0, 4102444800).Draw(t, "due"), 0).
				Add(time.Duration(rapid.IntRange(0, 999999).Draw(t, "micros")) * time.Microsecond),
		}
		if rapid.Bool().Draw(t, "hasBody") {
			body := rapid.StringMatching(`[A-Za-z0-9 .,!?\n]{0,200}`).Draw(t, "body")
			n.Note = &body
		}
		return n
	})
}

func testInsert_RoundTrip_Properties(t *rapid.T) {
	ctx := context.Background()

	db, err := storeinfra.Open(ctx, storeinfra.MemoryConfig())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if err := EnsureSchema(ctx, db); err != nil {
		t.Fatalf("schema: %v", err)
	}

	adapter := New(db)
	defer adapter.Close()

	n := noteGenerator().Draw(t, "note")
	if _, err := adapter.Insert(ctx, n).Await(ctx); err != nil {
		t.Fatalf("insert: %v", err)
	}

	notes, err := adapter.FetchAll(ctx).Await(ctx)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}

	got := notes[0]
	if got.ID != n.ID {
		t.Fatalf("id: got %s, want %s", got.ID, n.ID)
	}
	if got.Title != n.Title {
		t.Fatalf("title: got %q, want %q", got.Title, n.Title)
	}
	if got.IsComplete != n.IsComplete {
		t.Fatalf("complete: got %t, want %t", got.IsComplete, n.IsComplete)
	}
	if !got.DueDate.Equal(n.DueDate) {
		t.Fatalf("due: got %s, want %s", got.DueDate, n.DueDate)
	}
	if n.Body() != got.Body() || (n.Note == nil) != (got.Note == nil) {
		t.Fatalf("body: got %v, want %v", got.Note, n.Note)
	}
}

func TestInsert_RoundTrip_Properties(t *testing.T) {
	rapid.Check(t, testInsert_RoundTrip_Properties)
}
