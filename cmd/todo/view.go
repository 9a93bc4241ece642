package main

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"text/tabwriter"

	"github.com/goliatone/go-notes/note"
	"github.com/goliatone/go-notes/presenter"
)

var glyphs = map[string]string{
	"checkmark.circle.fill": "[x]",
	"circle":                "[ ]",
}

// terminalView prints presenter directives as plain text lines.
type terminalView struct {
	mu     sync.Mutex
	out    io.Writer
	layout string
	quiet  bool
	errs   []error
}

func newTerminalView(out io.Writer, layout string) *terminalView {
	return &terminalView{out: out, layout: layout}
}

func (v *terminalView) setQuiet(quiet bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.quiet = quiet
}

// Err returns the errors shown so far, joined, and forgets them.
func (v *terminalView) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	err := errors.Join(v.errs...)
	v.errs = nil
	return err
}

func (v *terminalView) ShowLoading() {}
func (v *terminalView) HideLoading() {}

func (v *terminalView) SetNotes(notes []note.Note) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.quiet {
		return
	}
	v.writeTable(notes)
}

func (v *terminalView) InsertRow(_ int, n note.Note) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, "Added %s\n", v.line(n))
}

func (v *terminalView) ReloadRows(rows ...presenter.Row) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, r := range rows {
		fmt.Fprintf(v.out, "Updated %s\n", v.line(r.Note))
	}
}

func (v *terminalView) RemoveRow(int) {}

func (v *terminalView) ShowError(title, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errs = append(v.errs, fmt.Errorf("%s: %s", title, message))
}

// writeTable must be called with mu held.
func (v *terminalView) writeTable(notes []note.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(v.out, "No notes")
		return
	}

	w := tabwriter.NewWriter(v.out, 0, 0, 2, ' ', 0)
	for _, n := range notes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", glyph(n), shortID(n), n.DueDate.Local().Format(v.layout), n.Title)
	}
	_ = w.Flush()
}

func (v *terminalView) line(n note.Note) string {
	return fmt.Sprintf("%s %s %s %s", glyph(n), shortID(n), n.DueDate.Local().Format(v.layout), n.Title)
}

func (v *terminalView) detail(n note.Note) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, "%s %s\n", glyph(n), n.Title)
	fmt.Fprintf(v.out, "id:   %s\n", n.ID)
	fmt.Fprintf(v.out, "due:  %s\n", n.DueDate.Local().Format(v.layout))
	if n.Note != nil {
		fmt.Fprintf(v.out, "\n%s\n", *n.Note)
	}
}

func glyph(n note.Note) string {
	return glyphs[presenter.IconName(n.IsComplete)]
}

func shortID(n note.Note) string {
	return n.ID.String()[:8]
}
