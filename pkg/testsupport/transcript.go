package testsupport

import (
	"fmt"
	"strings"
	"sync"
)

// Transcript records lines from concurrent callers, for golden comparisons.
type Transcript struct {
	mu    sync.Mutex
	lines []string
}

// Addf appends a formatted line.
func (tr *Transcript) Addf(format string, args ...any) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.lines = append(tr.lines, fmt.Sprintf(format, args...))
}

// Lines returns a copy of the recorded lines.
func (tr *Transcript) Lines() []string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]string(nil), tr.lines...)
}

// Reset drops every recorded line.
func (tr *Transcript) Reset() {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.lines = nil
}

// Bytes renders the transcript one line per entry, newline terminated.
func (tr *Transcript) Bytes() []byte {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	var b strings.Builder
	for _, line := range tr.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
