// Package logbuf holds the typed output lines of the current dispatch.
package logbuf

import (
	"sync"

	"github.com/fentz26/kernelsim/internal/models"
)

// Buffer is append-only between resets. It never trims; a new dispatch
// replaces its contents.
type Buffer struct {
	mu    sync.RWMutex
	lines []models.LogLine
}

// New creates an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// Reset replaces the whole buffer with lines.
func (b *Buffer) Reset(lines ...models.LogLine) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append([]models.LogLine(nil), lines...)
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.Reset()
}

// Append adds one line.
func (b *Buffer) Append(t models.LineType, content string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, models.LogLine{Type: t, Content: content})
}

func (b *Buffer) Info(content string)    { b.Append(models.LineInfo, content) }
func (b *Buffer) Error(content string)   { b.Append(models.LineError, content) }
func (b *Buffer) Success(content string) { b.Append(models.LineSuccess, content) }
func (b *Buffer) Stdout(content string)  { b.Append(models.LineStdout, content) }

// Lines returns a copy of the buffer in insertion order.
func (b *Buffer) Lines() []models.LogLine {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]models.LogLine, len(b.lines))
	copy(out, b.lines)
	return out
}

// Len returns the number of lines.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}
