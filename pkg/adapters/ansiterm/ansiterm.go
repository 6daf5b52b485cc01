// Package ansiterm renders playback output with plain ANSI escape sequences.
package ansiterm

import (
	"bufio"
	"io"
	"strconv"
	"sync"

	"github.com/user/termplay/pkg/ports"
)

// Escape sequences written by the terminal.
const (
	SeqAltScreenEnter = "\x1b[?1049h"
	SeqAltScreenExit  = "\x1b[?1049l"
	SeqCursorHide     = "\x1b[?25l"
	SeqCursorShow     = "\x1b[?25h"
	SeqClear          = "\x1b[2J"
	SeqYellow         = "\x1b[33m"
	SeqGreen          = "\x1b[32m"
	SeqReset          = "\x1b[0m"
)

// SizeFunc reports the terminal size in cells.
type SizeFunc func() (cols, rows int, err error)

// Terminal implements ports.Screen on an io.Writer. Output is buffered until
// Flush.
type Terminal struct {
	mu   sync.Mutex
	w    *bufio.Writer
	size SizeFunc

	fallbackCols int
	fallbackRows int
}

// DefaultBufferSize holds a typical full frame so most frames go out in one
// write.
const DefaultBufferSize = 256 * 1024

// New creates a Terminal writing to w. When size is nil or fails, Size
// reports fallbackCols x fallbackRows.
func New(w io.Writer, size SizeFunc, fallbackCols, fallbackRows int) *Terminal {
	return &Terminal{
		w:            bufio.NewWriterSize(w, DefaultBufferSize),
		size:         size,
		fallbackCols: fallbackCols,
		fallbackRows: fallbackRows,
	}
}

func (t *Terminal) writeString(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = t.w.WriteString(s)
}

// Clear erases the screen.
func (t *Terminal) Clear() {
	t.writeString(SeqClear)
}

// MoveCursor places the cursor at a 1-based column and row.
func (t *Terminal) MoveCursor(col, row int) {
	t.writeString(CursorTo(col, row))
}

// HideCursor hides the cursor.
func (t *Terminal) HideCursor() {
	t.writeString(SeqCursorHide)
}

// ShowCursor shows the cursor.
func (t *Terminal) ShowCursor() {
	t.writeString(SeqCursorShow)
}

// SetStyle switches the status-line color.
func (t *Terminal) SetStyle(style ports.Style) {
	switch style {
	case ports.StyleSpeed:
		t.writeString(SeqYellow)
	case ports.StylePrompt:
		t.writeString(SeqGreen)
	default:
		t.writeString(SeqReset)
	}
}

// Write writes text verbatim.
func (t *Terminal) Write(text string) {
	t.writeString(text)
}

// Flush sends buffered output to the underlying writer.
func (t *Terminal) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.w.Flush()
}

// Size returns the terminal size, or the fallback when it cannot be read.
func (t *Terminal) Size() (int, int) {
	if t.size != nil {
		if cols, rows, err := t.size(); err == nil && cols > 0 && rows > 0 {
			return cols, rows
		}
	}
	return t.fallbackCols, t.fallbackRows
}

// CursorTo returns the cursor positioning sequence for col, row.
func CursorTo(col, row int) string {
	buf := make([]byte, 0, 12)
	buf = append(buf, "\x1b["...)
	buf = strconv.AppendInt(buf, int64(row), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(col), 10)
	buf = append(buf, 'H')
	return string(buf)
}

var _ ports.Screen = (*Terminal)(nil)
