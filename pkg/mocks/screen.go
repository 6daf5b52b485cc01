package mocks

import (
	"fmt"
	"strings"
	"sync"

	"github.com/user/termplay/pkg/ports"
)

// Screen is a mock implementation of ports.Screen. Every operation is
// recorded as a short op string, and Write calls are also kept verbatim.
type Screen struct {
	mu     sync.Mutex
	Cols   int
	Rows   int
	Ops    []string
	Writes []string

	Flushes int
}

// NewScreen creates a mock screen of the given size.
func NewScreen(cols, rows int) *Screen {
	return &Screen{Cols: cols, Rows: rows}
}

func (m *Screen) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Ops = append(m.Ops, op)
}

func (m *Screen) Clear()      { m.record("clear") }
func (m *Screen) HideCursor() { m.record("hide") }
func (m *Screen) ShowCursor() { m.record("show") }

func (m *Screen) MoveCursor(col, row int) {
	m.record(fmt.Sprintf("move %d,%d", col, row))
}

func (m *Screen) SetStyle(style ports.Style) {
	m.record(fmt.Sprintf("style %d", style))
}

func (m *Screen) Write(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Ops = append(m.Ops, "write")
	m.Writes = append(m.Writes, text)
}

func (m *Screen) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Flushes++
	return nil
}

func (m *Screen) Size() (int, int) {
	return m.Cols, m.Rows
}

// WritesContaining returns the recorded writes that contain substr.
func (m *Screen) WritesContaining(substr string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, w := range m.Writes {
		if strings.Contains(w, substr) {
			out = append(out, w)
		}
	}
	return out
}

var _ ports.Screen = (*Screen)(nil)

// HasOp reports whether op has been recorded.
func (m *Screen) HasOp(op string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.Ops {
		if o == op {
			return true
		}
	}
	return false
}
