package ansiterm

import (
	"bytes"
	"errors"
	"testing"

	"github.com/user/termplay/pkg/ports"
)

func TestTerminal_Sequences(t *testing.T) {
	var buf bytes.Buffer
	term := New(&buf, nil, 80, 24)

	term.Clear()
	term.MoveCursor(5, 12)
	term.HideCursor()
	term.SetStyle(ports.StyleSpeed)
	term.Write("1.0x")
	term.SetStyle(ports.StylePrompt)
	term.SetStyle(ports.StyleReset)
	term.ShowCursor()

	if buf.Len() != 0 {
		t.Fatal("output must stay buffered until Flush")
	}
	if err := term.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	want := "\x1b[2J\x1b[12;5H\x1b[?25l\x1b[33m1.0x\x1b[32m\x1b[0m\x1b[?25h"
	if got := buf.String(); got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestTerminal_Size(t *testing.T) {
	term := New(&bytes.Buffer{}, func() (int, int, error) { return 120, 40, nil }, 80, 24)
	if cols, rows := term.Size(); cols != 120 || rows != 40 {
		t.Errorf("expected 120x40, got %dx%d", cols, rows)
	}

	failing := New(&bytes.Buffer{}, func() (int, int, error) { return 0, 0, errors.New("not a tty") }, 80, 24)
	if cols, rows := failing.Size(); cols != 80 || rows != 24 {
		t.Errorf("expected fallback 80x24, got %dx%d", cols, rows)
	}

	none := New(&bytes.Buffer{}, nil, 100, 30)
	if cols, rows := none.Size(); cols != 100 || rows != 30 {
		t.Errorf("expected fallback 100x30, got %dx%d", cols, rows)
	}
}

func TestSession_EnterRestoreOnce(t *testing.T) {
	var buf bytes.Buffer
	s := NewSession(New(&buf, nil, 80, 24))

	if err := s.Enter(); err != nil {
		t.Fatalf("enter: %v", err)
	}
	if got, want := buf.String(), SeqAltScreenEnter+SeqClear+SeqCursorHide; got != want {
		t.Errorf("enter: got %q, want %q", got, want)
	}

	buf.Reset()
	_ = s.Restore()
	_ = s.Restore()
	if got, want := buf.String(), SeqReset+SeqCursorShow+SeqAltScreenExit; got != want {
		t.Errorf("restore: got %q, want %q", got, want)
	}
}

func TestSession_RestoreWithoutEnter(t *testing.T) {
	var buf bytes.Buffer
	s := NewSession(New(&buf, nil, 80, 24))
	_ = s.Restore()
	if buf.Len() != 0 {
		t.Errorf("restore without enter must write nothing, got %q", buf.String())
	}
}

func TestCursorTo(t *testing.T) {
	if got := CursorTo(1, 24); got != "\x1b[24;1H" {
		t.Errorf("got %q", got)
	}
}
