package rawkeys

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/user/termplay/pkg/ports"
)

func pollUntil(t *testing.T, s *Source, want ports.Key) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if k := s.Poll(10 * time.Millisecond); k != ports.KeyNone {
			if k != want {
				t.Fatalf("expected %s, got %s", want, k)
			}
			return
		}
	}
	t.Fatalf("timed out waiting for %s", want)
}

func TestSource_DecodesKeys(t *testing.T) {
	s := NewReader(strings.NewReader(" \x1b[D\x1b[Cq"))
	defer s.Close()

	pollUntil(t, s, ports.KeyTogglePause)
	pollUntil(t, s, ports.KeySlower)
	pollUntil(t, s, ports.KeyFaster)
	pollUntil(t, s, ports.KeyQuit)
}

func TestSource_PollTimesOut(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	s := NewReader(r)
	defer s.Close()

	start := time.Now()
	if k := s.Poll(20 * time.Millisecond); k != ports.KeyNone {
		t.Fatalf("expected KeyNone, got %s", k)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("poll returned after %v, before its timeout", elapsed)
	}

	if k := s.Poll(0); k != ports.KeyNone {
		t.Errorf("expected KeyNone from zero-timeout poll, got %s", k)
	}
}

func TestSource_ArrowSplitAcrossReads(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	s := NewReader(r)
	defer s.Close()

	go func() {
		_, _ = w.Write([]byte{0x1b})
		time.Sleep(5 * time.Millisecond)
		_, _ = w.Write([]byte("[C"))
	}()
	pollUntil(t, s, ports.KeyFaster)
}

func TestSource_LoneEscape(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	s := NewReader(r)
	defer s.Close()

	go func() { _, _ = w.Write([]byte{0x1b}) }()
	pollUntil(t, s, ports.KeyOther)
}

func TestSource_CloseWithoutRawMode(t *testing.T) {
	s := NewReader(strings.NewReader(""))
	if err := s.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second close: unexpected error: %v", err)
	}
}

func TestSource_ExhaustedInputStillWaits(t *testing.T) {
	s := NewReader(strings.NewReader(""))
	defer s.Close()

	// Let the reader hit EOF.
	time.Sleep(5 * time.Millisecond)
	s.Poll(0)

	start := time.Now()
	if k := s.Poll(20 * time.Millisecond); k != ports.KeyNone {
		t.Fatalf("expected KeyNone, got %s", k)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("poll on exhausted input returned after %v", elapsed)
	}
}
