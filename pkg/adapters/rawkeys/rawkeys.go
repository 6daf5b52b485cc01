// Package rawkeys reads single key presses from a terminal in raw mode.
package rawkeys

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/user/termplay/pkg/keyboard"
	"github.com/user/termplay/pkg/ports"
)

// EscapeTimeout is how long a lone ESC waits for the rest of a sequence
// before it is taken as a key press on its own.
const EscapeTimeout = 50 * time.Millisecond

// Source implements ports.KeySource. A background goroutine copies input
// bytes into a channel; Poll decodes them on the caller's goroutine.
type Source struct {
	fd      int
	old     *term.State
	bytes   chan byte
	decoder *keyboard.Decoder
	lastIn  time.Time

	closeOnce sync.Once
	closeErr  error
}

// Open puts f into raw mode when it is a terminal and starts reading keys.
func Open(f *os.File) (*Source, error) {
	fd := int(f.Fd())
	var old *term.State
	if term.IsTerminal(fd) {
		var err error
		if old, err = term.MakeRaw(fd); err != nil {
			return nil, fmt.Errorf("enable raw mode: %w", err)
		}
	}
	s := newSource(f)
	if old != nil {
		s.fd = fd
		s.old = old
	}
	return s, nil
}

// NewReader reads keys from r without touching any terminal mode.
func NewReader(r io.Reader) *Source {
	return newSource(r)
}

func newSource(r io.Reader) *Source {
	s := &Source{
		fd:      -1,
		bytes:   make(chan byte, 256),
		decoder: keyboard.NewDecoder(),
	}
	go readLoop(r, s.bytes)
	return s
}

// readLoop exits when r fails. A read blocked on a terminal cannot be
// interrupted, so the goroutine is left to die with the process.
func readLoop(r io.Reader, out chan<- byte) {
	defer close(out)
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			out <- b
		}
		if err != nil {
			return
		}
	}
}

// Poll returns the next resolved key, waiting at most timeout.
func (s *Source) Poll(timeout time.Duration) ports.Key {
	var deadline <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		deadline = t.C
	}

	for {
		select {
		case b, ok := <-s.bytes:
			if k, done := s.receive(b, ok); done {
				return k
			}
			continue
		default:
		}

		if s.decoder.Pending() && time.Since(s.lastIn) >= EscapeTimeout {
			return s.flush()
		}
		if deadline == nil {
			return ports.KeyNone
		}

		select {
		case b, ok := <-s.bytes:
			if k, done := s.receive(b, ok); done {
				return k
			}
		case <-deadline:
			if s.decoder.Pending() && time.Since(s.lastIn) >= EscapeTimeout {
				return s.flush()
			}
			return ports.KeyNone
		}
	}
}

// receive feeds one byte from the reader. Once input is exhausted the
// channel is dropped so later polls wait out their timeout instead of
// spinning.
func (s *Source) receive(b byte, ok bool) (ports.Key, bool) {
	if !ok {
		s.bytes = nil
		if s.decoder.Pending() {
			return s.flush(), true
		}
		return ports.KeyNone, false
	}
	s.lastIn = time.Now()
	return s.decoder.Feed(b)
}

func (s *Source) flush() ports.Key {
	if k, ok := s.decoder.Flush(); ok {
		return k
	}
	return ports.KeyNone
}

// Close restores the terminal mode saved by Open. It is safe to call more
// than once.
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		if s.old != nil {
			s.closeErr = term.Restore(s.fd, s.old)
		}
	})
	return s.closeErr
}

var _ ports.KeySource = (*Source)(nil)
