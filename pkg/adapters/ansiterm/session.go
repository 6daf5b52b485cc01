package ansiterm

import "sync"

// Session switches the terminal into the alternate screen for playback and
// puts it back exactly once, whichever exit path gets there first.
type Session struct {
	term      *Terminal
	enterOnce sync.Once
	exitOnce  sync.Once
	entered   bool
}

// NewSession creates a session on term.
func NewSession(term *Terminal) *Session {
	return &Session{term: term}
}

// Enter switches to the alternate screen, clears it and hides the cursor.
func (s *Session) Enter() error {
	var err error
	s.enterOnce.Do(func() {
		s.entered = true
		s.term.Write(SeqAltScreenEnter)
		s.term.Clear()
		s.term.HideCursor()
		err = s.term.Flush()
	})
	return err
}

// Restore resets colors, shows the cursor and leaves the alternate screen.
// It does nothing if Enter was never called.
func (s *Session) Restore() error {
	var err error
	s.exitOnce.Do(func() {
		if !s.entered {
			return
		}
		s.term.Write(SeqReset)
		s.term.ShowCursor()
		s.term.Write(SeqAltScreenExit)
		err = s.term.Flush()
	})
	return err
}
