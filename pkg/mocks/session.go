package mocks

import "sync"

// TerminalSession is a mock of the alternate-screen session.
type TerminalSession struct {
	mu       sync.Mutex
	EnterErr error
	Enters   int
	Restores int
}

func (m *TerminalSession) Enter() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Enters++
	return m.EnterErr
}

func (m *TerminalSession) Restore() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Restores++
	return nil
}
