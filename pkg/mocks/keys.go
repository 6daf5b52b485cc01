package mocks

import (
	"sync"
	"time"

	"github.com/user/termplay/pkg/ports"
)

// KeySource is a mock implementation of ports.KeySource that returns
// scripted keys, one per Poll. Once the script is exhausted it returns
// Fallback without sleeping.
type KeySource struct {
	mu       sync.Mutex
	Script   []ports.Key
	Fallback ports.Key

	// PollFunc, when set, replaces the scripted behavior.
	PollFunc func(n int, timeout time.Duration) ports.Key

	Polls  int
	Closed bool
}

// NewKeySource creates a KeySource replaying keys.
func NewKeySource(keys ...ports.Key) *KeySource {
	return &KeySource{Script: keys}
}

func (m *KeySource) Poll(timeout time.Duration) ports.Key {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.Polls
	m.Polls++
	if m.PollFunc != nil {
		return m.PollFunc(n, timeout)
	}
	if len(m.Script) == 0 {
		return m.Fallback
	}
	k := m.Script[0]
	m.Script = m.Script[1:]
	return k
}

func (m *KeySource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

var _ ports.KeySource = (*KeySource)(nil)
