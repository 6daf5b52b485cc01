package mocks

import "github.com/user/termplay/pkg/ports"

// MediaProber is a mock implementation of ports.MediaProber.
type MediaProber struct {
	Info  ports.MediaInfo
	Err   error
	Calls []string
}

func (m *MediaProber) Probe(path string) (ports.MediaInfo, error) {
	m.Calls = append(m.Calls, path)
	return m.Info, m.Err
}

var _ ports.MediaProber = (*MediaProber)(nil)
