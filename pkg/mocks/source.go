package mocks

import (
	"image"
	"image/color"
	"io"
	"sync"
	"sync/atomic"

	"github.com/user/termplay/pkg/ports"
)

// FrameSource is a mock implementation of ports.FrameSource that replays a
// fixed list of frames.
type FrameSource struct {
	mu     sync.Mutex
	Frames []image.Image
	Rate   float64

	// FailAfter, when positive, makes ReadFrame return FailErr once that many
	// frames have been delivered.
	FailAfter int
	FailErr   error

	// ReadHook runs before every ReadFrame call.
	ReadHook func(index int)

	next   int
	closes atomic.Int32
}

// NewFrameSource creates a source of n solid frames of the given size. Frame
// i is filled with gray level i*40 so frames are distinguishable.
func NewFrameSource(n, width, height int, fps float64) *FrameSource {
	frames := make([]image.Image, n)
	for i := range frames {
		level := uint8(i * 40)
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				img.SetRGBA(x, y, color.RGBA{R: level, G: level, B: level, A: 255})
			}
		}
		frames[i] = img
	}
	return &FrameSource{Frames: frames, Rate: fps}
}

func (m *FrameSource) ReadFrame() (image.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ReadHook != nil {
		m.ReadHook(m.next)
	}
	if m.FailAfter > 0 && m.next >= m.FailAfter {
		return nil, m.FailErr
	}
	if m.next >= len(m.Frames) {
		return nil, io.EOF
	}
	img := m.Frames[m.next]
	m.next++
	return img, nil
}

func (m *FrameSource) FPS() float64 {
	return m.Rate
}

func (m *FrameSource) Close() {
	m.closes.Add(1)
}

// CloseCount returns how many times Close was called.
func (m *FrameSource) CloseCount() int {
	return int(m.closes.Load())
}

// Opener returns a ports.SourceOpener that hands out m, or err when non-nil.
func (m *FrameSource) Opener(err error) ports.SourceOpener {
	return ports.SourceOpenerFunc(func(path string) (ports.FrameSource, error) {
		if err != nil {
			return nil, err
		}
		return m, nil
	})
}

var _ ports.FrameSource = (*FrameSource)(nil)
