// Package vidiodecoder streams RGBA frames from any file ffmpeg can read,
// using the Vidio bindings.
package vidiodecoder

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	vidio "github.com/AlexEidt/Vidio"

	"github.com/user/termplay/pkg/ports"
)

// ErrOpen wraps failures to open a video, including a missing ffmpeg.
var ErrOpen = errors.New("vidiodecoder: open failed")

// Source reads frames sequentially from a video file. Frames share one
// buffer; each returned image is overwritten by the next ReadFrame.
//
// Vidio closes its ffmpeg pipe by itself when a read fails, so Source tracks
// that and makes sure the process is waited on exactly once. ReadFrame and
// Close may be called from different goroutines.
type Source struct {
	video *vidio.Video
	frame *image.RGBA

	mu       sync.Mutex
	primed   bool // first frame already decoded by Open
	reading  bool // a vidio Read is in flight
	finished bool // vidio closed the stream itself
	closed   bool // Close was called
}

// Open starts decoding path and decodes the first frame.
//
// Vidio installs a SIGINT/SIGTERM handler that exits the process when it
// starts ffmpeg. Open starts ffmpeg eagerly and then resets both signals to
// their default behavior, so callers must install their own handlers after
// Open returns.
func Open(path string) (*Source, error) {
	video, err := vidio.NewVideo(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpen, path, err)
	}

	frame := image.NewRGBA(image.Rect(0, 0, video.Width(), video.Height()))
	if err := video.SetFrameBuffer(frame.Pix); err != nil {
		video.Close()
		return nil, fmt.Errorf("%w: frame buffer: %v", ErrOpen, err)
	}

	s := &Source{video: video, frame: frame}
	s.primed = video.Read()
	s.finished = !s.primed
	signal.Reset(os.Interrupt, syscall.SIGTERM)

	return s, nil
}

// NewOpener returns a ports.SourceOpener backed by Open.
func NewOpener() ports.SourceOpener {
	return ports.SourceOpenerFunc(func(path string) (ports.FrameSource, error) {
		src, err := Open(path)
		if err != nil {
			return nil, err
		}
		return src, nil
	})
}

// ReadFrame decodes the next frame. Vidio does not distinguish a broken
// pipe from the end of the file, so both surface as io.EOF, as does reading
// after Close.
func (s *Source) ReadFrame() (image.Image, error) {
	s.mu.Lock()
	if s.closed || s.finished {
		s.mu.Unlock()
		return nil, io.EOF
	}
	if s.primed {
		s.primed = false
		s.mu.Unlock()
		return s.frame, nil
	}
	s.reading = true
	s.mu.Unlock()

	ok := s.video.Read()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reading = false
	if !ok {
		s.finished = true
		return nil, io.EOF
	}
	if s.closed {
		// Close arrived mid-read and left the release to us.
		s.finished = true
		s.video.Close()
		return nil, io.EOF
	}
	return s.frame, nil
}

// FPS returns the stream frame rate reported by ffprobe.
func (s *Source) FPS() float64 {
	return s.video.FPS()
}

// Size returns the native frame dimensions.
func (s *Source) Size() (width, height int) {
	return s.video.Width(), s.video.Height()
}

// Close stops the ffmpeg process. When a read is in flight the reading
// goroutine releases the process once its read returns. Safe to call more
// than once.
func (s *Source) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.reading || s.finished {
		return
	}
	s.finished = true
	s.video.Close()
}

var _ ports.FrameSource = (*Source)(nil)
