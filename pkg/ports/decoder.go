package ports

import (
	"image"
)

// FrameSource yields decoded video frames one at a time.
//
// ReadFrame returns io.EOF once the stream is exhausted. Any other error is a
// decode failure; callers treat it as the end of the stream.
type FrameSource interface {
	// ReadFrame decodes the next frame. The returned image is only valid
	// until the next call to ReadFrame.
	ReadFrame() (image.Image, error)

	// FPS returns the nominal frame rate, or 0 when the container does not
	// report one.
	FPS() float64

	// Close releases decoder resources.
	Close()
}

// SourceOpener opens a FrameSource for a media file.
type SourceOpener interface {
	Open(path string) (FrameSource, error)
}

// SourceOpenerFunc is a function adapter for SourceOpener.
type SourceOpenerFunc func(path string) (FrameSource, error)

// Open implements SourceOpener.
func (f SourceOpenerFunc) Open(path string) (FrameSource, error) {
	return f(path)
}

// MediaInfo describes container level metadata discovered before playback.
type MediaInfo struct {
	Codec  string
	Width  int
	Height int
	FPS    float64
}

// MediaProber reads container metadata without decoding frames.
type MediaProber interface {
	Probe(path string) (MediaInfo, error)
}
