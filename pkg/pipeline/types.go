package pipeline

import (
	"errors"
	"fmt"
	"time"
)

// Dimension represents width and height in character cells.
type Dimension struct {
	Width  int
	Height int
}

// String formats the dimension as WxH.
func (d Dimension) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Empty reports whether either side is non-positive.
func (d Dimension) Empty() bool {
	return d.Width <= 0 || d.Height <= 0
}

// DefaultQueueCapacity is the number of converted frames buffered ahead of
// the display loop.
const DefaultQueueCapacity = 50

// DefaultPushTimeout bounds how long the producer waits on a full queue
// before dropping the frame it just converted.
const DefaultPushTimeout = 100 * time.Millisecond

var (
	// ErrPushTimeout is returned by Queue.Push when the queue stayed full for
	// the whole timeout. It is not a failure: the frame is simply dropped.
	ErrPushTimeout = errors.New("pipeline: push timed out")

	// ErrQueueClosed is returned by Queue.Push after Close.
	ErrQueueClosed = errors.New("pipeline: queue closed")
)

// PopStatus distinguishes the outcomes of Queue.Pop.
type PopStatus int

const (
	// PopFrame means a frame was dequeued.
	PopFrame PopStatus = iota
	// PopEmpty means nothing arrived within the timeout but the producer is
	// still running.
	PopEmpty
	// PopClosed means the producer finished and the queue is drained.
	PopClosed
)

// String returns the status name.
func (s PopStatus) String() string {
	switch s {
	case PopFrame:
		return "frame"
	case PopEmpty:
		return "empty"
	case PopClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Stats summarizes one producer run.
type Stats struct {
	Decoded int   // frames read from the source
	Queued  int   // frames accepted by the queue
	Dropped int   // frames discarded on push timeout
	Err     error // decode or convert error that ended the run, nil on EOF
}
