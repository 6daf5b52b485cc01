package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/user/termplay/pkg/glyph"
)

// Queue is a bounded FIFO of converted frames shared by exactly one producer
// and one consumer. Both ends wait with a timeout; the consumer can tell a
// momentary stall (PopEmpty) from the producer having finished (PopClosed).
type Queue struct {
	frames    chan glyph.Frame
	done      chan struct{}
	closeOnce sync.Once
}

// NewQueue creates a queue holding at most capacity frames.
// A non-positive capacity falls back to DefaultQueueCapacity.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Queue{
		frames: make(chan glyph.Frame, capacity),
		done:   make(chan struct{}),
	}
}

// Cap returns the configured capacity.
func (q *Queue) Cap() int {
	return cap(q.frames)
}

// Len returns the number of frames currently buffered.
func (q *Queue) Len() int {
	return len(q.frames)
}

// Push enqueues frame, waiting up to timeout for space.
// It returns ErrPushTimeout when the queue stayed full, ErrQueueClosed after
// Close, or the context error on cancellation.
func (q *Queue) Push(ctx context.Context, frame glyph.Frame, timeout time.Duration) error {
	select {
	case <-q.done:
		return ErrQueueClosed
	default:
	}

	select {
	case q.frames <- frame:
		return nil
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case q.frames <- frame:
		return nil
	case <-q.done:
		return ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrPushTimeout
	}
}

// Pop dequeues the oldest frame, waiting up to timeout.
func (q *Queue) Pop(timeout time.Duration) (glyph.Frame, PopStatus) {
	select {
	case f := <-q.frames:
		return f, PopFrame
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case f := <-q.frames:
		return f, PopFrame
	case <-q.done:
		// Frames pushed before Close must still be delivered.
		select {
		case f := <-q.frames:
			return f, PopFrame
		default:
			return glyph.Frame{}, PopClosed
		}
	case <-timer.C:
		return glyph.Frame{}, PopEmpty
	}
}

// Close marks the producer side as finished. Buffered frames remain
// available to Pop. Close is safe to call more than once.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		close(q.done)
	})
}

// Drained reports whether the producer has finished and every buffered
// frame has been consumed.
func (q *Queue) Drained() bool {
	select {
	case <-q.done:
		return len(q.frames) == 0
	default:
		return false
	}
}

// Closed returns a channel that is closed once Close has been called.
func (q *Queue) Closed() <-chan struct{} {
	return q.done
}
