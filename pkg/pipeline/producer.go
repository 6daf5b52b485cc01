package pipeline

import (
	"context"
	"errors"
	"image"
	"io"
	"time"

	"github.com/user/termplay/pkg/glyph"
	"github.com/user/termplay/pkg/ports"
)

// Producer reads frames from a source, converts them and publishes the
// results to a Queue. It owns neither the source nor the queue's consumer;
// it only closes the queue when it stops.
type Producer struct {
	source      ports.FrameSource
	convert     Stage[image.Image, glyph.Frame]
	queue       *Queue
	logger      ports.Logger
	pushTimeout time.Duration

	done  chan struct{}
	stats Stats
}

// NewProducer creates a producer. A non-positive pushTimeout falls back to
// DefaultPushTimeout.
func NewProducer(
	source ports.FrameSource,
	convert Stage[image.Image, glyph.Frame],
	queue *Queue,
	logger ports.Logger,
	pushTimeout time.Duration,
) *Producer {
	if pushTimeout <= 0 {
		pushTimeout = DefaultPushTimeout
	}
	return &Producer{
		source:      source,
		convert:     convert,
		queue:       queue,
		logger:      logger.WithComponent("producer"),
		pushTimeout: pushTimeout,
		done:        make(chan struct{}),
	}
}

// Start runs the producer loop on its own goroutine.
func (p *Producer) Start(ctx context.Context) {
	go p.Run(ctx)
}

// Done is closed when the loop has exited.
func (p *Producer) Done() <-chan struct{} {
	return p.done
}

// Stats returns the run summary. It is only meaningful after Done is closed.
func (p *Producer) Stats() Stats {
	return p.stats
}

// Run decodes, converts and enqueues frames until the source is exhausted,
// a decode or convert error occurs, or ctx is cancelled. Errors end the run
// without being returned: the queue is closed either way and the consumer
// sees the same end-of-stream signal.
func (p *Producer) Run(ctx context.Context) Stats {
	// Done closes before the queue so a consumer that sees PopClosed can
	// read final Stats.
	defer p.queue.Close()
	defer close(p.done)

	for seq := 0; ; seq++ {
		if ctx.Err() != nil {
			p.logger.Debug("Producer cancelled after %d frames", p.stats.Decoded)
			return p.stats
		}

		img, err := p.source.ReadFrame()
		if err != nil {
			if errors.Is(err, io.EOF) {
				p.logger.Debug("End of stream after %d frames", p.stats.Decoded)
			} else {
				p.stats.Err = err
				p.logger.Warn("Decode failed after %d frames: %v", p.stats.Decoded, err)
			}
			return p.stats
		}
		p.stats.Decoded++

		frame, err := p.convert.Execute(ctx, img)
		if err != nil {
			if ctx.Err() != nil {
				return p.stats
			}
			p.stats.Err = err
			p.logger.Warn("Convert failed on frame %d: %v", seq, err)
			return p.stats
		}
		frame.Seq = seq

		switch err := p.queue.Push(ctx, frame, p.pushTimeout); {
		case err == nil:
			p.stats.Queued++
		case errors.Is(err, ErrPushTimeout):
			p.stats.Dropped++
			p.logger.Debug("Queue full, dropped frame %d", seq)
		default:
			// Cancelled or closed underneath us.
			return p.stats
		}
	}
}
