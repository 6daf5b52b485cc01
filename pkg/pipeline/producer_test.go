package pipeline

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/user/termplay/pkg/adapters/logger"
	"github.com/user/termplay/pkg/glyph"
	"github.com/user/termplay/pkg/mocks"
)

// mapStage converts without scaling so tests can predict the output.
var mapStage = StageFunc[image.Image, glyph.Frame](func(ctx context.Context, img image.Image) (glyph.Frame, error) {
	return glyph.Map(img, glyph.NewTable("0123456789")), nil
})

func drain(t *testing.T, q *Queue) []glyph.Frame {
	t.Helper()
	var out []glyph.Frame
	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatal("timed out draining queue")
		default:
		}
		f, status := q.Pop(10 * time.Millisecond)
		switch status {
		case PopFrame:
			out = append(out, f)
		case PopClosed:
			return out
		}
	}
}

func TestProducer_DrainsSourceInOrder(t *testing.T) {
	source := mocks.NewFrameSource(3, 2, 2, 10)
	q := NewQueue(DefaultQueueCapacity)
	p := NewProducer(source, mapStage, q, logger.NewNoop(), 0)

	p.Start(context.Background())
	frames := drain(t, q)
	<-p.Done()

	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	for i, f := range frames {
		if f.Seq != i {
			t.Errorf("frame %d has seq %d", i, f.Seq)
		}
	}
	// Gray level 40*i maps to glyph index (40*i*9)/255.
	if !strings.HasSuffix(frames[2].Text, "2\r\n") {
		t.Errorf("unexpected glyph in last frame: %q", frames[2].Text)
	}

	stats := p.Stats()
	if stats.Decoded != 3 || stats.Queued != 3 || stats.Dropped != 0 || stats.Err != nil {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if source.CloseCount() != 0 {
		t.Error("producer must not close the source")
	}
}

func TestProducer_DecodeErrorEndsGracefully(t *testing.T) {
	source := mocks.NewFrameSource(3, 1, 1, 10)
	source.FailAfter = 1
	source.FailErr = errors.New("corrupt packet")

	q := NewQueue(DefaultQueueCapacity)
	p := NewProducer(source, mapStage, q, logger.NewNoop(), 0)

	stats := p.Run(context.Background())
	frames := drain(t, q)

	if len(frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(frames))
	}
	if stats.Err == nil || !strings.Contains(stats.Err.Error(), "corrupt packet") {
		t.Errorf("expected decode error in stats, got %v", stats.Err)
	}
}

func TestProducer_DropsNewestWhenFull(t *testing.T) {
	source := mocks.NewFrameSource(5, 1, 1, 10)
	q := NewQueue(2)
	p := NewProducer(source, mapStage, q, logger.NewNoop(), time.Millisecond)

	stats := p.Run(context.Background())
	if stats.Queued != 2 || stats.Dropped != 3 {
		t.Fatalf("expected 2 queued / 3 dropped, got %+v", stats)
	}

	frames := drain(t, q)
	if len(frames) != 2 || frames[0].Seq != 0 || frames[1].Seq != 1 {
		t.Errorf("expected the two oldest frames to survive, got %+v", frames)
	}
}

func TestProducer_ConvertErrorEndsRun(t *testing.T) {
	source := mocks.NewFrameSource(3, 1, 1, 10)
	failing := StageFunc[image.Image, glyph.Frame](func(ctx context.Context, img image.Image) (glyph.Frame, error) {
		return glyph.Frame{}, errors.New("boom")
	})

	q := NewQueue(4)
	stats := NewProducer(source, failing, q, logger.NewNoop(), 0).Run(context.Background())
	if stats.Err == nil {
		t.Error("expected convert error")
	}
	if _, status := q.Pop(time.Millisecond); status != PopClosed {
		t.Errorf("expected closed queue, got %s", status)
	}
}

func TestProducer_StopsOnCancel(t *testing.T) {
	source := mocks.NewFrameSource(1000, 1, 1, 10)
	q := NewQueue(1)
	p := NewProducer(source, mapStage, q, logger.NewNoop(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatal("producer did not stop after cancel")
	}
	if p.Stats().Decoded >= 1000 {
		t.Error("producer read the whole source despite cancellation")
	}
}
