package playback

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ideamans/go-l10n"

	"github.com/user/termplay/pkg/glyph"
	"github.com/user/termplay/pkg/pipeline"
	"github.com/user/termplay/pkg/ports"
)

// DefaultFPS is used when the source does not report a frame rate.
const DefaultFPS = 30.0

// DefaultPollTimeout bounds each wait for a frame or a key.
const DefaultPollTimeout = 100 * time.Millisecond

// FrameQueue is the consumer side of the frame queue.
type FrameQueue interface {
	Pop(timeout time.Duration) (glyph.Frame, pipeline.PopStatus)
	Drained() bool
}

// Outcome tells how a Run ended.
type Outcome int

const (
	// OutcomeEnded means the stream finished and the user acknowledged the
	// end prompt.
	OutcomeEnded Outcome = iota
	// OutcomeQuit means the quit key was pressed.
	OutcomeQuit
	// OutcomeInterrupted means the context was cancelled.
	OutcomeInterrupted
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeEnded:
		return "ended"
	case OutcomeQuit:
		return "quit"
	case OutcomeInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Result summarizes a Run.
type Result struct {
	Outcome     Outcome
	FramesShown int
	State       State
}

// Options tunes the controller.
type Options struct {
	FPS         float64
	PollTimeout time.Duration

	// Sleep waits between frames. It must return early when ctx is done.
	// Nil uses a timer.
	Sleep func(ctx context.Context, d time.Duration)
}

// Controller owns the playback state and drives the screen from the queue.
// It is not safe for concurrent use; it runs on the main control loop.
type Controller struct {
	queue  FrameQueue
	screen ports.Screen
	keys   ports.KeySource
	logger ports.Logger

	baseDelay   time.Duration
	pollTimeout time.Duration
	sleep       func(ctx context.Context, d time.Duration)

	state  State
	status Status
	shown  int
}

// NewController creates a controller in the Playing state.
func NewController(queue FrameQueue, screen ports.Screen, keys ports.KeySource, logger ports.Logger, opts Options) *Controller {
	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	poll := opts.PollTimeout
	if poll <= 0 {
		poll = DefaultPollTimeout
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = sleepContext
	}
	return &Controller{
		queue:       queue,
		screen:      screen,
		keys:        keys,
		logger:      logger.WithComponent("playback"),
		baseDelay:   time.Duration(float64(time.Second) / fps),
		pollTimeout: poll,
		sleep:       sleep,
		state:       NewState(),
		status:      Playing,
	}
}

// State returns the current playback state.
func (c *Controller) State() State {
	return c.state
}

// Status returns the current state machine position.
func (c *Controller) Status() Status {
	return c.status
}

// FrameDelay is the pause after each rendered frame at the current speed.
func (c *Controller) FrameDelay() time.Duration {
	return time.Duration(float64(c.baseDelay) * c.state.SpeedMultiplier)
}

// HandleKey applies one key to the state. It returns true for quit.
func (c *Controller) HandleKey(key ports.Key) bool {
	switch key {
	case ports.KeyQuit:
		return true
	case ports.KeyTogglePause:
		c.state.TogglePause()
		if c.state.Paused {
			c.status = Paused
		} else {
			c.status = Playing
		}
	case ports.KeySlower:
		c.state.Slower()
	case ports.KeyFaster:
		c.state.Faster()
	default:
		return false
	}
	c.logger.Debug("Key %s: %s", key, c.state.StatusText())
	c.drawStatus()
	_ = c.screen.Flush()
	return false
}

// Run plays until the stream ends and a key is pressed, the quit key is
// pressed, or ctx is cancelled.
func (c *Controller) Run(ctx context.Context) Result {
	c.screen.HideCursor()
	c.screen.Clear()
	c.drawStatus()
	_ = c.screen.Flush()

	for {
		if ctx.Err() != nil {
			return c.result(OutcomeInterrupted)
		}

		if c.HandleKey(c.keys.Poll(0)) {
			return c.result(OutcomeQuit)
		}

		if c.state.Paused {
			if c.queue.Drained() {
				break
			}
			if c.HandleKey(c.keys.Poll(c.pollTimeout)) {
				return c.result(OutcomeQuit)
			}
			continue
		}

		frame, status := c.queue.Pop(c.pollTimeout)
		if status == pipeline.PopClosed {
			break
		}
		if status == pipeline.PopEmpty {
			continue
		}

		c.render(frame)
		c.sleep(ctx, c.FrameDelay())
	}

	return c.finish(ctx)
}

// finish enters Ended, shows the prompt and waits for any key.
func (c *Controller) finish(ctx context.Context) Result {
	c.status = Ended
	c.logger.Debug("Playback ended after %d frames", c.shown)
	c.drawLine(l10n.T("End of video. Press any key to exit."), ports.StylePrompt)
	_ = c.screen.Flush()

	for ctx.Err() == nil {
		if c.keys.Poll(c.pollTimeout) != ports.KeyNone {
			return c.result(OutcomeEnded)
		}
	}
	return c.result(OutcomeInterrupted)
}

func (c *Controller) render(frame glyph.Frame) {
	c.screen.HideCursor()
	c.screen.MoveCursor(1, 1)
	c.screen.Write(frame.Text)
	c.drawStatus()
	if err := c.screen.Flush(); err != nil {
		c.logger.Debug("Flush failed: %v", err)
	}
	c.shown++
}

func (c *Controller) drawStatus() {
	c.drawLine(c.state.StatusText(), ports.StyleSpeed)
}

// drawLine blanks the last row and writes text centred on it.
func (c *Controller) drawLine(text string, style ports.Style) {
	cols, rows := c.screen.Size()
	if rows < 1 {
		return
	}
	c.screen.SetStyle(ports.StyleReset)
	c.screen.MoveCursor(1, rows)
	c.screen.Write(strings.Repeat(" ", max(cols, 0)))

	c.screen.MoveCursor(centerColumn(cols, utf8.RuneCountInString(text)), rows)
	c.screen.SetStyle(style)
	c.screen.Write(text)
	c.screen.SetStyle(ports.StyleReset)
}

func (c *Controller) result(outcome Outcome) Result {
	return Result{Outcome: outcome, FramesShown: c.shown, State: c.state}
}

// centerColumn returns the 1-based column that centres width cells.
func centerColumn(cols, width int) int {
	col := (cols-width)/2 + 1
	if col < 1 {
		return 1
	}
	return col
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
