// Package orchestrator wires the decoder, producer, playback controller and
// terminal together for one playback session.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/user/termplay/pkg/glyph"
	"github.com/user/termplay/pkg/pipeline"
	"github.com/user/termplay/pkg/playback"
	"github.com/user/termplay/pkg/ports"
	"github.com/user/termplay/pkg/stages/convert"
)

var (
	// ErrOpenSource is returned when the video cannot be opened. No terminal
	// state has been changed when it is returned.
	ErrOpenSource = errors.New("orchestrator: cannot open source")

	// ErrKeyboard is returned when keyboard input cannot be set up.
	ErrKeyboard = errors.New("orchestrator: keyboard unavailable")

	// ErrTerminal is returned when the alternate screen cannot be entered.
	ErrTerminal = errors.New("orchestrator: terminal setup failed")
)

// Config contains all configuration for a playback session.
type Config struct {
	Path string

	// Rendering
	Glyphs glyph.Table
	Scaler convert.Scaler

	// Pipeline
	QueueCapacity int
	PushTimeout   time.Duration
	PollTimeout   time.Duration

	// Frame rate: FPSOverride wins when positive, then the decoder, then the
	// container probe, then DefaultFPS.
	FPSOverride float64
	DefaultFPS  float64
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Glyphs:        glyph.DefaultTable(),
		Scaler:        convert.ScalerBilinear,
		QueueCapacity: pipeline.DefaultQueueCapacity,
		PushTimeout:   pipeline.DefaultPushTimeout,
		PollTimeout:   playback.DefaultPollTimeout,
		DefaultFPS:    playback.DefaultFPS,
	}
}

// TerminalSession switches the terminal into playback mode and back.
// Restore must be safe to call more than once.
type TerminalSession interface {
	Enter() error
	Restore() error
}

// KeyOpener starts keyboard input. It is called only after the source has
// been opened so startup errors leave the terminal untouched.
type KeyOpener func() (ports.KeySource, error)

// RunResult summarizes a session.
type RunResult struct {
	Playback playback.Result
	FPS      float64
	Grid     pipeline.Dimension

	// Producer holds the producer summary when it had finished by the time
	// playback returned.
	Producer         pipeline.Stats
	ProducerFinished bool
}

// Orchestrator coordinates one playback session.
type Orchestrator struct {
	opener  ports.SourceOpener
	prober  ports.MediaProber
	screen  ports.Screen
	session TerminalSession
	keys    KeyOpener
	logger  ports.Logger
}

// New creates a new Orchestrator. prober may be nil.
func New(
	opener ports.SourceOpener,
	prober ports.MediaProber,
	screen ports.Screen,
	session TerminalSession,
	keys KeyOpener,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		opener:  opener,
		prober:  prober,
		screen:  screen,
		session: session,
		keys:    keys,
		logger:  logger,
	}
}

// Run plays config.Path until it ends, the user quits, or ctx is cancelled.
// The source is closed exactly once and the terminal is restored on every
// path out of Run.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	source, err := o.opener.Open(config.Path)
	if err != nil {
		return RunResult{}, fmt.Errorf("%w: %w", ErrOpenSource, err)
	}
	var closeOnce sync.Once
	release := func() { closeOnce.Do(source.Close) }
	defer release()

	fps := o.resolveFPS(config, source)

	keys, err := o.keys()
	if err != nil {
		return RunResult{}, fmt.Errorf("%w: %w", ErrKeyboard, err)
	}
	defer keys.Close()

	if err := o.session.Enter(); err != nil {
		_ = o.session.Restore()
		return RunResult{}, fmt.Errorf("%w: %w", ErrTerminal, err)
	}
	defer o.session.Restore()

	cols, rows := o.screen.Size()
	grid := convert.GridForTerminal(cols, rows)
	o.logger.Info("Playing %s", config.Path)
	o.logger.Debug("Frame grid %s, queue capacity %d", grid, config.QueueCapacity)

	producerCtx, stopProducer := context.WithCancel(ctx)
	defer stopProducer()

	stage := convert.NewStage(config.Glyphs, grid, config.Scaler, o.logger)
	queue := pipeline.NewQueue(config.QueueCapacity)
	producer := pipeline.NewProducer(source, stage, queue, o.logger, config.PushTimeout)
	producer.Start(producerCtx)

	ctl := playback.NewController(queue, o.screen, keys, o.logger, playback.Options{
		FPS:         fps,
		PollTimeout: config.PollTimeout,
	})
	res := ctl.Run(ctx)

	// The producer may be blocked in a read; cancelling and closing the
	// source unblocks it. It is not joined.
	stopProducer()
	release()

	result := RunResult{Playback: res, FPS: fps, Grid: grid}
	select {
	case <-producer.Done():
		result.Producer = producer.Stats()
		result.ProducerFinished = true
		o.logger.Debug("Producer stats: %d decoded, %d queued, %d dropped",
			result.Producer.Decoded, result.Producer.Queued, result.Producer.Dropped)
	default:
	}

	o.logger.Info("Playback %s after %d frames", res.Outcome, res.FramesShown)
	return result, nil
}

// resolveFPS picks the frame rate used to pace playback.
func (o *Orchestrator) resolveFPS(config Config, source ports.FrameSource) float64 {
	if config.FPSOverride > 0 {
		return config.FPSOverride
	}
	if fps := source.FPS(); fps > 0 {
		return fps
	}
	if o.prober != nil {
		info, err := o.prober.Probe(config.Path)
		if err != nil {
			o.logger.Debug("Probe failed, using decoder metadata: %v", err)
		} else {
			o.logger.Debug("Source opened: %s codec, %dx%d, %.2f fps", info.Codec, info.Width, info.Height, info.FPS)
			if info.FPS > 0 {
				return info.FPS
			}
		}
	}
	if config.DefaultFPS > 0 {
		return config.DefaultFPS
	}
	return playback.DefaultFPS
}
