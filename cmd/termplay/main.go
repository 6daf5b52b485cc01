// Package main provides the CLI entry point for termplay.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"
	"golang.org/x/term"

	"github.com/user/termplay/pkg/adapters/ansiterm"
	"github.com/user/termplay/pkg/adapters/logger"
	"github.com/user/termplay/pkg/adapters/mp4probe"
	"github.com/user/termplay/pkg/adapters/rawkeys"
	"github.com/user/termplay/pkg/adapters/vidiodecoder"
	"github.com/user/termplay/pkg/config"
	"github.com/user/termplay/pkg/orchestrator"
	"github.com/user/termplay/pkg/ports"
)

// CLI defines the command-line interface.
type CLI struct {
	Video string `arg:"" name:"video" help:"${help_video}"`

	Config string  `short:"c" type:"path" help:"${help_config}"`
	FPS    float64 `help:"${help_fps}"`

	// Logging options
	LogLevel string `short:"l" help:"${help_log_level}"`
	Quiet    bool   `short:"Q" help:"${help_quiet}"`

	Version kong.VersionFlag `help:"${help_version}"`
}

var version = "dev"

func main() {
	cli := CLI{}

	parser, err := kong.New(&cli,
		kong.Name("termplay"),
		kong.Description(l10n.T("Play a video as colored text in the terminal.")),
		kong.UsageOnError(),
		kong.Vars{
			"version":        fmt.Sprintf("termplay %s", version),
			"help_video":     l10n.T("Video file to play."),
			"help_config":    l10n.T("YAML configuration file."),
			"help_fps":       l10n.T("Override the frame rate reported by the video."),
			"help_log_level": l10n.T("Log level (debug, info, warn, error)."),
			"help_quiet":     l10n.T("Suppress all log output."),
			"help_version":   l10n.T("Show version information."),
		},
	)
	if err != nil {
		panic(err)
	}

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// Usage for a bad command line goes to stderr.
		parser.Stdout = os.Stderr
		parser.FatalIfErrorf(err)
	}

	os.Exit(cli.Run())
}

// Run plays the video and returns the process exit status.
func (cli *CLI) Run() int {
	cfg, err := cli.loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// Log output is held back while the alternate screen is active.
	var inner ports.Logger
	if cli.Quiet {
		inner = logger.NewNoop()
	} else {
		inner = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}
	log := logger.NewDeferred(inner)
	defer log.Flush()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The handler is installed once the source is open: opening resets
	// SIGINT/SIGTERM to drop the decoder library's own exit handler.
	sigCh := make(chan os.Signal, 1)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	stdoutFd := int(os.Stdout.Fd())
	size := func() (int, int, error) {
		return term.GetSize(stdoutFd)
	}
	if _, _, err := size(); err != nil {
		log.Debug("Terminal size unavailable, using %dx%d: %v", cfg.FallbackColumns, cfg.FallbackRows, err)
	}

	screen := ansiterm.New(os.Stdout, size, cfg.FallbackColumns, cfg.FallbackRows)
	session := ansiterm.NewSession(screen)
	keys := func() (ports.KeySource, error) {
		src, err := rawkeys.Open(os.Stdin)
		if err != nil {
			return nil, err
		}
		return src, nil
	}

	decoder := vidiodecoder.NewOpener()
	opener := ports.SourceOpenerFunc(func(path string) (ports.FrameSource, error) {
		src, err := decoder.Open(path)
		if err != nil {
			return nil, err
		}
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		return src, nil
	})

	orch := orchestrator.New(
		opener,
		mp4probe.New(),
		screen,
		session,
		keys,
		log,
	)

	_, err = orch.Run(ctx, cfg.ToOrchestratorConfig(cli.Video, cli.FPS))
	if errors.Is(err, orchestrator.ErrOpenSource) {
		// Reported on stdout; the terminal was never switched.
		fmt.Println(l10n.F("Failed to open %s: %v", cli.Video, err))
		return 1
	}
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	return 0
}

// loadConfig reads the YAML file when given and validates the result.
func (cli *CLI) loadConfig() (config.Config, error) {
	cfg := config.Defaults()
	if cli.Config != "" {
		loaded, err := config.LoadFromFile(cli.Config)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	if cli.FPS < 0 {
		return cfg, fmt.Errorf("%w: fps must not be negative", config.ErrInvalid)
	}
	return cfg, cfg.Validate()
}
