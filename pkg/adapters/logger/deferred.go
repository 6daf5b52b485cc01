package logger

import (
	"sync"

	"github.com/user/termplay/pkg/ports"
)

type entry struct {
	level     ports.LogLevel
	component string
	msg       string
	args      []interface{}
}

// DeferredLogger buffers messages while the terminal is showing video so
// log lines do not land in the middle of a frame. Flush replays the buffer
// to the inner logger in order; after Flush messages pass straight through.
type DeferredLogger struct {
	inner     ports.Logger
	component string
	buf       *deferredBuffer
}

type deferredBuffer struct {
	mu      sync.Mutex
	entries []entry
	flushed bool
	limit   int
}

// DefaultDeferredLimit caps the number of buffered entries. Older entries
// are discarded first.
const DefaultDeferredLimit = 1000

// NewDeferred wraps inner.
func NewDeferred(inner ports.Logger) *DeferredLogger {
	return &DeferredLogger{
		inner: inner,
		buf:   &deferredBuffer{limit: DefaultDeferredLimit},
	}
}

func (l *DeferredLogger) Debug(msg string, args ...interface{}) {
	l.add(ports.LevelDebug, msg, args)
}

func (l *DeferredLogger) Info(msg string, args ...interface{}) {
	l.add(ports.LevelInfo, msg, args)
}

func (l *DeferredLogger) Warn(msg string, args ...interface{}) {
	l.add(ports.LevelWarn, msg, args)
}

func (l *DeferredLogger) Error(msg string, args ...interface{}) {
	l.add(ports.LevelError, msg, args)
}

// WithComponent returns a logger sharing this buffer.
func (l *DeferredLogger) WithComponent(component string) ports.Logger {
	return &DeferredLogger{inner: l.inner, component: component, buf: l.buf}
}

// Pending returns the number of buffered entries.
func (l *DeferredLogger) Pending() int {
	l.buf.mu.Lock()
	defer l.buf.mu.Unlock()
	return len(l.buf.entries)
}

// Flush writes buffered entries to the inner logger. Safe to call more than
// once.
func (l *DeferredLogger) Flush() {
	l.buf.mu.Lock()
	entries := l.buf.entries
	l.buf.entries = nil
	l.buf.flushed = true
	l.buf.mu.Unlock()

	for _, e := range entries {
		emit(l.inner, e)
	}
}

func (l *DeferredLogger) add(level ports.LogLevel, msg string, args []interface{}) {
	e := entry{level: level, component: l.component, msg: msg, args: args}

	l.buf.mu.Lock()
	if l.buf.flushed {
		l.buf.mu.Unlock()
		emit(l.inner, e)
		return
	}
	if len(l.buf.entries) >= l.buf.limit {
		l.buf.entries = l.buf.entries[1:]
	}
	l.buf.entries = append(l.buf.entries, e)
	l.buf.mu.Unlock()
}

func emit(inner ports.Logger, e entry) {
	target := inner
	if e.component != "" {
		target = inner.WithComponent(e.component)
	}
	switch e.level {
	case ports.LevelDebug:
		target.Debug(e.msg, e.args...)
	case ports.LevelInfo:
		target.Info(e.msg, e.args...)
	case ports.LevelWarn:
		target.Warn(e.msg, e.args...)
	default:
		target.Error(e.msg, e.args...)
	}
}
