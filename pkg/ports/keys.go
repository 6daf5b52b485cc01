package ports

import "time"

// Key is a resolved keyboard action.
type Key int

const (
	// KeyNone means no key was available within the poll budget.
	KeyNone Key = iota
	// KeyQuit is q or Q.
	KeyQuit
	// KeyTogglePause is the space bar.
	KeyTogglePause
	// KeySlower is the left arrow.
	KeySlower
	// KeyFaster is the right arrow.
	KeyFaster
	// KeyOther is any other complete key press.
	KeyOther
)

// String returns a readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyQuit:
		return "quit"
	case KeyTogglePause:
		return "pause"
	case KeySlower:
		return "slower"
	case KeyFaster:
		return "faster"
	case KeyOther:
		return "other"
	default:
		return "unknown"
	}
}

// KeySource delivers keyboard input without blocking the caller for longer
// than the requested timeout.
type KeySource interface {
	// Poll waits up to timeout for a key. It returns KeyNone when nothing
	// arrived. A zero timeout checks without waiting.
	Poll(timeout time.Duration) Key

	// Close stops reading and restores the terminal input mode.
	Close() error
}
