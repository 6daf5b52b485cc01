// Package playback implements the display loop: it drains converted frames
// at the video's cadence and reacts to pause and speed keys.
package playback

import "fmt"

const (
	// MinSpeedMultiplier is the smallest delay scale (4x playback speed).
	MinSpeedMultiplier = 0.25
	// MaxSpeedMultiplier is the largest delay scale (0.25x playback speed).
	MaxSpeedMultiplier = 4.0
)

// Status is the controller's position in its state machine.
type Status int

const (
	Playing Status = iota
	Paused
	Ended
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// State is the user-controlled part of playback. SpeedMultiplier scales the
// inter-frame delay, so it is the inverse of the playback speed.
type State struct {
	Paused          bool
	SpeedMultiplier float64
}

// NewState returns a playing state at normal speed.
func NewState() State {
	return State{SpeedMultiplier: 1}
}

// TogglePause flips between playing and paused.
func (s *State) TogglePause() {
	s.Paused = !s.Paused
}

// Slower doubles the delay, capped at MaxSpeedMultiplier.
func (s *State) Slower() {
	s.SpeedMultiplier *= 2
	if s.SpeedMultiplier > MaxSpeedMultiplier {
		s.SpeedMultiplier = MaxSpeedMultiplier
	}
}

// Faster halves the delay, floored at MinSpeedMultiplier.
func (s *State) Faster() {
	s.SpeedMultiplier /= 2
	if s.SpeedMultiplier < MinSpeedMultiplier {
		s.SpeedMultiplier = MinSpeedMultiplier
	}
}

// StatusText is the indicator shown on the last terminal row.
func (s State) StatusText() string {
	if s.Paused {
		return "paused"
	}
	return fmt.Sprintf("%.1fx", 1/s.SpeedMultiplier)
}
