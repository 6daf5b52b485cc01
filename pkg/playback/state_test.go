package playback

import "testing"

func TestState_SpeedBounds(t *testing.T) {
	s := NewState()
	for i := 0; i < 100; i++ {
		s.Slower()
		if s.SpeedMultiplier < MinSpeedMultiplier || s.SpeedMultiplier > MaxSpeedMultiplier {
			t.Fatalf("multiplier %v out of range after %d slower steps", s.SpeedMultiplier, i+1)
		}
	}
	if s.SpeedMultiplier != MaxSpeedMultiplier {
		t.Errorf("expected cap %v, got %v", MaxSpeedMultiplier, s.SpeedMultiplier)
	}

	for i := 0; i < 100; i++ {
		s.Faster()
		if s.SpeedMultiplier < MinSpeedMultiplier || s.SpeedMultiplier > MaxSpeedMultiplier {
			t.Fatalf("multiplier %v out of range after %d faster steps", s.SpeedMultiplier, i+1)
		}
	}
	if s.SpeedMultiplier != MinSpeedMultiplier {
		t.Errorf("expected floor %v, got %v", MinSpeedMultiplier, s.SpeedMultiplier)
	}
}

func TestState_SpeedMixedSequence(t *testing.T) {
	s := NewState()
	steps := []func(){s.Slower, s.Faster, s.Faster, s.Faster, s.Faster, s.Slower, s.Slower, s.Slower, s.Slower, s.Slower, s.Slower}
	for i, step := range steps {
		step()
		if s.SpeedMultiplier < MinSpeedMultiplier || s.SpeedMultiplier > MaxSpeedMultiplier {
			t.Fatalf("step %d: multiplier %v out of range", i, s.SpeedMultiplier)
		}
	}
	if s.SpeedMultiplier != MaxSpeedMultiplier {
		t.Errorf("expected %v, got %v", MaxSpeedMultiplier, s.SpeedMultiplier)
	}
}

func TestState_TogglePauseEvenTimes(t *testing.T) {
	s := NewState()
	s.Slower()
	before := s

	for i := 0; i < 6; i++ {
		s.TogglePause()
	}
	if s != before {
		t.Errorf("expected %+v after even toggles, got %+v", before, s)
	}

	s.TogglePause()
	if !s.Paused {
		t.Error("odd toggle count must leave playback paused")
	}
	if s.SpeedMultiplier != before.SpeedMultiplier {
		t.Error("toggling pause must not alter the multiplier")
	}
}

func TestState_StatusText(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{State{SpeedMultiplier: 1}, "1.0x"},
		{State{SpeedMultiplier: 2}, "0.5x"},
		{State{SpeedMultiplier: 4}, "0.2x"},
		{State{SpeedMultiplier: 0.5}, "2.0x"},
		{State{SpeedMultiplier: 0.25}, "4.0x"},
		{State{Paused: true, SpeedMultiplier: 0.25}, "paused"},
	}
	for _, tt := range tests {
		if got := tt.state.StatusText(); got != tt.want {
			t.Errorf("%+v: got %q, want %q", tt.state, got, tt.want)
		}
	}
}
