// Package pipeline provides the producer side of playback: a generic stage
// abstraction, the bounded frame queue and the background producer that
// feeds it.
package pipeline

import (
	"context"
)

// Stage represents a processing step with a typed input and output.
type Stage[In, Out any] interface {
	// Execute runs the stage with the given input and returns the output.
	Execute(ctx context.Context, input In) (Out, error)
}

// StageFunc is a function adapter for Stage interface.
type StageFunc[In, Out any] func(ctx context.Context, input In) (Out, error)

// Execute implements Stage interface.
func (f StageFunc[In, Out]) Execute(ctx context.Context, input In) (Out, error) {
	return f(ctx, input)
}
