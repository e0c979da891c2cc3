package script

import (
	"context"
	"fmt"

	"narrator-app/internal/domain/source"
)

// Generator produces a narration script from normalized source text.
// Concrete implementation wraps a remote language model service.
type Generator interface {
	// Generate takes the source text plus its mode and origin for context
	// and returns the script text.
	Generate(ctx context.Context, text string, mode source.Mode, origin string) (string, error)
}

// GenerationError is a failure attributable to the upstream generation or
// synthesis service, not to the caller.
type GenerationError struct {
	Stage string // "script" or "audio"
	Cause error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s generation failed: %v", e.Stage, e.Cause)
	}
	return fmt.Sprintf("%s generation produced no usable output", e.Stage)
}

func (e *GenerationError) Unwrap() error { return e.Cause }
