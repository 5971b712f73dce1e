package types

import (
	"errors"
	"fmt"
)

// ErrBusy is returned when a second utterance is submitted while a model call
// is already in flight for the same conversation.
var ErrBusy = errors.New("conversation busy: model call already in flight")

// ErrUnknownTool is returned by the dispatcher for tool names outside the
// fixed catalog.
var ErrUnknownTool = errors.New("unknown tool name")

// ValidationError marks invalid caller input, such as coordinates outside the
// operating bounding box.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewOutOfBoundsError builds the standard coordinate rejection error.
func NewOutOfBoundsError(lat, lng float64, b Bounds) *ValidationError {
	return &ValidationError{
		Field: "coordinates",
		Message: fmt.Sprintf("(%.4f, %.4f) outside operating bounds %g-%g°N, %g-%g°E",
			lat, lng, b.South, b.North, b.West, b.East),
	}
}

// ModelInvocationError wraps a failed language-model call. The orchestrator
// recovers from it by degrading to passthrough, so it reaches callers as a
// recorded reason rather than a hard failure.
type ModelInvocationError struct {
	Cause error
}

func (e *ModelInvocationError) Error() string {
	return fmt.Sprintf("model invocation failed: %v", e.Cause)
}

func (e *ModelInvocationError) Unwrap() error { return e.Cause }
