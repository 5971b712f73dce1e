package types

import (
	"fmt"
	"time"
)

// Position is a single location fix. Immutable once created; a newer fix
// supersedes it, it is never updated in place.
type Position struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy,omitempty"` // meters, 0 when the source did not report one
	Timestamp time.Time `json:"timestamp"`
}

// PermissionState tracks the positioning source permission grant.
type PermissionState string

const (
	PermissionGranted PermissionState = "granted"
	PermissionDenied  PermissionState = "denied"
	PermissionPrompt  PermissionState = "prompt"
	PermissionUnknown PermissionState = "unknown"
)

// LocationErrorKind classifies positioning failures. PermissionDenied is
// terminal for the tracker; the rest are transient.
type LocationErrorKind string

const (
	LocationPermissionDenied   LocationErrorKind = "permission_denied"
	LocationPositionUnavailable LocationErrorKind = "position_unavailable"
	LocationTimeout            LocationErrorKind = "timeout"
	LocationUnknown            LocationErrorKind = "unknown"
)

// LocationError is surfaced to tracker subscribers as a notification, not an
// error return that unwinds the tracking loop.
type LocationError struct {
	Kind    LocationErrorKind `json:"kind"`
	Message string            `json:"message"`
}

func (e *LocationError) Error() string {
	return fmt.Sprintf("location error (%s): %s", e.Kind, e.Message)
}

// Terminal reports whether the failure stops tracking.
func (e *LocationError) Terminal() bool {
	return e.Kind == LocationPermissionDenied
}
