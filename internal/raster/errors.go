package raster

import (
	"errors"
	"fmt"
)

// Error taxonomy of the analysis core. Every error here is a deterministic
// function of the inputs; nothing is retried internally.
var (
	// ErrEmptyInput means no scenes survived filtering. The caller should
	// widen the date range or relax the cloud-cover threshold.
	ErrEmptyInput = errors.New("no scenes to composite")

	// ErrInsufficientData means a threshold could not be computed because
	// the region contained no valid pixels.
	ErrInsufficientData = errors.New("no valid pixels inside region")

	// ErrGeometry means the region geometry is degenerate (zero area).
	ErrGeometry = errors.New("degenerate region geometry")
)

// BandMismatchError reports a band that is absent from a scene or whose
// grid does not match the rest of the scene. It is a caller contract
// violation, surfaced fast rather than silently zero-filled.
type BandMismatchError struct {
	Band   string
	Reason string
}

func (e *BandMismatchError) Error() string {
	return fmt.Sprintf("band %q: %s", e.Band, e.Reason)
}
