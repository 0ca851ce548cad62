package curve

import "errors"

var (
	// ErrComputation is returned when a modular inverse does not exist, which
	// only happens for degenerate inputs.
	ErrComputation = errors.New("curve: computation failed")

	// ErrCoordinates is returned when no x-coordinate exists for a y-value.
	ErrCoordinates = errors.New("curve: coordinates not recoverable")

	// ErrPointNotOnCurve is returned for points that do not satisfy the curve
	// equation.
	ErrPointNotOnCurve = errors.New("curve: point not on curve")

	// ErrUnknownCurve is returned for an unrecognised curve identifier.
	ErrUnknownCurve = errors.New("curve: unknown curve identifier")
)
