package rope

import "errors"

// Domain errors for rope construction and tuning.
var (
	// ErrTooFewVertices indicates a chain with fewer than three particles,
	// which cannot carry a bend constraint.
	ErrTooFewVertices = errors.New("rope: need at least 3 vertices")

	// ErrDimensionMismatch indicates vertex and mass lists of different length.
	ErrDimensionMismatch = errors.New("rope: vertex and mass counts differ")

	// ErrUnknownBendingModel indicates an unrecognized bending model name.
	ErrUnknownBendingModel = errors.New("rope: unknown bending model")
)
