package tensor

import "errors"

// Sentinel errors returned by tensor construction and graph operations.
// Callers can test for them with errors.Is.
var (
	// ErrShape indicates incompatible or invalid shapes: a buffer whose
	// length does not match the shape product, a ragged nested array, or a
	// reshape to a different element count.
	ErrShape = errors.New("shape mismatch")

	// ErrBackward indicates Backward was called on a tensor that cannot be
	// a backward root: a non-scalar, or one that does not require gradients.
	ErrBackward = errors.New("invalid backward root")
)
