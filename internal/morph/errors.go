package morph

import "errors"

var (
	// ErrInvalidConfig indicates a parameter outside its valid range. It is
	// returned before any pixel is computed.
	ErrInvalidConfig = errors.New("morph: invalid configuration")

	// ErrShapeMismatch indicates grids or masks with incompatible extents.
	ErrShapeMismatch = errors.New("morph: shape mismatch")
)
