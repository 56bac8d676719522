package grid

import "errors"

// Sentinel errors for grid operations. Callers match them with errors.Is.
var (
	// ErrBadShape indicates a requested extent is smaller than 1.
	ErrBadShape = errors.New("grid: every extent must be >= 1")

	// ErrShapeMismatch indicates two grids or a grid and a mask do not share extents.
	ErrShapeMismatch = errors.New("grid: shape mismatch")

	// ErrAxis indicates an axis value outside X..B.
	ErrAxis = errors.New("grid: unknown axis")

	// ErrOutOfRange indicates a plane index outside the axis extent.
	ErrOutOfRange = errors.New("grid: index out of range")
)
