package grid

import "fmt"

// Axis names one of the five grid dimensions.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	AxisT
	AxisB
)

// String returns the single-letter axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	case AxisT:
		return "T"
	case AxisB:
		return "B"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Dims holds the five extents of a grid.
type Dims struct {
	X, Y, Z, T, B int
}

// Dims2D is a convenience constructor for a single-plane, single-band shape.
func Dims2D(x, y int) Dims {
	return Dims{X: x, Y: y, Z: 1, T: 1, B: 1}
}

// Valid reports whether every extent is at least 1.
func (d Dims) Valid() bool {
	return d.X >= 1 && d.Y >= 1 && d.Z >= 1 && d.T >= 1 && d.B >= 1
}

// Len is the total number of values.
func (d Dims) Len() int {
	return d.X * d.Y * d.Z * d.T * d.B
}

// Planes is the number of XY planes (Z*T*B).
func (d Dims) Planes() int {
	return d.Z * d.T * d.B
}

// Along returns the extent of the given axis.
func (d Dims) Along(a Axis) (int, error) {
	switch a {
	case AxisX:
		return d.X, nil
	case AxisY:
		return d.Y, nil
	case AxisZ:
		return d.Z, nil
	case AxisT:
		return d.T, nil
	case AxisB:
		return d.B, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrAxis, int(a))
}

// with returns a copy of d with the extent of axis a replaced by n.
func (d Dims) with(a Axis, n int) Dims {
	switch a {
	case AxisX:
		d.X = n
	case AxisY:
		d.Y = n
	case AxisZ:
		d.Z = n
	case AxisT:
		d.T = n
	case AxisB:
		d.B = n
	}
	return d
}

// SpatialEqual reports whether d and o share their X, Y, Z and T extents.
func (d Dims) SpatialEqual(o Dims) bool {
	return d.X == o.X && d.Y == o.Y && d.Z == o.Z && d.T == o.T
}

func (d Dims) String() string {
	return fmt.Sprintf("%dx%dx%dx%dx%d", d.X, d.Y, d.Z, d.T, d.B)
}
