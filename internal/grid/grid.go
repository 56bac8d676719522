package grid

import (
	"fmt"
	"math"
)

// Grid is a dense five-dimensional float64 buffer with optional per-position
// presence. The zero value is not usable; construct grids with New.
type Grid struct {
	dims     Dims
	data     []float64
	presence *Mask // nil: all positions present
}

// New returns a zero-filled grid with every position present.
func New(d Dims) (*Grid, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrBadShape, d)
	}
	return &Grid{dims: d, data: make([]float64, d.Len())}, nil
}

// FromPlane builds a single-plane, single-band grid from row-major values.
// len(values) must equal width*height.
func FromPlane(width, height int, values []float64) (*Grid, error) {
	g, err := New(Dims2D(width, height))
	if err != nil {
		return nil, err
	}
	if len(values) != width*height {
		return nil, fmt.Errorf("%w: %d values for %dx%d plane", ErrShapeMismatch, len(values), width, height)
	}
	copy(g.data, values)
	return g, nil
}

// Dims returns the grid extents.
func (g *Grid) Dims() Dims {
	return g.dims
}

// At returns the value at the given coordinate.
func (g *Grid) At(x, y, z, t, b int) float64 {
	return g.data[g.index(x, y, z, t, b)]
}

// IntAt returns the value truncated toward zero.
func (g *Grid) IntAt(x, y, z, t, b int) int {
	return int(g.At(x, y, z, t, b))
}

// ByteAt returns the value truncated toward zero and clamped to [0, 255].
func (g *Grid) ByteAt(x, y, z, t, b int) uint8 {
	return ToByte(g.At(x, y, z, t, b))
}

// Set stores v at the given coordinate.
func (g *Grid) Set(x, y, z, t, b int, v float64) {
	g.data[g.index(x, y, z, t, b)] = v
}

// Present reports whether (x, y, z, t) takes part in computation.
func (g *Grid) Present(x, y, z, t int) bool {
	if g.presence == nil {
		return true
	}
	return g.presence.At(x, y, z, t)
}

// SetPresent marks (x, y, z, t) present or absent. The first call on a grid
// without a mask allocates one.
func (g *Grid) SetPresent(x, y, z, t int, present bool) {
	if g.presence == nil {
		if present {
			return
		}
		g.presence, _ = NewMask(g.dims)
	}
	g.presence.Set(x, y, z, t, present)
}

// Mask returns the presence mask, or nil when every position is present.
// The returned mask is shared with the grid.
func (g *Grid) Mask() *Mask {
	return g.presence
}

// SetMask replaces the presence mask. A nil mask makes every position present.
func (g *Grid) SetMask(m *Mask) error {
	if m != nil && !m.dims.SpatialEqual(g.dims) {
		return fmt.Errorf("%w: mask %s, grid %s", ErrShapeMismatch, m.dims, g.dims)
	}
	g.presence = m
	return nil
}

// NewLike returns a zero-filled grid with the same extents and a copy of the
// presence mask.
func (g *Grid) NewLike() *Grid {
	out := &Grid{dims: g.dims, data: make([]float64, len(g.data))}
	if g.presence != nil {
		out.presence = g.presence.Clone()
	}
	return out
}

// Clone returns a deep copy, values and presence included.
func (g *Grid) Clone() *Grid {
	out := g.NewLike()
	copy(out.data, g.data)
	return out
}

// Equal reports whether g and o have the same extents, presence and
// bit-identical values.
func (g *Grid) Equal(o *Grid) bool {
	if g.dims != o.dims {
		return false
	}
	switch {
	case g.presence == nil && o.presence == nil:
	case g.presence != nil && o.presence != nil:
		if !g.presence.equal(o.presence) {
			return false
		}
	default:
		return false
	}
	for i, v := range g.data {
		if math.Float64bits(v) != math.Float64bits(o.data[i]) {
			return false
		}
	}
	return true
}

// PlaneData returns XY plane p, where p = (b*T+t)*Z + z, sharing storage with
// the grid. Writes through the slice modify the grid.
func (g *Grid) PlaneData(p int) []float64 {
	n := g.dims.X * g.dims.Y
	return g.data[p*n : (p+1)*n]
}

// PlanePresence returns the presence flags for XY plane p, or nil when the
// grid has no mask.
func (g *Grid) PlanePresence(p int) []bool {
	if g.presence == nil {
		return nil
	}
	return g.presence.PlaneData(p % (g.dims.Z * g.dims.T))
}

// Fill sets every value to v.
func (g *Grid) Fill(v float64) {
	for i := range g.data {
		g.data[i] = v
	}
}

func (g *Grid) index(x, y, z, t, b int) int {
	d := g.dims
	return (((b*d.T+t)*d.Z+z)*d.Y+y)*d.X + x
}

// ToByte truncates v toward zero and clamps it to [0, 255].
func ToByte(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
