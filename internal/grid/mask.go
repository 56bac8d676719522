package grid

import "fmt"

// Mask is a boolean grid over the X, Y, Z and T axes. A false entry marks
// the position as excluded from computation.
type Mask struct {
	dims Dims // B is always 1
	data []bool
}

// NewMask returns a mask with every position set to true.
func NewMask(d Dims) (*Mask, error) {
	d.B = 1
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrBadShape, d)
	}
	data := make([]bool, d.Len())
	for i := range data {
		data[i] = true
	}
	return &Mask{dims: d, data: data}, nil
}

// Dims returns the mask extents; B is always 1.
func (m *Mask) Dims() Dims {
	return m.dims
}

// At reports whether (x, y, z, t) is active.
func (m *Mask) At(x, y, z, t int) bool {
	return m.data[m.index(x, y, z, t)]
}

// Set marks (x, y, z, t) active or inactive.
func (m *Mask) Set(x, y, z, t int, active bool) {
	m.data[m.index(x, y, z, t)] = active
}

// Clone returns an independent copy.
func (m *Mask) Clone() *Mask {
	data := make([]bool, len(m.data))
	copy(data, m.data)
	return &Mask{dims: m.dims, data: data}
}

// Count returns the number of active positions.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.data {
		if v {
			n++
		}
	}
	return n
}

// PlaneData returns the XY plane of the mask for spatial plane index sp
// (z + t*Z), sharing storage with the mask.
func (m *Mask) PlaneData(sp int) []bool {
	n := m.dims.X * m.dims.Y
	return m.data[sp*n : (sp+1)*n]
}

func (m *Mask) index(x, y, z, t int) int {
	d := m.dims
	return ((t*d.Z+z)*d.Y+y)*d.X + x
}

func (m *Mask) equal(o *Mask) bool {
	if m.dims != o.dims {
		return false
	}
	for i := range m.data {
		if m.data[i] != o.data[i] {
			return false
		}
	}
	return true
}
