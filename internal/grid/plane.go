package grid

import "fmt"

// Plane extracts the slice at index i along axis a. The result has extent 1
// on that axis and carries the matching part of the presence mask.
func (g *Grid) Plane(a Axis, i int) (*Grid, error) {
	n, err := g.dims.Along(a)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= n {
		return nil, fmt.Errorf("%w: %s index %d of %d", ErrOutOfRange, a, i, n)
	}
	out, err := New(g.dims.with(a, 1))
	if err != nil {
		return nil, err
	}
	d := out.dims
	for b := 0; b < d.B; b++ {
		for t := 0; t < d.T; t++ {
			for z := 0; z < d.Z; z++ {
				for y := 0; y < d.Y; y++ {
					for x := 0; x < d.X; x++ {
						sx, sy, sz, st, sb := shift(a, i, x, y, z, t, b)
						out.Set(x, y, z, t, b, g.At(sx, sy, sz, st, sb))
						if b == 0 && !g.Present(sx, sy, sz, st) {
							out.SetPresent(x, y, z, t, false)
						}
					}
				}
			}
		}
	}
	return out, nil
}

// SetPlane writes p into index i along axis a. p must have extent 1 on a and
// match g on every other axis. Presence is copied for spatial axes only; a
// band plane never changes presence, which is shared by all bands.
func (g *Grid) SetPlane(a Axis, i int, p *Grid) error {
	n, err := g.dims.Along(a)
	if err != nil {
		return err
	}
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %s index %d of %d", ErrOutOfRange, a, i, n)
	}
	if p.dims != g.dims.with(a, 1) {
		return fmt.Errorf("%w: plane %s does not fit %s along %s", ErrShapeMismatch, p.dims, g.dims, a)
	}
	d := p.dims
	for b := 0; b < d.B; b++ {
		for t := 0; t < d.T; t++ {
			for z := 0; z < d.Z; z++ {
				for y := 0; y < d.Y; y++ {
					for x := 0; x < d.X; x++ {
						sx, sy, sz, st, sb := shift(a, i, x, y, z, t, b)
						g.Set(sx, sy, sz, st, sb, p.At(x, y, z, t, b))
						if a != AxisB && b == 0 {
							g.SetPresent(sx, sy, sz, st, p.Present(x, y, z, t))
						}
					}
				}
			}
		}
	}
	return nil
}

// Stack concatenates grids along axis a. All inputs must agree on every
// other axis. Presence is taken from the first grid when stacking bands and
// concatenated otherwise.
func Stack(a Axis, grids ...*Grid) (*Grid, error) {
	if len(grids) == 0 {
		return nil, fmt.Errorf("%w: nothing to stack", ErrBadShape)
	}
	if _, err := grids[0].dims.Along(a); err != nil {
		return nil, err
	}
	total := 0
	for _, g := range grids {
		n, _ := g.dims.Along(a)
		if g.dims.with(a, 1) != grids[0].dims.with(a, 1) {
			return nil, fmt.Errorf("%w: cannot stack %s with %s along %s", ErrShapeMismatch, g.dims, grids[0].dims, a)
		}
		total += n
	}
	out, err := New(grids[0].dims.with(a, total))
	if err != nil {
		return nil, err
	}
	if a == AxisB && grids[0].presence != nil {
		out.presence = grids[0].presence.Clone()
	}
	at := 0
	for _, g := range grids {
		n, _ := g.dims.Along(a)
		for k := 0; k < n; k++ {
			p, err := g.Plane(a, k)
			if err != nil {
				return nil, err
			}
			if err := out.SetPlane(a, at, p); err != nil {
				return nil, err
			}
			at++
		}
	}
	return out, nil
}

// shift places plane-local coordinates at index i along axis a.
func shift(a Axis, i, x, y, z, t, b int) (int, int, int, int, int) {
	switch a {
	case AxisX:
		x += i
	case AxisY:
		y += i
	case AxisZ:
		z += i
	case AxisT:
		t += i
	case AxisB:
		b += i
	}
	return x, y, z, t, b
}
