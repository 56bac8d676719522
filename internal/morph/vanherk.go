package morph

// vanHerk runs the van Herk running-buffer algorithm along every row
// (horizontal) or column of the plane. The window for output position x is
// [x-origin, x-origin+length-1]. The axis length must be a multiple of
// length so the clipped windows at both ends fall inside a single block.
func (c config) vanHerk(pl plane, length, origin int, horizontal bool, o extremum) {
	lines, n, step, stride := pl.h, pl.w, pl.w, 1
	if !horizontal {
		lines, n, step, stride = pl.w, pl.h, 1, pl.w
	}

	c.rows(lines, func(l0, l1 int) {
		fwd := make([]float64, n)
		bwd := make([]float64, n)
		fwdAny := make([]bool, n)
		bwdAny := make([]bool, n)

		for l := l0; l < l1; l++ {
			base := l * step
			at := func(k int) int { return base + k*stride }
			usable := func(k int) bool { return pl.usable == nil || pl.usable[at(k)] }

			// forward pass, reset at every block start
			for k := 0; k < n; k++ {
				v, ok := pl.src[at(k)], usable(k)
				if !ok {
					v = o.identity()
				}
				if k%length == 0 {
					fwd[k], fwdAny[k] = v, ok
					continue
				}
				fwd[k], fwdAny[k] = o.pick(fwd[k-1], v), fwdAny[k-1] || ok
			}
			// backward pass, reset at every block end
			for k := n - 1; k >= 0; k-- {
				v, ok := pl.src[at(k)], usable(k)
				if !ok {
					v = o.identity()
				}
				if k == n-1 || k%length == length-1 {
					bwd[k], bwdAny[k] = v, ok
					continue
				}
				bwd[k], bwdAny[k] = o.pick(bwd[k+1], v), bwdAny[k+1] || ok
			}

			for k := 0; k < n; k++ {
				i := at(k)
				if pl.present != nil && !pl.present[i] {
					pl.dst[i] = 0
					continue
				}
				left, right := o.identity(), o.identity()
				found := false
				if a := k - origin; a >= 0 && a < n && bwdAny[a] {
					left, found = bwd[a], true
				}
				if b := k + length - origin - 1; b >= 0 && b < n && fwdAny[b] {
					right, found = fwd[b], true
				}
				c.write(pl, i, o.pick(left, right), found, o)
			}
		}
	})
}
