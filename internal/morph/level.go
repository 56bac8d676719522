package morph

import (
	"fmt"

	"github.com/ironsheep/image-morphology-mcp/internal/grid"
)

// levelNeighbours is the leveling neighbourhood besides the pixel itself:
// the 8 XY neighbours and the previous and next time step.
var levelNeighbours = [10][3]int{
	{-1, -1, 0}, {0, -1, 0}, {1, -1, 0},
	{-1, 0, 0}, {1, 0, 0},
	{-1, 1, 0}, {0, 1, 0}, {1, 1, 0},
	{0, 0, -1}, {0, 0, 1},
}

// Level refines marker into a leveling of g. Every pass visits all pixels;
// where the marker exceeds g by more than lambda it is pulled down to
// max(min over the neighbourhood, g), and where it falls short by more than
// lambda it is pulled up to min(max over the neighbourhood, g). Passes repeat
// until nothing changes or the WithMaxIterations cap is hit. Positions that
// are absent or masked keep their marker value and are not used as
// neighbours.
func Level(g, marker *grid.Grid, lambda float64, opts ...Option) (*grid.Grid, error) {
	if g.Dims() != marker.Dims() {
		return nil, fmt.Errorf("%w: image %s, marker %s", ErrShapeMismatch, g.Dims(), marker.Dims())
	}
	if lambda < 0 {
		return nil, fmt.Errorf("%w: negative leveling lambda %g", ErrInvalidConfig, lambda)
	}
	c := newConfig(opts)
	if err := c.check(g); err != nil {
		return nil, err
	}

	d := g.Dims()
	actives := c.actives(g)
	cur := marker.Clone()

	for n := 0; c.iterationsLeft(n); n++ {
		next := cur.Clone()
		changed := false
		for b := 0; b < d.B; b++ {
			for t := 0; t < d.T; t++ {
				for z := 0; z < d.Z; z++ {
					if levelPlane(g, cur, next, actives, lambda, z, t, b) {
						changed = true
					}
				}
			}
		}
		cur = next
		if !changed {
			break
		}
	}
	return cur, nil
}

// levelPlane updates one XY plane of next from cur and reports whether any
// value changed.
func levelPlane(g, cur, next *grid.Grid, actives [][]bool, lambda float64, z, t, b int) bool {
	d := g.Dims()
	planeAt := func(tt int) int { return (b*d.T+tt)*d.Z + z }
	p := planeAt(t)
	ref, now, dst := g.PlaneData(p), cur.PlaneData(p), next.PlaneData(p)
	active := actives[t*d.Z+z]
	usable := func(tt, i int) bool {
		a := actives[tt*d.Z+z]
		return a == nil || a[i]
	}

	changed := false
	for y := 0; y < d.Y; y++ {
		for x := 0; x < d.X; x++ {
			i := y*d.X + x
			if active != nil && !active[i] {
				continue
			}
			f, v := ref[i], now[i]
			above := v > f+lambda
			below := v < f-lambda
			if !above && !below {
				continue
			}

			lo, hi := v, v
			for _, nb := range levelNeighbours {
				nx, ny, nt := x+nb[0], y+nb[1], t+nb[2]
				if nx < 0 || ny < 0 || nt < 0 || nx >= d.X || ny >= d.Y || nt >= d.T {
					continue
				}
				ni := ny*d.X + nx
				if !usable(nt, ni) {
					continue
				}
				w := cur.PlaneData(planeAt(nt))[ni]
				if w < lo {
					lo = w
				}
				if w > hi {
					hi = w
				}
			}

			nv := v
			if above {
				nv = lo
				if f > nv {
					nv = f
				}
			} else {
				nv = hi
				if f < nv {
					nv = f
				}
			}
			if nv != v {
				dst[i] = nv
				changed = true
			}
		}
	}
	return changed
}
