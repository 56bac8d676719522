package morph

import (
	"fmt"
	"sort"

	"github.com/ironsheep/image-morphology-mcp/internal/grid"
	"github.com/ironsheep/image-morphology-mcp/internal/strel"
)

// Rank returns, for every pixel, the rank-th smallest usable value under se.
// rank must lie in [1, se.Count()]; 1 is erosion and se.Count() is dilation.
// Where border or absent pixels leave fewer than rank values, the largest
// available value is used. A pixel with no usable value at all keeps its
// input value whatever WithDegenerate says: an order statistic has no
// neutral element.
func Rank(g *grid.Grid, se *strel.Element, rank int, opts ...Option) (*grid.Grid, error) {
	if rank < 1 || rank > se.Count() {
		return nil, fmt.Errorf("%w: rank %d outside [1, %d]", ErrInvalidConfig, rank, se.Count())
	}
	c := newConfig(opts)
	if err := c.check(g); err != nil {
		return nil, err
	}
	return c.reduce(g, se, func(vals []float64) float64 {
		k := rank
		if k > len(vals) {
			k = len(vals)
		}
		return vals[k-1]
	}), nil
}

// Median returns the median of the usable values under se. For an even
// count the upper median is used. Empty neighbourhoods keep the input value,
// as in Rank.
func Median(g *grid.Grid, se *strel.Element, opts ...Option) (*grid.Grid, error) {
	c := newConfig(opts)
	if err := c.check(g); err != nil {
		return nil, err
	}
	return c.reduce(g, se, func(vals []float64) float64 {
		return vals[len(vals)/2]
	}), nil
}

// reduce walks the neighbourhood of every pixel with the engine's skip
// rules and hands the sorted usable values to pick. Empty neighbourhoods
// keep the input value.
func (c config) reduce(g *grid.Grid, se *strel.Element, pick func(sorted []float64) float64) *grid.Grid {
	d := g.Dims()
	out := g.NewLike()
	actives := c.actives(g)
	offsets := se.Offsets()

	for p := 0; p < d.Planes(); p++ {
		src, dst := g.PlaneData(p), out.PlaneData(p)
		active := actives[p%(d.Z*d.T)]
		c.rows(d.Y, func(y0, y1 int) {
			vals := make([]float64, 0, len(offsets))
			for y := y0; y < y1; y++ {
				for x := 0; x < d.X; x++ {
					i := y*d.X + x
					if active != nil && !active[i] {
						dst[i] = 0
						continue
					}
					vals = vals[:0]
					for _, off := range offsets {
						nx, ny := x+off.DX, y+off.DY
						if nx < 0 || ny < 0 || nx >= d.X || ny >= d.Y {
							continue
						}
						ni := ny*d.X + nx
						if active != nil && !active[ni] {
							continue
						}
						vals = append(vals, src[ni])
					}
					if len(vals) == 0 {
						dst[i] = src[i]
						continue
					}
					sort.Float64s(vals)
					dst[i] = pick(vals)
				}
			}
		})
	}
	return out
}
