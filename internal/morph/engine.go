package morph

import (
	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/image-morphology-mcp/internal/grid"
	"github.com/ironsheep/image-morphology-mcp/internal/strel"
)

// Erode returns the pixelwise minimum of g under se.
func Erode(g *grid.Grid, se *strel.Element, opts ...Option) (*grid.Grid, error) {
	c := newConfig(opts)
	if err := c.check(g); err != nil {
		return nil, err
	}
	return c.apply(g, se, minimum), nil
}

// Dilate returns the pixelwise maximum of g under se.
func Dilate(g *grid.Grid, se *strel.Element, opts ...Option) (*grid.Grid, error) {
	c := newConfig(opts)
	if err := c.check(g); err != nil {
		return nil, err
	}
	return c.apply(g, se, maximum), nil
}

// plane is one XY slab of a pass. A single pass reads and writes with the
// same presence. The first half of a rectangle decomposition sets found
// and computes every position; the second half reads through found.
type plane struct {
	src, dst []float64
	orig     []float64 // input values for the degenerate policy
	usable   []bool    // sources that may be read; nil: all
	present  []bool    // destinations that get a value; nil: all
	found    []bool    // when set, records hits instead of applying the degenerate policy
	w, h     int
}

func (c config) apply(g *grid.Grid, se *strel.Element, o extremum) *grid.Grid {
	d := g.Dims()
	mode := EffectiveMode(c.mode, se, d)
	out := g.NewLike()
	actives := c.actives(g)

	for p := 0; p < d.Planes(); p++ {
		active := actives[p%(d.Z*d.T)]
		pl := plane{
			src:     g.PlaneData(p),
			dst:     out.PlaneData(p),
			orig:    g.PlaneData(p),
			usable:  active,
			present: active,
			w:       d.X,
			h:       d.Y,
		}
		c.runPlane(pl, se, mode, o)
	}
	return out
}

func (c config) runPlane(pl plane, se *strel.Element, mode Mode, o extremum) {
	cx, cy := se.Center()
	switch mode {
	case RectangleDecomposition:
		tmp := make([]float64, len(pl.src))
		hit := make([]bool, len(pl.src))
		first := pl
		first.dst, first.present, first.found = tmp, nil, hit
		c.linePass(first, se.Width(), cx, true, o)
		second := pl
		second.src, second.usable = tmp, hit
		c.linePass(second, se.Height(), cy, false, o)
	case HorizontalLine:
		c.naive(pl, lineOffsets(se.Width(), cx, true), o)
	case VerticalLine:
		c.naive(pl, lineOffsets(se.Height(), cy, false), o)
	case VanHerkHorizontal:
		c.vanHerk(pl, se.Width(), cx, true, o)
	case VanHerkVertical:
		c.vanHerk(pl, se.Height(), cy, false, o)
	default:
		c.naive(pl, se.Offsets(), o)
	}
}

// linePass runs one axis of a rectangle decomposition, choosing van Herk
// when the axis length allows it.
func (c config) linePass(pl plane, length, origin int, horizontal bool, o extremum) {
	n := pl.h
	if horizontal {
		n = pl.w
	}
	if n%length == 0 {
		c.vanHerk(pl, length, origin, horizontal, o)
		return
	}
	c.naive(pl, lineOffsets(length, origin, horizontal), o)
}

// write stores the reduction for destination i.
func (c config) write(pl plane, i int, best float64, ok bool, o extremum) {
	switch {
	case pl.found != nil:
		pl.found[i] = ok
		if !ok {
			best = o.identity()
		}
	case !ok:
		best = c.degenerate.value(pl.orig[i], o)
	}
	pl.dst[i] = best
}

// naive scans every offset for every pixel.
func (c config) naive(pl plane, offsets []strel.Offset, o extremum) {
	c.rows(pl.h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < pl.w; x++ {
				i := y*pl.w + x
				if pl.present != nil && !pl.present[i] {
					pl.dst[i] = 0
					continue
				}
				best, found := 0.0, false
				for _, off := range offsets {
					nx, ny := x+off.DX, y+off.DY
					if nx < 0 || ny < 0 || nx >= pl.w || ny >= pl.h {
						continue
					}
					ni := ny*pl.w + nx
					if pl.usable != nil && !pl.usable[ni] {
						continue
					}
					if v := pl.src[ni]; !found || o.beats(v, best) {
						best, found = v, true
					}
				}
				c.write(pl, i, best, found, o)
			}
		}
	})
}

// rows splits [0, n) across goroutines unless the config is sequential.
func (c config) rows(n int, fn func(start, end int)) {
	if c.sequential {
		fn(0, n)
		return
	}
	parallel.Line(n, fn)
}

// actives combines grid presence and the caller mask for every spatial
// plane. Entries are nil when nothing is excluded.
func (c config) actives(g *grid.Grid) [][]bool {
	d := g.Dims()
	spatial := d.Z * d.T
	out := make([][]bool, spatial)
	for sp := 0; sp < spatial; sp++ {
		present := g.PlanePresence(sp)
		var masked []bool
		if c.mask != nil {
			masked = c.mask.PlaneData(sp)
		}
		switch {
		case present == nil && masked == nil:
		case masked == nil:
			out[sp] = present
		case present == nil:
			out[sp] = masked
		default:
			both := make([]bool, len(present))
			for i := range both {
				both[i] = present[i] && masked[i]
			}
			out[sp] = both
		}
	}
	return out
}

func lineOffsets(length, origin int, horizontal bool) []strel.Offset {
	offs := make([]strel.Offset, length)
	for i := range offs {
		if horizontal {
			offs[i] = strel.Offset{DX: i - origin}
		} else {
			offs[i] = strel.Offset{DY: i - origin}
		}
	}
	return offs
}
