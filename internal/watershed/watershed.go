package watershed

import (
	"errors"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/image-morphology-mcp/internal/grid"
)

// ErrNilGrid is returned when Segment is given no input.
var ErrNilGrid = errors.New("watershed: nil grid")

const levels = 256

// neighbours are the 8-connected offsets, visited row by row.
var neighbours = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Option configures Segment.
type Option func(*config)

type config struct {
	sequential bool
}

// WithSequential floods planes one after another instead of in parallel.
func WithSequential() Option {
	return func(c *config) { c.sequential = true }
}

// LabelGrid holds one Label per pixel, laid out like a grid.Grid.
type LabelGrid struct {
	dims    grid.Dims
	labels  []Label
	regions []uint32
}

// Dims returns the extents of the segmented grid.
func (lg *LabelGrid) Dims() grid.Dims { return lg.dims }

// At returns the label at (x, y, z, t, b).
func (lg *LabelGrid) At(x, y, z, t, b int) Label {
	d := lg.dims
	return lg.labels[(((b*d.T+t)*d.Z+z)*d.Y+y)*d.X+x]
}

// Regions returns the number of basins found in plane p, where
// p = (b*T+t)*Z + z.
func (lg *LabelGrid) Regions(p int) int { return int(lg.regions[p]) }

// PlaneLabels returns the labels of plane p, sharing storage with lg.
func (lg *LabelGrid) PlaneLabels(p int) []Label {
	n := lg.dims.X * lg.dims.Y
	return lg.labels[p*n : (p+1)*n]
}

// ToGrid converts the labels to numbers: region ids stay positive and
// watershed lines become 0.
func (lg *LabelGrid) ToGrid() *grid.Grid {
	out, _ := grid.New(lg.dims)
	for p := 0; p < lg.dims.Planes(); p++ {
		dst := out.PlaneData(p)
		for i, l := range lg.PlaneLabels(p) {
			v, _ := l.Value()
			dst[i] = float64(v)
		}
	}
	return out
}

// Segment floods every XY plane of g and returns the resulting partition.
// Values are clamped to [0, 255] and truncated before flooding.
func Segment(g *grid.Grid, opts ...Option) (*LabelGrid, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	var c config
	for _, opt := range opts {
		opt(&c)
	}

	d := g.Dims()
	lg := &LabelGrid{
		dims:    d,
		labels:  make([]Label, d.Len()),
		regions: make([]uint32, d.Planes()),
	}
	run := func(start, end int) {
		for p := start; p < end; p++ {
			lg.regions[p] = flood(g.PlaneData(p), lg.PlaneLabels(p), d.X, d.Y)
		}
	}
	if c.sequential {
		run(0, d.Planes())
	} else {
		parallel.Line(d.Planes(), run)
	}
	return lg, nil
}

// flood runs the immersion on one plane and returns the number of regions.
func flood(src []float64, lab []Label, w, h int) uint32 {
	var buckets [levels][]int
	for i, v := range src {
		lvl := grid.ToByte(v)
		buckets[lvl] = append(buckets[lvl], i)
	}

	var q fifo
	var next uint32
	each := func(i int, fn func(j int)) {
		x, y := i%w, i/w
		for _, nb := range neighbours {
			nx, ny := x+nb[0], y+nb[1]
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			fn(ny*w + nx)
		}
	}

	for _, level := range buckets {
		if len(level) == 0 {
			continue
		}

		// pixels touching an existing basin or line start the queue
		for _, i := range level {
			lab[i] = Label{State: Mask}
			reached := false
			each(i, func(j int) {
				if lab[j].Final() {
					reached = true
				}
			})
			if reached {
				lab[i] = Label{State: InQueue}
				q.push(i)
			}
		}

		for !q.empty() {
			i := q.pop()
			// set when i became a line only because a line neighbour was
			// seen first; a labelled neighbour may still claim it
			flag := false
			each(i, func(j int) {
				switch nb := lab[j]; nb.State {
				case Region:
					cur := lab[i]
					switch {
					case cur.State == InQueue || (cur.State == Watershed && flag):
						lab[i] = nb
					case cur.State == Region && cur.ID != nb.ID:
						lab[i] = WatershedLabel
						flag = false
					}
				case Watershed:
					if lab[i].State == InQueue {
						lab[i] = WatershedLabel
						flag = true
					}
				case Mask:
					lab[j] = Label{State: InQueue}
					q.push(j)
				}
			})
		}

		// whatever is still masked is a new minimum
		for _, i := range level {
			if lab[i].State != Mask {
				continue
			}
			next++
			region := RegionLabel(next)
			lab[i] = region
			q.push(i)
			for !q.empty() {
				each(q.pop(), func(j int) {
					if lab[j].State == Mask {
						lab[j] = region
						q.push(j)
					}
				})
			}
		}
	}
	return next
}
