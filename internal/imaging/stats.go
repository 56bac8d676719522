package imaging

import (
	"fmt"
	"math"
	"sort"

	"github.com/ironsheep/image-morphology-mcp/internal/grid"
	"github.com/ironsheep/image-morphology-mcp/internal/watershed"
)

// RegionStat summarizes one watershed basin.
type RegionStat struct {
	ID     uint32  `json:"id"`
	Area   int     `json:"area"`
	Bounds Region  `json:"bounds"`
	Mean   float64 `json:"mean"`
}

// RegionStats measures every basin of plane p of lg against the relief g,
// largest area first. Watershed line pixels are not counted.
func RegionStats(lg *watershed.LabelGrid, g *grid.Grid, p int) ([]RegionStat, error) {
	if err := checkPlane(lg, p); err != nil {
		return nil, err
	}
	if lg.Dims() != g.Dims() {
		return nil, fmt.Errorf("%w: labels %s, relief %s", grid.ErrShapeMismatch, lg.Dims(), g.Dims())
	}
	d := lg.Dims()
	n := lg.Regions(p)
	stats := make([]RegionStat, n)
	sums := make([]float64, n)
	for i := range stats {
		stats[i] = RegionStat{ID: uint32(i + 1), Bounds: Region{X1: d.X, Y1: d.Y}}
	}

	values := g.PlaneData(p)
	for i, l := range lg.PlaneLabels(p) {
		if !l.IsRegion() {
			continue
		}
		s := &stats[l.ID-1]
		x, y := i%d.X, i/d.X
		s.Area++
		sums[l.ID-1] += values[i]
		s.Bounds.X1 = min(s.Bounds.X1, x)
		s.Bounds.Y1 = min(s.Bounds.Y1, y)
		s.Bounds.X2 = max(s.Bounds.X2, x+1)
		s.Bounds.Y2 = max(s.Bounds.Y2, y+1)
	}
	for i := range stats {
		if stats[i].Area > 0 {
			stats[i].Mean = math.Round(sums[i]/float64(stats[i].Area)*100) / 100
		}
	}
	sort.SliceStable(stats, func(a, b int) bool { return stats[a].Area > stats[b].Area })
	return stats, nil
}

// CompareResult reports how much an operator changed its input.
type CompareResult struct {
	ChangedPixels int     `json:"changed_pixels"`
	TotalPixels   int     `json:"total_pixels"`
	MeanAbsDiff   float64 `json:"mean_abs_diff"`
	MaxAbsDiff    float64 `json:"max_abs_diff"`
}

// CompareGrids compares two grids of equal extents value by value.
func CompareGrids(a, b *grid.Grid) (*CompareResult, error) {
	if a.Dims() != b.Dims() {
		return nil, fmt.Errorf("%w: %s vs %s", grid.ErrShapeMismatch, a.Dims(), b.Dims())
	}
	res := &CompareResult{TotalPixels: a.Dims().Len()}
	var total float64
	for p := 0; p < a.Dims().Planes(); p++ {
		bv := b.PlaneData(p)
		for i, v := range a.PlaneData(p) {
			diff := math.Abs(v - bv[i])
			if diff != 0 {
				res.ChangedPixels++
			}
			total += diff
			res.MaxAbsDiff = math.Max(res.MaxAbsDiff, diff)
		}
	}
	res.MeanAbsDiff = math.Round(total/float64(res.TotalPixels)*100) / 100
	return res, nil
}
