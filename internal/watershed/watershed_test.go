package watershed

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-morphology-mcp/internal/grid"
)

// twoBasins is a 5x5 relief with minima at (1,1) and (3,1) split by a ridge
// in column 2.
func twoBasins(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.FromPlane(5, 5, []float64{
		10, 10, 20, 10, 10,
		10, 0, 20, 0, 10,
		10, 10, 20, 10, 10,
		10, 10, 20, 10, 10,
		10, 10, 20, 10, 10,
	})
	require.NoError(t, err)
	return g
}

func TestSegment_TwoBasins(t *testing.T) {
	lg, err := Segment(twoBasins(t))
	require.NoError(t, err)
	require.Equal(t, 2, lg.Regions(0))

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			l := lg.At(x, y, 0, 0, 0)
			switch {
			case x < 2:
				require.Equal(t, RegionLabel(1), l, "(%d,%d)", x, y)
			case x == 2:
				require.Equal(t, WatershedLabel, l, "(%d,%d)", x, y)
			default:
				require.Equal(t, RegionLabel(2), l, "(%d,%d)", x, y)
			}
		}
	}

	out := lg.ToGrid()
	require.Equal(t, []float64{
		1, 1, 0, 2, 2,
		1, 1, 0, 2, 2,
		1, 1, 0, 2, 2,
		1, 1, 0, 2, 2,
		1, 1, 0, 2, 2,
	}, out.PlaneData(0))
}

func TestSegment_FlatPlaneIsOneRegion(t *testing.T) {
	g, err := grid.New(grid.Dims2D(6, 4))
	require.NoError(t, err)
	g.Fill(42)

	lg, err := Segment(g)
	require.NoError(t, err)
	require.Equal(t, 1, lg.Regions(0))
	for _, l := range lg.PlaneLabels(0) {
		require.Equal(t, RegionLabel(1), l)
	}
}

func TestSegment_QuantizesToBytes(t *testing.T) {
	// 0.4 and 0.9 share byte level 0, 300 clamps to 255
	g, err := grid.FromPlane(3, 1, []float64{0.4, 300, 0.9})
	require.NoError(t, err)

	lg, err := Segment(g)
	require.NoError(t, err)
	require.Equal(t, 2, lg.Regions(0))
	require.Equal(t, RegionLabel(1), lg.At(0, 0, 0, 0, 0))
	require.Equal(t, RegionLabel(2), lg.At(2, 0, 0, 0, 0))
	require.Equal(t, WatershedLabel, lg.At(1, 0, 0, 0, 0))
}

func TestSegment_OnlyFinalLabelsSurvive(t *testing.T) {
	d := grid.Dims{X: 17, Y: 13, Z: 2, T: 1, B: 3}
	g, err := grid.New(d)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(7))
	for p := 0; p < d.Planes(); p++ {
		data := g.PlaneData(p)
		for i := range data {
			data[i] = float64(rng.Intn(8) * 32)
		}
	}

	lg, err := Segment(g)
	require.NoError(t, err)
	for p := 0; p < d.Planes(); p++ {
		n := lg.Regions(p)
		require.Positive(t, n)
		seen := make(map[uint32]bool)
		for _, l := range lg.PlaneLabels(p) {
			require.True(t, l.Final(), "plane %d holds %s", p, l)
			if l.IsRegion() {
				require.GreaterOrEqual(t, l.ID, uint32(1))
				require.LessOrEqual(t, l.ID, uint32(n))
				seen[l.ID] = true
			}
		}
		require.Len(t, seen, n, "every region id is used in plane %d", p)
	}

	seq, err := Segment(g, WithSequential())
	require.NoError(t, err)
	require.Equal(t, lg.labels, seq.labels)
	require.True(t, lg.ToGrid().Equal(seq.ToGrid()))
}

func TestSegment_PlanesAreIndependent(t *testing.T) {
	a := twoBasins(t)
	flat, err := grid.New(grid.Dims2D(5, 5))
	require.NoError(t, err)

	g, err := grid.Stack(grid.AxisB, flat, a)
	require.NoError(t, err)

	lg, err := Segment(g)
	require.NoError(t, err)
	require.Equal(t, 1, lg.Regions(0))
	require.Equal(t, 2, lg.Regions(1))

	alone, err := Segment(a)
	require.NoError(t, err)
	require.Equal(t, alone.PlaneLabels(0), lg.PlaneLabels(1))
}

func TestSegment_IgnoresPresence(t *testing.T) {
	g := twoBasins(t)
	g.SetPresent(1, 1, 0, 0, false)

	lg, err := Segment(g)
	require.NoError(t, err)
	require.Equal(t, 2, lg.Regions(0))
	require.Equal(t, RegionLabel(1), lg.At(1, 1, 0, 0, 0))
}

func TestSegment_NilGrid(t *testing.T) {
	_, err := Segment(nil)
	require.ErrorIs(t, err, ErrNilGrid)
}

func TestLabel(t *testing.T) {
	v, ok := RegionLabel(7).Value()
	require.True(t, ok)
	require.Equal(t, uint32(7), v)

	v, ok = WatershedLabel.Value()
	require.True(t, ok)
	require.Zero(t, v)

	for _, s := range []State{Init, Mask, InQueue} {
		_, ok := Label{State: s}.Value()
		require.False(t, ok, s.String())
		require.False(t, Label{State: s}.Final())
	}
	require.Equal(t, "region 7", RegionLabel(7).String())
	require.Equal(t, "wshed", WatershedLabel.String())
	require.Equal(t, "State(9)", State(9).String())
}

func TestFifo(t *testing.T) {
	var q fifo
	require.True(t, q.empty())
	q.push(1)
	q.push(2)
	require.Equal(t, 1, q.pop())
	q.push(3)
	require.Equal(t, 2, q.pop())
	require.Equal(t, 3, q.pop())
	require.True(t, q.empty())
}
