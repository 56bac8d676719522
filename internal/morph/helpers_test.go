package morph

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-morphology-mcp/internal/grid"
)

// row builds a 1-pixel-high grid from values.
func row(t *testing.T, values ...float64) *grid.Grid {
	t.Helper()
	g, err := grid.FromPlane(len(values), 1, values)
	require.NoError(t, err)
	return g
}

// column builds a 1-pixel-wide grid from values.
func column(t *testing.T, values ...float64) *grid.Grid {
	t.Helper()
	g, err := grid.FromPlane(1, len(values), values)
	require.NoError(t, err)
	return g
}

// randomGrid fills a grid with integer values in [0, 255] from a fixed seed.
func randomGrid(t *testing.T, d grid.Dims, seed int64) *grid.Grid {
	t.Helper()
	g, err := grid.New(d)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(seed))
	for p := 0; p < d.Planes(); p++ {
		data := g.PlaneData(p)
		for i := range data {
			data[i] = float64(rng.Intn(256))
		}
	}
	return g
}

// values returns a copy of plane 0.
func values(g *grid.Grid) []float64 {
	out := make([]float64, len(g.PlaneData(0)))
	copy(out, g.PlaneData(0))
	return out
}

// mustGrid wraps an operator call: mustGrid(t)(Erode(g, se)).
func mustGrid(t *testing.T) func(*grid.Grid, error) *grid.Grid {
	t.Helper()
	return func(g *grid.Grid, err error) *grid.Grid {
		t.Helper()
		require.NoError(t, err)
		return g
	}
}
