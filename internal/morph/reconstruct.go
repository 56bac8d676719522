package morph

import (
	"fmt"

	"github.com/ironsheep/image-morphology-mcp/internal/grid"
	"github.com/ironsheep/image-morphology-mcp/internal/strel"
)

// elementary is the unit step of geodesic reconstruction.
var elementary = strel.Square(3)

// ReconstructByDilation dilates marker under ref until stability: each step
// is min(dilate(marker, 3x3), ref).
func ReconstructByDilation(marker, ref *grid.Grid, opts ...Option) (*grid.Grid, error) {
	return reconstruct(marker, ref, Dilate, grid.Min, opts)
}

// ReconstructByErosion erodes marker above ref until stability: each step
// is max(erode(marker, 3x3), ref).
func ReconstructByErosion(marker, ref *grid.Grid, opts ...Option) (*grid.Grid, error) {
	return reconstruct(marker, ref, Erode, grid.Max, opts)
}

// OpeningByReconstruction erodes g by se and reconstructs the result under g.
func OpeningByReconstruction(g *grid.Grid, se *strel.Element, opts ...Option) (*grid.Grid, error) {
	e, err := Erode(g, se, opts...)
	if err != nil {
		return nil, err
	}
	return ReconstructByDilation(e, g, opts...)
}

// ClosingByReconstruction dilates g by se and reconstructs the result above g.
func ClosingByReconstruction(g *grid.Grid, se *strel.Element, opts ...Option) (*grid.Grid, error) {
	d, err := Dilate(g, se, opts...)
	if err != nil {
		return nil, err
	}
	return ReconstructByErosion(d, g, opts...)
}

type engineOp func(*grid.Grid, *strel.Element, ...Option) (*grid.Grid, error)

func reconstruct(marker, ref *grid.Grid, step engineOp, clip func(a, b *grid.Grid) (*grid.Grid, error), opts []Option) (*grid.Grid, error) {
	if marker.Dims() != ref.Dims() {
		return nil, fmt.Errorf("%w: marker %s, reference %s", ErrShapeMismatch, marker.Dims(), ref.Dims())
	}
	c := newConfig(opts)
	cur, err := clip(marker, ref)
	if err != nil {
		return nil, err
	}
	for n := 0; c.iterationsLeft(n); n++ {
		grown, err := step(cur, elementary, opts...)
		if err != nil {
			return nil, err
		}
		next, err := clip(grown, ref)
		if err != nil {
			return nil, err
		}
		if next.Equal(cur) {
			break
		}
		cur = next
	}
	return cur, nil
}
