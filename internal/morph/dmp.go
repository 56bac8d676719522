package morph

import (
	"fmt"

	"github.com/ironsheep/image-morphology-mcp/internal/grid"
	"github.com/ironsheep/image-morphology-mcp/internal/strel"
)

// DMPConfig describes a differential morphological profile.
type DMPConfig struct {
	// Size is the number of scales, at least 1.
	Size int
	// Openings adds the erosion-side differences.
	Openings bool
	// Closings adds the dilation-side differences.
	Closings bool
	// Reconstruction uses opening/closing by reconstruction instead of plain
	// erosion/dilation at each scale.
	Reconstruction bool
	// Shape returns the element for scale i (1-based). Nil means
	// strel.Square(2*i+1).
	Shape func(i int) *strel.Element
}

// DMP computes the differential morphological profile of g. For each scale
// i the opening side stores op_{i-1}(g) - op_i(g) and the closing side
// op_i(g) - op_{i-1}(g), where op_0 is the identity, so both are
// non-negative. Each scale adds one band per band of g; the opening side
// comes first, then the closing side.
func DMP(g *grid.Grid, cfg DMPConfig, opts ...Option) (*grid.Grid, error) {
	if cfg.Size < 1 {
		return nil, fmt.Errorf("%w: DMP size must be >= 1, got %d", ErrInvalidConfig, cfg.Size)
	}
	if !cfg.Openings && !cfg.Closings {
		return nil, fmt.Errorf("%w: DMP needs openings, closings or both", ErrInvalidConfig)
	}
	if err := newConfig(opts).check(g); err != nil {
		return nil, err
	}
	shape := cfg.Shape
	if shape == nil {
		shape = func(i int) *strel.Element { return strel.Square(2*i + 1) }
	}

	var bands []*grid.Grid
	side := func(op engineOp, lowering bool) error {
		prev := g
		for i := 1; i <= cfg.Size; i++ {
			cur, err := op(g, shape(i), opts...)
			if err != nil {
				return err
			}
			var diff *grid.Grid
			if lowering {
				diff, err = grid.Sub(prev, cur)
			} else {
				diff, err = grid.Sub(cur, prev)
			}
			if err != nil {
				return err
			}
			bands = append(bands, diff)
			prev = cur
		}
		return nil
	}

	if cfg.Openings {
		op := engineOp(Erode)
		if cfg.Reconstruction {
			op = OpeningByReconstruction
		}
		if err := side(op, true); err != nil {
			return nil, err
		}
	}
	if cfg.Closings {
		op := engineOp(Dilate)
		if cfg.Reconstruction {
			op = ClosingByReconstruction
		}
		if err := side(op, false); err != nil {
			return nil, err
		}
	}
	return grid.Stack(grid.AxisB, bands...)
}
