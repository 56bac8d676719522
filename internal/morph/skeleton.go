package morph

import (
	"github.com/ironsheep/image-morphology-mcp/internal/grid"
	"github.com/ironsheep/image-morphology-mcp/internal/strel"
)

// Skeleton computes the Lantuéjoul morphological skeleton: the pixelwise
// maximum over n >= 0 of E^n(g) - open(E^n(g)), where E^n is n successive
// erosions by se. Iteration stops once an erosion no longer changes the
// image, or at the WithMaxIterations cap.
func Skeleton(g *grid.Grid, se *strel.Element, opts ...Option) (*grid.Grid, error) {
	c := newConfig(opts)
	if err := c.check(g); err != nil {
		return nil, err
	}

	skel := g.NewLike()
	cur := g
	for n := 0; c.iterationsLeft(n); n++ {
		th, err := WhiteTopHat(cur, se, opts...)
		if err != nil {
			return nil, err
		}
		if skel, err = grid.Max(skel, th); err != nil {
			return nil, err
		}
		next, err := Erode(cur, se, opts...)
		if err != nil {
			return nil, err
		}
		if next.Equal(cur) {
			break
		}
		cur = next
	}
	return skel, nil
}
