package morph

import (
	"github.com/ironsheep/image-morphology-mcp/internal/grid"
	"github.com/ironsheep/image-morphology-mcp/internal/strel"
)

// Open erodes then dilates with the same element. It removes bright
// structures smaller than se.
func Open(g *grid.Grid, se *strel.Element, opts ...Option) (*grid.Grid, error) {
	e, err := Erode(g, se, opts...)
	if err != nil {
		return nil, err
	}
	return Dilate(e, se, opts...)
}

// Close dilates then erodes with the same element. It removes dark
// structures smaller than se.
func Close(g *grid.Grid, se *strel.Element, opts ...Option) (*grid.Grid, error) {
	d, err := Dilate(g, se, opts...)
	if err != nil {
		return nil, err
	}
	return Erode(d, se, opts...)
}

// InternalGradient returns g - erode(g).
func InternalGradient(g *grid.Grid, se *strel.Element, opts ...Option) (*grid.Grid, error) {
	e, err := Erode(g, se, opts...)
	if err != nil {
		return nil, err
	}
	return grid.Sub(g, e)
}

// ExternalGradient returns dilate(g) - g.
func ExternalGradient(g *grid.Grid, se *strel.Element, opts ...Option) (*grid.Grid, error) {
	d, err := Dilate(g, se, opts...)
	if err != nil {
		return nil, err
	}
	return grid.Sub(d, g)
}

// Gradient returns dilate(g) - erode(g).
func Gradient(g *grid.Grid, se *strel.Element, opts ...Option) (*grid.Grid, error) {
	d, err := Dilate(g, se, opts...)
	if err != nil {
		return nil, err
	}
	e, err := Erode(g, se, opts...)
	if err != nil {
		return nil, err
	}
	return grid.Sub(d, e)
}

// WhiteTopHat returns g - open(g): the bright details removed by opening.
func WhiteTopHat(g *grid.Grid, se *strel.Element, opts ...Option) (*grid.Grid, error) {
	o, err := Open(g, se, opts...)
	if err != nil {
		return nil, err
	}
	return grid.Sub(g, o)
}

// BlackTopHat returns close(g) - g: the dark details filled by closing.
func BlackTopHat(g *grid.Grid, se *strel.Element, opts ...Option) (*grid.Grid, error) {
	cl, err := Close(g, se, opts...)
	if err != nil {
		return nil, err
	}
	return grid.Sub(cl, g)
}

// OCCO returns the mean of close(open(g)) and open(close(g)).
func OCCO(g *grid.Grid, se *strel.Element, opts ...Option) (*grid.Grid, error) {
	o, err := Open(g, se, opts...)
	if err != nil {
		return nil, err
	}
	oc, err := Close(o, se, opts...)
	if err != nil {
		return nil, err
	}
	cl, err := Close(g, se, opts...)
	if err != nil {
		return nil, err
	}
	co, err := Open(cl, se, opts...)
	if err != nil {
		return nil, err
	}
	return grid.Mean(oc, co)
}
