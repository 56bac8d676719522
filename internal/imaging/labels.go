package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-morphology-mcp/internal/watershed"
)

// defaultLineColor is used when an overlay color cannot be parsed.
var defaultLineColor = color.NRGBA{R: 255, G: 0, B: 0, A: 255}

// ColorizeLabels paints plane p of lg with one distinct color per region.
// Watershed lines are black.
func ColorizeLabels(lg *watershed.LabelGrid, p int) (*image.NRGBA, error) {
	if err := checkPlane(lg, p); err != nil {
		return nil, err
	}
	d := lg.Dims()
	n := lg.Regions(p)
	palette := make([]color.NRGBA, n+1)
	palette[0] = color.NRGBA{A: 255}
	for i, c := range colorful.FastHappyPalette(n) {
		r, g, b := c.Clamped().RGB255()
		palette[i+1] = color.NRGBA{R: r, G: g, B: b, A: 255}
	}

	img := image.NewNRGBA(image.Rect(0, 0, d.X, d.Y))
	for i, l := range lg.PlaneLabels(p) {
		v, _ := l.Value()
		img.SetNRGBA(i%d.X, i/d.X, palette[v])
	}
	return img, nil
}

// OverlayLines draws the watershed lines of plane p over img in the color
// given as "#RRGGBB". An unparsable color falls back to red. img must have
// the size of the label grid.
func OverlayLines(img image.Image, lg *watershed.LabelGrid, p int, hex string) (*image.NRGBA, error) {
	if err := checkPlane(lg, p); err != nil {
		return nil, err
	}
	d := lg.Dims()
	b := img.Bounds()
	if b.Dx() != d.X || b.Dy() != d.Y {
		return nil, fmt.Errorf("%w: image %dx%d, labels %dx%d", ErrBadRegion, b.Dx(), b.Dy(), d.X, d.Y)
	}

	line := defaultLineColor
	if c, err := colorful.Hex(hex); err == nil {
		r, g, bl := c.RGB255()
		line = color.NRGBA{R: r, G: g, B: bl, A: 255}
	}

	out := image.NewNRGBA(image.Rect(0, 0, d.X, d.Y))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	for i, l := range lg.PlaneLabels(p) {
		if l.State == watershed.Watershed {
			out.SetNRGBA(i%d.X, i/d.X, line)
		}
	}
	return out, nil
}

func checkPlane(lg *watershed.LabelGrid, p int) error {
	if n := lg.Dims().Planes(); p < 0 || p >= n {
		return fmt.Errorf("%w: plane %d of %d", ErrBand, p, n)
	}
	return nil
}
