package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrBadRegion is returned for regions that are empty or leave the image.
var ErrBadRegion = errors.New("imaging: invalid region")

// Region is a half-open pixel rectangle: (X1, Y1) inclusive, (X2, Y2)
// exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Rect converts r to an image.Rectangle.
func (r Region) Rect() image.Rectangle { return image.Rect(r.X1, r.Y1, r.X2, r.Y2) }

// Width is X2 - X1.
func (r Region) Width() int { return r.X2 - r.X1 }

// Height is Y2 - Y1.
func (r Region) Height() int { return r.Y2 - r.Y1 }

// Crop returns the part of img inside r, re-based to (0,0).
func Crop(img image.Image, r Region) (image.Image, error) {
	b := img.Bounds()
	if r.X1 < b.Min.X || r.Y1 < b.Min.Y || r.X2 > b.Max.X || r.Y2 > b.Max.Y {
		return nil, fmt.Errorf("%w: (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			ErrBadRegion, r.X1, r.Y1, r.X2, r.Y2, b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
	}
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return nil, fmt.Errorf("%w: x1 must be < x2, y1 must be < y2", ErrBadRegion)
	}
	return imaging.Crop(img, r.Rect()), nil
}

// NamedRegion resolves a quadrant or half name against bounds: top-left,
// top-right, bottom-left, bottom-right, top-half, bottom-half, left-half,
// right-half or center (the middle 50%).
func NamedRegion(bounds image.Rectangle, name string) (Region, error) {
	w, h := bounds.Dx(), bounds.Dy()
	midX, midY := w/2, h/2

	var r Region
	switch name {
	case "top-left":
		r = Region{0, 0, midX, midY}
	case "top-right":
		r = Region{midX, 0, w, midY}
	case "bottom-left":
		r = Region{0, midY, midX, h}
	case "bottom-right":
		r = Region{midX, midY, w, h}
	case "top-half":
		r = Region{0, 0, w, midY}
	case "bottom-half":
		r = Region{0, midY, w, h}
	case "left-half":
		r = Region{0, 0, midX, h}
	case "right-half":
		r = Region{midX, 0, w, h}
	case "center":
		r = Region{w / 4, h / 4, w - w/4, h - h/4}
	default:
		return Region{}, fmt.Errorf("%w: unknown region name %q", ErrBadRegion, name)
	}
	r.X1 += bounds.Min.X
	r.X2 += bounds.Min.X
	r.Y1 += bounds.Min.Y
	r.Y2 += bounds.Min.Y
	return r, nil
}

// Scale resizes img by factor with Lanczos resampling. A factor of 1 or
// less than or equal to 0 returns img unchanged.
func Scale(img image.Image, factor float64) image.Image {
	if factor == 1.0 || factor <= 0 {
		return img
	}
	b := img.Bounds()
	w := int(float64(b.Dx()) * factor)
	h := int(float64(b.Dy()) * factor)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}
