package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-morphology-mcp/internal/grid"
)

var (
	// ErrColorMode is returned for an unknown color mode name.
	ErrColorMode = errors.New("imaging: unknown color mode")
	// ErrBand is returned when a band index is outside the grid.
	ErrBand = errors.New("imaging: band out of range")
)

// ColorMode selects how source pixels become grid bands.
type ColorMode int

const (
	// ColorAuto loads single-channel sources as Gray and the rest as RGB.
	ColorAuto ColorMode = iota
	// ColorGray loads one luminance band.
	ColorGray
	// ColorRGB loads red, green and blue as bands 0, 1 and 2.
	ColorRGB
)

// ParseColorMode maps "auto", "gray" (or "grey") and "rgb" to a ColorMode.
// The empty string is ColorAuto.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "auto":
		return ColorAuto, nil
	case "gray", "grey":
		return ColorGray, nil
	case "rgb":
		return ColorRGB, nil
	}
	return ColorAuto, fmt.Errorf("%w: %q", ErrColorMode, s)
}

// ToGrid converts img to a single-plane grid with 1 (gray) or 3 (RGB) bands.
// Pixels with zero alpha are marked absent.
func ToGrid(img image.Image, mode ColorMode) (*grid.Grid, error) {
	if mode == ColorAuto {
		mode = ColorRGB
		switch img.(type) {
		case *image.Gray, *image.Gray16:
			mode = ColorGray
		}
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	switch mode {
	case ColorGray:
		gray := imaging.Grayscale(img)
		g, err := grid.New(grid.Dims{X: w, Y: h, Z: 1, T: 1, B: 1})
		if err != nil {
			return nil, err
		}
		data := g.PlaneData(0)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				px := gray.Pix[y*gray.Stride+x*4:]
				data[y*w+x] = float64(px[0])
				if px[3] == 0 {
					g.SetPresent(x, y, 0, 0, false)
				}
			}
		}
		return g, nil

	case ColorRGB:
		rgba := clone.AsRGBA(img)
		g, err := grid.New(grid.Dims{X: w, Y: h, Z: 1, T: 1, B: 3})
		if err != nil {
			return nil, err
		}
		r, gr, bl := g.PlaneData(0), g.PlaneData(1), g.PlaneData(2)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				px := rgba.Pix[y*rgba.Stride+x*4:]
				i := y*w + x
				r[i], gr[i], bl[i] = float64(px[0]), float64(px[1]), float64(px[2])
				if px[3] == 0 {
					g.SetPresent(x, y, 0, 0, false)
				}
			}
		}
		return g, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrColorMode, int(mode))
}

// ToImage renders band of the first Z/T plane as 8-bit gray, clamping
// values to [0, 255].
func ToImage(g *grid.Grid, band int) (*image.Gray, error) {
	d := g.Dims()
	if band < 0 || band >= d.B {
		return nil, fmt.Errorf("%w: %d of %d", ErrBand, band, d.B)
	}
	img := image.NewGray(image.Rect(0, 0, d.X, d.Y))
	src := g.PlaneData(band * d.T * d.Z)
	for y := 0; y < d.Y; y++ {
		for x := 0; x < d.X; x++ {
			img.Pix[y*img.Stride+x] = grid.ToByte(src[y*d.X+x])
		}
	}
	return img, nil
}

// ToRGB renders bands 0, 1 and 2 as color. Absent pixels are transparent.
func ToRGB(g *grid.Grid) (*image.NRGBA, error) {
	d := g.Dims()
	if d.B != 3 {
		return nil, fmt.Errorf("%w: RGB needs 3 bands, grid has %d", ErrBand, d.B)
	}
	img := image.NewNRGBA(image.Rect(0, 0, d.X, d.Y))
	r, gr, bl := g.PlaneData(0), g.PlaneData(d.T*d.Z), g.PlaneData(2*d.T*d.Z)
	for y := 0; y < d.Y; y++ {
		for x := 0; x < d.X; x++ {
			i := y*d.X + x
			var a uint8 = 255
			if !g.Present(x, y, 0, 0) {
				a = 0
			}
			img.SetNRGBA(x, y, color.NRGBA{R: grid.ToByte(r[i]), G: grid.ToByte(gr[i]), B: grid.ToByte(bl[i]), A: a})
		}
	}
	return img, nil
}

// Montage places every band side by side, band 0 on the left.
func Montage(g *grid.Grid) (*image.NRGBA, error) {
	d := g.Dims()
	out := imaging.New(d.X*d.B, d.Y, color.Black)
	for b := 0; b < d.B; b++ {
		band, err := ToImage(g, b)
		if err != nil {
			return nil, err
		}
		out = imaging.Paste(out, band, image.Pt(b*d.X, 0))
	}
	return out, nil
}

// MorphResult is an encoded morphology output.
type MorphResult struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Bands       int     `json:"bands"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	ImageBase64 string  `json:"image_base64"`
	MimeType    string  `json:"mime_type"`

	// Layout is "gray", "rgb" or "montage" (bands side by side).
	Layout string `json:"layout"`

	Mode       string         `json:"mode,omitempty"`
	Iterations int            `json:"iterations,omitempty"`
	Changes    *CompareResult `json:"changes,omitempty"`
}

// EncodeGrid renders g as a PNG: one band as gray, three as RGB, any other
// count as a montage. Min and Max cover every value of the grid.
func EncodeGrid(g *grid.Grid) (*MorphResult, error) {
	d := g.Dims()
	var (
		img    image.Image
		layout string
		err    error
	)
	switch d.B {
	case 1:
		img, err = ToImage(g, 0)
		layout = "gray"
	case 3:
		img, err = ToRGB(g)
		layout = "rgb"
	default:
		img, err = Montage(g)
		layout = "montage"
	}
	if err != nil {
		return nil, err
	}

	encoded, err := EncodePNG(img)
	if err != nil {
		return nil, err
	}
	lo, hi := valueRange(g)
	return &MorphResult{
		Width:       d.X,
		Height:      d.Y,
		Bands:       d.B,
		Min:         lo,
		Max:         hi,
		ImageBase64: encoded,
		MimeType:    "image/png",
		Layout:      layout,
	}, nil
}

// EncodePNG returns img as base64 PNG.
func EncodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func valueRange(g *grid.Grid) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for p := 0; p < g.Dims().Planes(); p++ {
		for _, v := range g.PlaneData(p) {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}
