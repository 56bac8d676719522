package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/ironsheep/image-morphology-mcp/internal/grid"
)

// createInMemoryImage creates a solid RGBA image.
func createInMemoryImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with a different color per quadrant:
// red, green, blue and white from top-left in reading order.
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			switch {
			case x < width/2 && y < height/2:
				c = color.RGBA{255, 0, 0, 255}
			case y < height/2:
				c = color.RGBA{0, 255, 0, 255}
			case x < width/2:
				c = color.RGBA{0, 0, 255, 255}
			default:
				c = color.RGBA{255, 255, 255, 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

// decodePNG decodes a base64 PNG produced by the package.
func decodePNG(t *testing.T, s string) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	return img
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in   string
		want ColorMode
	}{
		{"", ColorAuto},
		{"auto", ColorAuto},
		{"gray", ColorGray},
		{"grey", ColorGray},
		{"rgb", ColorRGB},
	}
	for _, tt := range tests {
		got, err := ParseColorMode(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseColorMode(%q): got %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseColorMode("cmyk"); !errors.Is(err, ErrColorMode) {
		t.Errorf("ParseColorMode(cmyk): got %v, want ErrColorMode", err)
	}
}

func TestToGrid_Gray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	copy(img.Pix, []uint8{0, 10, 20, 30, 40, 250})

	g, err := ToGrid(img, ColorAuto)
	if err != nil {
		t.Fatalf("ToGrid failed: %v", err)
	}
	if want := (grid.Dims{X: 3, Y: 2, Z: 1, T: 1, B: 1}); g.Dims() != want {
		t.Fatalf("dims: got %s, want %s", g.Dims(), want)
	}
	want := []float64{0, 10, 20, 30, 40, 250}
	for i, v := range g.PlaneData(0) {
		if v != want[i] {
			t.Errorf("pixel %d: got %g, want %g", i, v, want[i])
		}
	}
	if g.Mask() != nil {
		t.Error("opaque image should have no presence mask")
	}
}

func TestToGrid_RGB(t *testing.T) {
	img := createPatternImage(4, 4)

	g, err := ToGrid(img, ColorAuto)
	if err != nil {
		t.Fatalf("ToGrid failed: %v", err)
	}
	if g.Dims().B != 3 {
		t.Fatalf("bands: got %d, want 3", g.Dims().B)
	}

	tests := []struct {
		x, y    int
		r, g, b float64
	}{
		{0, 0, 255, 0, 0},
		{3, 0, 0, 255, 0},
		{0, 3, 0, 0, 255},
		{3, 3, 255, 255, 255},
	}
	for _, tt := range tests {
		got := [3]float64{g.At(tt.x, tt.y, 0, 0, 0), g.At(tt.x, tt.y, 0, 0, 1), g.At(tt.x, tt.y, 0, 0, 2)}
		if got != [3]float64{tt.r, tt.g, tt.b} {
			t.Errorf("(%d,%d): got %v, want (%g,%g,%g)", tt.x, tt.y, got, tt.r, tt.g, tt.b)
		}
	}
}

func TestToGrid_ForcedGray(t *testing.T) {
	img := createInMemoryImage(2, 2, color.RGBA{100, 100, 100, 255})
	g, err := ToGrid(img, ColorGray)
	if err != nil {
		t.Fatalf("ToGrid failed: %v", err)
	}
	if g.Dims().B != 1 {
		t.Fatalf("bands: got %d, want 1", g.Dims().B)
	}
	if v := g.At(1, 1, 0, 0, 0); v != 100 {
		t.Errorf("luminance: got %g, want 100", v)
	}
}

func TestToGrid_TransparentIsAbsent(t *testing.T) {
	img := createInMemoryImage(3, 1, color.RGBA{200, 200, 200, 255})
	img.Set(1, 0, color.RGBA{})

	for _, mode := range []ColorMode{ColorGray, ColorRGB} {
		g, err := ToGrid(img, mode)
		if err != nil {
			t.Fatalf("ToGrid(%d) failed: %v", mode, err)
		}
		if g.Present(1, 0, 0, 0) {
			t.Errorf("mode %d: transparent pixel should be absent", mode)
		}
		if !g.Present(0, 0, 0, 0) || !g.Present(2, 0, 0, 0) {
			t.Errorf("mode %d: opaque pixels should be present", mode)
		}
	}
}

func TestToImage(t *testing.T) {
	g, err := grid.FromPlane(4, 1, []float64{-5, 300, 127.9, 64})
	if err != nil {
		t.Fatalf("FromPlane failed: %v", err)
	}
	img, err := ToImage(g, 0)
	if err != nil {
		t.Fatalf("ToImage failed: %v", err)
	}
	want := []uint8{0, 255, 127, 64}
	for i, v := range img.Pix[:4] {
		if v != want[i] {
			t.Errorf("pixel %d: got %d, want %d", i, v, want[i])
		}
	}

	if _, err := ToImage(g, 1); !errors.Is(err, ErrBand) {
		t.Errorf("ToImage band 1: got %v, want ErrBand", err)
	}
	if _, err := ToRGB(g); !errors.Is(err, ErrBand) {
		t.Errorf("ToRGB on one band: got %v, want ErrBand", err)
	}
}

func TestEncodeGrid_Layouts(t *testing.T) {
	one, _ := grid.FromPlane(2, 2, []float64{0, 50, 100, 150})
	rgb, err := ToGrid(createPatternImage(4, 4), ColorRGB)
	if err != nil {
		t.Fatalf("ToGrid failed: %v", err)
	}
	two, err := grid.Stack(grid.AxisB, one, one)
	if err != nil {
		t.Fatalf("Stack failed: %v", err)
	}

	tests := []struct {
		name   string
		g      *grid.Grid
		layout string
		w, h   int
	}{
		{"gray", one, "gray", 2, 2},
		{"rgb", rgb, "rgb", 4, 4},
		{"montage", two, "montage", 4, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := EncodeGrid(tt.g)
			if err != nil {
				t.Fatalf("EncodeGrid failed: %v", err)
			}
			if res.Layout != tt.layout {
				t.Errorf("Layout: got %s, want %s", res.Layout, tt.layout)
			}
			if res.MimeType != "image/png" {
				t.Errorf("MimeType: got %s, want image/png", res.MimeType)
			}
			b := decodePNG(t, res.ImageBase64).Bounds()
			if b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("image size: got %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.w, tt.h)
			}
		})
	}

	res, _ := EncodeGrid(one)
	if res.Min != 0 || res.Max != 150 || res.Bands != 1 {
		t.Errorf("range: got [%g, %g] over %d bands, want [0, 150] over 1", res.Min, res.Max, res.Bands)
	}
}

func TestMontage_BandOrder(t *testing.T) {
	dark, _ := grid.FromPlane(1, 1, []float64{10})
	light, _ := grid.FromPlane(1, 1, []float64{200})
	g, err := grid.Stack(grid.AxisB, dark, light)
	if err != nil {
		t.Fatalf("Stack failed: %v", err)
	}

	img, err := Montage(g)
	if err != nil {
		t.Fatalf("Montage failed: %v", err)
	}
	if got := img.NRGBAAt(0, 0).R; got != 10 {
		t.Errorf("band 0: got %d, want 10", got)
	}
	if got := img.NRGBAAt(1, 0).R; got != 200 {
		t.Errorf("band 1: got %d, want 200", got)
	}
}
