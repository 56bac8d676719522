package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestCrop(t *testing.T) {
	img := createPatternImage(100, 100)

	cropped, err := Crop(img, Region{0, 0, 50, 40})
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if b := cropped.Bounds(); b.Min != (image.Point{}) || b.Dx() != 50 || b.Dy() != 40 {
		t.Errorf("bounds: got %v, want (0,0)-(50,40)", b)
	}

	r, g, b, _ := cropped.At(25, 20).RGBA()
	if uint8(r>>8) != 255 || uint8(g>>8) != 0 || uint8(b>>8) != 0 {
		t.Errorf("cropped color: got (%d,%d,%d), want (255,0,0)", r>>8, g>>8, b>>8)
	}
}

func TestCrop_Invalid(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name string
		r    Region
	}{
		{"x1 negative", Region{-1, 0, 50, 50}},
		{"y1 negative", Region{0, -1, 50, 50}},
		{"x2 too large", Region{0, 0, 101, 50}},
		{"y2 too large", Region{0, 0, 50, 101}},
		{"x1 >= x2", Region{50, 0, 50, 50}},
		{"y1 > y2", Region{0, 60, 50, 50}},
		{"zero area", Region{50, 50, 50, 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Crop(img, tt.r)
			if !errors.Is(err, ErrBadRegion) {
				t.Errorf("got %v, want ErrBadRegion", err)
			}
		})
	}
}

func TestNamedRegion(t *testing.T) {
	img := createPatternImage(100, 100)

	tests := []struct {
		name         string
		wantW, wantH int
		wantRGB      [3]uint8
	}{
		{"top-left", 50, 50, [3]uint8{255, 0, 0}},
		{"top-right", 50, 50, [3]uint8{0, 255, 0}},
		{"bottom-left", 50, 50, [3]uint8{0, 0, 255}},
		{"bottom-right", 50, 50, [3]uint8{255, 255, 255}},
		{"top-half", 100, 50, [3]uint8{0, 255, 0}},
		{"bottom-half", 100, 50, [3]uint8{255, 255, 255}},
		{"left-half", 50, 100, [3]uint8{0, 0, 255}},
		{"right-half", 50, 100, [3]uint8{255, 255, 255}},
		{"center", 50, 50, [3]uint8{255, 255, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NamedRegion(img.Bounds(), tt.name)
			if err != nil {
				t.Fatalf("NamedRegion(%s) failed: %v", tt.name, err)
			}
			if r.Width() != tt.wantW || r.Height() != tt.wantH {
				t.Errorf("size: got %dx%d, want %dx%d", r.Width(), r.Height(), tt.wantW, tt.wantH)
			}
			cropped, err := Crop(img, r)
			if err != nil {
				t.Fatalf("Crop failed: %v", err)
			}
			// the pixel just right of and below the middle
			cr, cg, cb, _ := cropped.At(tt.wantW/2, tt.wantH/2).RGBA()
			got := [3]uint8{uint8(cr >> 8), uint8(cg >> 8), uint8(cb >> 8)}
			if got != tt.wantRGB {
				t.Errorf("color: got %v, want %v", got, tt.wantRGB)
			}
		})
	}
}

func TestNamedRegion_Invalid(t *testing.T) {
	for _, name := range []string{"invalid", "TOP-LEFT", "middle", "", "center-left"} {
		t.Run(name, func(t *testing.T) {
			if _, err := NamedRegion(image.Rect(0, 0, 10, 10), name); !errors.Is(err, ErrBadRegion) {
				t.Errorf("NamedRegion(%q): got %v, want ErrBadRegion", name, err)
			}
		})
	}
}

func TestNamedRegion_OddDimensions(t *testing.T) {
	r, err := NamedRegion(image.Rect(0, 0, 101, 101), "top-left")
	if err != nil {
		t.Fatalf("NamedRegion failed: %v", err)
	}
	if r.Width() != 50 || r.Height() != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", r.Width(), r.Height())
	}
}

func TestNamedRegion_OffsetBounds(t *testing.T) {
	r, err := NamedRegion(image.Rect(10, 20, 30, 40), "bottom-right")
	if err != nil {
		t.Fatalf("NamedRegion failed: %v", err)
	}
	if r != (Region{20, 30, 30, 40}) {
		t.Errorf("got %+v, want {20 30 30 40}", r)
	}
}

func TestScale(t *testing.T) {
	img := createInMemoryImage(100, 60, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		factor       float64
		wantW, wantH int
	}{
		{2.0, 200, 120},
		{0.5, 50, 30},
		{1.0, 100, 60},
		{0, 100, 60},
		{-3, 100, 60},
		{0.001, 1, 1},
	}
	for _, tt := range tests {
		b := Scale(img, tt.factor).Bounds()
		if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
			t.Errorf("Scale(%g): got %dx%d, want %dx%d", tt.factor, b.Dx(), b.Dy(), tt.wantW, tt.wantH)
		}
	}
}
