package morph

import (
	"fmt"

	"github.com/ironsheep/image-morphology-mcp/internal/grid"
	"github.com/ironsheep/image-morphology-mcp/internal/strel"
)

// Mode selects the erosion/dilation algorithm.
//
// Forced modes degrade when they cannot serve a kernel: the line and
// decomposition modes need a full rectangle (line modes additionally need
// one dimension of 1 with the origin on that row or column) and fall back
// to Naive otherwise; the van Herk modes fall back to the matching naive
// line mode when the axis length is not a multiple of the kernel length.
type Mode int

const (
	Auto Mode = iota
	Naive
	RectangleDecomposition
	HorizontalLine
	VerticalLine
	VanHerkHorizontal
	VanHerkVertical
)

var modeNames = map[Mode]string{
	Auto:                   "auto",
	Naive:                  "naive",
	RectangleDecomposition: "rectangle",
	HorizontalLine:         "hline",
	VerticalLine:           "vline",
	VanHerkHorizontal:      "vanherk-h",
	VanHerkVertical:        "vanherk-v",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a mode name as printed by String back to its Mode.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return Auto, nil
	}
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return Auto, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, s)
}

// ResolveMode applies the Auto policy:
//
//  1. full rectangle, both sides > 1: RectangleDecomposition
//  2. horizontal line, image width a multiple of its length: VanHerkHorizontal
//  3. horizontal line otherwise: HorizontalLine
//  4. vertical line: the same rules against the image height
//  5. anything else: Naive
func ResolveMode(se *strel.Element, d grid.Dims) Mode {
	if !se.IsRectangle() {
		return Naive
	}
	w, h := se.Width(), se.Height()
	cx, cy := se.Center()
	switch {
	case w > 1 && h > 1:
		return RectangleDecomposition
	case h == 1 && cy == 0:
		if d.X%w == 0 {
			return VanHerkHorizontal
		}
		return HorizontalLine
	case w == 1 && cx == 0:
		if d.Y%h == 0 {
			return VanHerkVertical
		}
		return VerticalLine
	}
	return Naive
}

// EffectiveMode returns the algorithm Erode and Dilate run when m is
// requested for se over an image of extents d.
func EffectiveMode(m Mode, se *strel.Element, d grid.Dims) Mode {
	if m == Auto {
		return ResolveMode(se, d)
	}
	rect := se.IsRectangle()
	cx, cy := se.Center()
	hline := rect && se.Height() == 1 && cy == 0
	vline := rect && se.Width() == 1 && cx == 0

	switch m {
	case RectangleDecomposition:
		if rect {
			return m
		}
	case HorizontalLine:
		if hline {
			return m
		}
	case VerticalLine:
		if vline {
			return m
		}
	case VanHerkHorizontal:
		if hline {
			if d.X%se.Width() == 0 {
				return m
			}
			return HorizontalLine
		}
	case VanHerkVertical:
		if vline {
			if d.Y%se.Height() == 0 {
				return m
			}
			return VerticalLine
		}
	}
	return Naive
}
