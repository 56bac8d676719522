package strel

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadKernel indicates cells that do not match the requested kernel size.
var ErrBadKernel = errors.New("strel: cell count does not match kernel size")

// Offset is the position of a foreground cell relative to the origin.
type Offset struct {
	DX, DY int
}

// Element is a flat structuring element.
type Element struct {
	width, height int
	cx, cy        int
	cells         []bool
	offsets       []Offset
}

// New builds an element from row-major cells. The origin (cx, cy) may lie
// outside the kernel.
func New(width, height, cx, cy int, cells []bool) (*Element, error) {
	if width < 1 || height < 1 || len(cells) != width*height {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrBadKernel, len(cells), width, height)
	}
	c := make([]bool, len(cells))
	copy(c, cells)
	return build(width, height, cx, cy, c), nil
}

func build(width, height, cx, cy int, cells []bool) *Element {
	e := &Element{width: width, height: height, cx: cx, cy: cy, cells: cells}
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			if cells[j*width+i] {
				e.offsets = append(e.offsets, Offset{DX: i - cx, DY: j - cy})
			}
		}
	}
	return e
}

// Width is the kernel extent along X.
func (e *Element) Width() int { return e.width }

// Height is the kernel extent along Y.
func (e *Element) Height() int { return e.height }

// Center returns the origin in kernel coordinates.
func (e *Element) Center() (int, int) { return e.cx, e.cy }

// At reports whether kernel cell (i, j) is foreground. Cells outside the
// kernel are background.
func (e *Element) At(i, j int) bool {
	if i < 0 || j < 0 || i >= e.width || j >= e.height {
		return false
	}
	return e.cells[j*e.width+i]
}

// Offsets returns the foreground offsets in row-major kernel order.
// The slice is shared; callers must not modify it.
func (e *Element) Offsets() []Offset { return e.offsets }

// Count is the number of foreground cells.
func (e *Element) Count() int { return len(e.offsets) }

// IsRectangle reports whether every kernel cell is foreground.
func (e *Element) IsRectangle() bool {
	return len(e.offsets) == e.width*e.height
}

// IsSymmetric reports whether the foreground is invariant under point
// reflection through the origin.
func (e *Element) IsSymmetric() bool {
	set := make(map[Offset]struct{}, len(e.offsets))
	for _, o := range e.offsets {
		set[o] = struct{}{}
	}
	for _, o := range e.offsets {
		if _, ok := set[Offset{DX: -o.DX, DY: -o.DY}]; !ok {
			return false
		}
	}
	return true
}

// Grow returns a new element one cell larger on every side. A full rectangle
// grows to a (w+2)x(h+2) rectangle; any other shape is dilated by a 3x3
// square so the result is still a flat element containing the original.
func (e *Element) Grow() *Element {
	w, h := e.width+2, e.height+2
	cells := make([]bool, w*h)
	if e.IsRectangle() {
		for i := range cells {
			cells[i] = true
		}
		return build(w, h, e.cx+1, e.cy+1, cells)
	}
	for j := 0; j < e.height; j++ {
		for i := 0; i < e.width; i++ {
			if !e.cells[j*e.width+i] {
				continue
			}
			for dj := 0; dj <= 2; dj++ {
				for di := 0; di <= 2; di++ {
					cells[(j+dj)*w+i+di] = true
				}
			}
		}
	}
	return build(w, h, e.cx+1, e.cy+1, cells)
}

// String draws the kernel with '#' for foreground and '.' for background.
func (e *Element) String() string {
	var sb strings.Builder
	for j := 0; j < e.height; j++ {
		if j > 0 {
			sb.WriteByte('\n')
		}
		for i := 0; i < e.width; i++ {
			if e.cells[j*e.width+i] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
