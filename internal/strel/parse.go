package strel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownShape indicates a descriptor naming a shape with no factory.
var ErrUnknownShape = errors.New("strel: unknown shape")

// Parse builds an element from a textual descriptor of the form
// "shape:size", with "rect:WxH" for rectangles and an optional "@center"
// suffix for lines:
//
//	square:5   rect:7x3   circle:2   cross:1   frame:5
//	hline:4    hline:4@0  vline:3    diag:3    antidiag:3
func Parse(desc string) (*Element, error) {
	shape, arg, ok := strings.Cut(strings.TrimSpace(strings.ToLower(desc)), ":")
	if !ok {
		return nil, fmt.Errorf("%w: %q has no size", ErrUnknownShape, desc)
	}

	center := -1
	if s, c, found := strings.Cut(arg, "@"); found {
		v, err := strconv.Atoi(c)
		if err != nil {
			return nil, fmt.Errorf("strel: bad center in %q: %w", desc, err)
		}
		arg, center = s, v
	}

	if shape == "rect" || shape == "rectangle" {
		ws, hs, found := strings.Cut(arg, "x")
		if !found {
			return nil, fmt.Errorf("strel: rectangle %q needs WxH", desc)
		}
		w, err := strconv.Atoi(ws)
		if err != nil {
			return nil, fmt.Errorf("strel: bad width in %q: %w", desc, err)
		}
		h, err := strconv.Atoi(hs)
		if err != nil {
			return nil, fmt.Errorf("strel: bad height in %q: %w", desc, err)
		}
		return Rectangle(w, h), nil
	}

	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("strel: bad size in %q: %w", desc, err)
	}

	switch shape {
	case "square":
		return Square(n), nil
	case "circle", "disk":
		return Circle(n), nil
	case "cross":
		return Cross(n), nil
	case "frame":
		return Frame(n), nil
	case "diag":
		return DiagonalLine(n), nil
	case "antidiag":
		return AntiDiagonalLine(n), nil
	case "hline":
		if center >= 0 {
			return HorizontalLineAt(n, center), nil
		}
		return HorizontalLine(n), nil
	case "vline":
		if center >= 0 {
			return VerticalLineAt(n, center), nil
		}
		return VerticalLine(n), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownShape, shape)
}
