package strel

// Square returns a full side x side kernel centred at (side/2, side/2).
func Square(side int) *Element {
	return Rectangle(side, side)
}

// Rectangle returns a full width x height kernel centred at
// (width/2, height/2).
func Rectangle(width, height int) *Element {
	width, height = atLeast(width, 1), atLeast(height, 1)
	return fill(width, height, width/2, height/2, func(int, int) bool { return true })
}

// Circle returns the disc of the given radius on a (2r+1)-sided kernel.
func Circle(radius int) *Element {
	r := atLeast(radius, 0)
	side := 2*r + 1
	return fill(side, side, r, r, func(i, j int) bool {
		dx, dy := i-r, j-r
		return dx*dx+dy*dy <= r*r
	})
}

// Cross returns a plus sign with arms of the given length.
func Cross(radius int) *Element {
	r := atLeast(radius, 0)
	side := 2*r + 1
	return fill(side, side, r, r, func(i, j int) bool { return i == r || j == r })
}

// HorizontalLine returns a 1-pixel-high line centred at length/2.
func HorizontalLine(length int) *Element {
	length = atLeast(length, 1)
	return HorizontalLineAt(length, length/2)
}

// HorizontalLineAt returns a horizontal line with its origin at column center.
func HorizontalLineAt(length, center int) *Element {
	length = atLeast(length, 1)
	return fill(length, 1, center, 0, func(int, int) bool { return true })
}

// VerticalLine returns a 1-pixel-wide line centred at length/2.
func VerticalLine(length int) *Element {
	length = atLeast(length, 1)
	return VerticalLineAt(length, length/2)
}

// VerticalLineAt returns a vertical line with its origin at row center.
func VerticalLineAt(length, center int) *Element {
	length = atLeast(length, 1)
	return fill(1, length, 0, center, func(int, int) bool { return true })
}

// DiagonalLine returns the top-left to bottom-right diagonal of a square
// kernel.
func DiagonalLine(length int) *Element {
	n := atLeast(length, 1)
	return fill(n, n, n/2, n/2, func(i, j int) bool { return i == j })
}

// AntiDiagonalLine returns the top-right to bottom-left diagonal.
func AntiDiagonalLine(length int) *Element {
	n := atLeast(length, 1)
	return fill(n, n, n/2, n/2, func(i, j int) bool { return i+j == n-1 })
}

// Frame returns the one-pixel border of a side x side square.
func Frame(side int) *Element {
	n := atLeast(side, 1)
	return fill(n, n, n/2, n/2, func(i, j int) bool {
		return i == 0 || j == 0 || i == n-1 || j == n-1
	})
}

func fill(width, height, cx, cy int, in func(i, j int) bool) *Element {
	cells := make([]bool, width*height)
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			cells[j*width+i] = in(i, j)
		}
	}
	return build(width, height, cx, cy, cells)
}

func atLeast(v, min int) int {
	if v < min {
		return min
	}
	return v
}
