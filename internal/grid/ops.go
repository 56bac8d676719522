package grid

import "fmt"

// Sub returns a - b pixelwise. The result takes the presence of a.
func Sub(a, b *Grid) (*Grid, error) {
	return combine(a, b, func(x, y float64) float64 { return x - y })
}

// Mean returns (a + b) / 2 pixelwise. The result takes the presence of a.
func Mean(a, b *Grid) (*Grid, error) {
	return combine(a, b, func(x, y float64) float64 { return (x + y) / 2 })
}

// Max returns the pixelwise maximum of a and b.
func Max(a, b *Grid) (*Grid, error) {
	return combine(a, b, func(x, y float64) float64 {
		if y > x {
			return y
		}
		return x
	})
}

// Min returns the pixelwise minimum of a and b.
func Min(a, b *Grid) (*Grid, error) {
	return combine(a, b, func(x, y float64) float64 {
		if y < x {
			return y
		}
		return x
	})
}

// Invert returns top - g pixelwise.
func Invert(g *Grid, top float64) *Grid {
	out := g.NewLike()
	for i, v := range g.data {
		out.data[i] = top - v
	}
	return out
}

func combine(a, b *Grid, fn func(x, y float64) float64) (*Grid, error) {
	if a.dims != b.dims {
		return nil, fmt.Errorf("%w: %s vs %s", ErrShapeMismatch, a.dims, b.dims)
	}
	out := a.NewLike()
	for i := range a.data {
		out.data[i] = fn(a.data[i], b.data[i])
	}
	return out, nil
}
