package morph

import (
	"fmt"

	"github.com/ironsheep/image-morphology-mcp/internal/grid"
	"github.com/ironsheep/image-morphology-mcp/internal/strel"
)

// Order selects which filter of an alternating pair runs first.
type Order int

const (
	// OpenClose applies an opening then a closing at each size.
	OpenClose Order = iota
	// CloseOpen applies a closing then an opening at each size.
	CloseOpen
)

// ParseOrder maps "open-close" or "close-open" to an Order.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "", "open-close", "oc":
		return OpenClose, nil
	case "close-open", "co":
		return CloseOpen, nil
	}
	return 0, fmt.Errorf("%w: unknown order %q", ErrInvalidConfig, s)
}

// ASF runs an alternating sequential filter: times passes of the order's
// filter pair, the first with se and each following one with a kernel grown
// by one cell on every side (see strel.Element.Grow).
func ASF(g *grid.Grid, se *strel.Element, times int, order Order, opts ...Option) (*grid.Grid, error) {
	if times < 1 {
		return nil, fmt.Errorf("%w: ASF needs at least one iteration, got %d", ErrInvalidConfig, times)
	}
	if order != OpenClose && order != CloseOpen {
		return nil, fmt.Errorf("%w: unknown ASF order %d", ErrInvalidConfig, int(order))
	}
	if err := newConfig(opts).check(g); err != nil {
		return nil, err
	}

	cur, k := g, se
	for i := 0; i < times; i++ {
		if i > 0 {
			k = k.Grow()
		}
		first, second := Open, Close
		if order == CloseOpen {
			first, second = Close, Open
		}
		step, err := first(cur, k, opts...)
		if err != nil {
			return nil, err
		}
		if cur, err = second(step, k, opts...); err != nil {
			return nil, err
		}
	}
	return cur, nil
}
