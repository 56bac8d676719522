package morph

import (
	"fmt"
	"math"

	"github.com/ironsheep/image-morphology-mcp/internal/grid"
)

// Degenerate selects the value written for a present pixel whose
// neighbourhood holds no usable value.
type Degenerate int

const (
	// KeepInput copies the input value at that position.
	KeepInput Degenerate = iota
	// Neutral writes +MaxFloat64 for erosion and -MaxFloat64 for dilation.
	Neutral
)

// ParseDegenerate maps "keep" or "neutral" to a Degenerate. The empty string
// is KeepInput.
func ParseDegenerate(s string) (Degenerate, error) {
	switch s {
	case "", "keep":
		return KeepInput, nil
	case "neutral":
		return Neutral, nil
	}
	return KeepInput, fmt.Errorf("%w: unknown degenerate policy %q", ErrInvalidConfig, s)
}

func (d Degenerate) value(input float64, o extremum) float64 {
	if d == Neutral {
		return o.identity()
	}
	return input
}

type config struct {
	mode       Mode
	mask       *grid.Mask
	degenerate Degenerate
	maxIter    int
	sequential bool
}

// Option configures an operator.
type Option func(*config)

// WithMode forces an algorithm instead of Auto. Modes that cannot serve the
// kernel or image fall back as described on Mode.
func WithMode(m Mode) Option {
	return func(c *config) { c.mode = m }
}

// WithMask excludes positions where m is false. m must share the grid's
// X, Y, Z and T extents.
func WithMask(m *grid.Mask) Option {
	return func(c *config) { c.mask = m }
}

// WithDegenerate sets the empty-neighbourhood policy.
func WithDegenerate(d Degenerate) Option {
	return func(c *config) { c.degenerate = d }
}

// WithMaxIterations caps fixed-point loops. Zero or negative means no cap.
func WithMaxIterations(n int) Option {
	return func(c *config) { c.maxIter = n }
}

// WithSequential disables the parallel row loop.
func WithSequential() Option {
	return func(c *config) { c.sequential = true }
}

func newConfig(opts []Option) config {
	c := config{mode: Auto}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c config) check(g *grid.Grid) error {
	if c.mask != nil && !c.mask.Dims().SpatialEqual(g.Dims()) {
		return fmt.Errorf("%w: mask %s, grid %s", ErrShapeMismatch, c.mask.Dims(), g.Dims())
	}
	return nil
}

// iterationsLeft reports whether iteration i (0-based) may run.
func (c config) iterationsLeft(i int) bool {
	return c.maxIter <= 0 || i < c.maxIter
}

// extremum is the reduction an engine pass performs.
type extremum int

const (
	minimum extremum = iota
	maximum
)

func (o extremum) identity() float64 {
	if o == minimum {
		return math.MaxFloat64
	}
	return -math.MaxFloat64
}

// beats reports whether a should replace the current best b.
func (o extremum) beats(a, b float64) bool {
	if o == minimum {
		return a < b
	}
	return a > b
}

func (o extremum) pick(a, b float64) float64 {
	if o.beats(b, a) {
		return b
	}
	return a
}
