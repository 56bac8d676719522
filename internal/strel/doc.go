// Package strel builds flat structuring elements: immutable two-dimensional
// boolean kernels with a designated origin.
//
// An Element stores its foreground as a list of (DX, DY) offsets measured
// from the origin. The list is computed once at construction and never
// regenerated; operators that need a bigger kernel call Grow, which returns
// a new Element and leaves the receiver untouched. Elements can therefore be
// shared freely between goroutines.
//
// Factories never fail. Sizes below the smallest meaningful value are
// clamped so every factory returns a non-empty kernel.
package strel
