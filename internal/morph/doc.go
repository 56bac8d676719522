// Package morph implements grayscale mathematical morphology over flat
// structuring elements.
//
// # Engine
//
// Erode and Dilate compute, for every pixel of every XY plane, the minimum
// or maximum of the input under the structuring element. Neighbours outside
// the plane, absent in the grid, or excluded by a caller mask are skipped.
// Four algorithms are available and selected by Mode:
//
//   - Naive: scan every foreground offset for every pixel.
//   - RectangleDecomposition: a full rectangle is separable, so one
//     horizontal line pass followed by one vertical line pass gives the
//     same result.
//   - HorizontalLine / VerticalLine: naive scan of a one-dimensional kernel.
//   - VanHerkHorizontal / VanHerkVertical: the van Herk running-buffer
//     algorithm, O(1) per pixel regardless of kernel length. It requires the
//     axis length to be a multiple of the kernel length.
//
// Auto resolves to one of these through ResolveMode, a pure function of the
// kernel and image shapes.
//
// # Fallbacks
//
// A pixel that is absent or masked out is written as 0. A present pixel
// whose neighbourhood contains no usable value keeps its input value under
// the default KeepInput policy; WithDegenerate(Neutral) writes the identity
// of the operation instead.
//
// # Composite Operators
//
// Opening, closing, gradients, top-hats, OCCO, alternating sequential
// filters, contrast mappings, rank filters, skeletons, reconstructions,
// levelings and differential morphological profiles are built from the
// engine and share its options.
//
// # Concurrency
//
// Every operator allocates its output and never writes its inputs.
// Structuring elements are immutable and may be shared between calls.
// Rows of a pass are processed in parallel unless WithSequential is given;
// results do not depend on it.
package morph
