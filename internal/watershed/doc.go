// Package watershed segments grayscale reliefs with the Vincent–Soille
// immersion algorithm.
//
// Every XY plane of the input (one per Z, T and B index) is flooded on its
// own. Values are quantized to bytes, pixels are bucketed into 256 levels and
// the relief is flooded from the lowest level up. Basins that meet are
// separated by watershed pixels; each new local minimum starts a new region.
//
// Region ids are positive and assigned in discovery order, restarting at 1
// in every plane. The presence mask of the input grid is not consulted:
// absent pixels take part in flooding with whatever value they hold.
//
//	lg, err := watershed.Segment(g)
//	if err != nil {
//		return err
//	}
//	out := lg.ToGrid() // watershed lines are 0
package watershed
