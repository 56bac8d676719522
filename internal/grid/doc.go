// Package grid provides the five-dimensional pixel buffer the morphology
// operators read and write.
//
// A Grid addresses a scalar float64 value at every (X, Y, Z, T, B)
// coordinate. X and Y are the spatial axes, Z is depth, T is time and B is
// the spectral band. Two-dimensional operators work one XY plane at a time
// and visit every (Z, T, B) combination.
//
// # Presence
//
// Positions may be absent. Absence is tracked per (X, Y, Z, T) coordinate
// by a Mask, so all bands of a position are present or absent together.
// A Grid without a mask treats every position as present.
//
// # Memory Layout
//
// Values are stored in a single slice with X varying fastest, then Y, Z, T
// and B. Every XY plane is therefore a contiguous run of X*Y values, which
// PlaneData exposes without copying for the hot loops in package morph.
package grid
