// Package density accumulates orbit points onto a square visit-density grid.
//
// Accumulation happens in three steps:
//
//   - [ComputeBounds]: axis-aligned bounding box of the orbit
//   - [NewViewport]: square window around the box, padded by a margin
//   - [Accumulator]: deposits points with a [Policy] (nearest or bilinear)
//
// Cells hold uint64 fixed-point mass. Every point deposits exactly
// [Grid.Unit], so partial grids built from disjoint orbit segments can be
// merged with [Grid.Merge] in any order with identical results.
package density
