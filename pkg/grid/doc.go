// Package grid computes row-major placements for equally sized items.
//
// Items are placed left to right, wrapping after [Spec.PerRow] columns. Item i
// lands at column i mod PerRow and row i / PerRow:
//
//	x = OriginX + column * (Width + Margin)
//	y = OriginY + row    * (Height + Margin)
//
// [Layout] is pure: the same count and spec always give the same points.
// Use [Spec.Validate] at the boundary to reject bad configuration; Layout
// itself treats PerRow < 1 as a single column so it never panics.
package grid
