// Package grid provides the typed 2D map that every puzzle family searches.
//
// The grid package implements:
//   - Parsing line-based text into a rectangular grid through a legend table
//   - Bounds-checked cell lookup that never panics
//   - Headings, points and moves on the four axis directions
//   - Neighbor enumeration driven by a per-cell deflection rule
//   - Same-shaped mutable overlays for marking or simulation layers
//
// Usage:
//
//	legend := grid.Legend[Tile]{'.': Empty, '#': Wall}
//	g, err := grid.Parse(input, legend)
//	if err != nil {
//		return err
//	}
//
//	cell, ok := g.Get(grid.Point{X: 3, Y: 1}) // ok is false outside the grid
//	moves := g.Neighbors(p, grid.Right, grid.NoReverse[Tile])
//
// A Grid is read-only once parsed. Puzzles that need to mark visited cells or
// move objects around keep that state in an Overlay of the same shape.
package grid
