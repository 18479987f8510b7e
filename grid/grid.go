package grid

import (
	"strings"
)

// Legend maps input characters to cell values
type Legend[C any] map[rune]C

// Lookup implements the character table used by ParseFunc
func (l Legend[C]) Lookup(r rune) (C, bool) {
	c, ok := l[r]
	return c, ok
}

// Digits returns a legend mapping '0'..'9' to their integer values
func Digits() Legend[int] {
	l := make(Legend[int], 10)
	for d := 0; d <= 9; d++ {
		l[rune('0'+d)] = d
	}
	return l
}

// Grid is a rectangular, read-only collection of typed cells
type Grid[C any] struct {
	cells  [][]C
	width  int
	height int
}

// Parse builds a grid from line-based text using the legend as the
// character table
func Parse[C any](text string, legend Legend[C]) (*Grid[C], error) {
	return ParseFunc(text, legend.Lookup)
}

// ParseFunc builds a grid from line-based text, mapping every rune with
// lookup. Trailing blank lines are ignored; blank input yields an empty grid.
func ParseFunc[C any](text string, lookup func(rune) (C, bool)) (*Grid[C], error) {
	lines := Lines(text)

	g := &Grid[C]{
		cells:  make([][]C, 0, len(lines)),
		height: len(lines),
	}

	for y, line := range lines {
		row := make([]C, 0, len(line))
		for x, r := range []rune(line) {
			cell, ok := lookup(r)
			if !ok {
				return nil, &ParseError{Kind: UnrecognizedSymbol, Row: y, Col: x, Symbol: r}
			}
			row = append(row, cell)
		}

		if y == 0 {
			g.width = len(row)
		} else if len(row) != g.width {
			return nil, &ParseError{Kind: NonRectangular, Row: y, Want: g.width, Got: len(row)}
		}
		g.cells = append(g.cells, row)
	}

	return g, nil
}

// Lines splits text into rows, dropping carriage returns and trailing blank
// lines
func Lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// New creates a grid from already-typed rows. Rows must all have equal length.
func New[C any](rows [][]C) (*Grid[C], error) {
	g := &Grid[C]{height: len(rows)}
	for y, row := range rows {
		if y == 0 {
			g.width = len(row)
		} else if len(row) != g.width {
			return nil, &ParseError{Kind: NonRectangular, Row: y, Want: g.width, Got: len(row)}
		}
		g.cells = append(g.cells, append([]C(nil), row...))
	}
	return g, nil
}

// Width returns the number of columns
func (g *Grid[C]) Width() int {
	return g.width
}

// Height returns the number of rows
func (g *Grid[C]) Height() int {
	return g.height
}

// Empty reports whether the grid has no cells
func (g *Grid[C]) Empty() bool {
	return g.width == 0 || g.height == 0
}

// InBounds reports whether p lies inside [0,width) x [0,height)
func (g *Grid[C]) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.width && p.Y < g.height
}

// Get returns the cell at p, or false when p is outside the grid
func (g *Grid[C]) Get(p Point) (C, bool) {
	if !g.InBounds(p) {
		var zero C
		return zero, false
	}
	return g.cells[p.Y][p.X], true
}

// At returns the cell at p, or the zero value when p is outside the grid
func (g *Grid[C]) At(p Point) C {
	c, _ := g.Get(p)
	return c
}

// Points returns every coordinate in row-major order
func (g *Grid[C]) Points() []Point {
	points := make([]Point, 0, g.width*g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			points = append(points, Point{X: x, Y: y})
		}
	}
	return points
}

// Find returns the coordinates of every cell matching pred, row-major
func (g *Grid[C]) Find(pred func(C) bool) []Point {
	var found []Point
	for y, row := range g.cells {
		for x, cell := range row {
			if pred(cell) {
				found = append(found, Point{X: x, Y: y})
			}
		}
	}
	return found
}

// Count returns the number of cells matching pred
func (g *Grid[C]) Count(pred func(C) bool) int {
	count := 0
	for _, row := range g.cells {
		for _, cell := range row {
			if pred(cell) {
				count++
			}
		}
	}
	return count
}

// Edges returns every move entering the grid from its border, heading inwards
func (g *Grid[C]) Edges() []Move {
	var moves []Move
	for x := 0; x < g.width; x++ {
		moves = append(moves,
			Move{Pos: Point{X: x, Y: 0}, Heading: Down},
			Move{Pos: Point{X: x, Y: g.height - 1}, Heading: Up},
		)
	}
	for y := 0; y < g.height; y++ {
		moves = append(moves,
			Move{Pos: Point{X: 0, Y: y}, Heading: Right},
			Move{Pos: Point{X: g.width - 1, Y: y}, Heading: Left},
		)
	}
	return moves
}

// Format renders the grid back to text, one line per row
func (g *Grid[C]) Format(symbol func(p Point, c C) rune) string {
	var sb strings.Builder
	for y, row := range g.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x, cell := range row {
			sb.WriteRune(symbol(Point{X: x, Y: y}, cell))
		}
	}
	return sb.String()
}
