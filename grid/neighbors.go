package grid

// Deflector decides which headings leave a cell given the heading a state
// arrived with. It returns zero, one or two headings for optics-style cells
// and up to four for open movement.
type Deflector[C any] func(cell C, in Heading) []Heading

// Neighbors returns the in-bounds moves leaving p when arriving with
// heading h, as directed by the deflector
func (g *Grid[C]) Neighbors(p Point, h Heading, deflect Deflector[C]) []Move {
	cell, ok := g.Get(p)
	if !ok {
		return nil
	}

	out := deflect(cell, h)
	moves := make([]Move, 0, len(out))
	for _, next := range out {
		np := p.Step(next)
		if g.InBounds(np) {
			moves = append(moves, Move{Pos: np, Heading: next})
		}
	}
	return moves
}

// Adjacent returns the in-bounds axis neighbors of p regardless of heading
func (g *Grid[C]) Adjacent(p Point) []Point {
	points := make([]Point, 0, 4)
	for _, h := range Headings {
		np := p.Step(h)
		if g.InBounds(np) {
			points = append(points, np)
		}
	}
	return points
}

// Omni allows all four axis headings
func Omni[C any](C, Heading) []Heading {
	return Headings[:]
}

// NoReverse allows every heading except a U-turn
func NoReverse[C any](_ C, in Heading) []Heading {
	return []Heading{in, in.TurnLeft(), in.TurnRight()}
}

// Straight keeps the incoming heading
func Straight[C any](_ C, in Heading) []Heading {
	return []Heading{in}
}
