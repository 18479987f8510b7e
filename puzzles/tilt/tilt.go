// Package tilt rolls round rocks across a reflector dish and measures the
// load they put on the north support beams.
package tilt

import (
	"github.com/SzymonKubica/advent-of-code/grid"
	"github.com/SzymonKubica/advent-of-code/search"
)

// Rock is one square of the dish
type Rock uint8

const (
	Empty Rock = iota
	Round
	Cube
)

// DefaultCycles is the number of spin cycles used when none is given
const DefaultCycles = 1000000000

// Legend is the character table for dish layouts
var Legend = grid.Legend[Rock]{
	'.': Empty,
	'O': Round,
	'#': Cube,
}

// SpinOrder is the tilt sequence of one spin cycle
var SpinOrder = [4]grid.Heading{grid.Up, grid.Left, grid.Down, grid.Right}

// Dish separates the fixed cube rocks from the round rocks that move. The
// grid never changes; every tilt produces a fresh overlay of round rocks.
type Dish struct {
	fixed *grid.Grid[Rock]
	round *grid.Overlay[bool]
}

// Parse reads a dish layout
func Parse(input string) (*Dish, error) {
	g, err := grid.Parse(input, Legend)
	if err != nil {
		return nil, err
	}
	if g.Empty() {
		return nil, search.CheckGrid(0, 0, nil)
	}
	round := grid.OverlayFor[bool](g)
	for _, p := range g.Find(func(r Rock) bool { return r == Round }) {
		round.Set(p, true)
	}
	return &Dish{fixed: g, round: round}, nil
}

func (d *Dish) with(round *grid.Overlay[bool]) *Dish {
	return &Dish{fixed: d.fixed, round: round}
}

// Tilt rolls every round rock as far as it goes towards h
func (d *Dish) Tilt(h grid.Heading) *Dish {
	w, ht := d.fixed.Width(), d.fixed.Height()
	lanes, length := w, ht
	if h.Horizontal() {
		lanes, length = ht, w
	}

	// at maps (lane, distance from the wall the rocks roll towards)
	at := func(lane, i int) grid.Point {
		switch h {
		case grid.Down:
			return grid.Point{X: lane, Y: ht - 1 - i}
		case grid.Left:
			return grid.Point{X: i, Y: lane}
		case grid.Right:
			return grid.Point{X: w - 1 - i, Y: lane}
		}
		return grid.Point{X: lane, Y: i}
	}

	out := grid.NewOverlay[bool](w, ht)
	for lane := 0; lane < lanes; lane++ {
		free := 0
		for i := 0; i < length; i++ {
			p := at(lane, i)
			if d.fixed.At(p) == Cube {
				free = i + 1
				continue
			}
			if rolling, _ := d.round.Get(p); rolling {
				out.Set(at(lane, free), true)
				free++
			}
		}
	}
	return d.with(out)
}

// Spin runs one full spin cycle
func (d *Dish) Spin() *Dish {
	for _, h := range SpinOrder {
		d = d.Tilt(h)
	}
	return d
}

// NorthLoad sums, for every round rock, its distance to the south edge
// plus one
func (d *Dish) NorthLoad() int {
	load := 0
	for y := 0; y < d.fixed.Height(); y++ {
		for x := 0; x < d.fixed.Width(); x++ {
			if rolling, _ := d.round.Get(grid.Point{X: x, Y: y}); rolling {
				load += d.fixed.Height() - y
			}
		}
	}
	return load
}

// Fingerprint hashes the round rock positions
func (d *Dish) Fingerprint() uint64 {
	vals := d.round.Values()
	b := make([]byte, len(vals))
	for i, v := range vals {
		if v {
			b[i] = 1
		}
	}
	return search.Fingerprint(b)
}

// String draws the dish in its input notation
func (d *Dish) String() string {
	return d.fixed.Format(func(p grid.Point, r Rock) rune {
		if rolling, _ := d.round.Get(p); rolling {
			return 'O'
		}
		if r == Cube {
			return '#'
		}
		return '.'
	})
}

// SpinCycles runs n spin cycles, skipping ahead once the layout repeats
func (d *Dish) SpinCycles(n int) (*Dish, *search.Cycle) {
	return search.Simulate(d, (*Dish).Spin, (*Dish).Fingerprint, n)
}

// Part1 measures the north load after tilting north once
func Part1(input string) (int, error) {
	d, err := Parse(input)
	if err != nil {
		return 0, err
	}
	return d.Tilt(grid.Up).NorthLoad(), nil
}

// Part2 measures the north load after the given number of spin cycles
func Part2(input string, cycles int) (int, error) {
	d, err := Parse(input)
	if err != nil {
		return 0, err
	}
	final, _ := d.SpinCycles(cycles)
	return final.NorthLoad(), nil
}
