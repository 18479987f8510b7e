// Package garden counts the garden plots an elf can stand on after walking
// a number of steps from the start tile.
package garden

import (
	"fmt"

	"github.com/SzymonKubica/advent-of-code/grid"
	"github.com/SzymonKubica/advent-of-code/search"
)

// Tile is one square of the garden map
type Tile uint8

const (
	Plot Tile = iota
	Rock
	Start
)

// DefaultSteps is the walk length used when none is given
const DefaultSteps = 64

// Legend is the character table for garden maps
var Legend = grid.Legend[Tile]{
	'.': Plot,
	'#': Rock,
	'S': Start,
}

// Parse reads a garden map
func Parse(input string) (*grid.Grid[Tile], error) {
	return grid.Parse(input, Legend)
}

// Walk floods the open tiles around the start up to steps away. The result
// records the shortest distance to every plot within reach.
func Walk(g *grid.Grid[Tile], steps int) (*search.Visited[grid.Point], error) {
	starts := g.Find(func(t Tile) bool { return t == Start })
	if err := search.CheckGrid(g.Width(), g.Height(), starts); err != nil {
		return nil, fmt.Errorf("garden walk: %w", err)
	}

	next := func(p grid.Point) []grid.Point {
		var out []grid.Point
		for _, q := range g.Adjacent(p) {
			if t, _ := g.Get(q); t != Rock {
				out = append(out, q)
			}
		}
		return out
	}
	return search.ReachWithin(steps, next, starts...), nil
}

// Exactly counts the plots on which a walk of exactly steps can end. A plot
// first reached at distance d is also reachable at d+2, d+4, ...
// by stepping back and forth, so parity decides.
func Exactly(g *grid.Grid[Tile], steps int) (int, error) {
	visited, err := Walk(g, steps)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, p := range visited.States() {
		if d, _ := visited.Depth(p); d%2 == steps%2 {
			count++
		}
	}
	return count, nil
}

// Within counts the plots reachable in at most steps
func Within(g *grid.Grid[Tile], steps int) (int, error) {
	visited, err := Walk(g, steps)
	if err != nil {
		return 0, err
	}
	return visited.Len(), nil
}

// Part1 counts plots where a walk of exactly steps ends
func Part1(input string, steps int) (int, error) {
	g, err := Parse(input)
	if err != nil {
		return 0, err
	}
	return Exactly(g, steps)
}

// Part2 counts plots reachable in at most steps
func Part2(input string, steps int) (int, error) {
	g, err := Parse(input)
	if err != nil {
		return 0, err
	}
	return Within(g, steps)
}
