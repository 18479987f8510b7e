// Package crucible finds the least heat-loss route for a crucible that is
// limited in how far it may roll in a straight line.
package crucible

import (
	"github.com/SzymonKubica/advent-of-code/grid"
	"github.com/SzymonKubica/advent-of-code/search"
)

var (
	// Standard crucibles turn whenever they like but never go straight
	// more than three blocks.
	Standard = search.RunLimits{Min: 0, Max: 3}

	// Ultra crucibles need four blocks before turning or stopping and at
	// most ten in a row.
	Ultra = search.RunLimits{Min: 4, Max: 10}
)

// Parse reads a heat-loss map of single digits
func Parse(input string) (*grid.Grid[int], error) {
	return grid.Parse(input, grid.Digits())
}

// Route returns the cheapest legal route from the top-left block to the
// bottom-right one. The first move may head right or down.
func Route(g *grid.Grid[int], limits search.RunLimits) (*search.Path[search.Crucible], error) {
	start := grid.Point{X: 0, Y: 0}
	goal := grid.Point{X: g.Width() - 1, Y: g.Height() - 1}
	if err := search.CheckGrid(g.Width(), g.Height(), []grid.Point{start}, goal); err != nil {
		return nil, err
	}

	d := search.Dijkstra[search.Crucible]{
		Next:    search.HeatWalk(g, limits, heatLoss),
		Goal:    search.ArriveAt(goal, limits),
		Compare: search.CompareCrucible,
	}
	return d.Run(
		search.Crucible{Pos: start, Heading: grid.Right},
		search.Crucible{Pos: start, Heading: grid.Down},
	)
}

// MinHeatLoss returns only the cost of the cheapest route
func MinHeatLoss(g *grid.Grid[int], limits search.RunLimits) (int, error) {
	path, err := Route(g, limits)
	if err != nil {
		return 0, err
	}
	return path.Cost, nil
}

func heatLoss(block int) int {
	return block
}

// Part1 routes a standard crucible
func Part1(input string) (int, error) {
	return Solve(input, Standard)
}

// Part2 routes an ultra crucible
func Part2(input string) (int, error) {
	return Solve(input, Ultra)
}

// Solve routes a crucible with arbitrary run limits
func Solve(input string, limits search.RunLimits) (int, error) {
	g, err := Parse(input)
	if err != nil {
		return 0, err
	}
	return MinHeatLoss(g, limits)
}
