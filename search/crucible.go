package search

import (
	"cmp"
	"math"

	"github.com/SzymonKubica/advent-of-code/grid"
)

// RunLimits constrains how many consecutive steps may be taken in one
// heading. Continuing straight needs run < Max; turning needs run >= Min.
type RunLimits struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Unconstrained allows any turn at any time and unbounded straight runs
var Unconstrained = RunLimits{Min: 0, Max: math.MaxInt}

// CanContinue reports whether another step in the same heading is legal
func (r RunLimits) CanContinue(run int) bool {
	return run < r.Max
}

// CanTurn reports whether a quarter turn is legal after run straight steps
func (r RunLimits) CanTurn(run int) bool {
	return run >= r.Min
}

// CanStop reports whether a walk may end after run straight steps
func (r RunLimits) CanStop(run int) bool {
	return run >= r.Min
}

// Crucible is the search key for grid walks with a run-length counter.
// Run is the number of consecutive steps already taken in Heading; a start
// state has Run 0.
type Crucible struct {
	Pos     grid.Point
	Heading grid.Heading
	Run     int
}

// CompareCrucible orders keys by row, column, heading and run
func CompareCrucible(a, b Crucible) int {
	if c := cmp.Compare(a.Pos.Y, b.Pos.Y); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Pos.X, b.Pos.X); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Heading, b.Heading); c != 0 {
		return c
	}
	return cmp.Compare(a.Run, b.Run)
}

// HeatWalk builds the transition for a weighted grid walk that never
// reverses and respects limits. Entering a cell costs cost(cell).
func HeatWalk[C any](g *grid.Grid[C], limits RunLimits, cost func(C) int) func(Crucible) []Edge[Crucible] {
	return func(s Crucible) []Edge[Crucible] {
		edges := make([]Edge[Crucible], 0, 3)
		for _, h := range [3]grid.Heading{s.Heading, s.Heading.TurnLeft(), s.Heading.TurnRight()} {
			run := 1
			if h == s.Heading {
				if !limits.CanContinue(s.Run) {
					continue
				}
				run = s.Run + 1
			} else if !limits.CanTurn(s.Run) {
				continue
			}

			next := s.Pos.Step(h)
			cell, ok := g.Get(next)
			if !ok {
				continue
			}
			edges = append(edges, Edge[Crucible]{
				To:   Crucible{Pos: next, Heading: h, Run: run},
				Cost: cost(cell),
			})
		}
		return edges
	}
}

// ArriveAt is the goal test for HeatWalk: standing on goal with a run that
// is allowed to stop
func ArriveAt(goal grid.Point, limits RunLimits) func(Crucible) bool {
	return func(s Crucible) bool {
		return s.Pos == goal && limits.CanStop(s.Run)
	}
}
