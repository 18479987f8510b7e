// Package guard predicts the patrol route of a guard who walks straight
// ahead and turns right whenever something blocks the way.
package guard

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/SzymonKubica/advent-of-code/grid"
	"github.com/SzymonKubica/advent-of-code/search"
	"golang.org/x/sync/errgroup"
)

// Tile is one square of the lab map
type Tile uint8

const (
	Floor Tile = iota
	Obstacle
	GuardUp
	GuardRight
	GuardDown
	GuardLeft
)

// Legend is the character table for lab maps
var Legend = grid.Legend[Tile]{
	'.': Floor,
	'#': Obstacle,
	'^': GuardUp,
	'>': GuardRight,
	'v': GuardDown,
	'<': GuardLeft,
}

func (t Tile) guard() (grid.Heading, bool) {
	switch t {
	case GuardUp:
		return grid.Up, true
	case GuardRight:
		return grid.Right, true
	case GuardDown:
		return grid.Down, true
	case GuardLeft:
		return grid.Left, true
	}
	return 0, false
}

// Lab is a parsed map together with the guard's starting move
type Lab struct {
	Map   *grid.Grid[Tile]
	Start grid.Move
}

// Parse reads a lab map. Exactly one guard must be present.
func Parse(input string) (*Lab, error) {
	g, err := grid.Parse(input, Legend)
	if err != nil {
		return nil, err
	}
	guards := g.Find(func(t Tile) bool {
		_, ok := t.guard()
		return ok
	})
	if err := search.CheckGrid(g.Width(), g.Height(), guards); err != nil {
		return nil, fmt.Errorf("lab map: %w", err)
	}
	if len(guards) > 1 {
		return nil, fmt.Errorf("lab map has %d guards, expected one", len(guards))
	}
	h, _ := g.At(guards[0]).guard()
	return &Lab{Map: g, Start: grid.Move{Pos: guards[0], Heading: h}}, nil
}

// Patrol is the outcome of one simulated patrol
type Patrol struct {
	Visited *search.Visited[grid.Move]
	Looped  bool
}

// Positions counts the distinct tiles the guard stood on
func (p *Patrol) Positions() int {
	return search.Distinct(p.Visited, func(m grid.Move) grid.Point { return m.Pos })
}

// step is the single-successor transition. A blocked step turns the guard
// in place; stepping off the map has no successor.
func (l *Lab) step(extra *grid.Point) func(grid.Move) []grid.Move {
	return func(m grid.Move) []grid.Move {
		ahead := m.Pos.Step(m.Heading)
		t, ok := l.Map.Get(ahead)
		if !ok {
			return nil
		}
		if t == Obstacle || (extra != nil && ahead == *extra) {
			return []grid.Move{{Pos: m.Pos, Heading: m.Heading.TurnRight()}}
		}
		return []grid.Move{{Pos: ahead, Heading: m.Heading}}
	}
}

// Walk simulates the patrol, optionally with one extra obstruction. The
// guard is trapped when its last (position, heading) state still has a
// successor, i.e. the route ran back into a state already finalized.
func (l *Lab) Walk(extra *grid.Point) *Patrol {
	next := l.step(extra)
	visited := search.Reach(next, l.Start)
	states := visited.States()
	last := states[len(states)-1]
	return &Patrol{Visited: visited, Looped: len(next(last)) > 0}
}

// LoopObstructions counts the tiles where a single new obstruction traps
// the guard. Only tiles on the unobstructed route can change it, and the
// starting tile is off limits. Candidates are checked concurrently.
func (l *Lab) LoopObstructions(ctx context.Context) (int, error) {
	route := l.Walk(nil)
	seen := make(map[grid.Point]bool)
	var candidates []grid.Point
	for _, m := range route.Visited.States() {
		if m.Pos == l.Start.Pos || seen[m.Pos] {
			continue
		}
		seen[m.Pos] = true
		candidates = append(candidates, m.Pos)
	}

	var loops atomic.Int64
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for _, c := range candidates {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if l.Walk(&c).Looped {
				loops.Add(1)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}
	return int(loops.Load()), nil
}

// Part1 counts the distinct tiles visited before the guard leaves the map
func Part1(input string) (int, error) {
	lab, err := Parse(input)
	if err != nil {
		return 0, err
	}
	return lab.Walk(nil).Positions(), nil
}

// Part2 counts the obstruction placements that trap the guard
func Part2(ctx context.Context, input string) (int, error) {
	lab, err := Parse(input)
	if err != nil {
		return 0, err
	}
	return lab.LoopObstructions(ctx)
}
